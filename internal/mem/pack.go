package mem

import "encoding/binary"

// LE16/LE32/LE64 and BE16/BE32/BE64 wrap encoding/binary's LittleEndian and
// BigEndian byte orders for the 16/32/64-bit pack/unpack operations the
// permutation, sponge, and cipher layers need. Kept as thin named wrappers
// (rather than calling binary.LittleEndian/binary.BigEndian directly at every
// call site) so the contract named in spec.md §1 — "little-endian/big-endian
// 16/32/64-bit pack/unpack" — has a single, grep-able home.

func PutLE16(b []byte, v uint16) { binary.LittleEndian.PutUint16(b, v) }
func GetLE16(b []byte) uint16    { return binary.LittleEndian.Uint16(b) }

func PutLE32(b []byte, v uint32) { binary.LittleEndian.PutUint32(b, v) }
func GetLE32(b []byte) uint32    { return binary.LittleEndian.Uint32(b) }

func PutLE64(b []byte, v uint64) { binary.LittleEndian.PutUint64(b, v) }
func GetLE64(b []byte) uint64    { return binary.LittleEndian.Uint64(b) }

func PutBE16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func GetBE16(b []byte) uint16    { return binary.BigEndian.Uint16(b) }

func PutBE32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }
func GetBE32(b []byte) uint32    { return binary.BigEndian.Uint32(b) }

func PutBE64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }
func GetBE64(b []byte) uint64    { return binary.BigEndian.Uint64(b) }
