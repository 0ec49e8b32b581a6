// Package kpa implements Keccak Parallel Authentication, an 8-leaf parallel
// tree MAC (spec.md §4.4, component C4) built on the reduced-round
// hazmat/keccak permutation.
package kpa

import (
	"encoding/binary"

	"github.com/qscrypto/qsc/hazmat/keccak"
	"github.com/qscrypto/qsc/internal/mem"
)

// Leaves is the tree's fixed fan-out.
const Leaves = 8

// leafName is the KPA leaf domain-separation template; bytes 0-1 are
// overwritten per leaf with the big-endian 1-based leaf index before being
// reinterpreted as a big-endian uint64 and XORed into the leaf's first lane.
var leafName = [8]byte{0x00, 0x00, 0x4B, 0x42, 0x41, 0xAD, 0x31, 0x32}

// KPA is an incremental Keccak Parallel Authentication state.
type KPA struct {
	leaves    [Leaves][200]byte
	rate      int
	buf       []byte
	pos       int
	processed uint64
}

// New128/256/512 construct a KPA instance at the given security level, seeded
// with key and an optional customization string, exactly mirroring KMAC's
// two-pass framing but run at keccak.ReducedRounds throughout.
func New128(key, custom []byte) *KPA { return newKPA(keccak.Rate128, key, custom) }
func New256(key, custom []byte) *KPA { return newKPA(keccak.Rate256, key, custom) }
func New512(key, custom []byte) *KPA { return newKPA(keccak.Rate512, key, custom) }

func newKPA(rate int, key, custom []byte) *KPA {
	k := &KPA{rate: rate, buf: make([]byte, rate*Leaves)}

	var scratch [200]byte
	frameBlock(&scratch, rate, custom)
	frameBlock(&scratch, rate, key)

	lane0 := binary.LittleEndian.Uint64(scratch[0:8])
	for i := range Leaves {
		k.leaves[i] = scratch
		var name [8]byte
		copy(name[:], leafName[:])
		binary.BigEndian.PutUint16(name[0:2], uint16(i+1))
		algn := binary.BigEndian.Uint64(name[:])
		binary.LittleEndian.PutUint64(k.leaves[i][0:8], lane0^algn)
	}

	for i := range k.leaves {
		keccak.Permute(&k.leaves[i], keccak.ReducedRounds)
	}
	return k
}

// frameBlock absorbs left_encode(rate) || left_encode(|data|·8) || data,
// zero-padded to a rate boundary, into scratch at the reduced round count.
// A zero-length data block is skipped entirely, matching the reference
// initialization routine's "if (len != 0)" guard for both the customization
// and key stages.
func frameBlock(scratch *[200]byte, rate int, data []byte) {
	if len(data) == 0 {
		return
	}
	pad := append(keccak.LeftEncode(uint64(rate)), keccak.LeftEncode(uint64(len(data))*8)...)
	pad = append(pad, data...)
	keccak.FastAbsorb(scratch, rate, keccak.ReducedRounds, pad)

	if tail := len(pad) % rate; tail != 0 {
		mem.XORInPlace(scratch[:tail], pad[len(pad)-tail:])
		keccak.Permute(scratch, keccak.ReducedRounds)
	}
}

// Write absorbs message bytes into all 8 leaves, BLKLEN = 8·rate bytes at a
// time, buffering any partial tail.
func (k *KPA) Write(p []byte) (int, error) {
	total := len(p)
	blockLen := k.rate * Leaves

	if k.pos != 0 && k.pos+len(p) >= blockLen {
		n := blockLen - k.pos
		copy(k.buf[k.pos:], p[:n])
		k.absorbSuperBlock(k.buf)
		k.pos = 0
		p = p[n:]
	}

	for len(p) >= blockLen {
		k.absorbSuperBlock(p)
		p = p[blockLen:]
	}

	if len(p) > 0 {
		copy(k.buf[k.pos:], p)
		k.pos += len(p)
	}
	return total, nil
}

// absorbSuperBlock XORs one rate-sized chunk of msg into each of the 8
// leaves and permutes them all, accounting rate·8 processed bytes.
func (k *KPA) absorbSuperBlock(msg []byte) {
	for i := range k.leaves {
		mem.XORInPlace(k.leaves[i][:k.rate], msg[i*k.rate:(i+1)*k.rate])
	}
	for i := range k.leaves {
		keccak.Permute(&k.leaves[i], keccak.ReducedRounds)
	}
	k.processed += uint64(k.rate * Leaves)
}

// Sum finalizes a scratch copy of the tree and returns outLen bytes of tag,
// leaving the receiver usable for further writes and further Sum calls
// against the same absorbed prefix.
func (k *KPA) Sum(outLen int) []byte {
	clone := *k
	clone.buf = append([]byte(nil), k.buf...)

	if clone.pos != 0 {
		clear(clone.buf[clone.pos:])
		clone.absorbSuperBlock(clone.buf)
	}
	clone.processed += uint64(clone.pos)

	hashLen := leafHashLen(clone.rate)
	var leafBuf [Leaves * 64]byte
	for i := range clone.leaves {
		copy(leafBuf[i*hashLen:], clone.leaves[i][:hashLen])
	}

	var parent [200]byte
	keccak.FastAbsorb(&parent, clone.rate, keccak.ReducedRounds, leafBuf[:Leaves*hashLen])
	if tail := (Leaves * hashLen) % clone.rate; tail != 0 {
		off := Leaves*hashLen - tail
		mem.XORInPlace(parent[:tail], leafBuf[off:Leaves*hashLen])
		keccak.Permute(&parent, keccak.ReducedRounds)
	}

	frame := append(keccak.RightEncode(uint64(outLen)*8), keccak.RightEncode(clone.processed*8)...)
	frame = append(frame, keccak.DomainKPA)
	mem.XORInPlace(parent[:len(frame)], frame)
	parent[clone.rate-1] ^= 0x80

	out := make([]byte, outLen)
	nblocks := (outLen + clone.rate - 1) / clone.rate
	if nblocks == 0 {
		nblocks = 1
	}
	squeezed := make([]byte, nblocks*clone.rate)
	keccak.SqueezeBlocks(&parent, squeezed, nblocks, clone.rate, keccak.ReducedRounds)
	copy(out, squeezed)
	return out
}

// leafHashLen is the rate-dependent per-leaf extraction length spec.md §4.4
// specifies: 16/32/64 bytes for rates 168/136/72.
func leafHashLen(rate int) int {
	switch rate {
	case keccak.Rate512:
		return 64
	case keccak.Rate256:
		return 32
	default:
		return 16
	}
}
