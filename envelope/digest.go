package envelope

import (
	"hash"

	"github.com/qscrypto/qsc/hazmat/sponge"
)

// KeyedDigest adapts sponge.KMAC to hash.Hash: KMAC's Sum takes an explicit
// output length rather than appending to a running digest, so this fixes
// that length at construction and rebuilds a fresh KMAC instance (with the
// same key/customization) on Reset, the way digest.go's thyrse-backed
// digest rebuilds its Protocol clone.
type KeyedDigest struct {
	newMAC func() *sponge.KMAC
	mac    *sponge.KMAC
	size   int
}

// NewKeyedDigest128/256/512 return a keyed hash.Hash of the requested
// output size, backed by KMAC-128/256/512.
func NewKeyedDigest128(key []byte, custom string, size int) *KeyedDigest {
	return newKeyedDigest(func() *sponge.KMAC { return sponge.NewKMAC128(key, custom) }, size)
}

func NewKeyedDigest256(key []byte, custom string, size int) *KeyedDigest {
	return newKeyedDigest(func() *sponge.KMAC { return sponge.NewKMAC256(key, custom) }, size)
}

func NewKeyedDigest512(key []byte, custom string, size int) *KeyedDigest {
	return newKeyedDigest(func() *sponge.KMAC { return sponge.NewKMAC512(key, custom) }, size)
}

func newKeyedDigest(newMAC func() *sponge.KMAC, size int) *KeyedDigest {
	d := &KeyedDigest{newMAC: newMAC, size: size}
	d.Reset()
	return d
}

func (d *KeyedDigest) Write(p []byte) (int, error) { return d.mac.Write(p) }

// Sum appends the size-byte KMAC tag of the data written so far to b.
func (d *KeyedDigest) Sum(b []byte) []byte { return append(b, d.mac.Sum(d.size)...) }

func (d *KeyedDigest) Reset()         { d.mac = d.newMAC() }
func (d *KeyedDigest) Size() int      { return d.size }
func (d *KeyedDigest) BlockSize() int { return d.mac.BlockSize() }

var _ hash.Hash = (*KeyedDigest)(nil)
