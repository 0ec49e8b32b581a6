package sponge

import "github.com/qscrypto/qsc/hazmat/keccak"

// Hash is a SHA-3 fixed-output hash function implementing hash.Hash.
type Hash struct {
	base
	size int
}

// NewHash256/384/512 construct incremental SHA-3 hash.Hash instances.
func NewHash256() *Hash { return newHash(keccak.Rate256, 32) }
func NewHash384() *Hash { return newHash(keccak.Rate384, 48) }
func NewHash512() *Hash { return newHash(keccak.Rate512, 64) }

func newHash(rate, size int) *Hash {
	h := &Hash{size: size}
	h.base.reset(rate, keccak.FullRounds, keccak.DomainSHA3)
	return h
}

func (h *Hash) Write(p []byte) (int, error) {
	h.absorb(p)
	return len(p), nil
}

func (h *Hash) Size() int      { return h.size }
func (h *Hash) BlockSize() int { return h.rate }

// Sum appends the digest of the data absorbed so far to b and returns the
// resulting slice, leaving the hash state unmodified (per hash.Hash's
// contract) by finalizing a scratch copy.
func (h *Hash) Sum(b []byte) []byte {
	clone := *h
	out := make([]byte, clone.size)
	clone.squeeze(out)
	return append(b, out...)
}

func (h *Hash) Reset() {
	h.base.reset(h.rate, keccak.FullRounds, keccak.DomainSHA3)
}

// Sum256 and Sum512 are one-shot SHA3-256/SHA3-512 digests, mirroring the
// wrapper functions original_source/RCS/sha3.c exposes alongside its
// incremental context API.
func Sum256(data []byte) [32]byte {
	var out [32]byte
	h := NewHash256()
	_, _ = h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}

func Sum512(data []byte) [64]byte {
	var out [64]byte
	h := NewHash512()
	_, _ = h.Write(data)
	copy(out[:], h.Sum(nil))
	return out
}
