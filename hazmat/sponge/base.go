// Package sponge implements the SHA-3, SHAKE, cSHAKE, and KMAC constructions
// (spec.md §4.3, component C3) on top of the hazmat/keccak permutation.
package sponge

import (
	"github.com/qscrypto/qsc/hazmat/keccak"
	"github.com/qscrypto/qsc/internal/mem"
)

// base is the shared incremental-absorb/squeeze engine behind Hash, Shake,
// CShake, and KMAC. It tracks a single rate-sized window position across any
// number of Write calls, exactly as the teacher's turboshake.Hasher does for
// TurboSHAKE128, generalized to a caller-supplied rate and round count.
type base struct {
	state     [200]byte
	rate      int
	rounds    int
	domain    byte
	pos       int
	squeezing bool
}

func (b *base) reset(rate, rounds int, domain byte) {
	clear(b.state[:])
	b.rate = rate
	b.rounds = rounds
	b.domain = domain
	b.pos = 0
	b.squeezing = false
}

// absorb XORs p into the sponge a rate-sized window at a time, permuting
// whenever the window fills, with no padding. Used both for the cSHAKE/KMAC
// pre-key framing and for ordinary message absorption.
func (b *base) absorb(p []byte) {
	for len(p) > 0 {
		n := min(b.rate-b.pos, len(p))
		mem.XORInPlace(b.state[b.pos:b.pos+n], p[:n])
		b.pos += n
		p = p[n:]
		if b.pos == b.rate {
			keccak.Permute(&b.state, b.rounds)
			b.pos = 0
		}
	}
}

// padBlock zero-pads (implicitly, since absorb only XORs the bytes actually
// written) the current block up to the rate and permutes, but only if the
// window is non-empty — matching SP 800-185's bytepad, which never emits a
// block of pure padding when the framed input already lands on a rate
// boundary.
func (b *base) padBlock() {
	if b.pos > 0 {
		keccak.Permute(&b.state, b.rounds)
		b.pos = 0
	}
}

// finalize pads the final absorbed block with the domain separation byte and
// the sponge's trailing high bit, then permutes once, entering squeezing
// mode. Must be called at most once.
func (b *base) finalize() {
	b.state[b.pos] ^= b.domain
	b.state[b.rate-1] ^= 0x80
	keccak.Permute(&b.state, b.rounds)
	b.pos = 0
	b.squeezing = true
}

// squeeze fills p with output bytes, finalizing on the first call.
func (b *base) squeeze(p []byte) {
	if !b.squeezing {
		b.finalize()
	}
	for len(p) > 0 {
		if b.pos == b.rate {
			keccak.Permute(&b.state, b.rounds)
			b.pos = 0
		}
		n := copy(p, b.state[b.pos:b.rate])
		b.pos += n
		p = p[n:]
	}
}
