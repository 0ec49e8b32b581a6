// Package parallel implements the 4-way and 8-way batched SHAKE and KMAC
// variants (spec.md §4.5, component C5): disjoint same-length inputs run
// through one SIMD-batched permutation instead of N independent scalar
// ones. See DESIGN.md for why the batched step here is a structural stand-in
// (keccak.PermuteX4/PermuteX8 run each lane's scalar round function in a
// fixed-shape loop) rather than real vector assembly.
package parallel

import (
	"errors"

	"github.com/qscrypto/qsc/hazmat/keccak"
	"github.com/qscrypto/qsc/internal/mem"
)

// ErrLengthMismatch is returned when a batch's inputs or outputs do not all
// share the same length, a hard precondition of lockstep lane absorption.
var ErrLengthMismatch = errors.New("parallel: all lanes must have equal length")

func equalLen(bs [][]byte) bool {
	if len(bs) == 0 {
		return true
	}
	n := len(bs[0])
	for _, b := range bs[1:] {
		if len(b) != n {
			return false
		}
	}
	return true
}

// absorbLockstep XORs rate-sized blocks from each lane's input into that
// lane's state, permuting all lanes together once a block fills every lane,
// then pads each lane's final block independently with the domain byte. The
// permutation of that padded block is left to squeezeLockstep, which permutes
// before each copy-out.
func absorbLockstep(states []*[200]byte, rate, rounds int, inputs [][]byte, domain byte, permuteAll func([]*[200]byte, int)) {
	n := len(inputs[0])
	off := 0
	for n-off >= rate {
		for lane, in := range inputs {
			mem.XORInPlace(states[lane][:rate], in[off:off+rate])
		}
		permuteAll(states, rounds)
		off += rate
	}

	tail := n - off
	for lane, in := range inputs {
		mem.XORInPlace(states[lane][:tail], in[off:])
		states[lane][tail] ^= domain
		states[lane][rate-1] ^= 0x80
	}
}

func squeezeLockstep(states []*[200]byte, outs [][]byte, rate, rounds int, permuteAll func([]*[200]byte, int)) {
	outLen := len(outs[0])
	off := 0
	for off < outLen {
		permuteAll(states, rounds)
		n := min(rate, outLen-off)
		for lane, out := range outs {
			copy(out[off:off+n], states[lane][:n])
		}
		off += n
	}
}

func permute4(states []*[200]byte, rounds int) {
	keccak.PermuteX4(rounds, states[0], states[1], states[2], states[3])
}

func permute8(states []*[200]byte, rounds int) {
	keccak.PermuteX8(rounds, states[0], states[1], states[2], states[3],
		states[4], states[5], states[6], states[7])
}

// ShakeX4 absorbs 4 disjoint equal-length inputs and squeezes 4 equal-length
// outputs through a single batched SHAKE permutation.
func ShakeX4(rate int, inputs [4][]byte, outLen int) ([4][]byte, error) {
	in := inputs[:]
	if !equalLen(in) {
		return [4][]byte{}, ErrLengthMismatch
	}

	var states [4][200]byte
	ptrs := []*[200]byte{&states[0], &states[1], &states[2], &states[3]}
	absorbLockstep(ptrs, rate, keccak.FullRounds, in, keccak.DomainSHAKE, permute4)

	var out [4][]byte
	outs := make([][]byte, 4)
	for i := range out {
		out[i] = make([]byte, outLen)
		outs[i] = out[i]
	}
	squeezeLockstep(ptrs, outs, rate, keccak.FullRounds, permute4)
	return out, nil
}

// ShakeX8 is ShakeX4 at 8-way width.
func ShakeX8(rate int, inputs [8][]byte, outLen int) ([8][]byte, error) {
	in := inputs[:]
	if !equalLen(in) {
		return [8][]byte{}, ErrLengthMismatch
	}

	var states [8][200]byte
	ptrs := make([]*[200]byte, 8)
	for i := range ptrs {
		ptrs[i] = &states[i]
	}
	absorbLockstep(ptrs, rate, keccak.FullRounds, in, keccak.DomainSHAKE, permute8)

	var out [8][]byte
	outs := make([][]byte, 8)
	for i := range out {
		out[i] = make([]byte, outLen)
		outs[i] = out[i]
	}
	squeezeLockstep(ptrs, outs, rate, keccak.FullRounds, permute8)
	return out, nil
}
