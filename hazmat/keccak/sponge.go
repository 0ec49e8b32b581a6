package keccak

import "github.com/qscrypto/qsc/internal/mem"

// Absorb XORs rate-sized blocks of input into state, permuting between
// blocks, then pads the final partial block with the given domain separation
// byte and the sponge's trailing 0x80 bit and XORs it in. Matches spec.md
// §4.2's absorb primitive exactly: pad10*1 framing with the domain byte
// written at the first unused offset of the final block. The permute for
// that final padded block is deferred to the caller's first SqueezeBlocks
// call, which permutes before copying out — composing the two performs
// exactly one permutation per block, with no extra round here.
func Absorb(state *[200]byte, rate, rounds int, input []byte, domain byte) {
	for len(input) >= rate {
		mem.XORInPlace(state[:rate], input[:rate])
		Permute(state, rounds)
		input = input[rate:]
	}

	mem.XORInPlace(state[:len(input)], input)
	state[len(input)] ^= domain
	state[rate-1] ^= 0x80
}

// FastAbsorb XORs rate-sized blocks of input into state, permuting between
// blocks, with no padding; a trailing partial block is left unabsorbed for
// the caller. Used by KPA's key/customization framing and its root-stage
// absorb of the leaf hashes.
func FastAbsorb(state *[200]byte, rate, rounds int, input []byte) {
	for len(input) >= rate {
		mem.XORInPlace(state[:rate], input[:rate])
		Permute(state, rounds)
		input = input[rate:]
	}
}

// SqueezeBlocks permutes the state and copies rate bytes into out, nblocks
// times, producing nblocks*rate bytes of output.
func SqueezeBlocks(state *[200]byte, out []byte, nblocks, rate, rounds int) {
	for range nblocks {
		Permute(state, rounds)
		copy(out[:rate], state[:rate])
		out = out[rate:]
	}
}
