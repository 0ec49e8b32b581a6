package keccak

// Permute applies the Keccak permutation to a single 200-byte state using the
// given round count (24 for the standards-track sponges, 12 for KPA).
func Permute(state *[200]byte, rounds int) {
	f1600Generic(state, rounds)
}

// PermuteX4 applies Permute independently to four states. The semantics are
// required by spec.md §4.2 to be identical to calling Permute on each state
// in turn; this is a direct, unconditional implementation of that contract.
func PermuteX4(rounds int, s0, s1, s2, s3 *[200]byte) {
	f1600Generic(s0, rounds)
	f1600Generic(s1, rounds)
	f1600Generic(s2, rounds)
	f1600Generic(s3, rounds)
}

// PermuteX8 applies Permute independently to eight states, with the same
// per-slot semantics as PermuteX4.
func PermuteX8(rounds int, s0, s1, s2, s3, s4, s5, s6, s7 *[200]byte) {
	f1600Generic(s0, rounds)
	f1600Generic(s1, rounds)
	f1600Generic(s2, rounds)
	f1600Generic(s3, rounds)
	f1600Generic(s4, rounds)
	f1600Generic(s5, rounds)
	f1600Generic(s6, rounds)
	f1600Generic(s7, rounds)
}

// PermuteBatch applies Permute independently to an arbitrary number of
// states, in groups of 8 through PermuteX8, then groups of 4 through
// PermuteX4, then one at a time; the grouping does not depend on Lanes.
func PermuteBatch(rounds int, states []*[200]byte) {
	i := 0
	for i+8 <= len(states) {
		PermuteX8(rounds, states[i], states[i+1], states[i+2], states[i+3],
			states[i+4], states[i+5], states[i+6], states[i+7])
		i += 8
	}
	for i+4 <= len(states) {
		PermuteX4(rounds, states[i], states[i+1], states[i+2], states[i+3])
		i += 4
	}
	for ; i < len(states); i++ {
		f1600Generic(states[i], rounds)
	}
}
