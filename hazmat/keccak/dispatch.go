package keccak

import "github.com/klauspost/cpuid/v2"

// Lanes is the batch width this process prefers for the 4-way/8-way
// permutation entry points, chosen once at init time from detected CPU
// features (8 with AVX-512F+VL, 4 with AVX2, otherwise 1). It never changes
// after init.
//
// The lane arithmetic itself is portable Go (see DESIGN.md): there is no
// hand-written AVX2/AVX-512 Plan 9 assembly backing these numbers. No code in
// this module reads Lanes: PermuteX4, PermuteX8, PermuteBatch, KPA (C4) and
// the parallel SHAKE/KMAC layer (C5) use fixed batch widths, and no cipher or
// hasher stores a batch-width decision.
var Lanes = 4

func init() {
	switch {
	case cpuid.CPU.Has(cpuid.AVX512F) && cpuid.CPU.Has(cpuid.AVX512VL):
		Lanes = 8
	case cpuid.CPU.Has(cpuid.AVX2):
		Lanes = 4
	default:
		Lanes = 1
	}
}
