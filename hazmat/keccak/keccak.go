// Package keccak implements the Keccak-f[1600] permutation family that
// underlies every sponge construction in this module (SHA-3, SHAKE, cSHAKE,
// KMAC, and the KPA tree MAC).
//
// The permutation is parameterized by round count: 24 rounds for the
// standards-track constructions (SHA-3/SHAKE/cSHAKE/KMAC), and a reduced
// 12-round variant (Keccak-p[1600,12]) for KPA, mirroring the way TurboSHAKE
// and KangarooTwelve trade the full 24-round permutation for speed on a
// domain-separated, tree-structured MAC. See DESIGN.md for why the
// reduced-round count was fixed at 12.
package keccak

import "encoding/binary"

// rc holds the 24 standard Keccak round constants. A reduced-round
// permutation (e.g. rounds=12) uses the last `rounds` entries of this table,
// exactly as Keccak-p[1600, nr] is defined relative to the full Keccak-f[1600].
var rc = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// rotc holds the rotation offset for each of the 25 lanes, indexed as x+5*y,
// per the standard Keccak specification.
var rotc = [25]uint{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// f1600Generic applies the Keccak-f[1600] round function `rounds` times to the
// 200-byte state in place, using the last `rounds` entries of the standard
// 24-round constant table. rounds must be even and at most 24.
func f1600Generic(state *[200]byte, rounds int) {
	var a [25]uint64
	for i := range a {
		a[i] = binary.LittleEndian.Uint64(state[i*8 : i*8+8])
	}

	start := 24 - rounds
	for round := start; round < 24; round++ {
		roundFunc(&a, rc[round])
	}

	for i := range a {
		binary.LittleEndian.PutUint64(state[i*8:i*8+8], a[i])
	}
}

// roundFunc applies one Keccak round (θ, ρ, π, χ, ι) to the 25-lane state.
func roundFunc(a *[25]uint64, rcRound uint64) {
	// θ
	var c [5]uint64
	for x := range 5 {
		c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
	}

	var d [5]uint64
	for x := range 5 {
		d[x] = c[(x+4)%5] ^ rotl64(c[(x+1)%5], 1)
	}

	for x := range 5 {
		for y := range 5 {
			a[x+5*y] ^= d[x]
		}
	}

	// ρ and π combined: lane (x,y) moves to (y, 2x+3y) after rotation.
	var b [25]uint64
	for x := range 5 {
		for y := range 5 {
			b[y+5*((2*x+3*y)%5)] = rotl64(a[x+5*y], rotc[x+5*y])
		}
	}

	// χ
	for y := range 5 {
		row := y * 5
		var t [5]uint64
		copy(t[:], b[row:row+5])
		for x := range 5 {
			a[row+x] = t[x] ^ (^t[(x+1)%5] & t[(x+2)%5])
		}
	}

	// ι
	a[0] ^= rcRound
}

func rotl64(x uint64, n uint) uint64 {
	return x<<n | x>>(64-n)
}
