package csx

import (
	"math/bits"

	"github.com/qscrypto/qsc/internal/mem"
)

// rounds is CSX's fixed round count, applied two rounds at a time (a
// "column" half-round and a "diagonal" half-round per iteration, ChaCha
// double-round style), per spec.md §4.7.
const rounds = 40

// permute runs the 1024-bit CSX permutation over state, feed-forwards the
// pre-permutation words (a sponge-less Davies-Meyer construction, matching
// original_source/RCS/csx.c's csx_permute_p1024c), and writes the 128-byte
// keystream block little-endian into out.
func permute(state *[16]uint64, out *[BlockSize]byte) {
	x0, x1, x2, x3 := state[0], state[1], state[2], state[3]
	x4, x5, x6, x7 := state[4], state[5], state[6], state[7]
	x8, x9, x10, x11 := state[8], state[9], state[10], state[11]
	x12, x13, x14, x15 := state[12], state[13], state[14], state[15]

	for r := 0; r < rounds; r += 2 {
		// round n
		x0 += x4
		x12 = bits.RotateLeft64(x12^x0, 38)
		x8 += x12
		x4 = bits.RotateLeft64(x4^x8, 19)
		x0 += x4
		x12 = bits.RotateLeft64(x12^x0, 10)
		x8 += x12
		x4 = bits.RotateLeft64(x4^x8, 55)

		x1 += x5
		x13 = bits.RotateLeft64(x13^x1, 33)
		x9 += x13
		x5 = bits.RotateLeft64(x5^x9, 4)
		x1 += x5
		x13 = bits.RotateLeft64(x13^x1, 51)
		x9 += x13
		x5 = bits.RotateLeft64(x5^x9, 13)

		x2 += x6
		x14 = bits.RotateLeft64(x14^x2, 16)
		x10 += x14
		x6 = bits.RotateLeft64(x6^x10, 34)
		x2 += x6
		x14 = bits.RotateLeft64(x14^x2, 56)
		x10 += x14
		x6 = bits.RotateLeft64(x6^x10, 51)

		x3 += x7
		x15 = bits.RotateLeft64(x15^x3, 4)
		x11 += x15
		x7 = bits.RotateLeft64(x7^x11, 53)
		x3 += x7
		x15 = bits.RotateLeft64(x15^x3, 42)
		x11 += x15
		x7 = bits.RotateLeft64(x7^x11, 41)

		// round n+1
		x0 += x5
		x15 = bits.RotateLeft64(x15^x0, 34)
		x10 += x15
		x5 = bits.RotateLeft64(x5^x10, 41)
		x0 += x5
		x15 = bits.RotateLeft64(x15^x0, 59)
		x10 += x15
		x5 = bits.RotateLeft64(x5^x10, 17)

		x1 += x6
		x12 = bits.RotateLeft64(x12^x1, 23)
		x11 += x12
		x6 = bits.RotateLeft64(x6^x11, 31)
		x1 += x6
		x12 = bits.RotateLeft64(x12^x1, 37)
		x11 += x12
		x6 = bits.RotateLeft64(x6^x11, 20)

		x2 += x7
		x13 = bits.RotateLeft64(x13^x2, 31)
		x8 += x13
		x7 = bits.RotateLeft64(x7^x8, 44)
		x2 += x7
		x13 = bits.RotateLeft64(x13^x2, 47)
		x8 += x13
		x7 = bits.RotateLeft64(x7^x8, 46)

		x3 += x4
		x14 = bits.RotateLeft64(x14^x3, 12)
		x9 += x14
		x4 = bits.RotateLeft64(x4^x9, 47)
		x3 += x4
		x14 = bits.RotateLeft64(x14^x3, 44)
		x9 += x14
		x4 = bits.RotateLeft64(x4^x9, 30)
	}

	mem.PutLE64(out[0:8], x0+state[0])
	mem.PutLE64(out[8:16], x1+state[1])
	mem.PutLE64(out[16:24], x2+state[2])
	mem.PutLE64(out[24:32], x3+state[3])
	mem.PutLE64(out[32:40], x4+state[4])
	mem.PutLE64(out[40:48], x5+state[5])
	mem.PutLE64(out[48:56], x6+state[6])
	mem.PutLE64(out[56:64], x7+state[7])
	mem.PutLE64(out[64:72], x8+state[8])
	mem.PutLE64(out[72:80], x9+state[9])
	mem.PutLE64(out[80:88], x10+state[10])
	mem.PutLE64(out[88:96], x11+state[11])
	mem.PutLE64(out[96:104], x12+state[12])
	mem.PutLE64(out[104:112], x13+state[13])
	mem.PutLE64(out[112:120], x14+state[14])
	mem.PutLE64(out[120:128], x15+state[15])
}

// incrementCounter advances the 128-bit little-endian counter held in state
// lanes 12-13 by one, carrying from lane 12 into lane 13 on wraparound.
func incrementCounter(state *[16]uint64) {
	state[12]++
	if state[12] == 0 {
		state[13]++
	}
}
