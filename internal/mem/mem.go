// Package mem provides span-wise byte utilities shared by the Keccak permutation,
// the sponge constructions, and the RCS/CSX ciphers: clear, copy, xor, set-value,
// and a constant-time equality check. Every wide variant here is byte-for-byte
// equivalent to the naive loop; the word-at-a-time paths exist only to cut the
// per-byte overhead on the hot absorb/squeeze/keystream loops.
package mem

import "unsafe"

// Clear zeros every byte of dst.
func Clear(dst []byte) {
	clear(dst)
}

// Copy copies min(len(dst), len(src)) bytes from src to dst.
func Copy(dst, src []byte) {
	copy(dst, src)
}

// SetValue sets every byte of dst to v.
func SetValue(dst []byte, v byte) {
	for i := range dst {
		dst[i] = v
	}
}

// XORInPlace sets dst[i] ^= src[i] for i in [0, min(len(dst), len(src))).
//
// Processes 8 bytes at a time via unaligned little-endian uint64 loads, with a
// scalar tail for the remainder — the same word-wide-then-scalar-tail shape as
// an aligned-prologue/SIMD-body/scalar-tail loop, minus the actual vector
// registers, which Go cannot address without hand-written assembly (see
// DESIGN.md).
func XORInPlace(dst, src []byte) {
	n := min(len(dst), len(src))
	w := n &^ 7
	if w > 0 {
		d := unsafe.Slice((*uint64)(unsafe.Pointer(&dst[0])), w/8)
		s := unsafe.Slice((*uint64)(unsafe.Pointer(&src[0])), w/8)
		for i := range d {
			d[i] ^= s[i]
		}
	}
	for i := w; i < n; i++ {
		dst[i] ^= src[i]
	}
}

// XORValue sets dst[i] ^= v for every byte in dst.
func XORValue(dst []byte, v byte) {
	for i := range dst {
		dst[i] ^= v
	}
}

// XORAndCopy sets dst[i] = a[i] ^ b[i], then b[i] = dst[i], for each i in
// [0, len(dst)): it encrypts a block and folds the ciphertext back into a
// running state in one pass. The RCS/CSX keystream paths do not call it.
func XORAndCopy(dst, a, b []byte) {
	for i := range dst {
		d := a[i] ^ b[i]
		dst[i] = d
		b[i] = d
	}
}

// XORAndReplace sets dst[i] = src[i] ^ state[i], then state[i] = src[i], for
// each i in [0, len(dst)). The decrypt-side counterpart of XORAndCopy: the
// running state is updated from the ciphertext, not the plaintext.
func XORAndReplace(dst, src, state []byte) {
	for i := range dst {
		c := src[i]
		dst[i] = c ^ state[i]
		state[i] = c
	}
}

// SliceForAppend extends dst by n bytes, allocating only when necessary, and
// returns both the grown slice and the tail being appended. Mirrors the
// standard crypto/cipher idiom for building AEAD Seal/Open implementations
// that append to a caller-provided destination.
func SliceForAppend(dst []byte, n int) (head, tail []byte) {
	total := len(dst) + n
	if cap(dst) >= total {
		head = dst[:total]
	} else {
		head = make([]byte, total)
		copy(head, dst)
	}
	tail = head[len(dst):]
	return head, tail
}
