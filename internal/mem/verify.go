package mem

import "crypto/subtle"

// Verify returns 0 if a and b are equal, and 1 otherwise, in time that
// depends only on len(a) — the fold-xor-then-mask law spec.md §9 calls for,
// backed by crypto/subtle.ConstantTimeCompare the way the teacher's
// thyrse.go backs every tag check with subtle.ConstantTimeCompare.
func Verify(a, b []byte) int {
	if len(a) != len(b) {
		return 1
	}
	return 1 - subtle.ConstantTimeCompare(a, b)
}
