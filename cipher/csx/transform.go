package csx

// keystreamTransform XORs dst/src against the keystream produced by
// successive permutations of the cipher's lane state, incrementing the
// 128-bit counter in lanes 12-13 once per emitted block (including a final
// partial block), per spec.md §4.7's CTR-mode transform. This is the
// portable scalar path; the reference's AVX2/AVX-512 lane-batched variants
// produce byte-identical output by construction (spec.md §8 property 6) and
// are not reproduced here — see DESIGN.md.
func (c *Cipher) keystreamTransform(dst, src []byte) {
	for len(src) >= BlockSize {
		var ks [BlockSize]byte
		permute(&c.state, &ks)
		for i := range ks {
			dst[i] = src[i] ^ ks[i]
		}
		incrementCounter(&c.state)

		dst = dst[BlockSize:]
		src = src[BlockSize:]
	}

	if len(src) > 0 {
		var ks [BlockSize]byte
		permute(&c.state, &ks)
		incrementCounter(&c.state)
		for i := range src {
			dst[i] = src[i] ^ ks[i]
		}
	}
}
