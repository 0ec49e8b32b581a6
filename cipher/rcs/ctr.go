package rcs

// incrementNonceLE treats nonce as a little-endian 256-bit counter and
// adds 1, carrying through all 32 bytes.
func incrementNonceLE(nonce *[NonceSize]byte) {
	for i := range nonce {
		nonce[i]++
		if nonce[i] != 0 {
			break
		}
	}
}

// ctrTransform XORs dst/src against the keystream produced by encrypting
// successive little-endian-counter values of the cipher's nonce, mutating
// the nonce in place one block (or partial block) per QSC_RCS_BLOCK_SIZE
// bytes of input, per spec.md §4.6's CTR mode.
func (c *Cipher) ctrTransform(dst, src []byte) {
	for len(src) >= BlockSize {
		var ks [BlockSize]byte
		encryptBlock(c.roundKeys, c.rounds, &ks, &c.nonce)
		for i := range ks {
			dst[i] = ks[i] ^ src[i]
		}
		incrementNonceLE(&c.nonce)

		dst = dst[BlockSize:]
		src = src[BlockSize:]
	}

	if len(src) > 0 {
		var ks [BlockSize]byte
		encryptBlock(c.roundKeys, c.rounds, &ks, &c.nonce)
		for i := range src {
			dst[i] = ks[i] ^ src[i]
		}
		incrementNonceLE(&c.nonce)
	}
}
