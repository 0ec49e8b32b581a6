package csx

import (
	"encoding/binary"

	"github.com/qscrypto/qsc/internal/mem"
)

// SetAssociated binds associated data into the MAC ahead of the first
// Transform call: mac(ad) followed by mac(little-endian 4-byte length(ad)),
// per spec.md §4.7. Calling it after Transform is a caller error.
func (c *Cipher) SetAssociated(ad []byte) error {
	if c.lifecycle != stateInitialized {
		return ErrInvalidArgument
	}
	if len(ad) == 0 || !c.authenticated {
		return nil
	}
	_, _ = c.mac.Write(ad)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(ad)))
	_, _ = c.mac.Write(lenBuf[:])
	return nil
}

// Transform runs one AEAD operation. On encrypt, dst must be at least
// len(src)+TagSize bytes, with the tag appended after the ciphertext. On
// decrypt, src holds ciphertext followed by the tag; Transform returns
// false without writing plaintext if the tag does not verify.
func (c *Cipher) Transform(dst, src []byte) (bool, error) {
	if c.lifecycle != stateInitialized && c.lifecycle != stateTransformed {
		return false, ErrInvalidArgument
	}
	c.lifecycle = stateTransformed

	if !c.authenticated {
		c.keystreamTransform(dst, src)
		return true, nil
	}

	var nonceCopy [NonceSize]byte
	binary.LittleEndian.PutUint64(nonceCopy[0:8], c.state[12])
	binary.LittleEndian.PutUint64(nonceCopy[8:16], c.state[13])

	if c.encrypt {
		plainLen := len(src)
		c.counter += uint64(plainLen)
		_, _ = c.mac.Write(nonceCopy[:])
		c.keystreamTransform(dst[:plainLen], src)
		_, _ = c.mac.Write(dst[:plainLen])
		tag := c.finalizeMac()
		copy(dst[plainLen:plainLen+TagSize], tag)
		return true, nil
	}

	cipherLen := len(src) - TagSize
	if cipherLen < 0 {
		return false, ErrInvalidArgument
	}
	c.counter += uint64(cipherLen)
	_, _ = c.mac.Write(nonceCopy[:])
	_, _ = c.mac.Write(src[:cipherLen])
	tag := c.finalizeMac()

	if mem.Verify(tag, src[cipherLen:cipherLen+TagSize]) != 0 {
		return false, nil
	}

	c.keystreamTransform(dst[:cipherLen], src[:cipherLen])
	return true, nil
}

// finalizeMac absorbs the little-endian processed-byte counter before
// squeezing the tag, per csx_finalize.
func (c *Cipher) finalizeMac() []byte {
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], c.counter)
	_, _ = c.mac.Write(ctr[:])
	return c.mac.Sum(TagSize)
}
