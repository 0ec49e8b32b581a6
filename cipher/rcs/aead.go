package rcs

import (
	"encoding/binary"

	"github.com/qscrypto/qsc/internal/mem"
)

// SetAssociated binds associated data into the MAC ahead of the first
// Transform call: mac(ad) followed by mac(little-endian 4-byte length(ad)),
// per spec.md §4.6. May be called any number of times before Transform;
// calling it afterward is a caller error.
func (c *Cipher) SetAssociated(ad []byte) error {
	if c.lifecycle != stateInitialized {
		return ErrInvalidArgument
	}
	if len(ad) == 0 || !c.authenticated {
		return nil
	}
	c.mac.Write(ad)
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(ad)))
	c.mac.Write(lenBuf[:])
	return nil
}

// Transform runs one AEAD operation over the cipher's current state. On the
// encrypt side, dst must be at least len(src)+TagSize bytes; the tag is
// appended after the ciphertext. On the decrypt side, src must hold
// ciphertext followed by the tag, and dst need only be len(src)-TagSize
// bytes; Transform returns false (and leaves dst undefined, per spec.md §7)
// if the tag does not verify. On the unauthenticated build Transform always
// returns true and performs bare CTR.
func (c *Cipher) Transform(dst, src []byte) (bool, error) {
	if c.lifecycle != stateInitialized && c.lifecycle != stateTransformed {
		return false, ErrInvalidArgument
	}
	c.lifecycle = stateTransformed

	if !c.authenticated {
		c.ctrTransform(dst, src)
		return true, nil
	}

	tagSize := c.variant.tagSize()

	if c.encrypt {
		plainLen := len(src)
		c.counter += uint64(plainLen)
		c.mac.Write(c.nonce[:])
		c.ctrTransform(dst[:plainLen], src)
		c.mac.Write(dst[:plainLen])
		tag := c.finalizeMac(tagSize)
		copy(dst[plainLen:plainLen+tagSize], tag)
		return true, nil
	}

	cipherLen := len(src) - tagSize
	if cipherLen < 0 {
		return false, ErrInvalidArgument
	}
	c.counter += uint64(cipherLen)
	c.mac.Write(c.nonce[:])
	c.mac.Write(src[:cipherLen])
	tag := c.finalizeMac(tagSize)

	if mem.Verify(tag, src[cipherLen:cipherLen+tagSize]) != 0 {
		return false, nil
	}

	c.ctrTransform(dst[:cipherLen], src[:cipherLen])
	return true, nil
}

// finalizeMac absorbs the 8-byte little-endian counter
// BlockSize+c.counter+8 before squeezing the tag, per spec.md §4.6's
// mac_finalize step.
func (c *Cipher) finalizeMac(tagSize int) []byte {
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], uint64(BlockSize)+c.counter+8)
	c.mac.Write(ctr[:])
	return c.mac.Sum(tagSize)
}
