// Package siv implements a Synthetic Initialization Vector (SIV) AEAD scheme.
//
// This provides nonce-misuse resistant authenticated encryption (mrAE) and
// deterministic encryption (DAE) with a two-pass algorithm: an "auth" KMAC
// instance derives a synthetic tag from the nonce, associated data and
// plaintext, and a domain-separated "conf" KMAC instance derives the mask
// used to encrypt under that tag. Nothing is ever masked before it has been
// authenticated, so a repeated nonce leaks equality of (ad, plaintext)
// pairs rather than recovering any plaintext.
package siv

import (
	"crypto/cipher"
	"errors"

	"github.com/qscrypto/qsc/hazmat/sponge"
	"github.com/qscrypto/qsc/internal/mem"
)

// TagSize is the size, in bytes, of the synthetic tag appended to every
// masked message.
const TagSize = 32

// ErrInvalidCiphertext is returned by Open when the ciphertext is too short
// to contain a tag, or its tag does not verify.
var ErrInvalidCiphertext = errors.New("siv: invalid ciphertext")

// New returns a cipher.AEAD keyed by key and domain-separated by domain, so
// that two Seal/Open pairs built from the same key but different domain
// strings never share keystream or tag space.
//
// Panics if nonceSize is less than 16 bytes. A minimum of 16 bytes is
// required for the synthetic-IV construction's misuse resistance to hold.
func New(domain string, key []byte, nonceSize int) cipher.AEAD {
	if nonceSize < 16 {
		panic("siv: nonce size must be at least 16 bytes")
	}
	return &aead{
		domain:    domain,
		key:       append([]byte(nil), key...),
		nonceSize: nonceSize,
	}
}

type aead struct {
	domain    string
	key       []byte
	nonceSize int
}

func (a *aead) NonceSize() int { return a.nonceSize }
func (a *aead) Overhead() int  { return TagSize }

func (a *aead) authMAC() *sponge.KMAC { return sponge.NewKMAC256(a.key, a.domain+":auth") }
func (a *aead) confMAC() *sponge.KMAC { return sponge.NewKMAC256(a.key, a.domain+":conf") }

// Seal encrypts and authenticates plaintext using the SIV mode, authenticates
// the additional data and appends the result to dst, returning the updated
// slice.
//
// Panics if len(nonce) != a.NonceSize(). The cipher.AEAD interface requires
// exact nonce sizes to prevent misuse that could compromise security.
func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != a.nonceSize {
		panic("siv: invalid nonce size")
	}

	auth := a.authMAC()
	auth.Write(nonce)
	auth.Write(additionalData)
	auth.Write(plaintext)
	tag := auth.Sum(TagSize)

	conf := a.confMAC()
	conf.Write(nonce)
	conf.Write(additionalData)
	conf.Write(tag)
	pad := conf.Sum(len(plaintext))

	head, tail := mem.SliceForAppend(dst, len(plaintext)+TagSize)
	for i := range plaintext {
		tail[i] = plaintext[i] ^ pad[i]
	}
	copy(tail[len(plaintext):], tag)
	return head
}

// Open decrypts and authenticates ciphertext using the SIV mode, authenticates
// the additional data and, if successful, appends the resulting plaintext to
// dst, returning the updated slice.
//
// Panics if len(nonce) != a.NonceSize(). The cipher.AEAD interface requires
// exact nonce sizes to prevent misuse that could compromise security.
func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != a.nonceSize {
		panic("siv: invalid nonce size")
	}
	if len(ciphertext) < TagSize {
		return nil, ErrInvalidCiphertext
	}

	ct, receivedTag := ciphertext[:len(ciphertext)-TagSize], ciphertext[len(ciphertext)-TagSize:]

	conf := a.confMAC()
	conf.Write(nonce)
	conf.Write(additionalData)
	conf.Write(receivedTag)
	pad := conf.Sum(len(ct))

	head, tail := mem.SliceForAppend(dst, len(ct))
	for i := range ct {
		tail[i] = ct[i] ^ pad[i]
	}

	auth := a.authMAC()
	auth.Write(nonce)
	auth.Write(additionalData)
	auth.Write(tail)
	expectedTag := auth.Sum(TagSize)

	if mem.Verify(expectedTag, receivedTag) != 0 {
		mem.Clear(tail)
		return nil, ErrInvalidCiphertext
	}
	return head, nil
}

var _ cipher.AEAD = (*aead)(nil)
