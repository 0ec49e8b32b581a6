// Package envelope provides ergonomic crypto/cipher.AEAD, hash.Hash, and
// streaming io.WriteCloser/io.Reader adapters over the RCS and CSX ciphers
// and the KMAC construction, in the idiom of the teacher's
// schemes/basic/{aead,aestream,digest} packages: one-shot sealed messages,
// a block-framed stream, and a keyed digest, all built on C3/C6/C7 rather
// than a fourth cryptographic primitive.
package envelope

import (
	"crypto/cipher"
	"errors"

	"github.com/qscrypto/qsc/cipher/csx"
	"github.com/qscrypto/qsc/cipher/rcs"
	"github.com/qscrypto/qsc/internal/mem"
)

// ErrAuthFailed is returned by Open when the ciphertext's tag does not
// verify, standing in for the false result rcs/csx Transform return on a tag
// mismatch (the ciphers have no error value of their own for this case).
var ErrAuthFailed = errors.New("envelope: authentication failed")

// transformer is the shape both *rcs.Cipher and *csx.Cipher already satisfy
// — no adapter type is needed to bridge them into a single AEAD backend.
type transformer interface {
	SetAssociated(ad []byte) error
	Transform(dst, src []byte) (bool, error)
}

type aead struct {
	key       []byte
	nonceSize int
	overhead  int
	open      func(key, nonce []byte, encrypt bool) (transformer, error)
}

func (a *aead) NonceSize() int { return a.nonceSize }
func (a *aead) Overhead() int  { return a.overhead }

// Seal encrypts and authenticates plaintext, authenticates additionalData,
// and appends the result to dst.
//
// Panics if len(nonce) != a.NonceSize(), matching crypto/cipher.AEAD's
// documented contract.
func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	if len(nonce) != a.nonceSize {
		panic("envelope: invalid nonce size")
	}

	c, err := a.open(a.key, nonce, true)
	if err != nil {
		panic(err)
	}
	if len(additionalData) > 0 {
		if err := c.SetAssociated(additionalData); err != nil {
			panic(err)
		}
	}

	head, tail := mem.SliceForAppend(dst, len(plaintext)+a.overhead)
	if _, err := c.Transform(tail, plaintext); err != nil {
		panic(err)
	}
	return head
}

// Open decrypts and authenticates ciphertext, authenticates additionalData,
// and, if successful, appends the resulting plaintext to dst.
//
// Panics if len(nonce) != a.NonceSize(). Returns ErrAuthFailed, without
// writing to dst, if the tag does not verify.
func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != a.nonceSize {
		panic("envelope: invalid nonce size")
	}
	if len(ciphertext) < a.overhead {
		return nil, ErrAuthFailed
	}

	c, err := a.open(a.key, nonce, false)
	if err != nil {
		return nil, err
	}
	if len(additionalData) > 0 {
		if err := c.SetAssociated(additionalData); err != nil {
			return nil, err
		}
	}

	head, tail := mem.SliceForAppend(dst, len(ciphertext)-a.overhead)
	ok, err := c.Transform(tail, ciphertext)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthFailed
	}
	return head, nil
}

// NewRCS256 returns a cipher.AEAD backed by RCS-256. key must be
// rcs.KeySize256 bytes.
func NewRCS256(key []byte, opts ...rcs.Option) cipher.AEAD {
	if len(key) != rcs.KeySize256 {
		panic("envelope: invalid RCS-256 key size")
	}
	return &aead{
		key:       append([]byte(nil), key...),
		nonceSize: rcs.NonceSize,
		overhead:  rcs.TagSize256,
		open: func(key, nonce []byte, encrypt bool) (transformer, error) {
			var n [rcs.NonceSize]byte
			copy(n[:], nonce)
			return rcs.New256(key, n, nil, encrypt, opts...)
		},
	}
}

// NewRCS512 returns a cipher.AEAD backed by RCS-512. key must be
// rcs.KeySize512 bytes.
func NewRCS512(key []byte, opts ...rcs.Option) cipher.AEAD {
	if len(key) != rcs.KeySize512 {
		panic("envelope: invalid RCS-512 key size")
	}
	return &aead{
		key:       append([]byte(nil), key...),
		nonceSize: rcs.NonceSize,
		overhead:  rcs.TagSize512,
		open: func(key, nonce []byte, encrypt bool) (transformer, error) {
			var n [rcs.NonceSize]byte
			copy(n[:], nonce)
			return rcs.New512(key, n, nil, encrypt, opts...)
		},
	}
}

// NewCSX returns a cipher.AEAD backed by CSX. key must be csx.KeySize bytes.
func NewCSX(key []byte, opts ...csx.Option) cipher.AEAD {
	if len(key) != csx.KeySize {
		panic("envelope: invalid CSX key size")
	}
	return &aead{
		key:       append([]byte(nil), key...),
		nonceSize: csx.NonceSize,
		overhead:  csx.TagSize,
		open: func(key, nonce []byte, encrypt bool) (transformer, error) {
			var n [csx.NonceSize]byte
			copy(n[:], nonce)
			return csx.New(key, n, nil, encrypt, opts...)
		},
	}
}

var _ cipher.AEAD = (*aead)(nil)
