// Package rcs implements RCS, the Rijndael Cryptographic Stream cipher
// (spec.md §4.6, component C6): a 256-bit-block wide-Rijndael variant run in
// CTR mode with a cSHAKE-derived round-key schedule and a KMAC or KPA
// authentication tag.
package rcs

import (
	"errors"

	"github.com/qscrypto/qsc/hazmat/kpa"
	"github.com/qscrypto/qsc/hazmat/sponge"
	"github.com/qscrypto/qsc/internal/mem"
)

// Sizes in bytes, per spec.md §4.6.
const (
	KeySize256 = 32
	KeySize512 = 64
	BlockSize  = 32
	NonceSize  = 32
	TagSize256 = 32
	TagSize512 = 64
)

// ErrInvalidArgument reports a wrong-length key or nonce, or a Transform
// call made before Initialize or after Dispose.
var ErrInvalidArgument = errors.New("rcs: invalid argument")

// Variant selects between the two RCS round counts.
type Variant int

const (
	RCS256 Variant = iota
	RCS512
)

func (v Variant) rounds() int {
	if v == RCS512 {
		return 30
	}
	return 22
}

func (v Variant) tagSize() int {
	if v == RCS512 {
		return TagSize512
	}
	return TagSize256
}

type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateInitialized
	stateTransformed
	stateDisposed
)

// mac abstracts the KMAC/KPA choice behind the single interface the cipher's
// AEAD envelope drives, per spec.md §9's "union of AES-NI and table fallback"
// redesign note applied equally to the MAC backend.
type mac interface {
	Write(p []byte)
	Sum(outLen int) []byte
}

type kmacMAC struct{ k *sponge.KMAC }

func (m kmacMAC) Write(p []byte)        { _, _ = m.k.Write(p) }
func (m kmacMAC) Sum(outLen int) []byte { return m.k.Sum(outLen) }

type kpaMAC struct{ k *kpa.KPA }

func (m kpaMAC) Write(p []byte)        { _, _ = m.k.Write(p) }
func (m kpaMAC) Sum(outLen int) []byte { return m.k.Sum(outLen) }

// Cipher is an RCS-256 or RCS-512 AEAD stream cipher state, carrying the
// round-key schedule, the owned nonce/counter, and the in-progress MAC.
// State transitions follow spec.md §4.6: Uninitialized -> Initialized ->
// (SetAssociated*)(Transform*) -> Disposed, with SetAssociated forbidden
// after the first Transform.
type Cipher struct {
	variant       Variant
	rounds        int
	roundKeys     []uint32
	nonce         [NonceSize]byte
	counter       uint64
	encrypt       bool
	authenticated bool
	useKPA        bool
	mac           mac
	lifecycle     lifecycleState
}

// Option configures a Cipher at construction.
type Option func(*config)

type config struct {
	authenticated bool
	useKPA        bool
}

// WithAuthentication toggles the KMAC/KPA AEAD envelope. Default true.
func WithAuthentication(on bool) Option {
	return func(c *config) { c.authenticated = on }
}

// WithKPA selects the KPA tree MAC instead of KMAC for authentication.
// Default false (KMAC).
func WithKPA(on bool) Option {
	return func(c *config) { c.useKPA = on }
}

// New256 constructs an RCS-256 cipher. key must be 32 bytes and nonce 32
// bytes; info is optional key-schedule customization.
func New256(key []byte, nonce [NonceSize]byte, info []byte, encrypt bool, opts ...Option) (*Cipher, error) {
	return newCipher(RCS256, key, nonce, info, encrypt, opts)
}

// New512 constructs an RCS-512 cipher. key must be 64 bytes.
func New512(key []byte, nonce [NonceSize]byte, info []byte, encrypt bool, opts ...Option) (*Cipher, error) {
	return newCipher(RCS512, key, nonce, info, encrypt, opts)
}

func newCipher(v Variant, key []byte, nonce [NonceSize]byte, info []byte, encrypt bool, opts []Option) (*Cipher, error) {
	keySize := KeySize256
	if v == RCS512 {
		keySize = KeySize512
	}
	if len(key) != keySize {
		return nil, ErrInvalidArgument
	}

	cfg := config{authenticated: true, useKPA: false}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cipher{
		variant:       v,
		rounds:        v.rounds(),
		nonce:         nonce,
		counter:       1,
		encrypt:       encrypt,
		authenticated: cfg.authenticated,
		useKPA:        cfg.useKPA,
		lifecycle:     stateInitialized,
	}
	c.expandSchedule(key, info)
	return c, nil
}

// Nonce returns the cipher's current counter bytes. Since the cipher owns a
// copy of the nonce (rather than aliasing caller memory, per spec.md §9's
// redesign note), a caller that wants the final mutated counter value after
// a sequence of Transform calls reads it back here instead of passing a
// raw mutable pointer into the library.
func (c *Cipher) Nonce() [NonceSize]byte { return c.nonce }

// Dispose zeroes the cipher's round-key schedule and resets its lifecycle,
// matching spec.md §8's dispose law.
func (c *Cipher) Dispose() {
	for i := range c.roundKeys {
		c.roundKeys[i] = 0
	}
	c.roundKeys = nil
	mem.Clear(c.nonce[:])
	c.counter = 0
	c.rounds = 0
	c.mac = nil
	c.lifecycle = stateDisposed
}
