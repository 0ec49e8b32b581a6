// Package csx implements CSX, the ChaCha-Shaped eXtended stream cipher
// (spec.md §4.7, component C7): a 1024-bit-state, 40-round ChaCha-shaped
// permutation run as a counter-mode keystream generator with a cSHAKE-512
// derived state and a KMAC-512 authentication tag.
package csx

import (
	"errors"

	"github.com/qscrypto/qsc/hazmat/sponge"
)

// Sizes in bytes, per spec.md §4.7.
const (
	KeySize   = 64
	NonceSize = 16
	BlockSize = 128
	TagSize   = 64
	infoSize  = 48
	nameSize  = 14
)

// csxInfo is the fixed customization constant folded into every CSX state,
// byte for byte as original_source/RCS/csx.c's csx_info.
var csxInfo = []byte("CSX512 KMAC authentication ver. 1c CEX++ library")

// defaultName is the key-schedule identifier used when the caller supplies
// no info string, matching csx.c's csx_name for the authenticated build.
var defaultName = []byte("CSX512-KMAC512")

// defaultNameReducedKMAC is the cSHAKE name the KMACR12 MAC is framed with
// when WithReducedKMAC is set, matching csx.c's csx_kmacr12_name. The
// cipher-key derivation still uses defaultName (or info) in that mode.
var defaultNameReducedKMAC = []byte("CSX512-KMACR12")

// ErrInvalidArgument reports a wrong-length key or nonce, or a Transform/
// SetAssociated call made out of lifecycle order.
var ErrInvalidArgument = errors.New("csx: invalid argument")

type lifecycleState int

const (
	stateInitialized lifecycleState = iota
	stateTransformed
	stateDisposed
)

// Cipher is a CSX AEAD stream cipher state: the 16-lane permutation state
// (with the little-endian 128-bit counter held in lanes 12-13) plus the
// running KMAC-512 tag. State transitions follow spec.md §4.6/§4.7:
// Initialized -> (SetAssociated*)(Transform*) -> Disposed, with
// SetAssociated forbidden after the first Transform.
type Cipher struct {
	state         [16]uint64
	counter       uint64
	encrypt       bool
	authenticated bool
	reducedKMAC   bool
	mac           *sponge.KMAC
	lifecycle     lifecycleState
}

// Option configures a Cipher at construction.
type Option func(*config)

type config struct {
	authenticated bool
	reducedKMAC   bool
}

// WithAuthentication toggles the KMAC-512 AEAD envelope. Default true.
func WithAuthentication(on bool) Option {
	return func(c *config) { c.authenticated = on }
}

// WithReducedKMAC selects KMACR12, the reduced-round (Keccak-p[1600,12])
// KMAC-512 variant, instead of the standard full-round KMAC-512, matching
// original_source/RCS/csx.c's QSC_CSX_AUTH_KMACR12 build flag. Has no effect
// when authentication is disabled.
func WithReducedKMAC(on bool) Option {
	return func(c *config) { c.reducedKMAC = on }
}

// New constructs a CSX cipher. key must be 64 bytes and nonce 16 bytes; info
// is optional key-schedule customization, truncated to 48 (unauthenticated)
// or 14 (authenticated) bytes per spec.md §4.7.
func New(key []byte, nonce [NonceSize]byte, info []byte, encrypt bool, opts ...Option) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidArgument
	}

	cfg := config{authenticated: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cipher{
		encrypt:       encrypt,
		authenticated: cfg.authenticated,
		reducedKMAC:   cfg.reducedKMAC,
		lifecycle:     stateInitialized,
	}
	c.expandSchedule(key, nonce, info)
	return c, nil
}

// Dispose zeroes the cipher's permutation state and resets its lifecycle.
func (c *Cipher) Dispose() {
	for i := range c.state {
		c.state[i] = 0
	}
	c.counter = 0
	c.mac = nil
	c.lifecycle = stateDisposed
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
