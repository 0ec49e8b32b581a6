package sponge

import "github.com/qscrypto/qsc/hazmat/keccak"

// CShake is the customizable SHAKE construction from NIST SP 800-185: a
// SHAKE variant that mixes a function name and a user customization string
// into the sponge before any message bytes, via the encode_string/bytepad
// framing spec.md §4.3 specifies.
type CShake struct {
	base
}

// NewCShake128/256 construct a cSHAKE instance. When both name and custom
// are empty, cSHAKE is defined to degenerate to plain SHAKE (same domain
// byte, no framing block) — spec.md §4.3 calls this out explicitly. KMAC
// never reaches this case, since it always frames the name "KMAC".
func NewCShake128(name, custom string) *CShake { return newCShake(keccak.Rate128, name, custom) }
func NewCShake256(name, custom string) *CShake { return newCShake(keccak.Rate256, name, custom) }

// NewCShake512 extends the family to keccak.Rate512, used by RCS-512's and
// CSX's key schedules (spec.md §4.6/§4.7).
func NewCShake512(name, custom string) *CShake { return newCShake(keccak.Rate512, name, custom) }

func newCShake(rate int, name, custom string) *CShake {
	c := &CShake{}
	if name == "" && custom == "" {
		c.base.reset(rate, keccak.FullRounds, keccak.DomainSHAKE)
		return c
	}
	c.base.reset(rate, keccak.FullRounds, keccak.DomainCShake)
	c.frame(rate, name, custom)
	return c
}

// frame absorbs bytepad(encode_string(name) || encode_string(custom), rate).
func (b *base) frame(rate int, name, custom string) {
	b.absorb(keccak.LeftEncode(uint64(rate)))
	b.absorb(encodeString([]byte(name)))
	b.absorb(encodeString([]byte(custom)))
	b.padBlock()
}

// encodeString is SP 800-185's encode_string: left_encode(len(s)*8) || s.
func encodeString(s []byte) []byte {
	enc := keccak.LeftEncode(uint64(len(s)) * 8)
	return append(enc, s...)
}

func (c *CShake) Write(p []byte) (int, error) {
	c.absorb(p)
	return len(p), nil
}

func (c *CShake) Read(p []byte) (int, error) {
	c.squeeze(p)
	return len(p), nil
}

// AlignToBlock discards any unread bytes remaining in the current squeeze
// block, so the next Read starts from a freshly permuted block. Matches the
// reference key-schedule pattern of always calling squeezeblocks (permute +
// full-rate output) rather than resuming mid-block when a derivation moves
// from one sub-key to the next (e.g. RCS's round-key array to its MAC key).
func (c *CShake) AlignToBlock() {
	if !c.squeezing {
		c.finalize()
		return
	}
	c.pos = c.rate
}

// SumCShake128/256 are one-shot cSHAKE digests of the requested length.
func SumCShake128(data []byte, outLen int, name, custom string) []byte {
	c := NewCShake128(name, custom)
	_, _ = c.Write(data)
	out := make([]byte, outLen)
	_, _ = c.Read(out)
	return out
}

func SumCShake256(data []byte, outLen int, name, custom string) []byte {
	c := NewCShake256(name, custom)
	_, _ = c.Write(data)
	out := make([]byte, outLen)
	_, _ = c.Read(out)
	return out
}
