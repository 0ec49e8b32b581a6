package sponge

import "github.com/qscrypto/qsc/hazmat/keccak"

// Shake is an incremental SHAKE-128/256 extendable-output function
// implementing io.Writer for absorption and io.Reader for squeezing. Callers
// must finish writing before the first Read; mixing Write calls in after
// Read has begun is not supported, matching the teacher's turboshake.Hasher.
type Shake struct {
	base
}

func NewShake128() *Shake { return newShake(keccak.Rate128) }
func NewShake256() *Shake { return newShake(keccak.Rate256) }

func newShake(rate int) *Shake {
	s := &Shake{}
	s.base.reset(rate, keccak.FullRounds, keccak.DomainSHAKE)
	return s
}

func (s *Shake) Write(p []byte) (int, error) {
	s.absorb(p)
	return len(p), nil
}

func (s *Shake) Read(p []byte) (int, error) {
	s.squeeze(p)
	return len(p), nil
}

func (s *Shake) Reset() {
	s.base.reset(s.rate, keccak.FullRounds, keccak.DomainSHAKE)
}

// Sum128/Sum256 are one-shot SHAKE digests of the requested output length.
func Sum128(data []byte, outLen int) []byte {
	s := NewShake128()
	_, _ = s.Write(data)
	out := make([]byte, outLen)
	_, _ = s.Read(out)
	return out
}

func Sum256Shake(data []byte, outLen int) []byte {
	s := NewShake256()
	_, _ = s.Write(data)
	out := make([]byte, outLen)
	_, _ = s.Read(out)
	return out
}
