package rcs

import (
	"encoding/binary"

	"github.com/qscrypto/qsc/hazmat/keccak"
	"github.com/qscrypto/qsc/hazmat/kpa"
	"github.com/qscrypto/qsc/hazmat/sponge"
)

// The name*Authenticated/name*Plain values are the RCS key-schedule domain
// identifiers (17 and 13 bytes), confirmed byte for
// byte against original_source/RCS/rcs.c's rcs256_name/rcs512_name. The
// 17-byte form embeds an ASCII "K256"/"K512" tag and is used whenever the
// AEAD envelope is authenticated; the 13-byte form omits it for the bare
// CTR build.
var (
	name256Authenticated = []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x52, 0x43, 0x53, 0x4B, 0x32, 0x35, 0x36}
	name512Authenticated = []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x52, 0x43, 0x53, 0x4B, 0x35, 0x31, 0x32}
	name256Plain          = []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0x01, 0x52, 0x43, 0x53}
	name512Plain          = []byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0x02, 0x52, 0x43, 0x53}
)

func scheduleName(v Variant, authenticated bool) []byte {
	switch {
	case v == RCS512 && authenticated:
		return name512Authenticated
	case v == RCS512:
		return name512Plain
	case authenticated:
		return name256Authenticated
	default:
		return name256Plain
	}
}

// expandSchedule derives the round-key array and, in the authenticated
// build, the MAC key, from a single cSHAKE instance keyed by the user key
// and named per scheduleName, with info as customization — spec.md §4.6's
// key schedule, run identically on both RCS widths at the rate matching
// their security level.
func (c *Cipher) expandSchedule(key, info []byte) {
	rate := keccak.Rate256
	if c.variant == RCS512 {
		rate = keccak.Rate512
	}

	name := scheduleName(c.variant, c.authenticated)
	xof := newCShakeAtRate(rate, name, info)
	_, _ = xof.Write(key)

	roundKeyWords := (c.rounds + 1) * 8
	raw := make([]byte, roundKeyWords*4)
	_, _ = xof.Read(raw)

	c.roundKeys = make([]uint32, roundKeyWords)
	for i := range c.roundKeys {
		c.roundKeys[i] = binary.BigEndian.Uint32(raw[i*4 : i*4+4])
	}

	if !c.authenticated {
		return
	}

	xof.AlignToBlock()
	macKeyLen := KeySize256
	if c.variant == RCS512 {
		macKeyLen = KeySize512
	}
	macKey := make([]byte, macKeyLen)
	_, _ = xof.Read(macKey)

	if c.useKPA {
		var k *kpa.KPA
		switch c.variant {
		case RCS512:
			k = kpa.New512(macKey, nil)
		default:
			k = kpa.New256(macKey, nil)
		}
		c.mac = kpaMAC{k}
		return
	}

	var k *sponge.KMAC
	if c.variant == RCS512 {
		k = sponge.NewKMAC512(macKey, "")
	} else {
		k = sponge.NewKMAC256(macKey, "")
	}
	c.mac = kmacMAC{k}
}

func newCShakeAtRate(rate int, name, custom []byte) *sponge.CShake {
	switch rate {
	case keccak.Rate512:
		return sponge.NewCShake512(string(name), string(custom))
	default:
		return sponge.NewCShake256(string(name), string(custom))
	}
}
