package csx

import (
	"github.com/qscrypto/qsc/hazmat/sponge"
	"github.com/qscrypto/qsc/internal/mem"
)

// expandSchedule loads the permutation state and, in the authenticated
// build, the MAC key, per spec.md §4.7's key schedule.
//
// The unauthenticated build (csx.c's qsc_csx_initialize #else branch) skips
// key derivation entirely: the raw user key is loaded straight into the
// lane state, with info (or csxInfo by default) supplying the fixed info
// lanes. The authenticated build derives a cSHAKE-512-based cipher key (and,
// following it, a MAC key) keyed by the user key and named per info (or
// defaultName by default) — independent of reducedKMAC, which selects the
// round count and framing of the MAC alone, not the cipher-key derivation.
func (c *Cipher) expandSchedule(key []byte, nonce [NonceSize]byte, info []byte) {
	if !c.authenticated {
		var inf [infoSize]byte
		if len(info) == 0 {
			copy(inf[:], csxInfo)
		} else {
			copy(inf[:], info[:minInt(len(info), infoSize)])
		}
		c.loadState(key, nonce, inf[:])
		return
	}

	var name [nameSize]byte
	if len(info) == 0 {
		copy(name[:], defaultName)
	} else {
		copy(name[:], info[:minInt(len(info), nameSize)])
	}

	xof := sponge.NewCShake512(string(name[:]), "")
	_, _ = xof.Write(key)

	cipherKey := make([]byte, KeySize)
	_, _ = xof.Read(cipherKey)
	c.loadState(cipherKey, nonce, csxInfo)

	xof.AlignToBlock()
	macKey := make([]byte, KeySize)
	_, _ = xof.Read(macKey)
	if c.reducedKMAC {
		c.mac = sponge.NewKMAC512Reduced(macKey, string(defaultNameReducedKMAC))
	} else {
		c.mac = sponge.NewKMAC512(macKey, "")
	}
}

// loadState packs the cipher key, the fixed CSX_INFO constant, and the
// nonce into the 16 permutation lanes, per csx_load_key: lanes 0-7 hold the
// key, lanes 8-11 and 14-15 hold CSX_INFO, and lanes 12-13 hold the nonce
// counter.
func (c *Cipher) loadState(key []byte, nonce [NonceSize]byte, info []byte) {
	for i := 0; i < 8; i++ {
		c.state[i] = mem.GetLE64(key[i*8 : i*8+8])
	}
	for i := 0; i < 4; i++ {
		c.state[8+i] = mem.GetLE64(info[i*8 : i*8+8])
	}
	c.state[12] = mem.GetLE64(nonce[0:8])
	c.state[13] = mem.GetLE64(nonce[8:16])
	c.state[14] = mem.GetLE64(info[32:40])
	c.state[15] = mem.GetLE64(info[40:48])
}
