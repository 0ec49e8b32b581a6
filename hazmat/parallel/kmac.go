package parallel

import "github.com/qscrypto/qsc/hazmat/keccak"

// frameAbsorbLockstep XORs one equal-length payload per lane into that
// lane's state, rate-sized block at a time, permuting all lanes together,
// then zero-pads (implicitly, by XORing nothing further) and permutes once
// more if a partial block remains. No domain byte or high-bit padding is
// applied here: this is pre-message framing, mirroring hazmat/sponge's
// base.frame but advancing every lane in lockstep through keccak.PermuteX4/
// PermuteX8 instead of one hazmat/keccak.Permute call per lane.
func frameAbsorbLockstep(states []*[200]byte, rate, rounds int, payloads [][]byte, permuteAll func([]*[200]byte, int)) {
	n := len(payloads[0])
	off := 0
	for n-off >= rate {
		for lane, p := range payloads {
			xorInto(states[lane], p[off:off+rate])
		}
		permuteAll(states, rounds)
		off += rate
	}
	if tail := n - off; tail > 0 {
		for lane, p := range payloads {
			xorInto(states[lane], p[off:])
		}
		permuteAll(states, rounds)
	}
}

func xorInto(state *[200]byte, p []byte) {
	for i, b := range p {
		state[i] ^= b
	}
}

func encodeStringBytes(s []byte) []byte {
	return append(keccak.LeftEncode(uint64(len(s))*8), s...)
}

// kmacFrame builds the per-lane framed block
// left_encode(rate) || left_encode(|name|·8) || name || left_encode(|s|·8) || s
// for lane-specific s (the customization or key payload), used by both
// framing passes below.
func kmacFrame(rate int, name string, s []byte) []byte {
	buf := keccak.LeftEncode(uint64(rate))
	buf = append(buf, encodeStringBytes([]byte(name))...)
	buf = append(buf, encodeStringBytes(s)...)
	return buf
}

// frameKMACLockstep runs KMAC's two bytepad framing passes (name+customization,
// then key) across n lanes in lockstep, requiring customs to share one
// length and keys to share another, per spec.md §4.5's batched-KMAC
// precondition.
func frameKMACLockstep(states []*[200]byte, rate int, keys, customs [][]byte, permuteAll func([]*[200]byte, int)) error {
	if !equalLen(customs) || !equalLen(keys) {
		return ErrLengthMismatch
	}

	nameFrames := make([][]byte, len(states))
	for i := range states {
		nameFrames[i] = kmacFrame(rate, "KMAC", customs[i])
	}
	frameAbsorbLockstep(states, rate, keccak.FullRounds, nameFrames, permuteAll)

	keyFrames := make([][]byte, len(states))
	for i := range states {
		buf := keccak.LeftEncode(uint64(rate))
		buf = append(buf, encodeStringBytes(keys[i])...)
		keyFrames[i] = buf
	}
	frameAbsorbLockstep(states, rate, keccak.FullRounds, keyFrames, permuteAll)
	return nil
}

// finishKMACLockstep absorbs the (already length-matched) messages, then
// finalizes each lane by appending right_encode(outLen·8) to its buffered
// tail before the KMAC domain byte and high-bit padding, and squeezes
// outLen bytes per lane.
func finishKMACLockstep(states []*[200]byte, rate int, messages [][]byte, outLen int, permuteAll func([]*[200]byte, int)) [][]byte {
	tagLen := keccak.RightEncode(uint64(outLen) * 8)

	framed := make([][]byte, len(states))
	for i, m := range messages {
		framed[i] = append(append([]byte(nil), m...), tagLen...)
	}

	n := len(framed[0])
	off := 0
	for n-off >= rate {
		for lane, p := range framed {
			xorInto(states[lane], p[off:off+rate])
		}
		permuteAll(states, keccak.FullRounds)
		off += rate
	}
	tail := n - off
	for lane, p := range framed {
		xorInto(states[lane], p[off:])
		states[lane][tail] ^= keccak.DomainKMAC
		states[lane][rate-1] ^= 0x80
	}

	outs := make([][]byte, len(states))
	for i := range outs {
		outs[i] = make([]byte, outLen)
	}
	outOff := 0
	for outOff < outLen {
		permuteAll(states, keccak.FullRounds)
		n := min(rate, outLen-outOff)
		for lane := range states {
			copy(outs[lane][outOff:outOff+n], states[lane][:n])
		}
		outOff += n
	}
	return outs
}

// KMACX4 computes 4 independent KMAC tags under 4 (key, customization) pairs
// against 4 disjoint equal-length messages, batched through one permutation.
func KMACX4(rate int, keys, customs, messages [4][]byte, outLen int) ([4][]byte, error) {
	msgs := messages[:]
	if !equalLen(msgs) {
		return [4][]byte{}, ErrLengthMismatch
	}

	var states [4][200]byte
	ptrs := []*[200]byte{&states[0], &states[1], &states[2], &states[3]}
	if err := frameKMACLockstep(ptrs, rate, keys[:], customs[:], permute4); err != nil {
		return [4][]byte{}, err
	}
	tags := finishKMACLockstep(ptrs, rate, msgs, outLen, permute4)
	var out [4][]byte
	copy(out[:], tags)
	return out, nil
}

// KMACX8 is KMACX4 at 8-way width.
func KMACX8(rate int, keys, customs, messages [8][]byte, outLen int) ([8][]byte, error) {
	msgs := messages[:]
	if !equalLen(msgs) {
		return [8][]byte{}, ErrLengthMismatch
	}

	var states [8][200]byte
	ptrs := make([]*[200]byte, 8)
	for i := range ptrs {
		ptrs[i] = &states[i]
	}
	if err := frameKMACLockstep(ptrs, rate, keys[:], customs[:], permute8); err != nil {
		return [8][]byte{}, err
	}
	tags := finishKMACLockstep(ptrs, rate, msgs, outLen, permute8)
	var out [8][]byte
	copy(out[:], tags)
	return out, nil
}
