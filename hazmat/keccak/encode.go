package keccak

// LeftEncode returns left_encode(value) as defined in NIST SP 800-185: the
// minimal big-endian encoding of value, prefixed by a single byte giving that
// encoding's length. left_encode(0) is the two-byte sequence {0x01, 0x00}.
func LeftEncode(value uint64) []byte {
	n := byteLen(value)
	buf := make([]byte, n+1)
	buf[0] = byte(n)
	putBigEndianTrimmed(buf[1:], value, n)
	return buf
}

// RightEncode returns right_encode(value) as defined in NIST SP 800-185: the
// minimal big-endian encoding of value, suffixed by a single byte giving that
// encoding's length. right_encode(0) is the two-byte sequence {0x00, 0x01}.
func RightEncode(value uint64) []byte {
	n := byteLen(value)
	buf := make([]byte, n+1)
	putBigEndianTrimmed(buf, value, n)
	buf[n] = byte(n)
	return buf
}

// byteLen returns the minimal number of bytes needed to represent value in
// big-endian form, with byteLen(0) == 1 (matching SP 800-185's "at least one
// byte" rule for encoding zero).
func byteLen(value uint64) int {
	n := 0
	for v := value; v > 0; v >>= 8 {
		n++
	}
	if n == 0 {
		n = 1
	}
	return n
}

func putBigEndianTrimmed(dst []byte, value uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		dst[i] = byte(value)
		value >>= 8
	}
}
