package rcs

import (
	"bytes"
	"testing"
)

func zeroKey(n int) []byte {
	k := make([]byte, n)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func zeroNonce() [NonceSize]byte {
	var n [NonceSize]byte
	for i := range n {
		n[i] = byte(i)
	}
	return n
}

// TestRCS256RoundTrip exercises spec.md §8 testable property (e): an RCS-256
// encrypt/decrypt round trip with key=0x00..0x1f, nonce=0x00..0x1f, no info,
// and a 32-byte all-zero plaintext recovers the original plaintext exactly.
func TestRCS256RoundTrip(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, BlockSize)

	enc, err := New256(key, nonce, nil, true)
	if err != nil {
		t.Fatalf("New256 encrypt: %v", err)
	}
	ct := make([]byte, len(plain)+TagSize256)
	ok, err := enc.Transform(ct, plain)
	if err != nil || !ok {
		t.Fatalf("encrypt Transform: ok=%v err=%v", ok, err)
	}

	dec, err := New256(key, nonce, nil, false)
	if err != nil {
		t.Fatalf("New256 decrypt: %v", err)
	}
	pt := make([]byte, len(plain))
	ok, err = dec.Transform(pt, ct)
	if err != nil || !ok {
		t.Fatalf("decrypt Transform: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("round trip mismatch: got %x, want %x", pt, plain)
	}
}

func TestRCS512RoundTrip(t *testing.T) {
	key := zeroKey(KeySize512)
	nonce := zeroNonce()
	plain := []byte("the quick brown fox jumps over the lazy dog!!!!")

	enc, err := New512(key, nonce, []byte("info"), true)
	if err != nil {
		t.Fatalf("New512 encrypt: %v", err)
	}
	ct := make([]byte, len(plain)+TagSize512)
	if ok, err := enc.Transform(ct, plain); err != nil || !ok {
		t.Fatalf("encrypt: ok=%v err=%v", ok, err)
	}

	dec, err := New512(key, nonce, []byte("info"), false)
	if err != nil {
		t.Fatalf("New512 decrypt: %v", err)
	}
	pt := make([]byte, len(plain))
	if ok, err := dec.Transform(pt, ct); err != nil || !ok {
		t.Fatalf("decrypt: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("round trip mismatch: got %q, want %q", pt, plain)
	}
}

func TestRCSTamperedCiphertextRejected(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, 64)

	enc, _ := New256(key, nonce, nil, true)
	ct := make([]byte, len(plain)+TagSize256)
	if ok, _ := enc.Transform(ct, plain); !ok {
		t.Fatal("encrypt failed")
	}
	ct[0] ^= 0x01

	dec, _ := New256(key, nonce, nil, false)
	pt := make([]byte, len(plain))
	ok, err := dec.Transform(pt, ct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("tampered ciphertext byte accepted as authentic")
	}
}

func TestRCSTamperedTagRejected(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, 32)

	enc, _ := New256(key, nonce, nil, true)
	ct := make([]byte, len(plain)+TagSize256)
	enc.Transform(ct, plain)
	ct[len(ct)-1] ^= 0x80

	dec, _ := New256(key, nonce, nil, false)
	pt := make([]byte, len(plain))
	ok, _ := dec.Transform(pt, ct)
	if ok {
		t.Error("tampered tag byte accepted as authentic")
	}
}

func TestRCSAssociatedDataBound(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, 32)

	encA, _ := New256(key, nonce, nil, true)
	if err := encA.SetAssociated([]byte("header-a")); err != nil {
		t.Fatalf("SetAssociated: %v", err)
	}
	ctA := make([]byte, len(plain)+TagSize256)
	encA.Transform(ctA, plain)

	decWrong, _ := New256(key, nonce, nil, false)
	decWrong.SetAssociated([]byte("header-b"))
	pt := make([]byte, len(plain))
	if ok, _ := decWrong.Transform(pt, ctA); ok {
		t.Error("decrypt with mismatched associated data accepted")
	}

	decRight, _ := New256(key, nonce, nil, false)
	decRight.SetAssociated([]byte("header-a"))
	if ok, err := decRight.Transform(pt, ctA); err != nil || !ok {
		t.Fatalf("decrypt with matching associated data: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("plaintext mismatch: got %x, want %x", pt, plain)
	}
}

func TestRCSSetAssociatedAfterTransformRejected(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, 32)

	enc, _ := New256(key, nonce, nil, true)
	ct := make([]byte, len(plain)+TagSize256)
	enc.Transform(ct, plain)

	if err := enc.SetAssociated([]byte("too late")); err == nil {
		t.Error("SetAssociated after Transform should be rejected")
	}
}

func TestRCSWrongKeyRejected(t *testing.T) {
	nonce := zeroNonce()
	plain := make([]byte, 32)

	enc, _ := New256(zeroKey(KeySize256), nonce, nil, true)
	ct := make([]byte, len(plain)+TagSize256)
	enc.Transform(ct, plain)

	wrongKey := zeroKey(KeySize256)
	wrongKey[0] ^= 0xFF
	dec, _ := New256(wrongKey, nonce, nil, false)
	pt := make([]byte, len(plain))
	if ok, _ := dec.Transform(pt, ct); ok {
		t.Error("decrypt with wrong key accepted")
	}
}

func TestRCSKPAVariantRoundTrip(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, 96)

	enc, err := New256(key, nonce, nil, true, WithKPA(true))
	if err != nil {
		t.Fatalf("New256 with KPA: %v", err)
	}
	ct := make([]byte, len(plain)+TagSize256)
	if ok, err := enc.Transform(ct, plain); err != nil || !ok {
		t.Fatalf("encrypt: ok=%v err=%v", ok, err)
	}

	dec, _ := New256(key, nonce, nil, false, WithKPA(true))
	pt := make([]byte, len(plain))
	if ok, err := dec.Transform(pt, ct); err != nil || !ok {
		t.Fatalf("decrypt: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("KPA round trip mismatch: got %x, want %x", pt, plain)
	}
}

func TestRCSUnauthenticatedIsBareCTR(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := []byte("unauthenticated stream")

	enc, _ := New256(key, nonce, nil, true, WithAuthentication(false))
	ct := make([]byte, len(plain))
	ok, err := enc.Transform(ct, plain)
	if err != nil || !ok {
		t.Fatalf("encrypt: ok=%v err=%v", ok, err)
	}
	if bytes.Equal(ct, plain) {
		t.Error("ciphertext equals plaintext — keystream not applied")
	}

	dec, _ := New256(key, nonce, nil, false, WithAuthentication(false))
	pt := make([]byte, len(plain))
	ok, err = dec.Transform(pt, ct)
	if err != nil || !ok {
		t.Fatalf("decrypt: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("round trip mismatch: got %q, want %q", pt, plain)
	}
}

func TestRCSInvalidKeySizeRejected(t *testing.T) {
	nonce := zeroNonce()
	if _, err := New256(zeroKey(16), nonce, nil, true); err == nil {
		t.Error("New256 with 16-byte key should be rejected")
	}
	if _, err := New512(zeroKey(32), nonce, nil, true); err == nil {
		t.Error("New512 with 32-byte key should be rejected")
	}
}

func TestRCSDisposeZeroesSchedule(t *testing.T) {
	enc, _ := New256(zeroKey(KeySize256), zeroNonce(), nil, true)
	enc.Dispose()
	for _, w := range enc.roundKeys {
		if w != 0 {
			t.Fatal("round key word survived Dispose")
		}
	}
	if enc.lifecycle != stateDisposed {
		t.Errorf("lifecycle = %v, want stateDisposed", enc.lifecycle)
	}
}

func TestRCSMultiBlockKeystreamAdvancesNonce(t *testing.T) {
	key := zeroKey(KeySize256)
	nonce := zeroNonce()
	plain := make([]byte, BlockSize*3+5)

	enc, _ := New256(key, nonce, nil, true)
	ct := make([]byte, len(plain)+TagSize256)
	enc.Transform(ct, plain)

	// Three full blocks plus a partial block consume four counter values.
	wantNonce := nonce
	wantNonce[0] += 4
	if got := enc.Nonce(); got != wantNonce {
		t.Errorf("nonce after Transform = %x, want %x", got, wantNonce)
	}

	dec, _ := New256(key, nonce, nil, false)
	pt := make([]byte, len(plain))
	ok, err := dec.Transform(pt, ct)
	if err != nil || !ok {
		t.Fatalf("decrypt: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(pt, plain) {
		t.Errorf("multi-block round trip mismatch: got %x, want %x", pt, plain)
	}
}
