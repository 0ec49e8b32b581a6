package envelope

import (
	"bytes"
	"io"
	"testing"

	"github.com/qscrypto/qsc/cipher/csx"
	"github.com/qscrypto/qsc/cipher/rcs"
)

func seqKey(n int) []byte {
	k := make([]byte, n)
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func TestAEADRCS256RoundTrip(t *testing.T) {
	key := seqKey(rcs.KeySize256)
	a := NewRCS256(key)

	nonce := make([]byte, a.NonceSize())
	plaintext := []byte("the quick brown fox jumps over the lazy dog")
	ad := []byte("associated")

	ct := a.Seal(nil, nonce, plaintext, ad)
	if len(ct) != len(plaintext)+a.Overhead() {
		t.Fatalf("len(ct) = %d, want %d", len(ct), len(plaintext)+a.Overhead())
	}

	pt, err := a.Open(nil, nonce, ct, ad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Errorf("Open = %q, want %q", pt, plaintext)
	}
}

func TestAEADRCS512RoundTrip(t *testing.T) {
	key := seqKey(rcs.KeySize512)
	a := NewRCS512(key)

	nonce := make([]byte, a.NonceSize())
	plaintext := bytes.Repeat([]byte{0xAB}, 97)

	ct := a.Seal(nil, nonce, plaintext, nil)
	pt, err := a.Open(nil, nonce, ct, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Errorf("Open mismatch")
	}
}

func TestAEADCSXRoundTrip(t *testing.T) {
	key := seqKey(csx.KeySize)
	a := NewCSX(key)

	nonce := make([]byte, a.NonceSize())
	plaintext := bytes.Repeat([]byte{0x5A}, 300)
	ad := []byte("header")

	ct := a.Seal(nil, nonce, plaintext, ad)
	pt, err := a.Open(nil, nonce, ct, ad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !bytes.Equal(pt, plaintext) {
		t.Errorf("Open mismatch")
	}
}

func TestAEADTamperRejected(t *testing.T) {
	key := seqKey(rcs.KeySize256)
	a := NewRCS256(key)
	nonce := make([]byte, a.NonceSize())
	ct := a.Seal(nil, nonce, []byte("message"), nil)
	ct[0] ^= 0x01

	if _, err := a.Open(nil, nonce, ct, nil); err != ErrAuthFailed {
		t.Errorf("Open with tampered ciphertext = %v, want ErrAuthFailed", err)
	}
}

func TestAEADWrongAssociatedDataRejected(t *testing.T) {
	key := seqKey(rcs.KeySize256)
	a := NewRCS256(key)
	nonce := make([]byte, a.NonceSize())
	ct := a.Seal(nil, nonce, []byte("message"), []byte("real-ad"))

	if _, err := a.Open(nil, nonce, ct, []byte("wrong-ad")); err != ErrAuthFailed {
		t.Errorf("Open with wrong AD = %v, want ErrAuthFailed", err)
	}
}

func TestAEADInvalidNonceSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Seal with wrong nonce size should panic")
		}
	}()
	a := NewRCS256(seqKey(rcs.KeySize256))
	a.Seal(nil, []byte{1, 2, 3}, []byte("x"), nil)
}

func TestStreamRoundTrip(t *testing.T) {
	key := seqKey(rcs.KeySize256)
	nonce := [rcs.NonceSize]byte{}

	encCipher, err := rcs.New256(key, nonce, nil, true)
	if err != nil {
		t.Fatalf("New256 encrypt: %v", err)
	}
	var buf bytes.Buffer
	w := NewWriter(encCipher, rcs.TagSize256, &buf)

	payload := bytes.Repeat([]byte("stream-me!"), 10000)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	decCipher, err := rcs.New256(key, nonce, nil, false)
	if err != nil {
		t.Fatalf("New256 decrypt: %v", err)
	}
	r := NewReader(decCipher, rcs.TagSize256, &buf)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("stream round trip mismatch: len(got)=%d len(want)=%d", len(got), len(payload))
	}
}

func TestStreamTamperedBlockDetected(t *testing.T) {
	key := seqKey(rcs.KeySize256)
	nonce := [rcs.NonceSize]byte{}

	encCipher, _ := rcs.New256(key, nonce, nil, true)
	var buf bytes.Buffer
	w := NewWriter(encCipher, rcs.TagSize256, &buf)
	if _, err := w.Write([]byte("hello, stream")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0x01

	decCipher, _ := rcs.New256(key, nonce, nil, false)
	r := NewReader(decCipher, rcs.TagSize256, bytes.NewReader(corrupted))
	if _, err := io.ReadAll(r); err == nil {
		t.Error("reading tampered stream should fail")
	}
}

func TestKeyedDigestBasics(t *testing.T) {
	key := seqKey(32)
	d := NewKeyedDigest256(key, "envelope-test", 32)

	if _, err := d.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sum1 := d.Sum(nil)
	if len(sum1) != 32 {
		t.Fatalf("len(sum1) = %d, want 32", len(sum1))
	}

	d.Reset()
	if _, err := d.Write([]byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sum2 := d.Sum(nil)
	if !bytes.Equal(sum1, sum2) {
		t.Error("same input after Reset produced different digest")
	}

	d.Reset()
	if _, err := d.Write([]byte("goodbye")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	sum3 := d.Sum(nil)
	if bytes.Equal(sum1, sum3) {
		t.Error("different input produced same digest")
	}

	if d.Size() != 32 {
		t.Errorf("Size() = %d, want 32", d.Size())
	}
	if d.BlockSize() <= 0 {
		t.Error("BlockSize() must be positive")
	}
}

func TestKeyedDigestDifferentKeyDiverges(t *testing.T) {
	d1 := NewKeyedDigest256(seqKey(32), "", 32)
	d2 := NewKeyedDigest256(bytes.Repeat([]byte{0xFF}, 32), "", 32)

	d1.Write([]byte("same message"))
	d2.Write([]byte("same message"))

	if bytes.Equal(d1.Sum(nil), d2.Sum(nil)) {
		t.Error("different keys produced same digest")
	}
}
