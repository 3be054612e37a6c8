package zcrypto

import (
	"bytes"
	"testing"
)

// RFC 4231 §4.3, test case 2.
func TestHMAC256RFC4231Vector2(t *testing.T) {
	key := []byte("Jefe")
	msg := []byte("what do ya want for nothing?")
	want := mustHex(t, "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843")

	got := HMAC256Sum(key, msg)
	if !bytes.Equal(got[:], want) {
		t.Errorf("HMAC256Sum = %x, want %x", got, want)
	}
}

func TestHMAC256StreamingMatchesOneShot(t *testing.T) {
	key := []byte("some-key-material")
	msg := bytes.Repeat([]byte("chunk"), 40)

	h := NewHMAC256(key)
	for i := 0; i < len(msg); i += 3 {
		end := i + 3
		if end > len(msg) {
			end = len(msg)
		}
		h.Write(msg[i:end])
	}

	got := h.Sum()
	want := HMAC256Sum(key, msg)
	if got != want {
		t.Errorf("streaming HMAC = %x, want %x", got, want)
	}
}

func TestHMAC256LongKey(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 200)
	msg := []byte("message under a key longer than the block size")

	a := HMAC256Sum(key, msg)
	b := HMAC256Sum(key, msg)
	if a != b {
		t.Error("HMAC256Sum not deterministic")
	}
}
