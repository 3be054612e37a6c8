package zcrypto

import (
	"bytes"
	"testing"
)

// RFC 8439 §2.3.2 block function test vector.
func TestChaChaBlockRFC8439Vector(t *testing.T) {
	var key [chachaKeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce := [chachaNonceSize]byte{0x00, 0x00, 0x00, 0x09, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}

	var out [chachaBlockSize]byte
	chachaBlock(&key, &nonce, 1, &out)

	want := mustHex(t, "10f1e7e4d13b5915500fdd1fa32071c4c7d1f4c733c068030422aa9ac3d46c4ed2826446079faa0914c2d705d98b02a2b5129cd1de164eb9cbd083e8a2503c4e")
	if !bytes.Equal(out[:], want) {
		t.Errorf("block = %x, want %x", out, want)
	}
}

// RFC 8439 §2.4.2 encryption test vector.
func TestChaCha20XORRFC8439Vector(t *testing.T) {
	var key [chachaKeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce := [chachaNonceSize]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4a, 0x00, 0x00, 0x00, 0x00}

	plaintext := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")
	want := mustHex(t, "6e2e359a2568f98041ba0728dd0d6981e97e7aec1d4360c20a27afccfd9fae0bf91b65c5524733ab8f593dabcd62b3571639d624e65152ab8f530c359f0861d807ca0dbf500d6a6156a38e088a22b65e52bc514d16ccf806818ce91ab77937365af90bbf74a35be6b40b8eedf2785e42874d")

	dst := make([]byte, len(plaintext))
	ChaCha20XOR(&key, &nonce, 1, dst, plaintext)
	if !bytes.Equal(dst, want) {
		t.Errorf("ciphertext = %x, want %x", dst, want)
	}

	// Self-consistency: decrypting the ciphertext recovers the plaintext,
	// since ChaCha20 XOR is its own inverse.
	recovered := make([]byte, len(dst))
	ChaCha20XOR(&key, &nonce, 1, recovered, dst)
	if !bytes.Equal(recovered, plaintext) {
		t.Errorf("XOR not self-inverse: got %q want %q", recovered, plaintext)
	}
}

func TestChaCha20XORStreamsAcrossBlockBoundary(t *testing.T) {
	var key [chachaKeySize]byte
	copy(key[:], bytes.Repeat([]byte{0x2a}, chachaKeySize))
	var nonce [chachaNonceSize]byte
	copy(nonce[:], bytes.Repeat([]byte{0x11}, chachaNonceSize))

	plaintext := bytes.Repeat([]byte("0123456789abcdef"), 10) // 160 bytes, spans 3 blocks

	ct := make([]byte, len(plaintext))
	ChaCha20XOR(&key, &nonce, 0, ct, plaintext)

	pt := make([]byte, len(ct))
	ChaCha20XOR(&key, &nonce, 0, pt, ct)

	if !bytes.Equal(pt, plaintext) {
		t.Error("round trip across multiple blocks failed")
	}
	if bytes.Equal(ct, plaintext) {
		t.Error("ciphertext equals plaintext, cipher did not run")
	}
}

func TestChaCha20XORDifferentCountersDiffer(t *testing.T) {
	var key [chachaKeySize]byte
	var nonce [chachaNonceSize]byte
	plaintext := make([]byte, 64)

	ct0 := make([]byte, len(plaintext))
	ct1 := make([]byte, len(plaintext))
	ChaCha20XOR(&key, &nonce, 0, ct0, plaintext)
	ChaCha20XOR(&key, &nonce, 1, ct1, plaintext)

	if bytes.Equal(ct0, ct1) {
		t.Error("different initial counters produced identical keystream")
	}
}
