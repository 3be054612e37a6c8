package zcrypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("invalid hex: %v", err)
	}
	return b
}

// TestX25519RFC7748Vector reproduces RFC 7748 §6.1's Alice/Bob example.
func TestX25519RFC7748Vector(t *testing.T) {
	alicePriv := mustHex(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	bobPriv := mustHex(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")

	wantShared := mustHex(t, "4a5d9d5ba4ce2de1728e3bf480350f25e07e21c947d19e3376f09b3c1e161742")

	var alicePrivArr, bobPrivArr [32]byte
	copy(alicePrivArr[:], alicePriv)
	copy(bobPrivArr[:], bobPriv)

	bobPub := bobPublicFromVector(t)
	aliceShared := X25519ScalarMult(&alicePrivArr, &bobPub)
	if !bytes.Equal(aliceShared[:], wantShared) {
		t.Errorf("Alice's shared secret = %x, want %x", aliceShared, wantShared)
	}

	alicePub := alicePublicFromVector(t)
	bobShared := X25519ScalarMult(&bobPrivArr, &alicePub)
	if !bytes.Equal(bobShared[:], wantShared) {
		t.Errorf("Bob's shared secret = %x, want %x", bobShared, wantShared)
	}
}

func alicePublicFromVector(t *testing.T) [32]byte {
	pub := mustHex(t, "8520f0098930a754748b7ddcb43ef75a0dbf3a0d26381af4eba4a98eaa9b4e6a")
	var out [32]byte
	copy(out[:], pub)
	return out
}

func bobPublicFromVector(t *testing.T) [32]byte {
	pub := mustHex(t, "de9edb7d7b7dc1b4d35b61c2ece435373f8343c85b78674dadfc7e146f882b4f")
	var out [32]byte
	copy(out[:], pub)
	return out
}

// TestX25519DerivedPublicKeys checks that deriving the public keys from
// the RFC's private keys against the base point matches the RFC's stated
// public keys.
func TestX25519DerivedPublicKeys(t *testing.T) {
	alicePriv := mustHex(t, "77076d0a7318a57d3c16c17251b26645df4c2f87ebc0992ab177fba51db92c2a")
	var alicePrivArr [32]byte
	copy(alicePrivArr[:], alicePriv)

	got := X25519ScalarMult(&alicePrivArr, &basePoint)
	want := alicePublicFromVector(t)
	if got != want {
		t.Errorf("Alice public = %x, want %x", got, want)
	}

	bobPriv := mustHex(t, "5dab087e624a8a4b79e17f8b83800ee66f3bb1292618b6fd1c2f8b27ff88e0eb")
	var bobPrivArr [32]byte
	copy(bobPrivArr[:], bobPriv)

	got = X25519ScalarMult(&bobPrivArr, &basePoint)
	want = bobPublicFromVector(t)
	if got != want {
		t.Errorf("Bob public = %x, want %x", got, want)
	}
}

// TestX25519Agreement verifies ECDH agreement for freshly generated keys:
// scalarmult(a, B) == scalarmult(b, A).
func TestX25519Agreement(t *testing.T) {
	pubA, privA, err := X25519Keygen()
	if err != nil {
		t.Fatalf("keygen A: %v", err)
	}
	pubB, privB, err := X25519Keygen()
	if err != nil {
		t.Fatalf("keygen B: %v", err)
	}

	secretA := X25519ScalarMult(&privA, &pubB)
	secretB := X25519ScalarMult(&privB, &pubA)

	if secretA != secretB {
		t.Errorf("ECDH disagreement: A=%x B=%x", secretA, secretB)
	}

	var zero [32]byte
	if secretA == zero {
		t.Error("shared secret is all zero")
	}
}

func TestX25519KeygenUniqueness(t *testing.T) {
	pub1, priv1, err := X25519Keygen()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}
	pub2, priv2, err := X25519Keygen()
	if err != nil {
		t.Fatalf("keygen: %v", err)
	}

	if pub1 == pub2 || priv1 == priv2 {
		t.Error("two keygen calls produced identical output")
	}
}
