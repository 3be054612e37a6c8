package zcrypto

// HMAC-SHA256 per RFC 2104, built directly on the from-scratch SHA-256
// state in sha256.go rather than crypto/hmac, so the whole primitive chain
// stays inside this package.

const hmacBlockSize = sha256BlockSize

// HMAC256Sum computes the HMAC-SHA256 of msg under key in one call.
func HMAC256Sum(key, msg []byte) [Sha256Size]byte {
	h := NewHMAC256(key)
	h.Write(msg)
	return h.Sum()
}

// HMAC256 is a streaming HMAC-SHA256 instance.
type HMAC256 struct {
	inner *sha256State
	outer *sha256State
	opad  [hmacBlockSize]byte
}

// NewHMAC256 derives the inner/outer padded keys per RFC 2104 §2 and
// primes both underlying hash states. A key longer than the block size is
// first hashed down to 32 bytes; a shorter key is zero-padded.
func NewHMAC256(key []byte) *HMAC256 {
	var k [hmacBlockSize]byte
	if len(key) > hmacBlockSize {
		sum := SHA256Sum(key)
		copy(k[:], sum[:])
	} else {
		copy(k[:], key)
	}

	var ipad [hmacBlockSize]byte
	h := &HMAC256{inner: newSHA256State(), outer: newSHA256State()}
	for i := 0; i < hmacBlockSize; i++ {
		ipad[i] = k[i] ^ 0x36
		h.opad[i] = k[i] ^ 0x5c
	}
	Zero(k[:])

	h.inner.Write(ipad[:])
	return h
}

// Write feeds more message bytes into the inner hash.
func (h *HMAC256) Write(p []byte) (int, error) {
	return h.inner.Write(p)
}

// Sum finalises the HMAC: outer(opad || inner(ipad || msg)). Like
// sha256State.Sum, this does not disturb the receiver, so Write may
// continue (matching RFC 2104's "NESTED" construction's outer hash
// being computed fresh from opad each time).
func (h *HMAC256) Sum() [Sha256Size]byte {
	innerSum := h.inner.Sum()
	outer := *h.outer
	outer.Write(h.opad[:])
	outer.Write(innerSum[:])
	return outer.Sum()
}
