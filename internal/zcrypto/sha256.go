package zcrypto

import "encoding/binary"

const (
	sha256BlockSize = 64
	// Sha256Size is the length in bytes of a SHA-256 digest.
	Sha256Size = 32
)

var sha256K = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var sha256InitH = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// sha256State holds the streaming state of a from-scratch FIPS 180-4
// SHA-256 computation: the eight chaining words, a 64-byte partial-block
// buffer with its current fill, and the total message length in bytes
// (Sum converts it to bits for the padding).
type sha256State struct {
	h      [8]uint32
	buf    [sha256BlockSize]byte
	nbuf   int
	length uint64
}

// newSHA256State returns a state initialised with the standard SHA-256
// initial hash values.
func newSHA256State() *sha256State {
	s := &sha256State{}
	s.h = sha256InitH
	return s
}

func (s *sha256State) Write(p []byte) (int, error) {
	n := len(p)
	s.length += uint64(n)
	s.absorb(p)
	return n, nil
}

// absorb feeds bytes through the compression function without touching
// the total-length counter, so Sum can feed padding bytes after it has
// already captured the message's true bit length.
func (s *sha256State) absorb(p []byte) {
	if s.nbuf > 0 {
		copied := copy(s.buf[s.nbuf:], p)
		s.nbuf += copied
		p = p[copied:]
		if s.nbuf == sha256BlockSize {
			sha256Block(&s.h, s.buf[:])
			s.nbuf = 0
		}
	}

	for len(p) >= sha256BlockSize {
		sha256Block(&s.h, p[:sha256BlockSize])
		p = p[sha256BlockSize:]
	}

	if len(p) > 0 {
		s.nbuf = copy(s.buf[:], p)
	}
}

// Sum finalises a copy of the state (so Write may continue on the
// original) and returns the 32-byte digest. Padding is 0x80 followed by
// zeros and the big-endian 64-bit bit length, per FIPS 180-4 §5.1.1.
func (s *sha256State) Sum() [Sha256Size]byte {
	cp := *s

	bitLen := cp.length * 8

	var tmp [sha256BlockSize + 8]byte
	tmp[0] = 0x80

	var pad []byte
	if cp.nbuf < 56 {
		pad = tmp[:56-cp.nbuf]
	} else {
		pad = tmp[:sha256BlockSize+56-cp.nbuf]
	}
	cp.absorb(pad)

	var lenBytes [8]byte
	binary.BigEndian.PutUint64(lenBytes[:], bitLen)
	cp.absorb(lenBytes[:])

	var out [Sha256Size]byte
	for i, v := range cp.h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

func sha256Rotr(x uint32, n uint) uint32 {
	return (x >> n) | (x << (32 - n))
}

// sha256Block runs the 64-round compression function over one or more
// 64-byte blocks, updating h in place. No branch in this function depends
// on message content, only on the fixed loop bounds.
func sha256Block(h *[8]uint32, p []byte) {
	var w [64]uint32

	for len(p) >= sha256BlockSize {
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[i*4:])
		}
		for i := 16; i < 64; i++ {
			s0 := sha256Rotr(w[i-15], 7) ^ sha256Rotr(w[i-15], 18) ^ (w[i-15] >> 3)
			s1 := sha256Rotr(w[i-2], 17) ^ sha256Rotr(w[i-2], 19) ^ (w[i-2] >> 10)
			w[i] = w[i-16] + s0 + w[i-7] + s1
		}

		a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

		for i := 0; i < 64; i++ {
			s1 := sha256Rotr(e, 6) ^ sha256Rotr(e, 11) ^ sha256Rotr(e, 25)
			ch := (e & f) ^ (^e & g)
			temp1 := hh + s1 + ch + sha256K[i] + w[i]
			s0 := sha256Rotr(a, 2) ^ sha256Rotr(a, 13) ^ sha256Rotr(a, 22)
			maj := (a & b) ^ (a & c) ^ (b & c)
			temp2 := s0 + maj

			hh = g
			g = f
			f = e
			e = d + temp1
			d = c
			c = b
			b = a
			a = temp1 + temp2
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += d
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += hh

		p = p[sha256BlockSize:]
	}
}

// SHA256Sum computes the SHA-256 digest of msg in a single call.
func SHA256Sum(msg []byte) [Sha256Size]byte {
	s := newSHA256State()
	s.Write(msg)
	return s.Sum()
}
