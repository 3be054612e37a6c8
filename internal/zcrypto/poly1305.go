package zcrypto

// Poly1305 per RFC 8439 §2.5, in the classic 5-limb 26-bit radix
// representation: the accumulator h is reduced mod 2^130-5 after each
// block using the "*5" trick for the high bits that spill past bit 130.
// Grounded on the shape of the reference poly1305.MAC streaming type
// (buffer + offset, Write/Sum split) while the arithmetic itself follows
// the RFC's limb layout directly rather than that file's bignum calls.

const (
	// Poly1305TagSize is the length in bytes of a Poly1305 tag.
	Poly1305TagSize = 16
	poly1305KeySize = 32
)

// poly1305MAC holds streaming Poly1305 state: the clamped r (split into
// 26-bit limbs plus precomputed *5 multiples), the accumulator h, the
// additive key s, and a 16-byte input buffer for partial blocks.
type poly1305MAC struct {
	r  [5]uint32
	rx5 [4]uint32 // 5*r[1..4], used to fold the high partial product back in
	h  [5]uint32
	s  [4]uint32

	buf    [16]byte
	nbuf   int
	done   bool
}

// newPoly1305 initialises a one-time Poly1305 instance from a 32-byte key:
// the first 16 bytes become r (after clamping), the last 16 become s.
func newPoly1305(key *[poly1305KeySize]byte) *poly1305MAC {
	m := &poly1305MAC{}

	t0 := uint32(key[0]) | uint32(key[1])<<8 | uint32(key[2])<<16 | uint32(key[3])<<24
	t1 := uint32(key[4]) | uint32(key[5])<<8 | uint32(key[6])<<16 | uint32(key[7])<<24
	t2 := uint32(key[8]) | uint32(key[9])<<8 | uint32(key[10])<<16 | uint32(key[11])<<24
	t3 := uint32(key[12]) | uint32(key[13])<<8 | uint32(key[14])<<16 | uint32(key[15])<<24

	// Clamp r: clear top 4 bits of key bytes 3,7,11,15 and bottom 2 bits
	// of key bytes 4,8,12 (RFC 8439 §2.5.1), expressed here as masks on
	// the 26-bit limbs assembled from the 32-bit words.
	m.r[0] = t0 & 0x3ffffff
	m.r[1] = ((t0 >> 26) | (t1 << 6)) & 0x3ffff03
	m.r[2] = ((t1 >> 20) | (t2 << 12)) & 0x3ffc0ff
	m.r[3] = ((t2 >> 14) | (t3 << 18)) & 0x3f03fff
	m.r[4] = (t3 >> 8) & 0x00fffff

	for i := 0; i < 4; i++ {
		m.rx5[i] = m.r[i+1] * 5
	}

	for i := 0; i < 4; i++ {
		m.s[i] = uint32(key[16+i*4]) | uint32(key[17+i*4])<<8 | uint32(key[18+i*4])<<16 | uint32(key[19+i*4])<<24
	}

	return m
}

// poly1305LimbsFromBlock splits a 16-byte (plus implicit high bit) block into five
// 26-bit limbs.
func poly1305LimbsFromBlock(block *[16]byte, hibit uint32) [5]uint32 {
	t0 := uint32(block[0]) | uint32(block[1])<<8 | uint32(block[2])<<16 | uint32(block[3])<<24
	t1 := uint32(block[4]) | uint32(block[5])<<8 | uint32(block[6])<<16 | uint32(block[7])<<24
	t2 := uint32(block[8]) | uint32(block[9])<<8 | uint32(block[10])<<16 | uint32(block[11])<<24
	t3 := uint32(block[12]) | uint32(block[13])<<8 | uint32(block[14])<<16 | uint32(block[15])<<24

	var l [5]uint32
	l[0] = t0 & 0x3ffffff
	l[1] = ((t0 >> 26) | (t1 << 6)) & 0x3ffffff
	l[2] = ((t1 >> 20) | (t2 << 12)) & 0x3ffffff
	l[3] = ((t2 >> 14) | (t3 << 18)) & 0x3ffffff
	l[4] = (t3 >> 8) | hibit
	return l
}

// absorbBlock folds one 16-byte message block (hibit set unless this is
// the final short block) into the accumulator: h = (h + block) * r mod
// 2^130-5, carried out in 64-bit limb products per RFC 8439 §2.5.1.
func (m *poly1305MAC) absorbBlock(block *[16]byte, hibit uint32) {
	in := poly1305LimbsFromBlock(block, hibit)

	h0 := uint64(m.h[0]) + uint64(in[0])
	h1 := uint64(m.h[1]) + uint64(in[1])
	h2 := uint64(m.h[2]) + uint64(in[2])
	h3 := uint64(m.h[3]) + uint64(in[3])
	h4 := uint64(m.h[4]) + uint64(in[4])

	r0, r1, r2, r3, r4 := uint64(m.r[0]), uint64(m.r[1]), uint64(m.r[2]), uint64(m.r[3]), uint64(m.r[4])
	r1x5, r2x5, r3x5, r4x5 := uint64(m.rx5[0]), uint64(m.rx5[1]), uint64(m.rx5[2]), uint64(m.rx5[3])

	d0 := h0*r0 + h1*r4x5 + h2*r3x5 + h3*r2x5 + h4*r1x5
	d1 := h0*r1 + h1*r0 + h2*r4x5 + h3*r3x5 + h4*r2x5
	d2 := h0*r2 + h1*r1 + h2*r0 + h3*r4x5 + h4*r3x5
	d3 := h0*r3 + h1*r2 + h2*r1 + h3*r0 + h4*r4x5
	d4 := h0*r4 + h1*r3 + h2*r2 + h3*r1 + h4*r0

	// Carry propagate the 64-bit partial products back into 26-bit limbs,
	// folding the overflow at the top back in multiplied by 5 (since
	// 2^130 == 5 mod 2^130-5).
	c := d0 >> 26
	h0r := uint32(d0 & 0x3ffffff)
	d1 += c
	c = d1 >> 26
	h1r := uint32(d1 & 0x3ffffff)
	d2 += c
	c = d2 >> 26
	h2r := uint32(d2 & 0x3ffffff)
	d3 += c
	c = d3 >> 26
	h3r := uint32(d3 & 0x3ffffff)
	d4 += c
	c = d4 >> 26
	h4r := uint32(d4 & 0x3ffffff)
	h0r += uint32(c) * 5
	c = uint64(h0r) >> 26
	h0r &= 0x3ffffff
	h1r += uint32(c)

	m.h[0], m.h[1], m.h[2], m.h[3], m.h[4] = h0r, h1r, h2r, h3r, h4r
}

// Write absorbs message bytes, buffering any trailing partial 16-byte
// block until more data arrives or Sum is called.
func (m *poly1305MAC) Write(p []byte) (int, error) {
	n := len(p)
	if m.nbuf > 0 {
		c := copy(m.buf[m.nbuf:], p)
		m.nbuf += c
		p = p[c:]
		if m.nbuf == 16 {
			m.absorbBlock(&m.buf, 1<<24)
			m.nbuf = 0
		}
	}
	for len(p) >= 16 {
		var block [16]byte
		copy(block[:], p[:16])
		m.absorbBlock(&block, 1<<24)
		p = p[16:]
	}
	if len(p) > 0 {
		m.nbuf = copy(m.buf[:], p)
	}
	return n, nil
}

// Sum finalises the tag: any partial final block is padded with a single
// 1 bit (not 2^128, since it is short) then h+s is reduced mod 2^128 and
// serialised little-endian.
func (m *poly1305MAC) Sum() [Poly1305TagSize]byte {
	if m.nbuf > 0 {
		var block [16]byte
		copy(block[:], m.buf[:m.nbuf])
		block[m.nbuf] = 1
		m.absorbBlock(&block, 0)
	}

	h0, h1, h2, h3, h4 := m.h[0], m.h[1], m.h[2], m.h[3], m.h[4]

	// Fully reduce h mod 2^130-5: compute h-p and select it in constant
	// time if h >= p (i.e. if no borrow occurred).
	c := h1 >> 26
	h1 &= 0x3ffffff
	h2 += c
	c = h2 >> 26
	h2 &= 0x3ffffff
	h3 += c
	c = h3 >> 26
	h3 &= 0x3ffffff
	h4 += c
	c = h4 >> 26
	h4 &= 0x3ffffff
	h0 += c * 5
	c = h0 >> 26
	h0 &= 0x3ffffff
	h1 += c

	g0 := h0 + 5
	c = g0 >> 26
	g0 &= 0x3ffffff
	g1 := h1 + c
	c = g1 >> 26
	g1 &= 0x3ffffff
	g2 := h2 + c
	c = g2 >> 26
	g2 &= 0x3ffffff
	g3 := h3 + c
	c = g3 >> 26
	g3 &= 0x3ffffff
	g4 := h4 + c - (1 << 26)

	useG := 1 ^ (g4 >> 31) // 1 if no underflow (h >= p, use g), 0 if h < p
	h0 = constantTimeSelectUint32(useG, g0, h0)
	h1 = constantTimeSelectUint32(useG, g1, h1)
	h2 = constantTimeSelectUint32(useG, g2, h2)
	h3 = constantTimeSelectUint32(useG, g3, h3)
	h4 = constantTimeSelectUint32(useG, g4, h4)

	f0 := uint64(h0) | uint64(h1)<<26
	f1 := (uint64(h1)>>6 | uint64(h2)<<20)
	f2 := (uint64(h2)>>12 | uint64(h3)<<14)
	f3 := (uint64(h3)>>18 | uint64(h4)<<8)

	// Add s to h mod 2^128 using 32-bit words with explicit carry chain.
	a0 := uint32(f0)
	a1 := uint32(f1)
	a2 := uint32(f2)
	a3 := uint32(f3)

	sum0 := uint64(a0) + uint64(m.s[0])
	sum1 := uint64(a1) + uint64(m.s[1]) + (sum0 >> 32)
	sum2 := uint64(a2) + uint64(m.s[2]) + (sum1 >> 32)
	sum3 := uint64(a3) + uint64(m.s[3]) + (sum2 >> 32)

	var tag [Poly1305TagSize]byte
	putLE32(tag[0:4], uint32(sum0))
	putLE32(tag[4:8], uint32(sum1))
	putLE32(tag[8:12], uint32(sum2))
	putLE32(tag[12:16], uint32(sum3))
	return tag
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// Poly1305Auth computes the one-time Poly1305 tag of msg under the given
// 32-byte one-time key, per RFC 8439 §2.5.
func Poly1305Auth(key *[poly1305KeySize]byte, msg []byte) [Poly1305TagSize]byte {
	m := newPoly1305(key)
	m.Write(msg)
	return m.Sum()
}
