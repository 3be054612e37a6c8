package zcrypto

// FieldElement is an element of the prime field GF(2^255-19), represented
// as ten signed limbs in mixed radix 2^25.5 (limbs alternate between 26
// and 25 significant bits: h0,h2,h4,h6,h8 carry 26 bits, h1,h3,h5,h7,h9
// carry 25 bits). This is the classic "ref10" representation used by the
// original X25519 reference implementation; it lets every multiply reduce
// modulo p using only the identity 2^255 = 19 (mod p), with no division.
//
// Limbs may carry extra magnitude transiently between operations; only
// FieldElement.Bytes fully reduces into [0, p).
type FieldElement [10]int32

func load3(in []byte) int64 {
	var r int64
	r = int64(in[0])
	r |= int64(in[1]) << 8
	r |= int64(in[2]) << 16
	return r
}

func load4(in []byte) int64 {
	var r int64
	r = int64(in[0])
	r |= int64(in[1]) << 8
	r |= int64(in[2]) << 16
	r |= int64(in[3]) << 24
	return r
}

// FeFromBytes decodes the 32-byte little-endian encoding of u, ignoring
// bit 255 per the X25519 convention.
func FeFromBytes(dst *FieldElement, src *[32]byte) {
	h0 := load4(src[0:])
	h1 := load3(src[4:]) << 6
	h2 := load3(src[7:]) << 5
	h3 := load3(src[10:]) << 3
	h4 := load3(src[13:]) << 2
	h5 := load4(src[16:])
	h6 := load3(src[20:]) << 7
	h7 := load3(src[23:]) << 5
	h8 := load3(src[26:]) << 4
	h9 := (load3(src[29:]) & 0x7fffff) << 2

	var carry [10]int64
	carry[9] = (h9 + 1<<24) >> 25
	h0 += carry[9] * 19
	h9 -= carry[9] << 25
	carry[1] = (h1 + 1<<24) >> 25
	h2 += carry[1]
	h1 -= carry[1] << 25
	carry[3] = (h3 + 1<<24) >> 25
	h4 += carry[3]
	h3 -= carry[3] << 25
	carry[5] = (h5 + 1<<24) >> 25
	h6 += carry[5]
	h5 -= carry[5] << 25
	carry[7] = (h7 + 1<<24) >> 25
	h8 += carry[7]
	h7 -= carry[7] << 25

	carry[0] = (h0 + 1<<25) >> 26
	h1 += carry[0]
	h0 -= carry[0] << 26
	carry[2] = (h2 + 1<<25) >> 26
	h3 += carry[2]
	h2 -= carry[2] << 26
	carry[4] = (h4 + 1<<25) >> 26
	h5 += carry[4]
	h4 -= carry[4] << 26
	carry[6] = (h6 + 1<<25) >> 26
	h7 += carry[6]
	h6 -= carry[6] << 26
	carry[8] = (h8 + 1<<25) >> 26
	h9 += carry[8]
	h8 -= carry[8] << 26

	dst[0] = int32(h0)
	dst[1] = int32(h1)
	dst[2] = int32(h2)
	dst[3] = int32(h3)
	dst[4] = int32(h4)
	dst[5] = int32(h5)
	dst[6] = int32(h6)
	dst[7] = int32(h7)
	dst[8] = int32(h8)
	dst[9] = int32(h9)
}

// Bytes fully reduces fe modulo p and serialises it as 32 little-endian
// bytes, the unique representative in [0, p).
func (fe *FieldElement) Bytes(out *[32]byte) {
	var h [10]int32
	copy(h[:], fe[:])

	var q int32
	q = (19*h[9] + (1 << 24)) >> 25
	q = (h[0] + q) >> 26
	q = (h[1] + q) >> 25
	q = (h[2] + q) >> 26
	q = (h[3] + q) >> 25
	q = (h[4] + q) >> 26
	q = (h[5] + q) >> 25
	q = (h[6] + q) >> 26
	q = (h[7] + q) >> 25
	q = (h[8] + q) >> 26
	q = (h[9] + q) >> 25

	// Add 19*q then subtract q*2^255, leaving the fully reduced value.
	h[0] += 19 * q

	carry0 := h[0] >> 26
	h[1] += carry0
	h[0] -= carry0 << 26
	carry1 := h[1] >> 25
	h[2] += carry1
	h[1] -= carry1 << 25
	carry2 := h[2] >> 26
	h[3] += carry2
	h[2] -= carry2 << 26
	carry3 := h[3] >> 25
	h[4] += carry3
	h[3] -= carry3 << 25
	carry4 := h[4] >> 26
	h[5] += carry4
	h[4] -= carry4 << 26
	carry5 := h[5] >> 25
	h[6] += carry5
	h[5] -= carry5 << 25
	carry6 := h[6] >> 26
	h[7] += carry6
	h[6] -= carry6 << 26
	carry7 := h[7] >> 25
	h[8] += carry7
	h[7] -= carry7 << 25
	carry8 := h[8] >> 26
	h[9] += carry8
	h[8] -= carry8 << 26
	carry9 := h[9] >> 25
	h[9] -= carry9 << 25

	out[0] = byte(h[0] >> 0)
	out[1] = byte(h[0] >> 8)
	out[2] = byte(h[0] >> 16)
	out[3] = byte((h[0] >> 24) | (h[1] << 2))
	out[4] = byte(h[1] >> 6)
	out[5] = byte(h[1] >> 14)
	out[6] = byte((h[1] >> 22) | (h[2] << 3))
	out[7] = byte(h[2] >> 5)
	out[8] = byte(h[2] >> 13)
	out[9] = byte((h[2] >> 21) | (h[3] << 5))
	out[10] = byte(h[3] >> 3)
	out[11] = byte(h[3] >> 11)
	out[12] = byte((h[3] >> 19) | (h[4] << 6))
	out[13] = byte(h[4] >> 2)
	out[14] = byte(h[4] >> 10)
	out[15] = byte(h[4] >> 18)
	out[16] = byte(h[5] >> 0)
	out[17] = byte(h[5] >> 8)
	out[18] = byte(h[5] >> 16)
	out[19] = byte((h[5] >> 24) | (h[6] << 1))
	out[20] = byte(h[6] >> 7)
	out[21] = byte(h[6] >> 15)
	out[22] = byte((h[6] >> 23) | (h[7] << 3))
	out[23] = byte(h[7] >> 5)
	out[24] = byte(h[7] >> 13)
	out[25] = byte((h[7] >> 21) | (h[8] << 4))
	out[26] = byte(h[8] >> 4)
	out[27] = byte(h[8] >> 12)
	out[28] = byte((h[8] >> 20) | (h[9] << 6))
	out[29] = byte(h[9] >> 2)
	out[30] = byte(h[9] >> 10)
	out[31] = byte(h[9] >> 18)
}

// Add computes dst = a + b. Limbs may exceed the normalised bound
// afterwards; a later Mul/Square/Bytes call folds the extra magnitude back.
func (dst *FieldElement) Add(a, b *FieldElement) {
	for i := range dst {
		dst[i] = a[i] + b[i]
	}
}

// Sub computes dst = a - b. As with Add, limbs carry no normalisation
// guarantee and a sufficiently large bias is baked into two's-complement
// wraparound never being reachable for field-sized inputs.
func (dst *FieldElement) Sub(a, b *FieldElement) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// CMove sets dst = src if b == 1, leaves dst unchanged if b == 0. b must be
// 0 or 1. There is no branch: b is expanded into a mask, so the
// instruction sequence for both outcomes is identical and b may be a
// secret bit.
func (dst *FieldElement) CMove(src *FieldElement, b int32) {
	mask := -b
	for i := range dst {
		dst[i] ^= mask & (dst[i] ^ src[i])
	}
}

// Mul computes dst = a*b mod p via 10x10 schoolbook multiplication into
// 64-bit accumulators, folding terms whose combined limb index reaches 10
// or beyond back with the identity 2^255 = 19 (mod p), then carrying.
func (dst *FieldElement) Mul(a, b *FieldElement) {
	a0 := int64(a[0])
	a1 := int64(a[1])
	a2 := int64(a[2])
	a3 := int64(a[3])
	a4 := int64(a[4])
	a5 := int64(a[5])
	a6 := int64(a[6])
	a7 := int64(a[7])
	a8 := int64(a[8])
	a9 := int64(a[9])
	b0 := int64(b[0])
	b1 := int64(b[1])
	b2 := int64(b[2])
	b3 := int64(b[3])
	b4 := int64(b[4])
	b5 := int64(b[5])
	b6 := int64(b[6])
	b7 := int64(b[7])
	b8 := int64(b[8])
	b9 := int64(b[9])

	b1_19 := 19 * b1
	b2_19 := 19 * b2
	b3_19 := 19 * b3
	b4_19 := 19 * b4
	b5_19 := 19 * b5
	b6_19 := 19 * b6
	b7_19 := 19 * b7
	b8_19 := 19 * b8
	b9_19 := 19 * b9

	a1_2 := 2 * a1
	a3_2 := 2 * a3
	a5_2 := 2 * a5
	a7_2 := 2 * a7
	a9_2 := 2 * a9

	h0 := a0*b0 + a1_2*b9_19 + a2*b8_19 + a3_2*b7_19 + a4*b6_19 + a5_2*b5_19 + a6*b4_19 + a7_2*b3_19 + a8*b2_19 + a9_2*b1_19
	h1 := a0*b1 + a1*b0 + a2*b9_19 + a3*b8_19 + a4*b7_19 + a5*b6_19 + a6*b5_19 + a7*b4_19 + a8*b3_19 + a9*b2_19
	h2 := a0*b2 + a1_2*b1 + a2*b0 + a3_2*b9_19 + a4*b8_19 + a5_2*b7_19 + a6*b6_19 + a7_2*b5_19 + a8*b4_19 + a9_2*b3_19
	h3 := a0*b3 + a1*b2 + a2*b1 + a3*b0 + a4*b9_19 + a5*b8_19 + a6*b7_19 + a7*b6_19 + a8*b5_19 + a9*b4_19
	h4 := a0*b4 + a1_2*b3 + a2*b2 + a3_2*b1 + a4*b0 + a5_2*b9_19 + a6*b8_19 + a7_2*b7_19 + a8*b6_19 + a9_2*b5_19
	h5 := a0*b5 + a1*b4 + a2*b3 + a3*b2 + a4*b1 + a5*b0 + a6*b9_19 + a7*b8_19 + a8*b7_19 + a9*b6_19
	h6 := a0*b6 + a1_2*b5 + a2*b4 + a3_2*b3 + a4*b2 + a5_2*b1 + a6*b0 + a7_2*b9_19 + a8*b8_19 + a9_2*b7_19
	h7 := a0*b7 + a1*b6 + a2*b5 + a3*b4 + a4*b3 + a5*b2 + a6*b1 + a7*b0 + a8*b9_19 + a9*b8_19
	h8 := a0*b8 + a1_2*b7 + a2*b6 + a3_2*b5 + a4*b4 + a5_2*b3 + a6*b2 + a7_2*b1 + a8*b0 + a9_2*b9_19
	h9 := a0*b9 + a1*b8 + a2*b7 + a3*b6 + a4*b5 + a5*b4 + a6*b3 + a7*b2 + a8*b1 + a9*b0

	carryReduce(&h0, &h1, &h2, &h3, &h4, &h5, &h6, &h7, &h8, &h9)

	dst[0] = int32(h0)
	dst[1] = int32(h1)
	dst[2] = int32(h2)
	dst[3] = int32(h3)
	dst[4] = int32(h4)
	dst[5] = int32(h5)
	dst[6] = int32(h6)
	dst[7] = int32(h7)
	dst[8] = int32(h8)
	dst[9] = int32(h9)
}

// Square computes dst = a*a mod p. It is Mul(a, a) with repeated terms
// folded into the doubling that schoolbook squaring already implies,
// saving roughly half the multiplications Mul would otherwise perform.
func (dst *FieldElement) Square(a *FieldElement) {
	a0 := int64(a[0])
	a1 := int64(a[1])
	a2 := int64(a[2])
	a3 := int64(a[3])
	a4 := int64(a[4])
	a5 := int64(a[5])
	a6 := int64(a[6])
	a7 := int64(a[7])
	a8 := int64(a[8])
	a9 := int64(a[9])

	a0_2 := 2 * a0
	a1_2 := 2 * a1
	a2_2 := 2 * a2
	a3_2 := 2 * a3
	a4_2 := 2 * a4
	a5_2 := 2 * a5
	a6_2 := 2 * a6
	a7_2 := 2 * a7

	a5_38 := 38 * a5
	a6_19 := 19 * a6
	a7_38 := 38 * a7
	a8_19 := 19 * a8
	a9_38 := 38 * a9

	h0 := a0*a0 + a1_2*a9_38 + a2_2*a8_19 + a3_2*a7_38 + a4_2*a6_19 + a5*a5_38
	h1 := a0_2*a1 + a2*a9_38 + a3_2*a8_19 + a4*a7_38 + a5_2*a6_19
	h2 := a0_2*a2 + a1_2*a1 + a3_2*a9_38 + a4_2*a8_19 + a5_2*a7_38 + a6*a6_19
	h3 := a0_2*a3 + a1_2*a2 + a4*a9_38 + a5_2*a8_19 + a6*a7_38
	h4 := a0_2*a4 + a1_2*a3_2 + a2*a2 + a5_2*a9_38 + a6_2*a8_19 + a7*a7_38
	h5 := a0_2*a5 + a1_2*a4 + a2_2*a3 + a6*a9_38 + a7_2*a8_19
	h6 := a0_2*a6 + a1_2*a5_2 + a2_2*a4 + a3_2*a3 + a7_2*a9_38 + a8*a8_19
	h7 := a0_2*a7 + a1_2*a6 + a2_2*a5 + a3_2*a4 + a8*a9_38
	h8 := a0_2*a8 + a1_2*a7_2 + a2_2*a6 + a3_2*a5_2 + a4*a4 + a9*a9_38
	h9 := a0_2*a9 + a1_2*a8 + a2_2*a7 + a3_2*a6 + a4_2*a5

	carryReduce(&h0, &h1, &h2, &h3, &h4, &h5, &h6, &h7, &h8, &h9)

	dst[0] = int32(h0)
	dst[1] = int32(h1)
	dst[2] = int32(h2)
	dst[3] = int32(h3)
	dst[4] = int32(h4)
	dst[5] = int32(h5)
	dst[6] = int32(h6)
	dst[7] = int32(h7)
	dst[8] = int32(h8)
	dst[9] = int32(h9)
}

// carryReduce propagates carries through the 10 accumulators produced by a
// schoolbook multiply/square, folding the top limb back via *19 exactly as
// FeFromBytes/Bytes do. Unconditional shifts and masks only: no
// secret-dependent branch, matching the invariant in spec §4.1.
func carryReduce(h0, h1, h2, h3, h4, h5, h6, h7, h8, h9 *int64) {
	c0 := (*h0 + (1 << 25)) >> 26
	*h1 += c0
	*h0 -= c0 << 26
	c4 := (*h4 + (1 << 25)) >> 26
	*h5 += c4
	*h4 -= c4 << 26

	c1 := (*h1 + (1 << 24)) >> 25
	*h2 += c1
	*h1 -= c1 << 25
	c5 := (*h5 + (1 << 24)) >> 25
	*h6 += c5
	*h5 -= c5 << 25

	c2 := (*h2 + (1 << 25)) >> 26
	*h3 += c2
	*h2 -= c2 << 26
	c6 := (*h6 + (1 << 25)) >> 26
	*h7 += c6
	*h6 -= c6 << 26

	c3 := (*h3 + (1 << 24)) >> 25
	*h4 += c3
	*h3 -= c3 << 25
	c7 := (*h7 + (1 << 24)) >> 25
	*h8 += c7
	*h7 -= c7 << 25

	c4b := (*h4 + (1 << 25)) >> 26
	*h5 += c4b
	*h4 -= c4b << 26
	c8 := (*h8 + (1 << 25)) >> 26
	*h9 += c8
	*h8 -= c8 << 26

	c9 := (*h9 + (1 << 24)) >> 25
	*h0 += c9 * 19
	*h9 -= c9 << 25

	c0b := (*h0 + (1 << 25)) >> 26
	*h1 += c0b
	*h0 -= c0b << 26
}

// Invert computes dst = a^(p-2) mod p = a^-1 mod p (for a != 0), using the
// fixed addition chain from the ref10 implementation: 254 squarings
// interleaved with 11 multiplications, derived from the binary expansion
// of p-2 = 2^255 - 21.
func (dst *FieldElement) Invert(a *FieldElement) {
	var t0, t1, t2, t3 FieldElement

	t0.Square(a)       // 2^1
	t1.Square(&t0)      // 2^2
	t1.Square(&t1)      // 2^3
	t1.Mul(a, &t1)       // 2^3 + 2^0
	t0.Mul(&t0, &t1)     // 2^3 + 2^1 + 2^0
	t2.Square(&t0)       // 2^4 + 2^2 + 2^1
	t1.Mul(&t1, &t2)     // 2^4 + 2^3 + 2^2 + 2^1 + 2^0
	t2.Square(&t1)       // 5 bits of 1s shifted left 1
	for i := 1; i < 5; i++ {
		t2.Square(&t2)
	}
	t1.Mul(&t2, &t1) // 10 bits of 1s

	t2.Square(&t1)
	for i := 1; i < 10; i++ {
		t2.Square(&t2)
	}
	t2.Mul(&t2, &t1) // 20 bits of 1s

	t3.Square(&t2)
	for i := 1; i < 20; i++ {
		t3.Square(&t3)
	}
	t2.Mul(&t3, &t2) // 40 bits of 1s

	for i := 0; i < 10; i++ {
		t2.Square(&t2)
	}
	t1.Mul(&t2, &t1) // 50 bits of 1s

	t2.Square(&t1)
	for i := 1; i < 50; i++ {
		t2.Square(&t2)
	}
	t2.Mul(&t2, &t1) // 100 bits of 1s

	t3.Square(&t2)
	for i := 1; i < 100; i++ {
		t3.Square(&t3)
	}
	t2.Mul(&t3, &t2) // 200 bits of 1s

	for i := 0; i < 50; i++ {
		t2.Square(&t2)
	}
	t1.Mul(&t2, &t1) // 250 bits of 1s

	for i := 0; i < 5; i++ {
		t1.Square(&t1)
	}
	dst.Mul(&t1, &t0) // 255 bits of 1s with bottom two bits adjusted -> p-2
}
