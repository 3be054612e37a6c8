package zcrypto

import "crypto/rand"

const (
	// X25519KeySize is the size in bytes of an X25519 scalar or point.
	X25519KeySize = 32

	// a24 is (486662+2)/4 = 121666, the Montgomery curve constant folded
	// into the ladder's F = BB + a24*E step below.
	a24 = 121666
)

// clamp applies the mandatory X25519 scalar clamp in place: clear the
// bottom three bits of byte 0, clear the top bit of byte 31, set bit 6 of
// byte 31. This forces the scalar into the subgroup the ladder expects and
// fixes the scalar's bit length.
func clamp(scalar *[32]byte) {
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
}

// basePoint is the X25519 base point u = 9.
var basePoint = [32]byte{9}

// feCSwap conditionally swaps the contents of f and g in constant time:
// swap must be 0 or 1. The swap is implemented as a limb-wise XOR against
// a mask derived from swap, per spec §4.2/§9 — never a branch, so the
// instruction trace is identical whether or not the swap happens.
func feCSwap(swap int32, f, g *FieldElement) {
	mask := -swap
	for i := range f {
		x := mask & (f[i] ^ g[i])
		f[i] ^= x
		g[i] ^= x
	}
}

// X25519ScalarMult performs the Montgomery-ladder scalar multiplication
// out = scalar * u, clamping a private copy of scalar first. The ladder
// runs from bit 254 down to bit 0; each step XORs the current bit into a
// running swap flag, conditionally swaps (x2,z2) with (x3,z3), and applies
// the standard 5-multiplication ladder step. Every step does the same
// work regardless of the bit's value.
func X25519ScalarMult(scalar, u *[32]byte) [32]byte {
	var e [32]byte
	copy(e[:], scalar[:])
	clamp(&e)
	defer Zero(e[:])

	var x1 FieldElement
	FeFromBytes(&x1, u)

	var x2, z2, x3, z3 FieldElement
	x2[0] = 1
	x3 = x1
	z3[0] = 1

	swap := int32(0)
	for pos := 254; pos >= 0; pos-- {
		b := int32((e[pos>>3] >> uint(pos&7)) & 1)
		swap ^= b
		feCSwap(swap, &x2, &x3)
		feCSwap(swap, &z2, &z3)
		swap = b

		var a, bq, c, d, da, cb FieldElement
		a.Add(&x2, &z2)   // A = x2+z2
		bq.Sub(&x2, &z2)  // B = x2-z2
		c.Add(&x3, &z3)   // C = x3+z3
		d.Sub(&x3, &z3)   // D = x3-z3

		da.Mul(&d, &a) // DA = D*A
		cb.Mul(&c, &bq) // CB = C*B

		var sum, diff FieldElement
		sum.Add(&da, &cb)
		diff.Sub(&da, &cb)

		x3.Square(&sum) // x3 = (DA+CB)^2

		var diffSq FieldElement
		diffSq.Square(&diff)
		z3.Mul(&x1, &diffSq) // z3 = x1*(DA-CB)^2

		var aa, bb FieldElement
		aa.Square(&a)  // AA = A^2
		bb.Square(&bq) // BB = B^2
		x2.Mul(&aa, &bb) // x2 = AA*BB

		var e2 FieldElement
		e2.Sub(&aa, &bb) // E = AA-BB

		var a24e, f FieldElement
		a24e.mulSmall(&e2, a24)
		f.Add(&bb, &a24e) // F = BB + a24*E
		z2.Mul(&e2, &f)   // z2 = E*(BB+a24*E)
	}

	feCSwap(swap, &x2, &x3)
	feCSwap(swap, &z2, &z3)

	var zinv, out FieldElement
	zinv.Invert(&z2)
	out.Mul(&x2, &zinv)

	var res [32]byte
	out.Bytes(&res)
	return res
}

// mulSmall computes dst = e*k for a small positive constant k (k fits
// comfortably in an int64 product against any single limb), using the same
// carry discipline as Mul/Square.
func (dst *FieldElement) mulSmall(e *FieldElement, k int64) {
	var h [10]int64
	for i := range e {
		h[i] = int64(e[i]) * k
	}
	carryReduce(&h[0], &h[1], &h[2], &h[3], &h[4], &h[5], &h[6], &h[7], &h[8], &h[9])
	for i := range dst {
		dst[i] = int32(h[i])
	}
}

// X25519Keygen generates a fresh X25519 key pair, drawing the private key
// from crypto/rand. Per spec, this replaces the reference implementation's
// deterministic placeholder keygen with a genuine CSPRNG: production use
// requires this, and the reference's non-random placeholder must never be
// ported forward.
func X25519Keygen() (pub, priv [32]byte, err error) {
	if _, err = rand.Read(priv[:]); err != nil {
		return pub, priv, err
	}
	clamp(&priv)
	pub = X25519ScalarMult(&priv, &basePoint)
	return pub, priv, nil
}
