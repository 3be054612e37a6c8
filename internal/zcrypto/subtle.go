package zcrypto

// ConstantTimeCompare reports whether a and b are equal, in time that
// depends only on len(a) and len(b), never on the position of the first
// differing byte. Slices of different length are never equal.
func ConstantTimeCompare(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var v byte
	for i := range a {
		v |= a[i] ^ b[i]
	}
	return v == 0
}

// Zero overwrites every byte of b with zero. Callers hold it to wipe key
// material, MAC state, and other scratch buffers before returning them to
// a pool or letting them go out of scope.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// constantTimeSelectUint32 returns x if v == 1 and y if v == 0. v must be 0
// or 1; behavior is undefined otherwise. Used wherever a decision would
// otherwise depend on secret data, e.g. Poly1305's final modular reduction.
func constantTimeSelectUint32(v, x, y uint32) uint32 {
	mask := -v
	return (x & mask) | (y &^ mask)
}
