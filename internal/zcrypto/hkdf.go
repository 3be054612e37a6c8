package zcrypto

import "errors"

// HKDF-SHA256 per RFC 5869, built on HMAC256 above.

// maxHKDFOutput is 255*HashLen, the RFC 5869 bound on Expand's length
// parameter.
const maxHKDFOutput = 255 * Sha256Size

var errHKDFLengthTooLarge = errors.New("zcrypto: hkdf expand length exceeds 255*HashLen")

// HKDFExtract computes PRK = HMAC-SHA256(salt, ikm) per RFC 5869 §2.2. A
// nil or empty salt is replaced with a string of HashLen zero bytes, per
// the RFC.
func HKDFExtract(salt, ikm []byte) [Sha256Size]byte {
	if len(salt) == 0 {
		salt = make([]byte, Sha256Size)
	}
	return HMAC256Sum(salt, ikm)
}

// HKDFExpand derives length bytes of output keying material from prk and
// an optional context string info, per RFC 5869 §2.3:
//
//	T(0) = empty
//	T(i) = HMAC-SHA256(PRK, T(i-1) || info || i)
//	OKM  = T(1) || T(2) || ... truncated to length
func HKDFExpand(prk, info []byte, length int) ([]byte, error) {
	if length > maxHKDFOutput {
		return nil, errHKDFLengthTooLarge
	}

	okm := make([]byte, 0, length)
	var t []byte
	for i := byte(1); len(okm) < length; i++ {
		h := NewHMAC256(prk)
		h.Write(t)
		h.Write(info)
		h.Write([]byte{i})
		sum := h.Sum()
		t = sum[:]
		okm = append(okm, t...)
	}
	return okm[:length], nil
}

// HKDF runs Extract followed by Expand in one call, the common case when
// the caller has no reason to keep the intermediate PRK.
func HKDF(salt, ikm, info []byte, length int) ([]byte, error) {
	prk := HKDFExtract(salt, ikm)
	return HKDFExpand(prk[:], info, length)
}
