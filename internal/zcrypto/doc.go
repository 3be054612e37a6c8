// Package zcrypto implements the cryptographic primitives that back the
// tunnel's end-to-end encryption: X25519 key agreement, HKDF-SHA256 key
// derivation, and the ChaCha20-Poly1305 AEAD. Every primitive is written
// from scratch against its RFC rather than wrapping the standard library
// or golang.org/x/crypto, so that the constant-time and zeroization
// discipline described in the package is the implementation, not a
// property inherited from elsewhere.
//
// Some routines wipe their copies of key material before returning:
// X25519ScalarMult wipes its clamped scalar, NewHMAC256 its padded key,
// and the AEAD its one-time Poly1305 key and the keystream block it is cut
// from. Other scratch state is not wiped: the ChaCha20 state and keystream
// block, the Poly1305 accumulator, the HMAC inner pad and the HKDF output
// blocks are left to the garbage collector. Every secret-dependent
// decision (the Montgomery ladder's conditional swap, Poly1305's final
// reduction, tag comparison) is made with bitwise masks rather than
// branches.
package zcrypto
