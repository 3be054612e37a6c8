package zcrypto

import "encoding/binary"

// ChaCha20 per RFC 8439 §2.3/§2.4: a 256-bit key, a 96-bit nonce and a
// 32-bit block counter, 20 rounds (10 double-rounds of column then
// diagonal quarter-rounds). Grounded on the public-domain chacha.go
// reference's quarter-round layout, adapted to the RFC 8439 96-bit-nonce
// state layout instead of that reference's 64-bit-counter/64-bit-IV
// variant.

const (
	chachaKeySize   = 32
	chachaNonceSize = 12
	chachaBlockSize = 64
)

var chachaConstants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

func chachaRotl(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

func chachaQuarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] ^= x[a]
	x[d] = chachaRotl(x[d], 16)

	x[c] += x[d]
	x[b] ^= x[c]
	x[b] = chachaRotl(x[b], 12)

	x[a] += x[b]
	x[d] ^= x[a]
	x[d] = chachaRotl(x[d], 8)

	x[c] += x[d]
	x[b] ^= x[c]
	x[b] = chachaRotl(x[b], 7)
}

// chachaBlock runs the 20-round ChaCha20 block function for the given
// key/nonce/counter and writes the 64-byte keystream block to out.
func chachaBlock(key *[chachaKeySize]byte, nonce *[chachaNonceSize]byte, counter uint32, out *[chachaBlockSize]byte) {
	var state [16]uint32
	state[0], state[1], state[2], state[3] = chachaConstants[0], chachaConstants[1], chachaConstants[2], chachaConstants[3]
	for i := 0; i < 8; i++ {
		state[4+i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	state[12] = counter
	for i := 0; i < 3; i++ {
		state[13+i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}

	working := state
	for i := 0; i < 10; i++ {
		chachaQuarterRound(&working, 0, 4, 8, 12)
		chachaQuarterRound(&working, 1, 5, 9, 13)
		chachaQuarterRound(&working, 2, 6, 10, 14)
		chachaQuarterRound(&working, 3, 7, 11, 15)

		chachaQuarterRound(&working, 0, 5, 10, 15)
		chachaQuarterRound(&working, 1, 6, 11, 12)
		chachaQuarterRound(&working, 2, 7, 8, 13)
		chachaQuarterRound(&working, 3, 4, 9, 14)
	}

	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:], working[i]+state[i])
	}
}

// ChaCha20XOR encrypts (or decrypts, the operation is an involution) src
// into dst using the given key, 96-bit nonce, and initial block counter.
// dst and src must have equal length; dst may alias src.
func ChaCha20XOR(key *[chachaKeySize]byte, nonce *[chachaNonceSize]byte, counter uint32, dst, src []byte) {
	var block [chachaBlockSize]byte
	for len(src) > 0 {
		chachaBlock(key, nonce, counter, &block)
		counter++

		n := len(src)
		if n > chachaBlockSize {
			n = chachaBlockSize
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ block[i]
		}
		dst = dst[n:]
		src = src[n:]
	}
}
