// Package fgsha256 implements the SHA-256 hash function from first principles.
//
// The implementation is self-contained:
// the padding, the message schedule, and the 64-round compression function
// follow FIPS 180-4 directly, without delegating to crypto/sha256.
//
// Two code paths produce the digest.
// [Sum] is the optimized path: it consumes full blocks straight from the input
// without materializing the padded message,
// and its compression keeps the message schedule in a 16-word rolling window.
// The reference path is a literal transcription of the standard,
// and the tests enforce that both paths produce identical output
// for every input, including the empty input.
package fgsha256

import (
	"encoding/binary"
	"math/bits"
)

const (
	// Size is the length of a SHA-256 digest in bytes.
	Size = 32

	// BlockSize is the internal block length in bytes.
	BlockSize = 64
)

// initState holds the initial hash values H(0):
// the first 32 bits of the fractional parts of
// the square roots of the first eight primes.
var initState = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// k holds the round constants K:
// the first 32 bits of the fractional parts of
// the cube roots of the first 64 primes.
var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// Sum returns the SHA-256 digest of data.
//
// Sum is total and deterministic over all byte sequences,
// including the empty sequence.
func Sum(data []byte) [Size]byte {
	h := initState

	// The full blocks can be consumed directly from the input,
	// with no copying.
	full := len(data) &^ (BlockSize - 1)
	for i := 0; i < full; i += BlockSize {
		block(&h, data[i:i+BlockSize])
	}

	// The padded tail always fits in two blocks:
	// the remainder, the 0x80 terminator, the zero fill,
	// and the 8-byte bit length.
	var tail [2 * BlockSize]byte
	rem := copy(tail[:], data[full:])
	tail[rem] = 0x80

	n := BlockSize
	if rem >= BlockSize-8 {
		// No room for the length after the terminator;
		// the length spills into a second block.
		n = 2 * BlockSize
	}
	binary.BigEndian.PutUint64(tail[n-8:], uint64(len(data))*8)

	block(&h, tail[:BlockSize])
	if n == 2*BlockSize {
		block(&h, tail[BlockSize:])
	}

	return serialize(h)
}

// sumGeneric is the reference path:
// pad the whole message into a fresh buffer,
// then compress each 64-byte block with a full 64-word schedule.
//
// It exists to pin down [Sum]'s behavior in tests and benchmarks.
func sumGeneric(data []byte) [Size]byte {
	h := initState

	padded := pad(data)
	for i := 0; i < len(padded); i += BlockSize {
		blockGeneric(&h, padded[i:i+BlockSize])
	}

	return serialize(h)
}

// pad returns data extended per FIPS 180-4:
// a single 1 bit (the 0x80 byte), zero bits until the length in bits
// is congruent to 448 mod 512, then the original length in bits
// as a 64-bit big-endian integer.
// The result length is always a multiple of [BlockSize].
func pad(data []byte) []byte {
	padded := append([]byte(nil), data...)
	padded = append(padded, 0x80)
	for len(padded)%BlockSize != BlockSize-8 {
		padded = append(padded, 0)
	}
	return binary.BigEndian.AppendUint64(padded, uint64(len(data))*8)
}

// blockGeneric folds one 64-byte block into the running state h,
// transcribing the standard literally:
// expand the block into 64 schedule words, then run 64 rounds.
func blockGeneric(h *[8]uint32, p []byte) {
	var w [64]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[4*i:])
	}
	for i := 16; i < 64; i++ {
		s0 := rotr(w[i-15], 7) ^ rotr(w[i-15], 18) ^ (w[i-15] >> 3)
		s1 := rotr(w[i-2], 17) ^ rotr(w[i-2], 19) ^ (w[i-2] >> 10)
		w[i] = w[i-16] + s0 + w[i-7] + s1
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for i := 0; i < 64; i++ {
		a, b, c, d, e, f, g, hh = round(a, b, c, d, e, f, g, hh, w[i]+k[i])
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// block is the optimized compression.
// Instead of a 64-word schedule it keeps a 16-word rolling window,
// deriving each schedule word in place as the rounds consume it.
// The output state is bit-identical to [blockGeneric].
func block(h *[8]uint32, p []byte) {
	var w [16]uint32
	for i := range w {
		w[i] = binary.BigEndian.Uint32(p[4*i:])
	}

	a, b, c, d, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]

	for i := 0; i < 64; i++ {
		if i >= 16 {
			w15 := w[(i-15)&15]
			w2 := w[(i-2)&15]
			s0 := rotr(w15, 7) ^ rotr(w15, 18) ^ (w15 >> 3)
			s1 := rotr(w2, 17) ^ rotr(w2, 19) ^ (w2 >> 10)
			w[i&15] += s0 + w[(i-7)&15] + s1
		}

		a, b, c, d, e, f, g, hh = round(a, b, c, d, e, f, g, hh, w[i&15]+k[i])
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
	h[5] += f
	h[6] += g
	h[7] += hh
}

// round applies one compression round and returns the rotated registers.
func round(a, b, c, d, e, f, g, h, wk uint32) (uint32, uint32, uint32, uint32, uint32, uint32, uint32, uint32) {
	s1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
	ch := (e & f) ^ (^e & g)
	t1 := h + s1 + ch + wk
	s0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
	maj := (a & b) ^ (a & c) ^ (b & c)
	t2 := s0 + maj

	return t1 + t2, a, b, c, d + t1, e, f, g
}

func rotr(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, -n)
}

// serialize writes the eight state words big-endian into a digest.
func serialize(h [8]uint32) [Size]byte {
	var digest [Size]byte
	for i, v := range h {
		binary.BigEndian.PutUint32(digest[4*i:], v)
	}
	return digest
}
