// Package fgblake3 provides a BLAKE3-backed hasher for [fgmerkle.Tree].
//
// It exists both as a faster alternative to SHA-256
// and as proof that the tree is agnostic to its hash algorithm.
package fgblake3

import (
	"github.com/zeebo/blake3"
)

// HashSize is the digest length produced by [Hasher].
const HashSize = 32

// Hasher is a [github.com/QuantumGerbil/fs-guard/fgmerkle.Hasher]
// backed by BLAKE3.
type Hasher struct{}

func (Hasher) Hash(in, dst []byte) []byte {
	h := blake3.New()
	_, _ = h.Write(in)
	return h.Sum(dst)
}
