package fgsha256

// HashSize is the digest length produced by [Hasher].
const HashSize = Size

// Hasher is a [github.com/QuantumGerbil/fs-guard/fgmerkle.Hasher]
// backed by the from-scratch SHA-256 implementation in this package.
type Hasher struct{}

func (Hasher) Hash(in, dst []byte) []byte {
	d := Sum(in)
	return append(dst, d[:]...)
}
