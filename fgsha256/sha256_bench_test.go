package fgsha256_test

import (
	"crypto/sha256"
	"testing"

	"github.com/QuantumGerbil/fs-guard/fgsha256"
)

var benchSink [fgsha256.Size]byte

func BenchmarkSum_1KiB(b *testing.B) {
	data := testBytes(1024)
	b.SetBytes(1024)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		benchSink = fgsha256.Sum(data)
	}
}

func BenchmarkSumGeneric_1KiB(b *testing.B) {
	data := testBytes(1024)
	b.SetBytes(1024)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		benchSink = fgsha256.SumGeneric(data)
	}
}

// BenchmarkCryptoSha256_1KiB is a baseline against the
// (assembly-backed) standard library implementation.
func BenchmarkCryptoSha256_1KiB(b *testing.B) {
	data := testBytes(1024)
	b.SetBytes(1024)
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		benchSink = sha256.Sum256(data)
	}
}
