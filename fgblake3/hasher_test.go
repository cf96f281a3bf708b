package fgblake3_test

import (
	"testing"

	"github.com/QuantumGerbil/fs-guard/fgblake3"
	"github.com/QuantumGerbil/fs-guard/fgmerkle"
	"github.com/QuantumGerbil/fs-guard/fgmerkle/fgmerkletest"
)

func TestCompliance(t *testing.T) {
	t.Parallel()

	fgmerkletest.TestHasherCompliance(t, func() (fgmerkle.Hasher, int) {
		return fgblake3.Hasher{}, fgblake3.HashSize
	})
}
