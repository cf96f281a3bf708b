// Package fgmerkletest contains test helpers
// for user-defined [fgmerkle.Hasher] implementations.
package fgmerkletest

import (
	"testing"

	"github.com/QuantumGerbil/fs-guard/fgmerkle"
	"github.com/stretchr/testify/require"
)

// HasherFactory returns a fresh hasher and its fixed digest size.
type HasherFactory func() (h fgmerkle.Hasher, hashSize int)

// TestHasherCompliance asserts the [fgmerkle.Hasher] contract
// against the hashers produced by f.
func TestHasherCompliance(t *testing.T, f HasherFactory) {
	t.Run("digest is deterministic", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		dst01 := make([]byte, 0, sz)
		dst01 = h.Hash([]byte("deterministic_data"), dst01)

		dst02 := make([]byte, 0, sz)
		dst02 = h.Hash([]byte("deterministic_data"), dst02)

		require.Equal(t, dst01, dst02)
	})

	t.Run("digest has fixed length", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		for _, in := range [][]byte{
			nil,
			[]byte("x"),
			[]byte("a longer input spanning more than one internal block of most hash functions, for good measure"),
		} {
			require.Len(t, h.Hash(in, nil), sz)
		}
	})

	t.Run("digest appends to dst", func(t *testing.T) {
		t.Parallel()

		h, sz := f()

		prefix := []byte("existing_prefix")
		dst := h.Hash([]byte("appended_data"), append([]byte(nil), prefix...))

		require.Len(t, dst, len(prefix)+sz)
		require.Equal(t, prefix, dst[:len(prefix)])
		require.Equal(t, h.Hash([]byte("appended_data"), nil), dst[len(prefix):])
	})

	t.Run("digest depends on input", func(t *testing.T) {
		t.Parallel()

		h, _ := f()

		require.NotEqual(
			t,
			h.Hash([]byte("input_1"), nil),
			h.Hash([]byte("input_2"), nil),
		)
	})
}
