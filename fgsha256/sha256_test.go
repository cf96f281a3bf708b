package fgsha256_test

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/QuantumGerbil/fs-guard/fgsha256"
	"github.com/stretchr/testify/require"
)

func TestSum_fipsVectors(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:  "single character",
			input: "a",
			want:  "ca978112ca1bbdcafac231b39a23dc4da786eff8147c4e72b9807785afee48bb",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:  "hello world",
			input: "hello world",
			want:  "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:  "two blocks",
			input: "abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq",
			want:  "248d6a61d20638b8e5c026930c3e6039a33ce45964ff2167f6ecedd419db06c1",
		},
		{
			name:  "one million a",
			input: strings.Repeat("a", 1_000_000),
			want:  "cdc76e5c9914fb9281a1c7e284d73e67f1809a48a497200e046d39ccc7112cd0",
		},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := fgsha256.Sum([]byte(tc.input))
			require.Equal(t, tc.want, hex.EncodeToString(got[:]))
		})
	}
}

func TestSum_matchesReferencePath(t *testing.T) {
	t.Parallel()

	// Every length through four blocks,
	// which covers both padding shapes on every block boundary.
	for size := 0; size < 4*fgsha256.BlockSize+2; size++ {
		input := testBytes(size)

		opt := fgsha256.Sum(input)
		ref := fgsha256.SumGeneric(input)
		require.Equalf(t, ref, opt, "paths diverged at input length %d", size)
	}
}

func TestSum_matchesCryptoSha256(t *testing.T) {
	t.Parallel()

	for size := 0; size < 4*fgsha256.BlockSize+2; size++ {
		input := testBytes(size)

		got := fgsha256.Sum(input)
		want := sha256.Sum256(input)
		require.Equalf(t, want, got, "mismatch with crypto/sha256 at input length %d", size)
	}
}

func TestHasher_appendsToDst(t *testing.T) {
	t.Parallel()

	h := fgsha256.Hasher{}

	dst := h.Hash([]byte("abc"), []byte("prefix-"))
	require.Len(t, dst, len("prefix-")+fgsha256.HashSize)
	require.Equal(t, "prefix-", string(dst[:7]))

	want := fgsha256.Sum([]byte("abc"))
	require.Equal(t, want[:], dst[7:])
}

// testBytes returns size bytes with a deterministic pattern
// that differs across all nearby offsets.
func testBytes(size int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(i*7 + 13)
	}
	return b
}
