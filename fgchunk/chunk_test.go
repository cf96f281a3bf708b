package fgchunk_test

import (
	"bytes"
	"testing"

	"github.com/QuantumGerbil/fs-guard/fgchunk"
	"github.com/QuantumGerbil/fs-guard/fgmerkle"
	"github.com/QuantumGerbil/fs-guard/fgsha256"
	"github.com/klauspost/reedsolomon"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"
)

func TestSplit_chunk_counts(t *testing.T) {
	t.Parallel()

	// 2.5 chunks of data rounds up to 3 data chunks,
	// and a 0.5 parity ratio rounds down to 1 parity chunk.
	data := testData(2*64 + 32)

	res, err := fgchunk.Split(data, fgchunk.Config{
		ChunkSize:   64,
		ParityRatio: 0.5,
	})
	require.NoError(t, err)

	require.Equal(t, 3, res.NumData)
	require.Equal(t, 1, res.NumParity)
	require.Len(t, res.Chunks, 4)

	for i, c := range res.Chunks {
		require.Lenf(t, c, len(res.Chunks[0]), "chunk %d length differs", i)
	}
}

func TestSplit_data_round_trips(t *testing.T) {
	t.Parallel()

	data := testData(1000)

	res, err := fgchunk.Split(data, fgchunk.Config{ChunkSize: 256})
	require.NoError(t, err)

	require.Equal(t, 4, res.NumData)
	require.Zero(t, res.NumParity)

	joined := bytes.Join(res.Chunks[:res.NumData], nil)
	require.Equal(t, data, joined[:len(data)])

	// The final chunk is zero-padded past the data.
	for _, b := range joined[len(data):] {
		require.Zero(t, b)
	}
}

func TestSplit_empty_data(t *testing.T) {
	t.Parallel()

	res, err := fgchunk.Split(nil, fgchunk.Config{ChunkSize: 64})
	require.NoError(t, err)

	require.Zero(t, res.NumData)
	require.Zero(t, res.NumParity)
	require.Empty(t, res.Chunks)
}

func TestSplit_invalid_config_panics(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() {
		_, _ = fgchunk.Split([]byte("x"), fgchunk.Config{ChunkSize: 0})
	})
	require.Panics(t, func() {
		_, _ = fgchunk.Split([]byte("x"), fgchunk.Config{ChunkSize: 64, ParityRatio: -1})
	})
}

func TestSplit_parity_reconstructs_lost_chunk(t *testing.T) {
	t.Parallel()

	data := testData(4 * 128)

	res, err := fgchunk.Split(data, fgchunk.Config{
		ChunkSize:   128,
		ParityRatio: 0.5,
	})
	require.NoError(t, err)
	require.Equal(t, 4, res.NumData)
	require.Equal(t, 2, res.NumParity)

	lost := append([]byte(nil), res.Chunks[1]...)
	res.Chunks[1] = nil

	enc, err := reedsolomon.New(res.NumData, res.NumParity)
	require.NoError(t, err)

	require.NoError(t, enc.Reconstruct(res.Chunks))
	require.Equal(t, lost, res.Chunks[1])
}

func TestSplit_chunks_feed_a_tree(t *testing.T) {
	t.Parallel()

	data := testData(5000)

	res, err := fgchunk.Split(data, fgchunk.Config{
		ChunkSize:   512,
		ParityRatio: 0.25,
	})
	require.NoError(t, err)

	tree := fgmerkle.NewTree(slogt.New(t), fgmerkle.TreeConfig{
		Hasher: fgsha256.Hasher{},
	})
	tree.Build(res.Chunks)

	root := tree.Root()
	require.NotNil(t, root)

	for i, c := range res.Chunks {
		require.Truef(
			t, tree.VerifyProof(c, tree.GenerateProof(i), root),
			"chunk %d did not verify against the tree", i,
		)
	}
}

func testData(size int) []byte {
	b := make([]byte, size)
	for i := range b {
		b[i] = byte(i*31 + 7)
	}
	return b
}
