package fsguard_test

import (
	"testing"

	fsguard "github.com/QuantumGerbil/fs-guard"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"
)

func TestManifest_codec_round_trip(t *testing.T) {
	t.Parallel()

	dir, m := takeTestSnapshot(t)

	b, err := fsguard.EncodeManifest(m)
	require.NoError(t, err)

	decoded, err := fsguard.DecodeManifest(b)
	require.NoError(t, err)
	require.Equal(t, m, decoded)

	// The decoded manifest is still usable for verification.
	report, err := fsguard.VerifyDir(slogt.New(t), dir, decoded, fsguard.Config{})
	require.NoError(t, err)
	require.True(t, report.Clean())
}

func TestFileProof_codec_round_trip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "x.txt", "proof me")
	writeFile(t, dir, "y.txt", "sibling")

	snap, err := fsguard.Take(slogt.New(t), dir, fsguard.Config{})
	require.NoError(t, err)

	proof, ok := snap.FileProof("x.txt")
	require.True(t, ok)

	b, err := fsguard.EncodeFileProof(proof)
	require.NoError(t, err)

	decoded, err := fsguard.DecodeFileProof(b)
	require.NoError(t, err)
	require.Equal(t, proof, decoded)

	require.True(t, fsguard.VerifyFileProof(
		[]byte("proof me"), decoded, snap.Root(), fsguard.Config{},
	))
}

func TestDecodeManifest_rejects_garbage(t *testing.T) {
	t.Parallel()

	_, err := fsguard.DecodeManifest([]byte("not cbor at all"))
	require.Error(t, err)

	_, err = fsguard.DecodeFileProof([]byte{0xff, 0x00, 0x01})
	require.Error(t, err)
}
