package fsguard

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// FileProof is the portable proof that one file belongs to a snapshot.
type FileProof struct {
	// Path is the file's slash-separated path relative to the snapshot root.
	// It is informational; verification binds the file content,
	// not its name.
	Path string `cbor:"1,keyasint"`

	// Siblings are the proof's sibling digests in leaf-to-root order.
	Siblings [][]byte `cbor:"2,keyasint"`
}

// Manifests and proofs are encoded as CBOR with integer keys,
// keeping them compact and easy to parse from other languages.

func EncodeManifest(m Manifest) ([]byte, error) {
	b, err := cbor.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return b, nil
}

func DecodeManifest(b []byte) (Manifest, error) {
	var m Manifest
	if err := cbor.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("failed to decode manifest: %w", err)
	}
	return m, nil
}

func EncodeFileProof(p FileProof) ([]byte, error) {
	b, err := cbor.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode file proof: %w", err)
	}
	return b, nil
}

func DecodeFileProof(b []byte) (FileProof, error) {
	var p FileProof
	if err := cbor.Unmarshal(b, &p); err != nil {
		return FileProof{}, fmt.Errorf("failed to decode file proof: %w", err)
	}
	return p, nil
}
