package fsguard

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/QuantumGerbil/fs-guard/fgmerkle"
	"github.com/QuantumGerbil/fs-guard/fgsha256"
)

// DefaultAlgorithm is the manifest name for the built-in SHA-256 hasher.
const DefaultAlgorithm = "sha256"

// Manifest is the portable record of one directory snapshot.
type Manifest struct {
	// Algorithm names the hash behind every digest in the manifest.
	Algorithm string `cbor:"1,keyasint"`

	// Paths are the slash-separated file paths included in the snapshot,
	// relative to the snapshot root,
	// in the exact order their contents were supplied to the tree.
	Paths []string `cbor:"2,keyasint"`

	// Leaves are the content digests, aligned one-to-one with Paths.
	Leaves [][]byte `cbor:"3,keyasint"`

	// Root is the Merkle root digest over the file contents.
	Root []byte `cbor:"4,keyasint"`
}

// Config is the configuration shared by [Take] and [VerifyDir].
type Config struct {
	// Hasher produces every digest in the snapshot.
	// If nil, the from-scratch SHA-256 hasher is used.
	Hasher fgmerkle.Hasher

	// Algorithm names the hasher in the manifest,
	// defaulting to [DefaultAlgorithm].
	// Verification refuses a manifest naming a different algorithm,
	// since its digests would be incomparable.
	Algorithm string
}

func (c Config) normalized() Config {
	if c.Hasher == nil {
		c.Hasher = fgsha256.Hasher{}
	}
	if c.Algorithm == "" {
		c.Algorithm = DefaultAlgorithm
	}
	return c
}

// Snapshot is a captured directory state:
// the manifest plus the tree it was derived from,
// retained for proof generation.
type Snapshot struct {
	manifest Manifest

	tree *fgmerkle.Tree

	// Path to leaf index.
	index map[string]int
}

// Take walks the directory rooted at dir,
// reads every regular file in sorted path order,
// and builds a Merkle tree with one leaf per file content.
//
// An empty directory is a valid snapshot with no root digest.
func Take(log *slog.Logger, dir string, cfg Config) (*Snapshot, error) {
	cfg = cfg.normalized()

	paths, blocks, err := readTree(log, dir)
	if err != nil {
		return nil, err
	}

	tree := fgmerkle.NewTree(log, fgmerkle.TreeConfig{
		Hasher: cfg.Hasher,
	})
	tree.Build(blocks)

	leaves := make([][]byte, len(paths))
	index := make(map[string]int, len(paths))
	for i, p := range paths {
		leaves[i] = tree.Leaf(i)
		index[p] = i
	}

	if log != nil {
		log.Info(
			"Captured directory snapshot",
			"dir", dir,
			"files", len(paths),
		)
	}

	return &Snapshot{
		manifest: Manifest{
			Algorithm: cfg.Algorithm,
			Paths:     paths,
			Leaves:    leaves,
			Root:      tree.Root(),
		},

		tree: tree,

		index: index,
	}, nil
}

// Manifest returns the snapshot's manifest.
// The caller must not modify the digest slices within.
func (s *Snapshot) Manifest() Manifest {
	return s.manifest
}

// Root returns the snapshot's root digest,
// or nil for a snapshot of an empty directory.
func (s *Snapshot) Root() []byte {
	return s.manifest.Root
}

// NumFiles returns the number of files in the snapshot.
func (s *Snapshot) NumFiles() int {
	return len(s.manifest.Paths)
}

// FileProof returns the inclusion proof
// for the file at the given slash-separated relative path.
// The second return is false if the path is not in the snapshot.
func (s *Snapshot) FileProof(path string) (FileProof, bool) {
	idx, ok := s.index[path]
	if !ok {
		return FileProof{}, false
	}

	return FileProof{
		Path:     path,
		Siblings: s.tree.GenerateProof(idx),
	}, true
}

// readTree collects the relative paths and contents
// of every regular file under dir.
// WalkDir visits entries in lexical order,
// so the result is deterministic for a given directory state.
func readTree(log *slog.Logger, dir string) ([]string, [][]byte, error) {
	var paths []string
	var blocks [][]byte

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return fmt.Errorf("failed to relativize path %q: %w", p, err)
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", p, err)
		}

		if log != nil {
			log.Debug("Read file for snapshot", "path", rel, "size", len(content))
		}

		paths = append(paths, filepath.ToSlash(rel))
		blocks = append(blocks, content)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %q: %w", dir, err)
	}

	return paths, blocks, nil
}
