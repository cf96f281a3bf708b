package fsguard

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/QuantumGerbil/fs-guard/fgmerkle"
	"github.com/bits-and-blooms/bitset"
)

var ErrAlgorithmMismatch = errors.New("manifest hash algorithm does not match configured hasher")

var ErrMalformedManifest = errors.New("manifest paths and leaf digests are misaligned")

// Report is the outcome of [VerifyDir].
type Report struct {
	// Modified are manifest paths whose current content digest
	// differs from the recorded leaf digest.
	Modified []string

	// Missing are manifest paths absent from the directory.
	Missing []string

	// Added are directory files not present in the manifest.
	Added []string

	// RootMismatch is true when the manifest's own leaf digests
	// do not recompute to its root digest,
	// meaning the manifest itself was damaged or tampered.
	RootMismatch bool
}

// Clean reports whether the directory matched the manifest exactly.
func (r Report) Clean() bool {
	return !r.RootMismatch &&
		len(r.Modified) == 0 &&
		len(r.Missing) == 0 &&
		len(r.Added) == 0
}

// VerifyDir re-reads the directory rooted at dir
// and compares it file by file against the manifest.
//
// Every file is reported in at most one of the Report's lists,
// so a partial corruption pinpoints exactly the affected paths.
// A mismatch is reported, never an error;
// errors are reserved for unreadable directories
// and manifests that cannot be meaningfully checked.
func VerifyDir(log *slog.Logger, dir string, m Manifest, cfg Config) (Report, error) {
	cfg = cfg.normalized()

	if m.Algorithm != cfg.Algorithm {
		return Report{}, fmt.Errorf(
			"%w: manifest has %q, configured %q",
			ErrAlgorithmMismatch, m.Algorithm, cfg.Algorithm,
		)
	}
	if len(m.Paths) != len(m.Leaves) {
		return Report{}, fmt.Errorf(
			"%w: %d paths, %d leaf digests",
			ErrMalformedManifest, len(m.Paths), len(m.Leaves),
		)
	}

	index := make(map[string]int, len(m.Paths))
	for i, p := range m.Paths {
		index[p] = i
	}

	var report Report

	// Track which manifest entries the walk has covered,
	// so the remainder can be reported as missing.
	seen := bitset.New(uint(len(m.Paths)))

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
		rel = filepath.ToSlash(rel)

		idx, ok := index[rel]
		if !ok {
			report.Added = append(report.Added, rel)
			return nil
		}
		seen.Set(uint(idx))

		content, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", p, err)
		}

		if !bytes.Equal(cfg.Hasher.Hash(content, nil), m.Leaves[idx]) {
			if log != nil {
				log.Debug("File digest mismatch", "path", rel)
			}
			report.Modified = append(report.Modified, rel)
		}

		return nil
	})
	if err != nil {
		return Report{}, fmt.Errorf("failed to walk %q: %w", dir, err)
	}

	for i, ok := seen.NextClear(0); ok && i < uint(len(m.Paths)); i, ok = seen.NextClear(i + 1) {
		report.Missing = append(report.Missing, m.Paths[i])
	}

	// Independently of the directory contents,
	// confirm the manifest is self-consistent:
	// its leaf digests must recompute to its root.
	tree := fgmerkle.NewTree(log, fgmerkle.TreeConfig{Hasher: cfg.Hasher})
	if !bytes.Equal(tree.RootFromLeaves(m.Leaves), m.Root) {
		report.RootMismatch = true
	}

	if log != nil {
		log.Info(
			"Verified directory against manifest",
			"dir", dir,
			"clean", report.Clean(),
			"modified", len(report.Modified),
			"missing", len(report.Missing),
			"added", len(report.Added),
		)
	}

	return report, nil
}

// VerifyFileProof reports whether content at the proof's position
// belongs to the snapshot identified by root.
// Only the root digest needs to be trusted;
// neither the manifest nor the rest of the directory is required.
func VerifyFileProof(content []byte, p FileProof, root []byte, cfg Config) bool {
	cfg = cfg.normalized()

	tree := fgmerkle.NewTree(nil, fgmerkle.TreeConfig{Hasher: cfg.Hasher})
	return tree.VerifyProof(content, p.Siblings, root)
}
