// Package fsguard records and verifies the integrity of a directory tree.
//
// A snapshot reads every regular file under a root directory,
// in deterministic sorted-path order,
// and builds a Merkle tree with one leaf per file.
// The resulting [Manifest] carries the file paths, their digests,
// and the tree's root digest,
// and is small enough to store or transmit separately from the data.
//
// Later, [VerifyDir] re-reads the directory and reports
// exactly which files were modified, removed, or added,
// while [*Snapshot.FileProof] and [VerifyFileProof] allow a holder
// of only the root digest to check a single file's membership
// without the rest of the directory.
//
// The underlying hash and tree primitives live in the
// fgsha256 and fgmerkle packages;
// fsguard is the only package that touches the filesystem.
package fsguard
