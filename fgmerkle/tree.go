// Package fgmerkle contains a binary Merkle tree
// built over an ordered sequence of data blocks,
// with inclusion-proof generation and verification.
//
// The tree is generic over the [Hasher] capability,
// so any fixed-output-length hash algorithm can back it.
// Sibling digests are combined in canonical order:
// the pair is sorted lexicographically before concatenation,
// which makes the combination commutative
// and lets proofs omit left/right direction bits.
// When a level has an odd node count,
// the last node is paired with itself rather than promoted unpaired.
package fgmerkle

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

// Node is one vertex in a [Tree].
// A node is a leaf iff both children are nil.
type Node struct {
	// Digest is the node's hash value.
	// A leaf digest is the hash of its data block;
	// an internal digest is the hash of the two children's digests
	// concatenated in canonical order.
	Digest []byte

	// Children, nil for leaves.
	// When a level had an odd node count,
	// the duplicated last node is shared between Left and Right.
	Left, Right *Node
}

// Tree is a binary Merkle tree.
//
// Create one with [NewTree], populate it with [*Tree.Build],
// and query it any number of times afterward.
// Build fully replaces the previous state;
// there is no incremental insertion or removal.
//
// A Tree is a pure in-memory structure with no suspension points.
// It is not safe for concurrent mutation;
// a caller sharing a Tree across goroutines
// is responsible for its synchronization.
type Tree struct {
	log *slog.Logger

	hasher Hasher

	leaves []*Node
	root   *Node
}

// TreeConfig is the configuration for [NewTree].
type TreeConfig struct {
	// Hasher produces every leaf and node digest. Required.
	Hasher Hasher
}

// NewTree returns an empty tree using the hasher in cfg.
//
// The log receives debug-level diagnostics
// during proof generation and verification;
// pass nil to discard them.
//
// A nil cfg.Hasher is a configuration error and causes a panic.
func NewTree(log *slog.Logger, cfg TreeConfig) *Tree {
	if cfg.Hasher == nil {
		panic(fmt.Errorf("BUG: TreeConfig.Hasher must not be nil"))
	}

	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Tree{
		log: log,

		hasher: cfg.Hasher,
	}
}

// Build replaces any previous tree state
// with a tree over the given ordered data blocks,
// hashing each block once for its leaf
// and each pair of siblings once per internal node.
//
// Building with zero blocks is valid and leaves the tree empty.
func (t *Tree) Build(blocks [][]byte) {
	t.root = nil
	t.leaves = nil

	if len(blocks) == 0 {
		return
	}

	leaves := make([]*Node, len(blocks))
	for i, b := range blocks {
		leaves[i] = &Node{Digest: t.hasher.Hash(b, nil)}
	}
	t.leaves = leaves

	level := leaves
	for len(level) > 1 {
		next := make([]*Node, 0, (len(level)+1)/2)

		for i := 0; i < len(level); i += 2 {
			left := level[i]

			// An odd count pairs the last node with itself.
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}

			next = append(next, &Node{
				Digest: t.combine(left.Digest, right.Digest),
				Left:   left,
				Right:  right,
			})
		}

		level = next
	}

	t.root = level[0]
}

// Root returns the root digest, or nil if the tree is empty.
// The caller must not modify the returned slice.
func (t *Tree) Root() []byte {
	if t.root == nil {
		return nil
	}
	return t.root.Digest
}

// NumLeaves returns the number of leaves in the current tree.
func (t *Tree) NumLeaves() int {
	return len(t.leaves)
}

// Leaf returns the digest of the leaf at idx,
// or nil if idx is out of range.
// The caller must not modify the returned slice.
func (t *Tree) Leaf(idx int) []byte {
	if idx < 0 || idx >= len(t.leaves) {
		return nil
	}
	return t.leaves[idx].Digest
}

// combine hashes the concatenation of two sibling digests,
// lexicographically smaller digest first.
func (t *Tree) combine(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}

	buf := make([]byte, 0, len(a)+len(b))
	buf = append(buf, a...)
	buf = append(buf, b...)

	return t.hasher.Hash(buf, nil)
}
