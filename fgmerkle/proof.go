package fgmerkle

import "bytes"

// GenerateProof returns the sibling digests encountered
// walking from the leaf at idx up to the root,
// one entry per level, in leaf-to-root order.
//
// It returns nil if idx is out of range for the current leaf set,
// which includes every index on an empty tree.
// That is an expected absence, not a fault.
//
// When a level has an odd node count,
// its last node pairs with itself,
// and the proof entry for that level is the node's own digest.
// Callers composing proofs into a larger protocol should be aware
// that such a self-paired entry also verifies
// for the duplicated position.
func (t *Tree) GenerateProof(idx int) [][]byte {
	if idx < 0 || idx >= len(t.leaves) {
		t.log.Debug(
			"Refusing proof for out-of-range leaf index",
			"idx", idx,
			"num_leaves", len(t.leaves),
		)
		return nil
	}

	level := make([][]byte, len(t.leaves))
	for i, n := range t.leaves {
		level[i] = n.Digest
	}

	// A single-leaf tree has an empty (but non-nil) proof:
	// the leaf digest is the root.
	proof := [][]byte{}

	for len(level) > 1 {
		// Even indices pair with the next node, odd with the previous,
		// except the last node of an odd level, which pairs with itself.
		sibling := idx ^ 1
		if sibling == len(level) {
			sibling = idx
		}
		proof = append(proof, level[sibling])

		idx >>= 1
		level = t.nextLevel(level)
	}

	t.log.Debug("Generated inclusion proof", "entries", len(proof))
	return proof
}

// VerifyProof reports whether proof connects leafData to expectedRoot.
//
// The candidate digest starts as the hash of leafData,
// and each sibling in the proof is folded in
// using the same canonical-order combination as [*Tree.Build].
// A mismatch is an ordinary false result, never a fault,
// including for empty proofs.
func (t *Tree) VerifyProof(leafData []byte, proof [][]byte, expectedRoot []byte) bool {
	current := t.hasher.Hash(leafData, nil)

	for _, sibling := range proof {
		current = t.combine(current, sibling)
	}

	ok := bytes.Equal(current, expectedRoot)
	if !ok {
		t.log.Debug(
			"Proof verification failed",
			"entries", len(proof),
		)
	}
	return ok
}

// RootFromLeaves returns the root digest implied by an ordered
// sequence of precomputed leaf digests,
// without touching the tree's own state.
// It returns nil for an empty sequence.
//
// This lets a verifier holding only leaf digests
// check them against a trusted root
// without access to the original data blocks.
func (t *Tree) RootFromLeaves(leaves [][]byte) []byte {
	if len(leaves) == 0 {
		return nil
	}

	level := leaves
	for len(level) > 1 {
		level = t.nextLevel(level)
	}
	return level[0]
}

// nextLevel combines one level of digests pairwise into the next,
// with the same pairing rule as [*Tree.Build].
func (t *Tree) nextLevel(level [][]byte) [][]byte {
	next := make([][]byte, 0, (len(level)+1)/2)

	for i := 0; i < len(level); i += 2 {
		left := level[i]

		right := left
		if i+1 < len(level) {
			right = level[i+1]
		}

		next = append(next, t.combine(left, right))
	}

	return next
}
