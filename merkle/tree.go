package merkle

import (
	"fmt"

	"github.com/celestiaorg/nmtproof/storage"
)

// Tree is a handle on a Merkle tree that is able to check range proofs
// against a root. Verification never touches the store.
type Tree[D Digest[D]] struct {
	store  storage.NodeStore
	hasher Hasher[D]
}

// NewTree returns a tree handle backed by store.
func NewTree[D Digest[D]](store storage.NodeStore, hasher Hasher[D]) *Tree[D] {
	return &Tree[D]{store: store, hasher: hasher}
}

// NewVerificationTree returns a tree handle without persistent state.
func NewVerificationTree[D Digest[D]](hasher Hasher[D]) *Tree[D] {
	return NewTree[D](storage.NoopStore{}, hasher)
}

// Hasher returns the hasher the tree combines nodes with.
func (t *Tree[D]) Hasher() Hasher[D] {
	return t.hasher
}

// CheckRangeProof recomputes the root of the tree from the hashes of the
// leaves in [start, start+len(leafHashes)) and the proof siblings, and
// compares it to root. The siblings are consumed left to right.
func (t *Tree[D]) CheckRangeProof(root D, leafHashes []D, siblings []D, start int) error {
	if start < 0 {
		return fmt.Errorf("%w: negative start index %d", ErrMalformedProof, start)
	}
	switch len(leafHashes) {
	case 0:
		if root.Equal(t.hasher.EmptyRoot()) && len(siblings) == 0 {
			return nil
		}
		return ErrNoLeavesProvided
	case 1:
		// a single leaf without siblings has to be the whole tree
		if len(siblings) == 0 {
			if leafHashes[0].Equal(root) && start == 0 {
				return nil
			}
			return ErrTreeDoesNotContainLeaf
		}
	}

	numLeftSiblings := ComputeNumLeftSiblings(start)
	if len(siblings) < numLeftSiblings {
		return fmt.Errorf("%w: expected at least %d siblings left of leaf %d, got %d",
			ErrMalformedProof, numLeftSiblings, start, len(siblings))
	}
	treeSize, err := ComputeTreeSize(len(siblings)-numLeftSiblings, start+len(leafHashes)-1)
	if err != nil {
		return err
	}

	r := rangeReconstruction[D]{
		hasher:   t.hasher,
		leaves:   leafHashes,
		siblings: siblings,
		start:    start,
		end:      start + len(leafHashes),
	}
	computed, err := r.computeRoot(0, treeSize)
	if err != nil {
		return err
	}
	if len(r.siblings) != 0 {
		return fmt.Errorf("%w: %d unused siblings", ErrMalformedProof, len(r.siblings))
	}
	if !computed.Equal(root) {
		return ErrInvalidRoot
	}
	return nil
}

// rangeReconstruction holds the state of one root computation. leaves and
// siblings are popped from the front as the recursion walks the tree from
// left to right.
type rangeReconstruction[D Digest[D]] struct {
	hasher     Hasher[D]
	leaves     []D
	siblings   []D
	start, end int
}

func (r *rangeReconstruction[D]) computeRoot(start, end int) (D, error) {
	// if current range does not overlap with proof range,
	// the whole subtree is a single proof sibling
	if end <= r.start || start >= r.end {
		return r.pop(&r.siblings, "sibling")
	}
	// reached a leaf of the proven range
	if end-start == 1 {
		return r.pop(&r.leaves, "leaf")
	}

	k := getSplitPoint(end - start)
	left, err := r.computeRoot(start, start+k)
	if err != nil {
		return left, err
	}
	right, err := r.computeRoot(start+k, end)
	if err != nil {
		return right, err
	}
	hash, err := r.hasher.HashNode(left, right)
	if err != nil {
		return hash, fmt.Errorf("%w: %w", ErrMalformedProof, err)
	}
	return hash, nil
}

func (r *rangeReconstruction[D]) pop(s *[]D, what string) (D, error) {
	if len(*s) == 0 {
		var zero D
		return zero, fmt.Errorf("%w: ran out of %s hashes", ErrMalformedProof, what)
	}
	first := (*s)[0]
	*s = (*s)[1:]
	return first, nil
}
