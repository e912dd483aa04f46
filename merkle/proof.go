package merkle

// RangeProof is the Merkle audit path of the contiguous leaf range
// [start, end). The zero value is a proof for zero leaves.
type RangeProof[D Digest[D]] struct {
	// Nodes that together with the leaves of the range
	// can be used to recompute the root, ordered left to right.
	siblings []D
	// start index of the range.
	start uint32
	// end index of the range, non inclusive.
	end uint32
}

// NewRangeProof returns a proof for the leaves in [start, end).
func NewRangeProof[D Digest[D]](siblings []D, start, end uint32) RangeProof[D] {
	return RangeProof[D]{siblings: siblings, start: start, end: end}
}

// Siblings returns the proof nodes ordered left to right.
func (p RangeProof[D]) Siblings() []D {
	return p.siblings
}

// Start index of this proof.
func (p RangeProof[D]) Start() uint32 {
	return p.start
}

// End index of this proof (non inclusive).
func (p RangeProof[D]) End() uint32 {
	return p.end
}

// RangeLen returns the number of leaves covered by this proof. A proof with
// end < start covers no leaves.
func (p RangeProof[D]) RangeLen() int {
	if p.end < p.start {
		return 0
	}
	return int(p.end - p.start)
}

// VerifyRange checks that leafHashes are the hashes of the leaves
// [start, end) of the tree with the given root.
func (p RangeProof[D]) VerifyRange(h Hasher[D], root D, leafHashes []D) error {
	if len(leafHashes) != p.RangeLen() {
		return ErrWrongAmountOfLeavesProvided
	}
	return NewVerificationTree[D](h).CheckRangeProof(root, leafHashes, p.siblings, int(p.start))
}

// LeftmostRightSibling returns the sibling closest to the range on its
// right side. It returns false if the range reaches the end of the tree.
func (p RangeProof[D]) LeftmostRightSibling() (D, bool) {
	numLeftSiblings := ComputeNumLeftSiblings(int(p.start))
	if len(p.siblings) > numLeftSiblings {
		return p.siblings[numLeftSiblings], true
	}
	var zero D
	return zero, false
}

// RightmostLeftSibling returns the sibling closest to the range on its left
// side. It returns false if the range starts at the first leaf or the proof
// is too short to hold the left siblings.
func (p RangeProof[D]) RightmostLeftSibling() (D, bool) {
	numLeftSiblings := ComputeNumLeftSiblings(int(p.start))
	if numLeftSiblings != 0 && numLeftSiblings <= len(p.siblings) {
		return p.siblings[numLeftSiblings-1], true
	}
	var zero D
	return zero, false
}
