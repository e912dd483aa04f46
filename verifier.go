package nmtproof

import (
	"fmt"

	"github.com/celestiaorg/nmtproof/merkle"
	"github.com/celestiaorg/nmtproof/namespace"
)

// Verifier is a verification-only handle on a namespaced Merkle tree. It
// holds no nodes and only checks proofs against roots.
type Verifier struct {
	hasher *NmtHasher
	tree   *merkle.Tree[NamespacedHash]
}

// NewVerifier returns a verifier that recomputes roots with h. The hasher's
// max namespace policy must match the one the tree was built with.
func NewVerifier(h *NmtHasher) *Verifier {
	return &Verifier{
		hasher: h,
		tree:   merkle.NewVerificationTree[NamespacedHash](h),
	}
}

// CheckRangeProof recomputes the root from the leaf hashes of the range
// starting at start and the proof siblings, and compares it to root.
func (v *Verifier) CheckRangeProof(root NamespacedHash, leafHashes, siblings []NamespacedHash, start int) error {
	return v.tree.CheckRangeProof(root, leafHashes, siblings, start)
}

// VerifyNamespace verifies a whole namespace, i.e. it verifies inclusion of
// the provided raw leaves in the tree. Additionally, it verifies that the
// namespace is complete and no leaf of that namespace was left out of the
// proof. For an absence proof it verifies that the tree has no leaf of nID.
func (v *Verifier) VerifyNamespace(root NamespacedHash, rawLeaves [][]byte, nID namespace.ID, proof *NamespaceProof) error {
	if nID.Size() != v.hasher.NamespaceSize() {
		return fmt.Errorf("%w: got: %v, want: %v", ErrMismatchedNamespaceSize, nID.Size(), v.hasher.NamespaceSize())
	}
	if err := v.hasher.ValidateNodeFormat(root); err != nil {
		return fmt.Errorf("%w: invalid root: %w", merkle.ErrMalformedProof, err)
	}
	// the empty root purports to cover the zero namespace but does not
	// actually include any such leaves
	if v.hasher.IsEmptyRoot(root) && len(rawLeaves) == 0 {
		return nil
	}

	if proof.IsOfAbsence() {
		return v.verifyAbsence(root, nID, proof)
	}
	return v.verifyPresence(root, rawLeaves, nID, proof)
}

func (v *Verifier) verifyPresence(root NamespacedHash, rawLeaves [][]byte, nID namespace.ID, proof *NamespaceProof) error {
	if !v.contains(root, nID) {
		return merkle.ErrTreeDoesNotContainLeaf
	}

	// the subtrees left of the range must end before the namespace and
	// the subtrees right of it must start after it
	if left, ok := proof.RightmostLeftSibling(); ok && nID.LessOrEqual(left.Max()) {
		return fmt.Errorf("%w: left of the range up to namespace %x", merkle.ErrMissingLeaf, []byte(left.Max()))
	}
	if right, ok := proof.LeftmostRightSibling(); ok && right.Min().LessOrEqual(nID) {
		return fmt.Errorf("%w: right of the range from namespace %x", merkle.ErrMissingLeaf, []byte(right.Min()))
	}

	leafHashes := make([]NamespacedHash, 0, len(rawLeaves))
	for _, data := range rawLeaves {
		leafHash, err := v.hasher.HashLeaf(data, nID)
		if err != nil {
			return err
		}
		leafHashes = append(leafHashes, leafHash)
	}
	return v.tree.CheckRangeProof(root, leafHashes, proof.Siblings(), int(proof.Start()))
}

// verifyAbsence only checks the boundary evidence of the proof, raw leaves
// play no part in it.
func (v *Verifier) verifyAbsence(root NamespacedHash, nID namespace.ID, proof *NamespaceProof) error {
	if !v.contains(root, nID) {
		return nil
	}

	leaf, ok := proof.Leaf()
	if !ok {
		return fmt.Errorf("%w: namespace is in the tree range but the absence proof has no leaf", merkle.ErrMalformedProof)
	}
	if proof.rangeLen() != 1 {
		return fmt.Errorf("%w: absence proof must cover exactly one leaf, covers %d", merkle.ErrMalformedProof, proof.rangeLen())
	}
	// the leaf sits where the namespace would be, so it has to sort after it
	if leaf.Min().LessOrEqual(nID) {
		return fmt.Errorf("%w: absence leaf namespace %x does not follow %x", merkle.ErrMalformedProof, []byte(leaf.Min()), []byte(nID))
	}
	if left, ok := proof.RightmostLeftSibling(); ok && nID.LessOrEqual(left.Max()) {
		return fmt.Errorf("%w: left of the absence leaf up to namespace %x", merkle.ErrMalformedProof, []byte(left.Max()))
	}
	return v.tree.CheckRangeProof(root, []NamespacedHash{leaf}, proof.Siblings(), int(proof.Start()))
}

func (v *Verifier) contains(root NamespacedHash, nID namespace.ID) bool {
	return root.Contains(nID) && !v.hasher.IsEmptyRoot(root)
}
