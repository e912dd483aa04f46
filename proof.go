package nmtproof

import (
	"fmt"

	"github.com/celestiaorg/nmtproof/merkle"
	"github.com/celestiaorg/nmtproof/namespace"
)

type proofKind uint8

const (
	presenceProof proofKind = iota
	absenceProof
)

func (k proofKind) String() string {
	switch k {
	case presenceProof:
		return "presence"
	case absenceProof:
		return "absence"
	default:
		return fmt.Sprintf("proofKind(%d)", uint8(k))
	}
}

// NamespaceProof is a proof of some statement about a namespaced Merkle
// tree. It either proves the presence of the complete set of leaves of a
// namespace, or the absence of a namespace. The zero value is a presence
// proof of the empty range.
type NamespaceProof struct {
	kind  proofKind
	proof merkle.RangeProof[NamespacedHash]
	// ignoreMaxNs must match the Options.IgnoreMaxNamespace the tree was
	// built with, otherwise node namespace ranges are recomputed differently.
	ignoreMaxNs bool
	// leaf is only set for absence proofs. In case the namespace is in the
	// min/max range of the tree but absent, it holds the hash of the leaf
	// that sits where the namespace would be.
	leaf *NamespacedHash
}

// NewPresenceProof returns a proof that the leaves in the range of proof are
// all the leaves of a namespace.
func NewPresenceProof(proof merkle.RangeProof[NamespacedHash], ignoreMaxNs bool) NamespaceProof {
	return NamespaceProof{kind: presenceProof, proof: proof, ignoreMaxNs: ignoreMaxNs}
}

// NewAbsenceProof returns a proof that a namespace has no leaves. leaf may be
// nil if the namespace lies outside the namespace range of the tree.
func NewAbsenceProof(proof merkle.RangeProof[NamespacedHash], ignoreMaxNs bool, leaf *NamespacedHash) NamespaceProof {
	return NamespaceProof{kind: absenceProof, proof: proof, ignoreMaxNs: ignoreMaxNs, leaf: leaf}
}

// VerifyRange verifies that the raw leaves, all of namespace nID, are
// exactly the leaves of the proven range. It does not check that the range
// holds all leaves of the namespace; see VerifyCompleteNamespace.
func (p *NamespaceProof) VerifyRange(h *NmtHasher, root NamespacedHash, rawLeaves [][]byte, nID namespace.ID) error {
	if p.IsOfAbsence() {
		return fmt.Errorf("%w: an absence proof does not prove a leaf range", merkle.ErrMalformedProof)
	}
	if len(rawLeaves) != p.rangeLen() {
		return merkle.ErrWrongAmountOfLeavesProvided
	}

	nth := h.WithIgnoreMaxNs(p.ignoreMaxNs)
	if nID.Size() != nth.NamespaceSize() {
		return fmt.Errorf("%w: got: %v, want: %v", ErrMismatchedNamespaceSize, nID.Size(), nth.NamespaceSize())
	}
	leafHashes := make([]NamespacedHash, 0, len(rawLeaves))
	for _, data := range rawLeaves {
		leafHash, err := nth.HashLeaf(data, nID)
		if err != nil {
			return err
		}
		leafHashes = append(leafHashes, leafHash)
	}
	return NewVerifier(nth).CheckRangeProof(root, leafHashes, p.Siblings(), int(p.Start()))
}

// VerifyCompleteNamespace verifies that rawLeaves are all the leaves of
// namespace nID in the tree with the given root. For an absence proof it
// verifies that the namespace has no leaves.
func (p *NamespaceProof) VerifyCompleteNamespace(h *NmtHasher, root NamespacedHash, rawLeaves [][]byte, nID namespace.ID) error {
	if p.IsOfPresence() && len(rawLeaves) != p.rangeLen() {
		return merkle.ErrWrongAmountOfLeavesProvided
	}
	return NewVerifier(h.WithIgnoreMaxNs(p.ignoreMaxNs)).VerifyNamespace(root, rawLeaves, nID, p)
}

// ConvertToAbsenceProof turns a presence proof into an absence proof with
// the given leaf, keeping its range proof and max namespace policy. It is a
// no-op on an absence proof.
func (p *NamespaceProof) ConvertToAbsenceProof(leaf NamespacedHash) {
	switch p.kind {
	case absenceProof:
	case presenceProof:
		pf := p.proof
		p.proof = merkle.RangeProof[NamespacedHash]{}
		*p = NewAbsenceProof(pf, p.ignoreMaxNs, &leaf)
	default:
		panic(fmt.Sprintf("unknown namespace proof kind: %v", p.kind))
	}
}

// IsOfAbsence returns true if this proof proves the absence
// of leaves of a namespace in the tree.
func (p *NamespaceProof) IsOfAbsence() bool {
	switch p.kind {
	case absenceProof:
		return true
	case presenceProof:
		return false
	default:
		panic(fmt.Sprintf("unknown namespace proof kind: %v", p.kind))
	}
}

// IsOfPresence returns true if this proof proves the presence of a
// namespace's leaves.
func (p *NamespaceProof) IsOfPresence() bool {
	return !p.IsOfAbsence()
}

// IsMaxNamespaceIgnored returns the max namespace policy of the tree the
// proof was generated from.
func (p *NamespaceProof) IsMaxNamespaceIgnored() bool {
	return p.ignoreMaxNs
}

// Leaf returns the leaf hash of an absence proof. It returns false for
// presence proofs and for absence proofs of namespaces outside the tree's
// namespace range.
func (p *NamespaceProof) Leaf() (NamespacedHash, bool) {
	if p.leaf == nil {
		return NamespacedHash{}, false
	}
	return *p.leaf, true
}

// RangeProof returns the underlying range proof.
func (p *NamespaceProof) RangeProof() merkle.RangeProof[NamespacedHash] {
	return p.proof
}

// Siblings returns the proof nodes that together with the corresponding
// leaf values can be used to recompute the root.
func (p *NamespaceProof) Siblings() []NamespacedHash {
	return p.proof.Siblings()
}

// Start index of this proof.
func (p *NamespaceProof) Start() uint32 {
	return p.proof.Start()
}

// End index of this proof.
func (p *NamespaceProof) End() uint32 {
	return p.proof.End()
}

func (p *NamespaceProof) rangeLen() int {
	return p.proof.RangeLen()
}

// LeftmostRightSibling returns the proof node adjacent to the right end of
// the proven range.
func (p *NamespaceProof) LeftmostRightSibling() (NamespacedHash, bool) {
	return p.proof.LeftmostRightSibling()
}

// RightmostLeftSibling returns the proof node adjacent to the left end of
// the proven range.
func (p *NamespaceProof) RightmostLeftSibling() (NamespacedHash, bool) {
	return p.proof.RightmostLeftSibling()
}

func (p *NamespaceProof) String() string {
	return fmt.Sprintf("%v proof [%d, %d) with %d siblings", p.kind, p.Start(), p.End(), len(p.Siblings()))
}
