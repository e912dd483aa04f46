// Package nmtproof verifies proofs against the root of a namespaced Merkle
// tree (NMT).
//
// Every node of an NMT carries the minimum and maximum namespace ID of the
// leaves below it. A NamespaceProof either proves that a range of leaves is
// the complete set of leaves of a namespace, or that a namespace has no
// leaves in the tree at all. Proofs are checked with
// NamespaceProof.VerifyRange and NamespaceProof.VerifyCompleteNamespace
// against a trusted root; this package does not build trees.
package nmtproof
