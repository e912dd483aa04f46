package merkle

// Digest is the constraint on the hash values a tree is built from.
type Digest[D any] interface {
	Equal(other D) bool
}

// Hasher combines digests into parent digests. Leaf hashing is not part of
// this contract: range proofs are verified against leaf hashes.
type Hasher[D any] interface {
	// HashNode returns the digest of the parent of left and right. It may
	// reject children that can not be siblings.
	HashNode(left, right D) (D, error)
	// EmptyRoot returns the root of a tree without leaves.
	EmptyRoot() D
}
