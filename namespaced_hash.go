package nmtproof

import (
	"bytes"
	"fmt"

	"github.com/celestiaorg/nmtproof/namespace"
)

// NamespacedHash is the digest of an NMT node: the hash of the node together
// with the minimum and maximum namespace ID found in the subtree it roots.
type NamespacedHash struct {
	min    namespace.ID
	max    namespace.ID
	digest []byte
}

// NewNamespacedHash returns the digest with the given namespace range.
func NewNamespacedHash(min, max namespace.ID, digest []byte) NamespacedHash {
	return NamespacedHash{min: min, max: max, digest: digest}
}

// NamespacedHashFromBytes is the inverse function to NamespacedHash.Bytes().
// In other words, it assumes that the passed in digestBytes are of the form
// d.Min() || d.Max() || d.Hash() for a NamespacedHash d.
func NamespacedHashFromBytes(nIDLen namespace.IDSize, digestBytes []byte) (NamespacedHash, error) {
	if len(digestBytes) < int(2*nIDLen) {
		return NamespacedHash{}, fmt.Errorf("%w: got: %v, want >= %v", ErrInvalidNodeLen, len(digestBytes), 2*int(nIDLen))
	}
	b := bytes.Clone(digestBytes)
	return NamespacedHash{
		min:    b[:nIDLen:nIDLen],
		max:    b[nIDLen : 2*nIDLen : 2*nIDLen],
		digest: b[2*nIDLen:],
	}, nil
}

func (d NamespacedHash) Min() namespace.ID {
	return d.min
}

func (d NamespacedHash) Max() namespace.ID {
	return d.max
}

// Hash returns the digest without the namespace range.
func (d NamespacedHash) Hash() []byte {
	return d.digest
}

// Bytes returns min || max || hash.
func (d NamespacedHash) Bytes() []byte {
	res := make([]byte, 0, len(d.min)+len(d.max)+len(d.digest))
	res = append(res, d.min...)
	res = append(res, d.max...)
	return append(res, d.digest...)
}

// Equal reports whether both digests have the same namespace range and hash.
func (d NamespacedHash) Equal(other NamespacedHash) bool {
	return d.min.Equal(other.min) && d.max.Equal(other.max) && bytes.Equal(d.digest, other.digest)
}

// Contains reports whether nID lies within the namespace range of d.
func (d NamespacedHash) Contains(nID namespace.ID) bool {
	return d.min.LessOrEqual(nID) && nID.LessOrEqual(d.max)
}

func (d NamespacedHash) String() string {
	return fmt.Sprintf(
		`{
  min: %x
  max: %x
  digest: %x
}`, []byte(d.min), []byte(d.max), d.digest)
}
