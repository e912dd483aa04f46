package nmtproof

import (
	"bytes"
	"errors"
	"fmt"
	"hash"

	sha256simd "github.com/minio/sha256-simd"

	"github.com/celestiaorg/nmtproof/merkle"
	"github.com/celestiaorg/nmtproof/namespace"
)

const (
	LeafPrefix = 0
	NodePrefix = 1
)

var _ merkle.Hasher[NamespacedHash] = (*NmtHasher)(nil)

var (
	ErrUnorderedSiblings       = errors.New("NMT sibling nodes should be ordered lexicographically by namespace IDs")
	ErrInvalidNodeLen          = errors.New("invalid NMT node size")
	ErrMismatchedNamespaceSize = errors.New("mismatching namespace sizes")
)

// NmtHasher computes the namespaced hashes of NMT leaves and inner nodes.
// A single NmtHasher is not safe for concurrent use; WithIgnoreMaxNs returns
// an independent instance.
type NmtHasher struct {
	newBase    func() hash.Hash
	baseHasher hash.Hash
	// NamespaceLen is the size of the namespace IDs of every leaf and node.
	NamespaceLen namespace.IDSize

	// The "ignoreMaxNs" flag influences the calculation of the namespace ID
	// range for intermediate nodes in the tree i.e., HashNode method. This flag
	// signals that, when determining the upper limit of the namespace ID range
	// for a tree node, the maximum possible namespace ID (equivalent to
	// "NamespaceLen" bytes of 0xFF, or 2^NamespaceLen-1) should be omitted if
	// feasible. For a more in-depth understanding of this field, refer to the
	// "HashNode".
	ignoreMaxNs      bool
	precomputedMaxNs namespace.ID
}

// NewNmtHasher returns a hasher that builds on the base hash returned by
// newBase.
func NewNmtHasher(newBase func() hash.Hash, nidLen namespace.IDSize, ignoreMaxNamespace bool) *NmtHasher {
	return &NmtHasher{
		newBase:          newBase,
		baseHasher:       newBase(),
		NamespaceLen:     nidLen,
		ignoreMaxNs:      ignoreMaxNamespace,
		precomputedMaxNs: namespace.MaxID(nidLen),
	}
}

// DefaultNmtHasher uses sha256 as a base-hasher and ignores the maximum
// possible namespace.
func DefaultNmtHasher(nidLen namespace.IDSize) *NmtHasher {
	return NewNmtHasher(sha256simd.New, nidLen, true)
}

// WithIgnoreMaxNs returns a new hasher with the same base hash and namespace
// size, configured with the given max namespace policy.
func (n *NmtHasher) WithIgnoreMaxNs(ignore bool) *NmtHasher {
	return NewNmtHasher(n.newBase, n.NamespaceLen, ignore)
}

func (n *NmtHasher) IsMaxNamespaceIDIgnored() bool {
	return n.ignoreMaxNs
}

func (n *NmtHasher) NamespaceSize() namespace.IDSize {
	return n.NamespaceLen
}

// Size returns the number of bytes of a serialized namespaced hash.
func (n *NmtHasher) Size() int {
	return n.baseHasher.Size() + int(n.NamespaceLen)*2
}

// EmptyRoot returns the root of a tree without leaves: both namespaces are
// zero and the digest is the hash of no data.
func (n *NmtHasher) EmptyRoot() NamespacedHash {
	h := n.baseHasher
	h.Reset()
	emptyNs := namespace.MinID(n.NamespaceLen)
	return NewNamespacedHash(emptyNs, emptyNs, h.Sum(nil))
}

func (n *NmtHasher) IsEmptyRoot(root NamespacedHash) bool {
	return root.Equal(n.EmptyRoot())
}

// HashLeaf computes namespace hash of the leaf data under namespace nID as
// nID || nID || hash(leafPrefix || nID || data). Note that for leaves
// minNs = maxNs = nID.
func (n *NmtHasher) HashLeaf(data []byte, nID namespace.ID) (NamespacedHash, error) {
	if err := nID.Validate(n.NamespaceLen); err != nil {
		return NamespacedHash{}, fmt.Errorf("%w: %w", ErrMismatchedNamespaceSize, err)
	}
	h := n.baseHasher
	h.Reset()

	leafPrefixedNData := make([]byte, 0, 1+len(nID)+len(data))
	leafPrefixedNData = append(leafPrefixedNData, LeafPrefix)
	leafPrefixedNData = append(leafPrefixedNData, nID...)
	leafPrefixedNData = append(leafPrefixedNData, data...)
	//nolint:errcheck
	h.Write(leafPrefixedNData)

	ns := bytes.Clone(nID)
	return NewNamespacedHash(ns, ns, h.Sum(nil)), nil
}

// ValidateNodeFormat checks whether the supplied node conforms to the
// namespaced hash format of this hasher. It returns ErrInvalidNodeLen if
// either namespace or the digest has the wrong size.
func (n *NmtHasher) ValidateNodeFormat(node NamespacedHash) error {
	if node.Min().Size() != n.NamespaceLen || node.Max().Size() != n.NamespaceLen {
		return fmt.Errorf("%w: namespace sizes %v and %v, want %v",
			ErrInvalidNodeLen, node.Min().Size(), node.Max().Size(), n.NamespaceLen)
	}
	if len(node.Hash()) != n.baseHasher.Size() {
		return fmt.Errorf("%w: digest size %v, want %v", ErrInvalidNodeLen, len(node.Hash()), n.baseHasher.Size())
	}
	return nil
}

// validateSiblingsNamespaceOrder checks whether left and right as two sibling
// nodes in an NMT have correct namespace IDs relative to each other, more
// specifically, the maximum namespace ID of the left sibling should not exceed
// the minimum namespace ID of the right sibling.
func (n *NmtHasher) validateSiblingsNamespaceOrder(left, right NamespacedHash) error {
	if right.Min().Less(left.Max()) {
		return fmt.Errorf("%w: the maximum namespace of the left child %x is greater than the min namespace of the right child %x",
			ErrUnorderedSiblings, []byte(left.Max()), []byte(right.Min()))
	}
	return nil
}

// ValidateNodes verifies whether left and right comply with the namespaced
// hash format and are correctly ordered according to their namespace IDs.
func (n *NmtHasher) ValidateNodes(left, right NamespacedHash) error {
	if err := n.ValidateNodeFormat(left); err != nil {
		return err
	}
	if err := n.ValidateNodeFormat(right); err != nil {
		return err
	}
	return n.validateSiblingsNamespaceOrder(left, right)
}

// HashNode calculates a namespaced hash of a node using the supplied left and
// right children. By default, the namespace range of the result is
// min(left.minNID, right.minNID) || max(left.maxNID, right.maxNID) and the
// digest is H(NodePrefix || left || right), with both children serialized as
// minNID || maxNID || hash. If the hasher ignores the maximum namespace, the
// maximum possible namespace ID is left out of the upper bound whenever the
// children hold any other namespace.
func (n *NmtHasher) HashNode(left, right NamespacedHash) (NamespacedHash, error) {
	if err := n.ValidateNodes(left, right); err != nil {
		return NamespacedHash{}, err
	}
	h := n.baseHasher
	h.Reset()

	leftMinNs, leftMaxNs := left.Min(), left.Max()
	rightMinNs, rightMaxNs := right.Min(), right.Max()

	minNs := min(leftMinNs, rightMinNs)
	var maxNs namespace.ID
	if n.ignoreMaxNs && n.precomputedMaxNs.Equal(leftMinNs) {
		maxNs = n.precomputedMaxNs
	} else if n.ignoreMaxNs && n.precomputedMaxNs.Equal(rightMinNs) {
		maxNs = leftMaxNs
	} else {
		maxNs = max(leftMaxNs, rightMaxNs)
	}

	// Note this seems a little faster than calling several Write()s on the
	// underlying Hash function (see:
	// https://github.com/google/trillian/pull/1503):
	l, r := left.Bytes(), right.Bytes()
	data := make([]byte, 0, 1+len(l)+len(r))
	data = append(data, NodePrefix)
	data = append(data, l...)
	data = append(data, r...)
	//nolint:errcheck
	h.Write(data)
	return NewNamespacedHash(bytes.Clone(minNs), bytes.Clone(maxNs), h.Sum(nil)), nil
}

func max(ns namespace.ID, ns2 namespace.ID) namespace.ID {
	if bytes.Compare(ns, ns2) >= 0 {
		return ns
	}
	return ns2
}

func min(ns namespace.ID, ns2 namespace.ID) namespace.ID {
	if bytes.Compare(ns, ns2) <= 0 {
		return ns
	}
	return ns2
}
