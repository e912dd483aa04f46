// Package nmttest contains a simple in-memory namespaced Merkle tree that
// produces roots and proofs for tests of the verification code. It keeps all
// leaves in memory and recomputes subtrees on demand.
package nmttest

import (
	"errors"
	"fmt"
	"math/bits"
	"sort"

	"github.com/celestiaorg/nmtproof"
	"github.com/celestiaorg/nmtproof/merkle"
	"github.com/celestiaorg/nmtproof/namespace"
	"github.com/celestiaorg/nmtproof/storage"
)

var (
	ErrInvalidPushOrder = errors.New("pushed data has to be lexicographically ordered by namespace IDs")
	ErrInvalidRange     = errors.New("invalid leaf range")
)

type Options struct {
	InitialCapacity    int
	NamespaceIDSize    namespace.IDSize
	IgnoreMaxNamespace bool
	NodeStore          storage.NodeStore
}

type Option func(*Options)

// InitialCapacity sets the capacity of the internally used slice(s) to
// the passed in initial value (defaults is 128).
func InitialCapacity(cap int) Option {
	if cap < 0 {
		panic("Got invalid capacity. Expected int greater or equal to 0.")
	}
	return func(opts *Options) {
		opts.InitialCapacity = cap
	}
}

// NamespaceIDSize sets the size of namespace IDs (in bytes) used by this tree.
// Defaults to 8 bytes.
func NamespaceIDSize(size int) Option {
	if size < 0 || size > namespace.IDMaxSize {
		panic("Got invalid namespace.IDSize. Expected 0 <= size <= namespace.IDMaxSize.")
	}
	return func(opts *Options) {
		opts.NamespaceIDSize = namespace.IDSize(size)
	}
}

// IgnoreMaxNamespace sets whether the largest possible namespace.ID MAX_NID
// should be 'ignored' when computing the namespace range of inner nodes.
// Defaults to true.
func IgnoreMaxNamespace(ignore bool) Option {
	return func(opts *Options) {
		opts.IgnoreMaxNamespace = ignore
	}
}

// NodeStore sets the store every computed node is written to.
func NodeStore(store storage.NodeStore) Option {
	return func(opts *Options) {
		opts.NodeStore = store
	}
}

type leafRange struct {
	start, end int
}

// Tree is an append-only namespaced Merkle tree.
type Tree struct {
	hasher          *nmtproof.NmtHasher
	ignoreMaxNs     bool
	leaves          []namespace.PrefixedData
	leafHashes      []nmtproof.NamespacedHash
	namespaceRanges map[string]leafRange
	store           storage.NodeStore
}

func New(setters ...Option) *Tree {
	// default options:
	opts := &Options{
		InitialCapacity:    128,
		NamespaceIDSize:    8,
		IgnoreMaxNamespace: true,
	}
	for _, setter := range setters {
		setter(opts)
	}
	if opts.NodeStore == nil {
		opts.NodeStore = storage.NewInMemoryNodeStore()
	}
	return &Tree{
		hasher:          nmtproof.DefaultNmtHasher(opts.NamespaceIDSize).WithIgnoreMaxNs(opts.IgnoreMaxNamespace),
		ignoreMaxNs:     opts.IgnoreMaxNamespace,
		leaves:          make([]namespace.PrefixedData, 0, opts.InitialCapacity),
		leafHashes:      make([]nmtproof.NamespacedHash, 0, opts.InitialCapacity),
		namespaceRanges: make(map[string]leafRange),
		store:           opts.NodeStore,
	}
}

// Hasher returns the hasher the tree was built with.
func (t *Tree) Hasher() *nmtproof.NmtHasher {
	return t.hasher
}

// Size returns the number of leaves.
func (t *Tree) Size() int {
	return len(t.leaves)
}

// Push adds data with the corresponding namespace ID to the tree. Leaves
// have to be pushed in namespace order.
func (t *Tree) Push(id namespace.ID, data []byte) error {
	nidSize := t.hasher.NamespaceSize()
	if id.Size() != nidSize {
		return fmt.Errorf("%w: got: %v, want: %v", nmtproof.ErrMismatchedNamespaceSize, id.Size(), nidSize)
	}
	if curSize := len(t.leaves); curSize > 0 {
		last := t.leaves[curSize-1].NamespaceID()
		if id.Less(last) {
			return fmt.Errorf("%w: last namespace: %x, pushed: %x", ErrInvalidPushOrder, []byte(last), []byte(id))
		}
	}
	leaf := namespace.PrefixedDataFrom(id, data)
	leafHash, err := t.hasher.HashLeaf(leaf.Data(), leaf.NamespaceID())
	if err != nil {
		return err
	}
	t.store.Put(leafHash.Bytes(), append([]byte{nmtproof.LeafPrefix}, leaf.Bytes()...))
	t.leaves = append(t.leaves, leaf)
	t.leafHashes = append(t.leafHashes, leafHash)
	t.updateNamespaceRanges()
	return nil
}

func (t *Tree) updateNamespaceRanges() {
	lastIndex := len(t.leaves) - 1
	lastNsStr := string(t.leaves[lastIndex].NamespaceID())
	lastRange, found := t.namespaceRanges[lastNsStr]
	if !found {
		t.namespaceRanges[lastNsStr] = leafRange{start: lastIndex, end: lastIndex + 1}
	} else {
		t.namespaceRanges[lastNsStr] = leafRange{start: lastRange.start, end: lastRange.end + 1}
	}
}

// Root returns the namespaced root of the tree.
func (t *Tree) Root() nmtproof.NamespacedHash {
	if len(t.leafHashes) == 0 {
		return t.hasher.EmptyRoot()
	}
	return t.computeRoot(0, len(t.leafHashes))
}

// LeafHashes returns the namespaced hashes of all leaves in order.
func (t *Tree) LeafHashes() []nmtproof.NamespacedHash {
	return t.leafHashes
}

// Get returns the data of all leaves of namespace nID without the
// namespace prefix.
func (t *Tree) Get(nID namespace.ID) [][]byte {
	rng, found := t.namespaceRanges[string(nID)]
	if !found {
		return nil
	}
	return t.RawLeaves(rng.start, rng.end)
}

// RawLeaves returns the data of the leaves in [start, end) without the
// namespace prefix.
func (t *Tree) RawLeaves(start, end int) [][]byte {
	res := make([][]byte, 0, end-start)
	for _, leaf := range t.leaves[start:end] {
		res = append(res, leaf.Data())
	}
	return res
}

// Namespaces returns the distinct namespaces of the tree in order.
func (t *Tree) Namespaces() []namespace.ID {
	res := make([]namespace.ID, 0, len(t.namespaceRanges))
	for ns := range t.namespaceRanges {
		res = append(res, namespace.ID(ns))
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Less(res[j]) })
	return res
}

// ProveRange returns a presence proof of the leaves in [start, end).
func (t *Tree) ProveRange(start, end int) (nmtproof.NamespaceProof, error) {
	if start < 0 || start >= end || end > len(t.leaves) {
		return nmtproof.NamespaceProof{}, fmt.Errorf("%w: [%d, %d) of %d leaves", ErrInvalidRange, start, end, len(t.leaves))
	}
	return nmtproof.NewPresenceProof(t.buildRangeProof(start, end), t.ignoreMaxNs), nil
}

// ProveNamespace returns a proof for the given namespace.
//
// In case the tree contains leaves with the given namespace their range is
// proven. If the namespace is within the range of the root but absent, the
// proof covers the first leaf with a bigger namespace and carries its hash.
// Outside the root's range an absence proof with an empty range and no leaf
// is returned.
func (t *Tree) ProveNamespace(nID namespace.ID) (nmtproof.NamespaceProof, error) {
	if nID.Size() != t.hasher.NamespaceSize() {
		return nmtproof.NamespaceProof{}, fmt.Errorf("%w: got: %v, want: %v", nmtproof.ErrMismatchedNamespaceSize, nID.Size(), t.hasher.NamespaceSize())
	}
	root := t.Root()
	if len(t.leaves) == 0 || !root.Contains(nID) {
		return nmtproof.NewAbsenceProof(merkle.RangeProof[nmtproof.NamespacedHash]{}, t.ignoreMaxNs, nil), nil
	}
	if rng, found := t.namespaceRanges[string(nID)]; found {
		return t.ProveRange(rng.start, rng.end)
	}

	// build the proof as if the namespace was present at the position of
	// the first bigger leaf, then turn it into an absence proof
	idx := t.calculateAbsenceIndex(nID)
	proof, err := t.ProveRange(idx, idx+1)
	if err != nil {
		return nmtproof.NamespaceProof{}, err
	}
	proof.ConvertToAbsenceProof(t.leafHashes[idx])
	return proof, nil
}

func (t *Tree) calculateAbsenceIndex(nID namespace.ID) int {
	return sort.Search(len(t.leaves), func(i int) bool {
		return nID.Less(t.leaves[i].NamespaceID())
	})
}

func (t *Tree) buildRangeProof(start, end int) merkle.RangeProof[nmtproof.NamespacedHash] {
	var siblings []nmtproof.NamespacedHash
	var collect func(lo, hi int)
	collect = func(lo, hi int) {
		if hi <= start || lo >= end {
			siblings = append(siblings, t.computeRoot(lo, hi))
			return
		}
		if hi-lo == 1 {
			return
		}
		k := getSplitPoint(hi - lo)
		collect(lo, lo+k)
		collect(lo+k, hi)
	}
	collect(0, len(t.leafHashes))
	return merkle.NewRangeProof(siblings, uint32(start), uint32(end))
}

func (t *Tree) computeRoot(start, end int) nmtproof.NamespacedHash {
	if end-start == 1 {
		return t.leafHashes[start]
	}
	k := getSplitPoint(end - start)
	left := t.computeRoot(start, start+k)
	right := t.computeRoot(start+k, end)
	parent, err := t.hasher.HashNode(left, right)
	if err != nil {
		// leaves are pushed in order, so siblings are always ordered
		panic(err)
	}
	t.store.Put(parent.Bytes(), append(append([]byte{nmtproof.NodePrefix}, left.Bytes()...), right.Bytes()...))
	return parent
}

func getSplitPoint(length int) int {
	if length < 1 {
		panic("Trying to split a tree with size < 1")
	}
	bitlen := bits.Len(uint(length))
	k := 1 << uint(bitlen-1)
	if k == length {
		k >>= 1
	}
	return k
}
