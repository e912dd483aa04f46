package storage

const (
	// redefined here to prevent import cycle:
	leafPrefix = 0
)

// NodeStore persists tree nodes keyed by their hash. The value is the
// prefixed preimage of the node (leafPrefix || data for leaves).
type NodeStore interface {
	Put(key []byte, val []byte)
	Get(key []byte) []byte
}

var (
	_ NodeStore = NoopStore{}
	_ NodeStore = &InMemoryNodeStore{}
)

// NoopStore discards every write and never finds anything. It backs tree
// handles that only verify proofs and hold no nodes.
type NoopStore struct{}

func (NoopStore) Put([]byte, []byte) {}

func (NoopStore) Get([]byte) []byte { return nil }

// InMemoryNodeStore keeps all nodes in a map and remembers the leaf hashes in
// insertion order.
type InMemoryNodeStore struct {
	nodes map[string][]byte
	// This is only to traverse the nodes in insertion order.
	leafHashes [][]byte
	keys       [][]byte
}

func NewInMemoryNodeStore() *InMemoryNodeStore {
	return &InMemoryNodeStore{
		nodes: make(map[string][]byte),
		keys:  make([][]byte, 0),
	}
}

func (i *InMemoryNodeStore) Get(key []byte) []byte {
	return i.nodes[string(key)]
}

func (i *InMemoryNodeStore) Put(key, val []byte) {
	_, present := i.nodes[string(key)]
	i.nodes[string(key)] = val
	if !present {
		if i.isLeaf(val) {
			i.leafHashes = append(i.leafHashes, key)
		} else {
			i.keys = append(i.keys, key)
		}
	}
}

// LeafHashes returns the keys of all stored leaves in insertion order.
func (i *InMemoryNodeStore) LeafHashes() [][]byte {
	return i.leafHashes
}

func (i *InMemoryNodeStore) isLeaf(val []byte) bool {
	if len(val) == 0 { // base case
		return true
	}
	return val[0] == leafPrefix
}

// Count returns the number of distinct nodes stored.
func (i *InMemoryNodeStore) Count() int {
	return len(i.nodes)
}
