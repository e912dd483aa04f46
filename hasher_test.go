package nmtproof

import (
	"crypto"
	"crypto/sha256"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/nmtproof/namespace"
)

const testNamespaceLen = 8

// defaultHasher uses sha256 as a base-hasher, 8 bytes for the namespace IDs and
// ignores the maximum possible namespace.
var defaultHasher = DefaultNmtHasher(testNamespaceLen)

func Test_namespacedTreeHasher_HashLeaf(t *testing.T) {
	zeroNID := namespace.ID{0}
	oneNID := namespace.ID{1}
	longNID := namespace.ID("namespace")

	defaultRawData := []byte("a blockchain is a chain of blocks")

	tests := []struct {
		name  string
		nsLen namespace.IDSize
		nID   namespace.ID
		data  []byte
		want  []byte
	}{
		{"1 byte namespaced empty leaf", 1, zeroNID, nil,
			concat(zeroNID, zeroNID, sum(crypto.SHA256, []byte{LeafPrefix}, zeroNID))},
		{"1 byte namespaced empty leaf", 1, oneNID, []byte{},
			concat(oneNID, oneNID, sum(crypto.SHA256, []byte{LeafPrefix}, oneNID))},
		{"1 byte namespaced leaf with data", 1, oneNID, defaultRawData,
			concat(oneNID, oneNID, sum(crypto.SHA256, []byte{LeafPrefix}, oneNID, defaultRawData))},
		{"namespaced leaf with data", 9, longNID, defaultRawData,
			concat(longNID, longNID, sum(crypto.SHA256, []byte{LeafPrefix}, longNID, defaultRawData))},
		{"namespaced empty leaf", 9, longNID, nil,
			concat(longNID, longNID, sum(crypto.SHA256, []byte{LeafPrefix}, longNID))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNmtHasher(sha256.New, tt.nsLen, false)
			got, err := n.HashLeaf(tt.data, tt.nID)
			require.NoError(t, err)
			if !reflect.DeepEqual(got.Bytes(), tt.want) {
				t.Errorf("HashLeaf() = %x, want %x", got.Bytes(), tt.want)
			}
		})
	}
}

func TestHashLeaf_MismatchedNamespaceSize(t *testing.T) {
	_, err := defaultHasher.HashLeaf([]byte("data"), namespace.ID{1, 2, 3})
	require.ErrorIs(t, err, ErrMismatchedNamespaceSize)
}

func TestHashLeaf_DoesNotAliasNamespace(t *testing.T) {
	nID := namespace.ID{0, 0, 0, 0, 0, 0, 0, 1}
	got, err := defaultHasher.HashLeaf([]byte("data"), nID)
	require.NoError(t, err)
	nID[7] = 2
	assert.Equal(t, namespace.ID{0, 0, 0, 0, 0, 0, 0, 1}, got.Min())
	assert.Equal(t, namespace.ID{0, 0, 0, 0, 0, 0, 0, 1}, got.Max())
}

func Test_namespacedTreeHasher_HashNode(t *testing.T) {
	type children struct {
		l []byte
		r []byte
	}

	// children are min || max || sha256 digest
	digest := sum(crypto.SHA256)
	node := func(ns ...byte) []byte { return concat(ns, digest) }

	tests := []struct {
		name     string
		nidLen   namespace.IDSize
		children children
		wantNs   []byte
	}{
		{
			"leftmin<rightmin && leftmax<rightmax", 2,
			children{node(0, 0, 0, 0), node(1, 1, 1, 1)},
			[]byte{0, 0, 1, 1},
		},
		{
			"leftmin==rightmin && leftmax<rightmax", 2,
			children{node(0, 0, 0, 0), node(0, 0, 1, 1)},
			[]byte{0, 0, 1, 1},
		},
		{
			"leftmax==rightmin", 1,
			children{node(0, 3), node(3, 5)},
			[]byte{0, 5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNmtHasher(sha256.New, tt.nidLen, false)
			left, err := NamespacedHashFromBytes(tt.nidLen, tt.children.l)
			require.NoError(t, err)
			right, err := NamespacedHashFromBytes(tt.nidLen, tt.children.r)
			require.NoError(t, err)

			got, err := n.HashNode(left, right)
			require.NoError(t, err)
			want := concat(tt.wantNs, sum(crypto.SHA256, []byte{NodePrefix}, tt.children.l, tt.children.r))
			if !reflect.DeepEqual(got.Bytes(), want) {
				t.Errorf("HashNode() = %x, want %x", got.Bytes(), want)
			}
		})
	}
}

func TestHashNode_Errors(t *testing.T) {
	digest := sum(crypto.SHA256)
	mk := func(min, max byte, d []byte) NamespacedHash {
		return NewNamespacedHash(namespace.ID{min}, namespace.ID{max}, d)
	}
	n := NewNmtHasher(sha256.New, 1, false)

	tests := []struct {
		name        string
		left, right NamespacedHash
		wantErr     error
	}{
		{"unordered siblings", mk(2, 3, digest), mk(1, 2, digest), ErrUnorderedSiblings},
		{"left overlaps right", mk(0, 3, digest), mk(2, 4, digest), ErrUnorderedSiblings},
		{"short digest", mk(0, 0, digest[:5]), mk(1, 1, digest), ErrInvalidNodeLen},
		{"wrong namespace size", NewNamespacedHash(namespace.ID{0, 0}, namespace.ID{0, 0}, digest), mk(1, 1, digest), ErrInvalidNodeLen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.HashNode(tt.left, tt.right)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHashNode_IgnoreMaxNamespace(t *testing.T) {
	const nsLen = 1
	digest := sum(crypto.SHA256)
	maxNs := byte(0xFF)
	mk := func(min, max byte) NamespacedHash {
		return NewNamespacedHash(namespace.ID{min}, namespace.ID{max}, digest)
	}

	tests := []struct {
		name        string
		ignoreMaxNs bool
		left, right NamespacedHash
		wantMin     byte
		wantMax     byte
	}{
		{"ignored: right is max ns", true, mk(1, 2), mk(maxNs, maxNs), 1, 2},
		{"ignored: both max ns", true, mk(maxNs, maxNs), mk(maxNs, maxNs), maxNs, maxNs},
		{"ignored: no max ns", true, mk(1, 2), mk(3, 4), 1, 4},
		{"ignored: right ends with max ns", true, mk(1, 2), mk(3, maxNs), 1, maxNs},
		{"not ignored: right is max ns", false, mk(1, 2), mk(maxNs, maxNs), 1, maxNs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNmtHasher(sha256.New, nsLen, tt.ignoreMaxNs)
			got, err := n.HashNode(tt.left, tt.right)
			require.NoError(t, err)
			assert.Equal(t, namespace.ID{tt.wantMin}, got.Min())
			assert.Equal(t, namespace.ID{tt.wantMax}, got.Max())
		})
	}
}

func TestNmtHasher_WithIgnoreMaxNs(t *testing.T) {
	h := NewNmtHasher(sha256.New, 4, false)
	ignoring := h.WithIgnoreMaxNs(true)
	assert.True(t, ignoring.IsMaxNamespaceIDIgnored())
	assert.False(t, h.IsMaxNamespaceIDIgnored())
	assert.Equal(t, h.NamespaceSize(), ignoring.NamespaceSize())
	assert.Equal(t, sha256.Size+8, ignoring.Size())
	assert.True(t, h.EmptyRoot().Equal(ignoring.EmptyRoot()))
}

func TestNmtHasher_EmptyRoot(t *testing.T) {
	root := defaultHasher.EmptyRoot()
	want := concat(make([]byte, 2*testNamespaceLen), sum(crypto.SHA256))
	assert.Equal(t, want, root.Bytes())
	assert.True(t, defaultHasher.IsEmptyRoot(root))

	leaf, err := defaultHasher.HashLeaf(nil, namespace.MinID(testNamespaceLen))
	require.NoError(t, err)
	assert.False(t, defaultHasher.IsEmptyRoot(leaf))
}

func TestNamespacedHashFromBytes(t *testing.T) {
	tests := []struct {
		name        string
		nIDLen      namespace.IDSize
		digestBytes []byte
		wantErr     bool
	}{
		{"empty digest", 1, []byte(nil), true},
		{"too short digest", 1, []byte{1}, true},
		{"too short digest", 2, []byte{1, 1}, true},
		{"namespaces only", 1, []byte{1, 2}, false},
		{"with digest", 1, []byte{1, 2, 3, 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamespacedHashFromBytes(tt.nIDLen, tt.digestBytes)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidNodeLen)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.digestBytes, got.Bytes())
		})
	}
}

func TestNamespacedHash_String(t *testing.T) {
	tests := []struct {
		name string
		d    NamespacedHash
		want string
	}{
		{"empty", NewNamespacedHash([]byte{0}, []byte{1}, []byte{}), "{\n  min: 00\n  max: 01\n  digest: \n}"},
		{"simple", NewNamespacedHash([]byte{0}, []byte{1}, []byte{1, 0, 0}), "{\n  min: 00\n  max: 01\n  digest: 010000\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNamespacedHash_Contains(t *testing.T) {
	d := NewNamespacedHash(namespace.ID{2}, namespace.ID{4}, nil)
	assert.False(t, d.Contains(namespace.ID{1}))
	assert.True(t, d.Contains(namespace.ID{2}))
	assert.True(t, d.Contains(namespace.ID{3}))
	assert.True(t, d.Contains(namespace.ID{4}))
	assert.False(t, d.Contains(namespace.ID{5}))
}

func sum(hash crypto.Hash, data ...[]byte) []byte {
	h := hash.New()
	for _, d := range data {
		//nolint:errcheck
		h.Write(d)
	}

	return h.Sum(nil)
}

func concat(parts ...[]byte) []byte {
	var res []byte
	for _, p := range parts {
		res = append(res, p...)
	}
	return res
}
