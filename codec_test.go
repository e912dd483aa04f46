package nmtproof_test

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/celestiaorg/nmtproof"
	"github.com/celestiaorg/nmtproof/namespace"
	"github.com/celestiaorg/nmtproof/pb"
)

func codecTestProofs(t *testing.T) map[string]nmtproof.NamespaceProof {
	t.Helper()
	tree := newTestTree(t, true, 1, 1, 2, 4, 4, 4, 6)
	prove := func(ns byte) nmtproof.NamespaceProof {
		proof, err := tree.ProveNamespace(namespace.ID{ns})
		require.NoError(t, err)
		return proof
	}
	return map[string]nmtproof.NamespaceProof{
		"presence":             prove(4),
		"presence single leaf": prove(2),
		"absence with leaf":    prove(3),
		"absence without leaf": prove(9),
		"zero value":           {},
	}
}

func requireSameProof(t *testing.T, want, got nmtproof.NamespaceProof) {
	t.Helper()
	require.Equal(t, want.IsOfAbsence(), got.IsOfAbsence())
	require.Equal(t, want.IsMaxNamespaceIgnored(), got.IsMaxNamespaceIgnored())
	require.Equal(t, want.Start(), got.Start())
	require.Equal(t, want.End(), got.End())
	require.Len(t, got.Siblings(), len(want.Siblings()))
	for i := range want.Siblings() {
		require.True(t, want.Siblings()[i].Equal(got.Siblings()[i]), "sibling %d", i)
	}
	wantLeaf, wantOk := want.Leaf()
	gotLeaf, gotOk := got.Leaf()
	require.Equal(t, wantOk, gotOk)
	if wantOk {
		require.True(t, wantLeaf.Equal(gotLeaf))
	}
}

func TestNamespaceProof_ProtoRoundTrip(t *testing.T) {
	for name, proof := range codecTestProofs(t) {
		t.Run(name, func(t *testing.T) {
			bz, err := proof.MarshalProto()
			require.NoError(t, err)
			got, err := nmtproof.UnmarshalNamespaceProof(bz, 1)
			require.NoError(t, err)
			requireSameProof(t, proof, got)
		})
	}
}

func TestNamespaceProof_JSONRoundTrip(t *testing.T) {
	for name, proof := range codecTestProofs(t) {
		t.Run(name, func(t *testing.T) {
			bz, err := json.Marshal(proof)
			require.NoError(t, err)
			got, err := nmtproof.UnmarshalNamespaceProofJSON(bz, 1)
			require.NoError(t, err)
			requireSameProof(t, proof, got)

			_, hasLeaf := proof.Leaf()
			leaf := gjson.GetBytes(bz, "leaf_hash")
			require.True(t, leaf.Exists())
			assert.Equal(t, !hasLeaf, leaf.Type == gjson.Null)
			assert.Equal(t, proof.IsOfAbsence(), gjson.GetBytes(bz, "is_absence").Bool())
			assert.True(t, gjson.GetBytes(bz, "nodes").IsArray())
		})
	}
}

func TestNamespaceProof_DecodedProofVerifies(t *testing.T) {
	tree := newTestTree(t, true, 1, 1, 2, 4, 4, 4, 6)
	root := tree.Root()

	for _, ns := range []byte{1, 2, 3, 4, 5, 6} {
		proof, err := tree.ProveNamespace(namespace.ID{ns})
		require.NoError(t, err)
		bz, err := json.Marshal(proof)
		require.NoError(t, err)
		decoded, err := nmtproof.UnmarshalNamespaceProofJSON(bz, 1)
		require.NoError(t, err)
		leaves := tree.Get(namespace.ID{ns})
		require.NoError(t, decoded.VerifyCompleteNamespace(tree.Hasher(), root, leaves, namespace.ID{ns}), "namespace %d", ns)
	}
}

func TestUnmarshalNamespaceProof_Invalid(t *testing.T) {
	encode := func(m *pb.NamespaceProof) []byte {
		bz, err := proto.Marshal(m)
		require.NoError(t, err)
		return bz
	}
	node := make([]byte, 2+32)

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte{0xFF, 0xFF, 0xFF}},
		{"short node", encode(&pb.NamespaceProof{Nodes: [][]byte{{1}}})},
		{"short leaf hash", encode(&pb.NamespaceProof{IsAbsence: true, LeafHash: []byte{1}})},
		{"presence with leaf hash", encode(&pb.NamespaceProof{Nodes: [][]byte{node}, LeafHash: node})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nmtproof.UnmarshalNamespaceProof(tt.data, 1)
			require.ErrorIs(t, err, nmtproof.ErrInvalidEncoding)
		})
	}
}

func TestUnmarshalNamespaceProofJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"start":`},
		{"not an object", `[1, 2]`},
		{"negative start", `{"start": -1, "end": 1}`},
		{"fractional end", `{"start": 0, "end": 1.5}`},
		{"end too large", `{"start": 0, "end": 4294967296}`},
		{"string start", `{"start": "0", "end": 1}`},
		{"non hex node", `{"start": 0, "end": 1, "nodes": ["zz"]}`},
		{"short node", `{"start": 0, "end": 1, "nodes": ["01"]}`},
		{"non hex leaf", `{"start": 0, "end": 1, "is_absence": true, "leaf_hash": "xyz"}`},
		{"presence with leaf", `{"start": 0, "end": 1, "leaf_hash": "0101"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := nmtproof.UnmarshalNamespaceProofJSON([]byte(tt.data), 1)
			require.ErrorIs(t, err, nmtproof.ErrInvalidEncoding)
		})
	}
}

func TestUnmarshalNamespaceProofJSON_Defaults(t *testing.T) {
	proof, err := nmtproof.UnmarshalNamespaceProofJSON([]byte(`{}`), 1)
	require.NoError(t, err)
	assert.True(t, proof.IsOfPresence())
	assert.False(t, proof.IsMaxNamespaceIgnored())
	assert.Zero(t, proof.Start())
	assert.Zero(t, proof.End())
	assert.Empty(t, proof.Siblings())

	proof, err = nmtproof.UnmarshalNamespaceProofJSON([]byte(`{"is_absence": true, "leaf_hash": null}`), 1)
	require.NoError(t, err)
	assert.True(t, proof.IsOfAbsence())
	_, ok := proof.Leaf()
	assert.False(t, ok)
}
