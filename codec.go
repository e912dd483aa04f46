package nmtproof

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/gogo/protobuf/proto"
	"github.com/tidwall/gjson"

	"github.com/celestiaorg/nmtproof/merkle"
	"github.com/celestiaorg/nmtproof/namespace"
	"github.com/celestiaorg/nmtproof/pb"
)

var ErrInvalidEncoding = errors.New("invalid namespace proof encoding")

// ToProto converts the proof into its wire representation.
func (p *NamespaceProof) ToProto() *pb.NamespaceProof {
	nodes := make([][]byte, 0, len(p.Siblings()))
	for _, sibling := range p.Siblings() {
		nodes = append(nodes, sibling.Bytes())
	}
	m := &pb.NamespaceProof{
		Start:                 p.Start(),
		End:                   p.End(),
		Nodes:                 nodes,
		IsMaxNamespaceIgnored: p.ignoreMaxNs,
		IsAbsence:             p.IsOfAbsence(),
	}
	if leaf, ok := p.Leaf(); ok {
		m.LeafHash = leaf.Bytes()
	}
	return m
}

// NamespaceProofFromProto converts the wire representation of a proof over
// namespaces of nsSize bytes.
func NamespaceProofFromProto(m *pb.NamespaceProof, nsSize namespace.IDSize) (NamespaceProof, error) {
	var siblings []NamespacedHash
	for i, node := range m.GetNodes() {
		sibling, err := NamespacedHashFromBytes(nsSize, node)
		if err != nil {
			return NamespaceProof{}, fmt.Errorf("%w: node %d: %w", ErrInvalidEncoding, i, err)
		}
		siblings = append(siblings, sibling)
	}
	proof := merkle.NewRangeProof(siblings, m.GetStart(), m.GetEnd())

	if !m.GetIsAbsence() {
		if len(m.GetLeafHash()) != 0 {
			return NamespaceProof{}, fmt.Errorf("%w: presence proof with a leaf hash", ErrInvalidEncoding)
		}
		return NewPresenceProof(proof, m.GetIsMaxNamespaceIgnored()), nil
	}
	var leaf *NamespacedHash
	if len(m.GetLeafHash()) != 0 {
		l, err := NamespacedHashFromBytes(nsSize, m.GetLeafHash())
		if err != nil {
			return NamespaceProof{}, fmt.Errorf("%w: leaf hash: %w", ErrInvalidEncoding, err)
		}
		leaf = &l
	}
	return NewAbsenceProof(proof, m.GetIsMaxNamespaceIgnored(), leaf), nil
}

// MarshalProto encodes the proof with protobuf.
func (p *NamespaceProof) MarshalProto() ([]byte, error) {
	return proto.Marshal(p.ToProto())
}

// UnmarshalNamespaceProof decodes a protobuf encoded proof over namespaces of
// nsSize bytes.
func UnmarshalNamespaceProof(data []byte, nsSize namespace.IDSize) (NamespaceProof, error) {
	var m pb.NamespaceProof
	if err := proto.Unmarshal(data, &m); err != nil {
		return NamespaceProof{}, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}
	return NamespaceProofFromProto(&m, nsSize)
}

type jsonNamespaceProof struct {
	Start                 uint32   `json:"start"`
	End                   uint32   `json:"end"`
	Nodes                 []string `json:"nodes"`
	LeafHash              *string  `json:"leaf_hash"`
	IsMaxNamespaceIgnored bool     `json:"is_max_namespace_ignored"`
	IsAbsence             bool     `json:"is_absence"`
}

// MarshalJSON encodes the proof as JSON with hex encoded nodes. Decoding
// needs the namespace size, see UnmarshalNamespaceProofJSON.
func (p NamespaceProof) MarshalJSON() ([]byte, error) {
	m := p.ToProto()
	jp := jsonNamespaceProof{
		Start:                 m.Start,
		End:                   m.End,
		Nodes:                 make([]string, 0, len(m.Nodes)),
		IsMaxNamespaceIgnored: m.IsMaxNamespaceIgnored,
		IsAbsence:             m.IsAbsence,
	}
	for _, node := range m.Nodes {
		jp.Nodes = append(jp.Nodes, hex.EncodeToString(node))
	}
	if len(m.LeafHash) != 0 {
		leaf := hex.EncodeToString(m.LeafHash)
		jp.LeafHash = &leaf
	}
	return json.Marshal(jp)
}

// UnmarshalNamespaceProofJSON decodes a proof produced by MarshalJSON.
func UnmarshalNamespaceProofJSON(data []byte, nsSize namespace.IDSize) (NamespaceProof, error) {
	if !gjson.ValidBytes(data) {
		return NamespaceProof{}, fmt.Errorf("%w: not valid JSON", ErrInvalidEncoding)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return NamespaceProof{}, fmt.Errorf("%w: expected a JSON object", ErrInvalidEncoding)
	}

	var m pb.NamespaceProof
	var err error
	if m.Start, err = jsonUint32(doc, "start"); err != nil {
		return NamespaceProof{}, err
	}
	if m.End, err = jsonUint32(doc, "end"); err != nil {
		return NamespaceProof{}, err
	}
	for i, node := range doc.Get("nodes").Array() {
		bz, err := hex.DecodeString(node.String())
		if err != nil {
			return NamespaceProof{}, fmt.Errorf("%w: node %d: %w", ErrInvalidEncoding, i, err)
		}
		m.Nodes = append(m.Nodes, bz)
	}
	if leaf := doc.Get("leaf_hash"); leaf.Exists() && leaf.Type != gjson.Null {
		if m.LeafHash, err = hex.DecodeString(leaf.String()); err != nil {
			return NamespaceProof{}, fmt.Errorf("%w: leaf hash: %w", ErrInvalidEncoding, err)
		}
	}
	m.IsMaxNamespaceIgnored = doc.Get("is_max_namespace_ignored").Bool()
	m.IsAbsence = doc.Get("is_absence").Bool()
	return NamespaceProofFromProto(&m, nsSize)
}

func jsonUint32(doc gjson.Result, field string) (uint32, error) {
	v := doc.Get(field)
	if !v.Exists() {
		return 0, nil
	}
	if v.Type != gjson.Number || v.Num < 0 || v.Num > math.MaxUint32 || v.Num != math.Trunc(v.Num) {
		return 0, fmt.Errorf("%w: %s must be an unsigned 32 bit integer, got %s", ErrInvalidEncoding, field, v.Raw)
	}
	return uint32(v.Uint()), nil
}
