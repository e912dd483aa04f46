// Package pb holds the wire types of pb/proof.proto. Messages are encoded
// through the reflection based table marshaler of gogo/protobuf.
package pb

import (
	proto "github.com/gogo/protobuf/proto"
)

type NamespaceProof struct {
	Start                 uint32   `protobuf:"varint,1,opt,name=start,proto3" json:"start,omitempty"`
	End                   uint32   `protobuf:"varint,2,opt,name=end,proto3" json:"end,omitempty"`
	Nodes                 [][]byte `protobuf:"bytes,3,rep,name=nodes,proto3" json:"nodes,omitempty"`
	LeafHash              []byte   `protobuf:"bytes,4,opt,name=leaf_hash,json=leafHash,proto3" json:"leaf_hash,omitempty"`
	IsMaxNamespaceIgnored bool     `protobuf:"varint,5,opt,name=is_max_namespace_ignored,json=isMaxNamespaceIgnored,proto3" json:"is_max_namespace_ignored,omitempty"`
	IsAbsence             bool     `protobuf:"varint,6,opt,name=is_absence,json=isAbsence,proto3" json:"is_absence,omitempty"`
}

func (m *NamespaceProof) Reset()         { *m = NamespaceProof{} }
func (m *NamespaceProof) String() string { return proto.CompactTextString(m) }
func (*NamespaceProof) ProtoMessage()    {}

func (m *NamespaceProof) GetStart() uint32 {
	if m != nil {
		return m.Start
	}
	return 0
}

func (m *NamespaceProof) GetEnd() uint32 {
	if m != nil {
		return m.End
	}
	return 0
}

func (m *NamespaceProof) GetNodes() [][]byte {
	if m != nil {
		return m.Nodes
	}
	return nil
}

func (m *NamespaceProof) GetLeafHash() []byte {
	if m != nil {
		return m.LeafHash
	}
	return nil
}

func (m *NamespaceProof) GetIsMaxNamespaceIgnored() bool {
	if m != nil {
		return m.IsMaxNamespaceIgnored
	}
	return false
}

func (m *NamespaceProof) GetIsAbsence() bool {
	if m != nil {
		return m.IsAbsence
	}
	return false
}

func init() {
	proto.RegisterType((*NamespaceProof)(nil), "nmtproof.pb.NamespaceProof")
}
