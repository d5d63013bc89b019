package crypto

import "github.com/gogo/protobuf/proto"

// The types below share the layout of the exported ones but not their
// Marshal and Unmarshal methods, so proto encodes them field by field
// following the struct tags. See codec.proto for the schema.

type publicKeyPB PublicKey

func (m *publicKeyPB) Reset()         { *m = publicKeyPB{} }
func (m *publicKeyPB) String() string { return proto.CompactTextString(m) }
func (*publicKeyPB) ProtoMessage()    {}

type privateKeyPB PrivateKey

func (m *privateKeyPB) Reset()         { *m = privateKeyPB{} }
func (m *privateKeyPB) String() string { return proto.CompactTextString(m) }
func (*privateKeyPB) ProtoMessage()    {}

type signaturePB Signature

func (m *signaturePB) Reset()         { *m = signaturePB{} }
func (m *signaturePB) String() string { return proto.CompactTextString(m) }
func (*signaturePB) ProtoMessage()    {}
