package offer

import "github.com/gogo/protobuf/proto"

// The types below share the layout of the models and messages of this
// package but not their Marshal methods, so proto encodes them from the
// struct tags. codec.proto is the schema.

type offerPB Offer

func (m *offerPB) Reset()         { *m = offerPB{} }
func (m *offerPB) String() string { return proto.CompactTextString(m) }
func (*offerPB) ProtoMessage()    {}

type createMsgPB CreateMsg

func (m *createMsgPB) Reset()         { *m = createMsgPB{} }
func (m *createMsgPB) String() string { return proto.CompactTextString(m) }
func (*createMsgPB) ProtoMessage()    {}

type takeMsgPB TakeMsg

func (m *takeMsgPB) Reset()         { *m = takeMsgPB{} }
func (m *takeMsgPB) String() string { return proto.CompactTextString(m) }
func (*takeMsgPB) ProtoMessage()    {}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}
