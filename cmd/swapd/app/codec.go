package app

import "github.com/gogo/protobuf/proto"

// txPB drops the Marshal methods of Tx so proto encodes it from the
// struct tags. The schema is in codec.proto.
type txPB Tx

func (m *txPB) Reset()         { *m = txPB{} }
func (m *txPB) String() string { return proto.CompactTextString(m) }
func (*txPB) ProtoMessage()    {}
