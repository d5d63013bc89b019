package app

import "github.com/gogo/protobuf/proto"

// resultSetPB drops the Marshal methods of ResultSet so proto encodes it from the
// struct tags. The schema is in codec.proto.
type resultSetPB ResultSet

func (m *resultSetPB) Reset()         { *m = resultSetPB{} }
func (m *resultSetPB) String() string { return proto.CompactTextString(m) }
func (*resultSetPB) ProtoMessage()    {}
