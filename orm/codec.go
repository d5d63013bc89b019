package orm

import "github.com/gogo/protobuf/proto"

// multiRefPB drops the Marshal methods of MultiRef so proto encodes it from the
// struct tags. The schema is in codec.proto.
type multiRefPB MultiRef

func (m *multiRefPB) Reset()         { *m = multiRefPB{} }
func (m *multiRefPB) String() string { return proto.CompactTextString(m) }
func (*multiRefPB) ProtoMessage()    {}
