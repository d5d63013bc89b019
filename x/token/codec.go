package token

import "github.com/gogo/protobuf/proto"

// Encoding views of the models. They drop the Marshal methods so proto
// falls back to the struct tags, see codec.proto.

type accountPB Account

func (m *accountPB) Reset()         { *m = accountPB{} }
func (m *accountPB) String() string { return proto.CompactTextString(m) }
func (*accountPB) ProtoMessage()    {}

type reservePB Reserve

func (m *reservePB) Reset()         { *m = reservePB{} }
func (m *reservePB) String() string { return proto.CompactTextString(m) }
func (*reservePB) ProtoMessage()    {}

type configurationPB Configuration

func (m *configurationPB) Reset()         { *m = configurationPB{} }
func (m *configurationPB) String() string { return proto.CompactTextString(m) }
func (*configurationPB) ProtoMessage()    {}
