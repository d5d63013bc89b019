package orm

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap/errors"
)

// counter is a minimal model used by the tests of this package.
type counter struct {
	Count int64  `protobuf:"varint,1,opt,name=count,proto3"`
	Owner []byte `protobuf:"bytes,2,opt,name=owner,proto3"`
}

func (c *counter) Marshal() ([]byte, error) {
	return proto.Marshal((*counterPB)(c))
}

func (c *counter) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*counterPB)(c))
}

type counterPB counter

func (c *counterPB) Reset()         { *c = counterPB{} }
func (c *counterPB) String() string { return proto.CompactTextString(c) }
func (*counterPB) ProtoMessage()    {}

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative count")
	}
	return nil
}

func (c *counter) Copy() Model {
	cpy := *c
	return &cpy
}

func countIndexer(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(c.Count))
	return raw, nil
}

func ownerIndexer(obj Object) ([]byte, error) {
	c, ok := obj.Value().(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T", obj.Value())
	}
	// unowned counters are not indexed
	if len(c.Owner) == 0 {
		return nil, nil
	}
	return c.Owner, nil
}

func countKey(n int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(n))
	return raw
}
