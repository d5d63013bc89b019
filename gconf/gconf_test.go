package gconf

import (
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConf struct {
	Limit int64 `protobuf:"varint,1,opt,name=limit,proto3" json:"limit"`
}

func (c *testConf) Validate() error {
	if c.Limit < 0 {
		return errors.Wrap(errors.ErrInvalidModel, "negative limit")
	}
	return nil
}

func (c *testConf) Marshal() ([]byte, error) {
	return proto.Marshal((*testConfPB)(c))
}

func (c *testConf) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*testConfPB)(c))
}

type testConfPB testConf

func (m *testConfPB) Reset()         { *m = testConfPB{} }
func (m *testConfPB) String() string { return proto.CompactTextString(m) }
func (*testConfPB) ProtoMessage()    {}

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var loaded testConf
	err := Load(db, "test", &loaded)
	assert.True(t, errors.ErrNotFound.Is(err))

	err = Save(db, "test", &testConf{Limit: -1})
	assert.True(t, errors.ErrInvalidModel.Is(err))

	require.NoError(t, Save(db, "test", &testConf{Limit: 42}))
	require.NoError(t, Load(db, "test", &loaded))
	assert.Equal(t, int64(42), loaded.Limit)

	raw, err := db.Get([]byte("_c:test"))
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestInitConfig(t *testing.T) {
	cases := map[string]struct {
		genesis   string
		wantErr   *errors.Error
		wantLimit int64
		wantFound bool
	}{
		"configured package": {
			genesis:   `{"conf": {"test": {"limit": 7}}}`,
			wantLimit: 7,
			wantFound: true,
		},
		"missing package is left alone": {
			genesis: `{"conf": {"other": {"limit": 7}}}`,
		},
		"missing conf section": {
			genesis: `{}`,
		},
		"invalid configuration": {
			genesis: `{"conf": {"test": {"limit": -3}}}`,
			wantErr: errors.ErrInvalidModel,
		},
		"malformed configuration": {
			genesis: `{"conf": {"test": {"limit": "many"}}}`,
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts swap.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			err := InitConfig(db, opts, "test", &testConf{})
			require.True(t, tc.wantErr.Is(err), "got %v", err)

			var conf testConf
			err = Load(db, "test", &conf)
			if !tc.wantFound {
				assert.True(t, errors.ErrNotFound.Is(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantLimit, conf.Limit)
		})
	}
}
