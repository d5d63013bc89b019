package offer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
)

// Configuration of the offer extension, stored in gconf under "offer".
type Configuration struct {
	// EntryDeposit is charged from the reserve of the maker when an offer
	// is created and returned to the maker on settlement.
	EntryDeposit uint64 `protobuf:"varint,1,opt,name=entry_deposit,json=entryDeposit,proto3" json:"entry_deposit"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	return nil
}

func (c *Configuration) Marshal() ([]byte, error) {
	return proto.Marshal((*configurationPB)(c))
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configurationPB)(c))
}

func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, "offer", &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{}, nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}

// Initializer stores the offer configuration from the genesis file.
type Initializer struct{}

var _ swap.Initializer = Initializer{}

// FromGenesis reads the "conf.offer" section.
func (Initializer) FromGenesis(opts swap.Options, db swap.KVStore) error {
	return gconf.InitConfig(db, opts, "offer", &Configuration{})
}
