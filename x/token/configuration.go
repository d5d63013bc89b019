package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
)

// Configuration of the token extension, stored in gconf under "token".
type Configuration struct {
	// AccountDeposit is locked from the reserve of the payer whenever a
	// holding account is created. Zero disables charging.
	AccountDeposit uint64 `protobuf:"varint,1,opt,name=account_deposit,json=accountDeposit,proto3" json:"account_deposit"`
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

// loadConf returns the stored configuration. An unconfigured extension
// charges no deposits.
func loadConf(db gconf.ReadStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, "token", &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return Configuration{}, nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}
