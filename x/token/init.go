package token

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
)

const optKey = "token"

// GenesisBalance is used to parse the balances of the genesis file.
type GenesisBalance struct {
	Owner  swap.Address `json:"owner"`
	Asset  swap.Address `json:"asset"`
	Amount uint64       `json:"amount"`
}

// GenesisReserve is used to parse the reserves of the genesis file.
type GenesisReserve struct {
	Address swap.Address `json:"address"`
	Amount  uint64       `json:"amount"`
}

// Genesis is the content of the "token" section of the genesis file.
type Genesis struct {
	Balances []GenesisBalance `json:"balances"`
	Reserves []GenesisReserve `json:"reserves"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ swap.Initializer = Initializer{}

// FromGenesis will parse initial balances, reserves and configuration
// from genesis and save them to the database.
func (Initializer) FromGenesis(opts swap.Options, db swap.KVStore) error {
	if err := gconf.InitConfig(db, opts, "token", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	for i, b := range gen.Balances {
		if err := b.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "balance %d owner", i)
		}
		if err := b.Asset.Validate(); err != nil {
			return errors.Wrapf(err, "balance %d asset", i)
		}
		if err := Issue(db, b.Asset, b.Owner, b.Amount); err != nil {
			return errors.Wrapf(err, "balance %d", i)
		}
	}
	for i, r := range gen.Reserves {
		if err := AddReserve(db, r.Address, r.Amount); err != nil {
			return errors.Wrapf(err, "reserve %d", i)
		}
	}
	return nil
}

// RegisterQuery will register the accounts as "/tokens" and the reserves
// as "/reserves".
func RegisterQuery(qr swap.QueryRouter) {
	NewAccountBucket().Register("tokens", qr)
	NewReserveBucket().Register("reserves", qr)
}
