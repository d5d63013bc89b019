package app

import (
	"github.com/iov-one/swap"
)

// Genesis is the part of the tendermint genesis file read by the
// application.
type Genesis struct {
	ChainID  string       `json:"chain_id"`
	AppState swap.Options `json:"app_state"`
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...swap.Initializer) swap.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []swap.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts swap.Options, kv swap.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
