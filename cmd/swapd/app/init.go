package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/token"
)

// Asset addresses used by the development genesis.
var (
	AssetAlpha = swap.NewCondition("token", "asset", []byte("ALPHA")).Address()
	AssetBeta  = swap.NewCondition("token", "asset", []byte("BETA")).Address()
)

const (
	initialBalance uint64 = 1000000
	initialReserve uint64 = 1000
)

// GenInitOptions will produce the options for a maker holding AssetAlpha
// and a taker holding AssetBeta, to use for dev mode.
//
// The maker and taker addresses can be given as the first two arguments.
// Missing ones are generated and their keys printed out.
func GenInitOptions(args []string) (json.RawMessage, error) {
	parties := []string{"maker", "taker"}
	addrs := make([]swap.Address, len(parties))
	for i, name := range parties {
		if len(args) > i {
			addr, err := swap.ParseAddress(args[i])
			if err != nil {
				return nil, errors.Wrapf(err, "%s address", name)
			}
			if err := addr.Validate(); err != nil {
				return nil, errors.Wrapf(err, "%s address", name)
			}
			addrs[i] = addr
			continue
		}
		// if no address provided, auto-generate one
		// and print out the key seed
		addr, seed, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addrs[i] = addr
		fmt.Printf("%s %s %s\n", name, addr, seed)
	}
	maker, taker := addrs[0], addrs[1]

	type dict map[string]interface{}
	return json.Marshal(dict{
		"token": token.Genesis{
			Balances: []token.GenesisBalance{
				{Owner: maker, Asset: AssetAlpha, Amount: initialBalance},
				{Owner: taker, Asset: AssetBeta, Amount: initialBalance},
			},
			Reserves: []token.GenesisReserve{
				{Address: maker, Amount: initialReserve},
				{Address: taker, Amount: initialReserve},
			},
		},
		"conf": dict{
			"token": token.Configuration{AccountDeposit: 2},
			"offer": offer.Configuration{EntryDeposit: 5},
		},
	})
}

// GenerateCoinKey returns the address of a new public key, along with the
// hex encoded seed to recover the private key.
func GenerateCoinKey() (swap.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	if len(privKey.Ed25519) < 32 {
		return nil, "", errors.Wrap(errors.ErrInvalidState, "malformed private key")
	}
	addr := privKey.PublicKey().Address()
	return addr, hex.EncodeToString(privKey.Ed25519[:32]), nil
}
