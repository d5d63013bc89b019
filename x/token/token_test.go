package token

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountAddress(t *testing.T) {
	asset := weavetest.RandomAddr(t)
	alice := weavetest.RandomAddr(t)
	bob := weavetest.RandomAddr(t)

	assert.Equal(t, AccountAddress(asset, alice), AccountAddress(asset, alice))
	assert.NotEqual(t, AccountAddress(asset, alice), AccountAddress(asset, bob))
	assert.NotEqual(t, AccountAddress(asset, alice), AccountAddress(alice, asset))
	assert.Len(t, AccountAddress(asset, alice), swap.AddressLength)
}

func TestTransfer(t *testing.T) {
	asset := weavetest.RandomAddr(t)
	aliceCond := weavetest.NewCondition()
	alice := aliceCond.Address()
	bob := weavetest.RandomAddr(t)

	cases := map[string]struct {
		amount    uint64
		from      swap.Address
		auth      swap.Condition
		noDest    bool
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"success": {
			amount:    40,
			from:      alice,
			auth:      aliceCond,
			wantAlice: 60,
			wantBob:   45,
		},
		"whole balance": {
			amount:    100,
			from:      alice,
			auth:      aliceCond,
			wantAlice: 0,
			wantBob:   105,
		},
		"zero amount": {
			amount:    0,
			from:      alice,
			auth:      aliceCond,
			wantErr:   errors.ErrInvalidAmount,
			wantAlice: 100,
			wantBob:   5,
		},
		"insufficient balance": {
			amount:    101,
			from:      alice,
			auth:      aliceCond,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 100,
			wantBob:   5,
		},
		"not authorized": {
			amount:    1,
			from:      alice,
			auth:      weavetest.NewCondition(),
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 100,
			wantBob:   5,
		},
		"missing destination": {
			amount:    1,
			from:      alice,
			auth:      aliceCond,
			noDest:    true,
			wantErr:   errors.ErrNotFound,
			wantAlice: 100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			require.NoError(t, Issue(db, asset, alice, 100))
			if !tc.noDest {
				require.NoError(t, Issue(db, asset, bob, 5))
			}

			c := NewController(&weavetest.Auth{Signer: tc.auth})
			err := c.Transfer(context.Background(), db, asset, tc.from, bob, tc.amount)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "want %s, got %+v", tc.wantErr, err)
			} else {
				require.NoError(t, err)
			}

			got, err := c.Balance(db, asset, alice)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAlice, got)
			got, err = c.Balance(db, asset, bob)
			require.NoError(t, err)
			assert.Equal(t, tc.wantBob, got)
		})
	}
}

func TestTransferFromMissingAccount(t *testing.T) {
	asset := weavetest.RandomAddr(t)
	cond := weavetest.NewCondition()
	bob := weavetest.RandomAddr(t)
	db := store.MemStore()
	require.NoError(t, Issue(db, asset, bob, 1))

	c := NewController(&weavetest.Auth{Signer: cond})
	err := c.Transfer(context.Background(), db, asset, cond.Address(), bob, 1)
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
}

func TestEnsureAccountAndClose(t *testing.T) {
	ctx := context.Background()
	asset := weavetest.RandomAddr(t)
	payerCond := weavetest.NewCondition()
	payer := payerCond.Address()
	ownerCond := weavetest.NewCondition()
	owner := ownerCond.Address()

	db := store.MemStore()
	require.NoError(t, gconf.Save(db, "token", &Configuration{AccountDeposit: 7}))
	require.NoError(t, AddReserve(db, payer, 10))

	c := NewController(&weavetest.Auth{Signers: []swap.Condition{payerCond, ownerCond}})

	require.NoError(t, c.EnsureAccount(ctx, db, payer, asset, owner))
	reserve, err := c.Reserve(db, payer)
	require.NoError(t, err)
	assert.EqualValues(t, 3, reserve)

	acc, err := c.Account(db, asset, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 7, acc.Deposit)
	assert.EqualValues(t, 0, acc.Amount)

	// An existing account is not charged again.
	require.NoError(t, c.EnsureAccount(ctx, db, payer, asset, owner))
	reserve, err = c.Reserve(db, payer)
	require.NoError(t, err)
	assert.EqualValues(t, 3, reserve)

	// The payer cannot afford another deposit.
	err = c.EnsureAccount(ctx, db, payer, asset, weavetest.RandomAddr(t))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))

	// Only empty accounts can be closed.
	require.NoError(t, Issue(db, asset, owner, 1))
	err = c.Close(ctx, db, asset, owner, owner)
	assert.True(t, errors.ErrInvalidState.Is(err))

	other := NewController(&weavetest.Auth{Signer: payerCond})
	acc, err = c.Account(db, asset, owner)
	require.NoError(t, err)
	acc.Amount = 0
	require.NoError(t, NewAccountBucket().Put(db, AccountAddress(asset, owner), acc))
	err = other.Close(ctx, db, asset, owner, owner)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	require.NoError(t, c.Close(ctx, db, asset, owner, owner))
	_, err = c.Account(db, asset, owner)
	assert.True(t, errors.ErrNotFound.Is(err))
	reserve, err = c.Reserve(db, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 7, reserve)
}

func TestZeroDepositIsFree(t *testing.T) {
	db := store.MemStore()
	payer := weavetest.NewCondition()
	c := NewController(&weavetest.Auth{Signer: payer})
	err := c.EnsureAccount(context.Background(), db, payer.Address(), weavetest.RandomAddr(t), weavetest.RandomAddr(t))
	require.NoError(t, err)
}

func TestGenesis(t *testing.T) {
	asset := weavetest.RandomAddr(t)
	alice := weavetest.RandomAddr(t)

	genesis := `{
		"conf": {"token": {"account_deposit": 2}},
		"token": {
			"balances": [{"owner": "` + alice.String() + `", "asset": "` + asset.String() + `", "amount": 1000}],
			"reserves": [{"address": "` + alice.String() + `", "amount": 50}]
		}
	}`
	var opts swap.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	require.NoError(t, Initializer{}.FromGenesis(opts, db))

	c := NewController(&weavetest.Auth{})
	balance, err := c.Balance(db, asset, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1000, balance)

	reserve, err := c.Reserve(db, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 50, reserve)

	conf, err := loadConf(db)
	require.NoError(t, err)
	assert.EqualValues(t, 2, conf.AccountDeposit)

	qr := swap.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/tokens/owner").Query(db, swap.KeyQueryMod, alice)
	require.NoError(t, err)
	require.Len(t, res, 1)
	var acc Account
	require.NoError(t, acc.Unmarshal(res[0].Value))
	assert.Equal(t, asset, acc.Asset)

	res, err = qr.Handler("/reserves").Query(db, swap.KeyQueryMod, alice)
	require.NoError(t, err)
	assert.Len(t, res, 1)
}
