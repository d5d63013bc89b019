package offer

import (
	"context"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/gconf"
	"github.com/iov-one/swap/store"
	"github.com/iov-one/swap/weavetest"
	"github.com/iov-one/swap/x/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       swap.CacheableKVStore
	auth     *weavetest.CtxAuth
	ctrl     Controller
	maker    swap.Condition
	taker    swap.Condition
	assetA   swap.Address
	assetB   swap.Address
	makerCtx swap.Context
	takerCtx swap.Context
}

// newFixture returns a state where the maker holds 1000 of asset A and the
// taker holds takerB of asset B.
func newFixture(t *testing.T, takerB uint64) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		auth:   &weavetest.CtxAuth{Key: "auth"},
		maker:  weavetest.NewCondition(),
		taker:  weavetest.NewCondition(),
		assetA: weavetest.RandomAddr(t),
		assetB: weavetest.RandomAddr(t),
	}
	f.ctrl = NewController(f.auth)
	f.makerCtx = f.auth.SetConditions(context.Background(), f.maker)
	f.takerCtx = f.auth.SetConditions(context.Background(), f.taker)

	require.NoError(t, token.Issue(f.db, f.assetA, f.maker.Address(), 1000))
	if takerB > 0 {
		require.NoError(t, token.Issue(f.db, f.assetB, f.taker.Address(), takerB))
	}
	return f
}

func (f *fixture) createMsg(id, amountA, amountB uint64) *CreateMsg {
	return &CreateMsg{
		ID:      id,
		Maker:   f.maker.Address(),
		AssetA:  f.assetA,
		AssetB:  f.assetB,
		AmountA: amountA,
		AmountB: amountB,
	}
}

func (f *fixture) takeMsg(id uint64) *TakeMsg {
	return &TakeMsg{
		Taker:   f.taker.Address(),
		Maker:   f.maker.Address(),
		OfferID: id,
		AssetA:  f.assetA,
		AssetB:  f.assetB,
	}
}

func (f *fixture) balance(t *testing.T, asset swap.Address, owner swap.Condition) uint64 {
	t.Helper()
	amount, err := f.ctrl.tokens.Balance(f.db, asset, owner.Address())
	require.NoError(t, err)
	return amount
}

// snapshot returns the whole content of the store.
func snapshot(t *testing.T, db swap.ReadOnlyKVStore) []swap.Model {
	t.Helper()
	it, err := db.Iterator(nil, nil)
	require.NoError(t, err)
	defer it.Close()

	var res []swap.Model
	for it.Valid() {
		res = append(res, swap.Pair(it.Key(), it.Value()))
		require.NoError(t, it.Next())
	}
	return res
}

func TestSuccessfulSwap(t *testing.T) {
	f := newFixture(t, 50)

	offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)

	// The vault is funded before the entry is visible.
	vault, err := f.ctrl.tokens.Balance(f.db, f.assetA, offer.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 100, vault)
	assert.EqualValues(t, 900, f.balance(t, f.assetA, f.maker))

	stored, err := f.ctrl.Get(f.db, offer.Address())
	require.NoError(t, err)
	assert.Equal(t, offer, stored)

	taken, err := f.ctrl.TakeOffer(f.takerCtx, f.db, f.takeMsg(1))
	require.NoError(t, err)
	assert.Equal(t, offer, taken)

	assert.EqualValues(t, 900, f.balance(t, f.assetA, f.maker))
	assert.EqualValues(t, 50, f.balance(t, f.assetB, f.maker))
	assert.EqualValues(t, 100, f.balance(t, f.assetA, f.taker))
	assert.EqualValues(t, 0, f.balance(t, f.assetB, f.taker))

	_, err = f.ctrl.Get(f.db, offer.Address())
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, token.AccountAddress(f.assetA, offer.Address()), VaultKey(offer))
	_, err = token.NewController(f.auth).Account(f.db, f.assetA, offer.Address())
	assert.True(t, errors.ErrNotFound.Is(err), "vault must be closed")
}

func TestCreateWithZeroAmount(t *testing.T) {
	f := newFixture(t, 0)
	before := snapshot(t, f.db)

	_, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 0, 50))
	assert.True(t, errors.ErrInvalidAmount.Is(err), "got %+v", err)

	_, err = f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 0))
	assert.True(t, errors.ErrInvalidAmount.Is(err), "got %+v", err)

	assert.EqualValues(t, 1000, f.balance(t, f.assetA, f.maker))
	assert.Equal(t, before, snapshot(t, f.db))
}

func TestTakeWithInsufficientBalance(t *testing.T) {
	f := newFixture(t, 10)
	offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)
	before := snapshot(t, f.db)

	_, err = f.ctrl.TakeOffer(f.takerCtx, f.db, f.takeMsg(1))
	assert.True(t, errors.ErrInsufficientAmount.Is(err), "got %+v", err)

	vault, err := f.ctrl.tokens.Balance(f.db, f.assetA, offer.Address())
	require.NoError(t, err)
	assert.EqualValues(t, 100, vault)
	assert.EqualValues(t, 10, f.balance(t, f.assetB, f.taker))
	assert.EqualValues(t, 0, f.balance(t, f.assetB, f.maker))
	assert.Equal(t, before, snapshot(t, f.db))
}

func TestCreateFailures(t *testing.T) {
	cases := map[string]struct {
		ctx     func(f *fixture) swap.Context
		msg     func(f *fixture) *CreateMsg
		wantErr *errors.Error
	}{
		"insufficient maker balance": {
			ctx:     func(f *fixture) swap.Context { return f.makerCtx },
			msg:     func(f *fixture) *CreateMsg { return f.createMsg(2, 1001, 1) },
			wantErr: errors.ErrInsufficientAmount,
		},
		"maker did not sign": {
			ctx:     func(f *fixture) swap.Context { return f.takerCtx },
			msg:     func(f *fixture) *CreateMsg { return f.createMsg(2, 10, 1) },
			wantErr: errors.ErrUnauthorized,
		},
		"maker holds no asset": {
			ctx: func(f *fixture) swap.Context { return f.makerCtx },
			msg: func(f *fixture) *CreateMsg {
				m := f.createMsg(2, 10, 1)
				m.AssetA, m.AssetB = m.AssetB, m.AssetA
				return m
			},
			wantErr: errors.ErrInsufficientAmount,
		},
		"offer id already used": {
			ctx:     func(f *fixture) swap.Context { return f.makerCtx },
			msg:     func(f *fixture) *CreateMsg { return f.createMsg(1, 10, 1) },
			wantErr: errors.ErrDuplicate,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 0)
			_, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
			require.NoError(t, err)
			before := snapshot(t, f.db)

			_, err = f.ctrl.CreateOffer(tc.ctx(f), f.db, tc.msg(f))
			assert.True(t, tc.wantErr.Is(err), "want %s, got %+v", tc.wantErr, err)
			assert.Equal(t, before, snapshot(t, f.db))
		})
	}
}

func TestTakeFailures(t *testing.T) {
	cases := map[string]struct {
		ctx     func(f *fixture) swap.Context
		msg     func(f *fixture, offer *Offer) *TakeMsg
		wantErr *errors.Error
	}{
		"taker did not sign": {
			ctx:     func(f *fixture) swap.Context { return f.makerCtx },
			msg:     func(f *fixture, _ *Offer) *TakeMsg { return f.takeMsg(1) },
			wantErr: errors.ErrUnauthorized,
		},
		"unknown offer id": {
			msg:     func(f *fixture, _ *Offer) *TakeMsg { return f.takeMsg(2) },
			wantErr: errors.ErrNotFound,
		},
		"unknown offer reference": {
			msg: func(f *fixture, _ *Offer) *TakeMsg {
				m := f.takeMsg(1)
				m.Offer = weavetest.RandomAddr(t)
				return m
			},
			wantErr: errors.ErrNotFound,
		},
		"wrong maker for the reference": {
			msg: func(f *fixture, o *Offer) *TakeMsg {
				m := f.takeMsg(1)
				m.Offer = o.Address()
				m.Maker = weavetest.RandomAddr(t)
				return m
			},
			wantErr: ErrEntryMismatch,
		},
		"wrong asset A": {
			msg: func(f *fixture, _ *Offer) *TakeMsg {
				m := f.takeMsg(1)
				m.AssetA = weavetest.RandomAddr(t)
				return m
			},
			wantErr: ErrEntryMismatch,
		},
		"wrong asset B": {
			msg: func(f *fixture, _ *Offer) *TakeMsg {
				m := f.takeMsg(1)
				m.AssetB = weavetest.RandomAddr(t)
				return m
			},
			wantErr: ErrEntryMismatch,
		},
		"reference disagrees with id": {
			msg: func(f *fixture, o *Offer) *TakeMsg {
				m := f.takeMsg(7)
				m.Offer = o.Address()
				return m
			},
			wantErr: ErrDerivationMismatch,
		},
		"wrong vault": {
			msg: func(f *fixture, _ *Offer) *TakeMsg {
				m := f.takeMsg(1)
				m.Vault = weavetest.RandomAddr(t)
				return m
			},
			wantErr: ErrDerivationMismatch,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t, 50)
			offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
			require.NoError(t, err)
			before := snapshot(t, f.db)

			ctx := f.takerCtx
			if tc.ctx != nil {
				ctx = tc.ctx(f)
			}
			_, err = f.ctrl.TakeOffer(ctx, f.db, tc.msg(f, offer))
			assert.True(t, tc.wantErr.Is(err), "want %s, got %+v", tc.wantErr, err)
			assert.Equal(t, before, snapshot(t, f.db))
		})
	}
}

func TestTakeByReference(t *testing.T) {
	f := newFixture(t, 50)
	offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(3, 100, 50))
	require.NoError(t, err)

	msg := f.takeMsg(0)
	msg.Offer = offer.Address()
	msg.Vault = VaultKey(offer)
	_, err = f.ctrl.TakeOffer(f.takerCtx, f.db, msg)
	require.NoError(t, err)
	assert.EqualValues(t, 100, f.balance(t, f.assetA, f.taker))
}

func TestSingleSettlement(t *testing.T) {
	f := newFixture(t, 100)
	_, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)
	_, err = f.ctrl.TakeOffer(f.takerCtx, f.db, f.takeMsg(1))
	require.NoError(t, err)

	before := snapshot(t, f.db)
	_, err = f.ctrl.TakeOffer(f.takerCtx, f.db, f.takeMsg(1))
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)
	assert.Equal(t, before, snapshot(t, f.db))
	assert.EqualValues(t, 50, f.balance(t, f.assetB, f.taker))

	// The id can be reused once the offer is settled.
	_, err = f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)
}

func TestVaultRequiresDerivedAuthority(t *testing.T) {
	f := newFixture(t, 0)
	offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)

	// Neither the maker nor anybody else can move the vault.
	err = f.ctrl.tokens.Transfer(f.makerCtx, f.db, f.assetA, offer.Address(), f.maker.Address(), 100)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// A context authorized by a condition with the same address is the
	// only way, and it is only constructed by this package.
	ctx := withOfferAuthority(f.makerCtx, offer.Condition())
	err = f.ctrl.tokens.Transfer(ctx, f.db, f.assetA, offer.Address(), f.maker.Address(), 100)
	require.NoError(t, err)
}

func TestTakeFromDrainedVault(t *testing.T) {
	f := newFixture(t, 50)
	offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)

	ctx := withOfferAuthority(f.makerCtx, offer.Condition())
	require.NoError(t, f.ctrl.tokens.Transfer(ctx, f.db, f.assetA, offer.Address(), f.maker.Address(), 100))
	before := snapshot(t, f.db)

	// The asset B payment happens before the vault is found empty and
	// must be reverted with everything else.
	_, err = f.ctrl.TakeOffer(f.takerCtx, f.db, f.takeMsg(1))
	assert.True(t, errors.ErrInvalidState.Is(err), "got %+v", err)

	assert.Equal(t, before, snapshot(t, f.db))
	assert.EqualValues(t, 50, f.balance(t, f.assetB, f.taker))
	assert.EqualValues(t, 0, f.balance(t, f.assetB, f.maker))
	assert.EqualValues(t, 0, f.balance(t, f.assetA, f.taker))
	_, err = f.ctrl.Get(f.db, offer.Address())
	require.NoError(t, err)
}

func TestStorageDeposits(t *testing.T) {
	f := newFixture(t, 50)
	require.NoError(t, gconf.Save(f.db, "token", &token.Configuration{AccountDeposit: 2}))
	require.NoError(t, gconf.Save(f.db, "offer", &Configuration{EntryDeposit: 5}))
	require.NoError(t, token.AddReserve(f.db, f.maker.Address(), 10))
	require.NoError(t, token.AddReserve(f.db, f.taker.Address(), 10))

	reserve := func(c swap.Condition) uint64 {
		r, err := token.NewController(f.auth).Reserve(f.db, c.Address())
		require.NoError(t, err)
		return r
	}

	offer, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	require.NoError(t, err)
	assert.EqualValues(t, 5, offer.Deposit)
	// vault account and entry
	assert.EqualValues(t, 3, reserve(f.maker))

	_, err = f.ctrl.TakeOffer(f.takerCtx, f.db, f.takeMsg(1))
	require.NoError(t, err)
	// two new accounts paid, vault deposit returned
	assert.EqualValues(t, 8, reserve(f.taker))
	// entry deposit returned
	assert.EqualValues(t, 8, reserve(f.maker))
}

func TestEntryDepositNotAffordable(t *testing.T) {
	f := newFixture(t, 0)
	require.NoError(t, gconf.Save(f.db, "offer", &Configuration{EntryDeposit: 5}))
	before := snapshot(t, f.db)

	_, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(1, 100, 50))
	assert.True(t, errors.ErrInsufficientAmount.Is(err))
	assert.Equal(t, before, snapshot(t, f.db))
}

func TestOffersByMaker(t *testing.T) {
	f := newFixture(t, 0)
	for id := uint64(1); id <= 3; id++ {
		_, err := f.ctrl.CreateOffer(f.makerCtx, f.db, f.createMsg(id, 10, 1))
		require.NoError(t, err)
	}

	offers, err := f.ctrl.ByMaker(f.db, f.maker.Address())
	require.NoError(t, err)
	assert.Len(t, offers, 3)

	offers, err = f.ctrl.ByMaker(f.db, f.taker.Address())
	require.NoError(t, err)
	assert.Empty(t, offers)

	qr := swap.NewQueryRouter()
	RegisterQuery(qr)
	res, err := qr.Handler("/offers/maker").Query(f.db, swap.KeyQueryMod, f.maker.Address())
	require.NoError(t, err)
	assert.Len(t, res, 3)

	res, err = qr.Handler("/offers").Query(f.db, swap.PrefixQueryMod, nil)
	require.NoError(t, err)
	assert.Len(t, res, 3)
}
