package offer

import (
	"context"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registry map[string]swap.Handler

func (r registry) Handle(path string, h swap.Handler) {
	r[path] = h
}

func TestMsgValidate(t *testing.T) {
	a := weavetest.RandomAddr(t)
	b := weavetest.RandomAddr(t)
	maker := weavetest.RandomAddr(t)

	cases := map[string]struct {
		msg     swap.Msg
		wantErr *errors.Error
	}{
		"valid create": {
			msg: &CreateMsg{ID: 1, Maker: maker, AssetA: a, AssetB: b, AmountA: 1, AmountB: 1},
		},
		"create with the same assets": {
			msg:     &CreateMsg{ID: 1, Maker: maker, AssetA: a, AssetB: a, AmountA: 1, AmountB: 1},
			wantErr: errors.ErrInvalidMsg,
		},
		"create without amount A": {
			msg:     &CreateMsg{ID: 1, Maker: maker, AssetA: a, AssetB: b, AmountB: 1},
			wantErr: errors.ErrInvalidAmount,
		},
		"create without amount B": {
			msg:     &CreateMsg{ID: 1, Maker: maker, AssetA: a, AssetB: b, AmountA: 1},
			wantErr: errors.ErrInvalidAmount,
		},
		"create without maker": {
			msg:     &CreateMsg{ID: 1, AssetA: a, AssetB: b, AmountA: 1, AmountB: 1},
			wantErr: errors.ErrInvalidInput,
		},
		"valid take": {
			msg: &TakeMsg{Taker: maker, Maker: maker, AssetA: a, AssetB: b},
		},
		"take with malformed vault": {
			msg:     &TakeMsg{Taker: maker, Maker: maker, AssetA: a, AssetB: b, Vault: []byte("short")},
			wantErr: errors.ErrInvalidInput,
		},
		"take with the same assets": {
			msg:     &TakeMsg{Taker: maker, Maker: maker, AssetA: b, AssetB: b},
			wantErr: errors.ErrInvalidMsg,
		},
		"take without taker": {
			msg:     &TakeMsg{Maker: maker, AssetA: a, AssetB: b},
			wantErr: errors.ErrInvalidInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, tc.wantErr.Is(err), "got %+v", err)
			}
		})
	}
}

func TestTakeMsgSerialization(t *testing.T) {
	msg := TakeMsg{
		Taker:   weavetest.RandomAddr(t),
		Maker:   weavetest.RandomAddr(t),
		OfferID: 42,
		AssetA:  weavetest.RandomAddr(t),
		AssetB:  weavetest.RandomAddr(t),
	}
	raw, err := msg.Marshal()
	require.NoError(t, err)

	var got TakeMsg
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, msg.Taker, got.Taker)
	assert.Equal(t, msg.Maker, got.Maker)
	assert.Equal(t, msg.OfferID, got.OfferID)
	assert.Empty(t, got.Offer)
	assert.Empty(t, got.Vault)
}

func TestHandlers(t *testing.T) {
	f := newFixture(t, 50)

	r := make(registry)
	RegisterRoutes(r, f.auth)
	create := r[pathCreateOfferMsg]
	take := r[pathTakeOfferMsg]
	require.NotNil(t, create)
	require.NotNil(t, take)

	createTx := &weavetest.Tx{Msg: f.createMsg(5, 100, 50)}

	_, err := create.Check(f.takerCtx, f.db, createTx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	cres, err := create.Check(f.makerCtx, f.db, createTx)
	require.NoError(t, err)
	assert.Equal(t, createOfferCost, cres.GasAllocated)

	dres, err := create.Deliver(f.makerCtx, f.db, createTx)
	require.NoError(t, err)
	_, addr, _, err := DeriveOfferAddress(f.maker.Address(), 5)
	require.NoError(t, err)
	assert.Equal(t, []byte(addr), dres.Data)
	tags := make(map[string]string)
	for _, tag := range dres.Tags {
		tags[string(tag.Key)] = string(tag.Value)
	}
	assert.Equal(t, addr.String(), tags["offer"])
	assert.Equal(t, f.maker.Address().String(), tags["maker"])
	assert.Equal(t, "5", tags["offer_id"])

	takeTx := &weavetest.Tx{Msg: f.takeMsg(5)}
	_, err = take.Deliver(f.makerCtx, f.db, takeTx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "got %+v", err)

	dres, err = take.Deliver(f.takerCtx, f.db, takeTx)
	require.NoError(t, err)
	assert.Equal(t, []byte(addr), dres.Data)
	assert.EqualValues(t, 100, f.balance(t, f.assetA, f.taker))

	_, err = take.Deliver(f.takerCtx, f.db, takeTx)
	assert.True(t, errors.ErrNotFound.Is(err), "got %+v", err)

	// Invalid messages never reach the controller.
	_, err = create.Deliver(f.makerCtx, f.db, &weavetest.Tx{Msg: f.createMsg(6, 0, 1)})
	assert.True(t, errors.ErrInvalidAmount.Is(err), "got %+v", err)
	_, err = create.Deliver(context.Background(), f.db, &weavetest.Tx{Msg: f.takeMsg(6)})
	assert.True(t, errors.ErrInvalidType.Is(err), "got %+v", err)
}
