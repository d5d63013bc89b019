package app

import (
	"testing"

	"github.com/iov-one/swap/crypto"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/weavetest"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxMsg(t *testing.T) {
	create := &offer.CreateMsg{
		ID:      7,
		Maker:   weavetest.RandomAddr(t),
		AssetA:  AssetAlpha,
		AssetB:  AssetBeta,
		AmountA: 10,
		AmountB: 20,
	}
	take := &offer.TakeMsg{
		Taker:  weavetest.RandomAddr(t),
		Maker:  create.Maker,
		AssetA: AssetAlpha,
		AssetB: AssetBeta,
	}

	var tx Tx
	_, err := tx.GetMsg()
	assert.True(t, errors.ErrInvalidMsg.Is(err))

	require.NoError(t, tx.SetMsg(create))
	msg, err := tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, create, msg)

	require.NoError(t, tx.SetMsg(take))
	msg, err = tx.GetMsg()
	require.NoError(t, err)
	assert.Equal(t, take, msg)
	assert.Nil(t, tx.CreateOfferMsg)

	err = tx.SetMsg(&weavetest.Msg{RoutePath: "test/msg"})
	assert.True(t, errors.ErrInvalidType.Is(err))

	both := Tx{CreateOfferMsg: create, TakeOfferMsg: take}
	_, err = both.GetMsg()
	assert.True(t, errors.ErrInvalidMsg.Is(err))
}

func TestTxEncoding(t *testing.T) {
	key := crypto.PrivKeyEd25519FromSeed(make([]byte, 32))
	tx := &Tx{
		CreateOfferMsg: &offer.CreateMsg{
			ID:      1,
			Maker:   key.PublicKey().Address(),
			AssetA:  AssetAlpha,
			AssetB:  AssetBeta,
			AmountA: 5,
			AmountB: 6,
		},
	}
	unsigned, err := tx.GetSignBytes()
	require.NoError(t, err)

	sig, err := sigs.SignTx(key, tx, "test-chain", 0)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}

	// signatures are not part of what is signed
	signed, err := tx.GetSignBytes()
	require.NoError(t, err)
	assert.Equal(t, unsigned, signed)

	raw, err := tx.Marshal()
	require.NoError(t, err)
	decoded, err := TxDecoder(raw)
	require.NoError(t, err)
	got := decoded.(*Tx)
	require.Len(t, got.Signatures, 1)
	assert.Equal(t, int64(0), got.Signatures[0].Sequence)
	assert.Equal(t, key.PublicKey().Address(), got.Signatures[0].Pubkey.Address())
	assert.Equal(t, tx.CreateOfferMsg, got.CreateOfferMsg)
	assert.Nil(t, got.TakeOfferMsg)

}
