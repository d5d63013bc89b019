package offer

import (
	"strconv"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createOfferCost int64 = 300
	takeOfferCost   int64 = 500
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r swap.Registry, auth x.Authenticator) {
	ctrl := NewController(auth)
	r.Handle(pathCreateOfferMsg, CreateOfferHandler{auth: auth, ctrl: ctrl})
	r.Handle(pathTakeOfferMsg, TakeOfferHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the offers as "/offers" and the maker
// index as "/offers/maker".
func RegisterQuery(qr swap.QueryRouter) {
	NewBucket().Register("offers", qr)
}

// CreateOfferHandler creates offers.
type CreateOfferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ swap.Handler = CreateOfferHandler{}

// Check validates the message and the maker signature.
func (h CreateOfferHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return swap.NewCheck(createOfferCost, ""), nil
}

// Deliver funds the vault and records the offer.
func (h CreateOfferHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	offer, err := h.ctrl.CreateOffer(ctx, db, msg)
	if err != nil {
		return nil, err
	}

	addr := offer.Address()
	swap.GetLogger(ctx).Info("offer created",
		"offer", addr,
		"maker", offer.Maker,
		"id", offer.ID,
		"amount_a", offer.AmountA,
		"amount_b", offer.AmountB)

	return &swap.DeliverResult{
		Data: addr,
		Tags: []common.KVPair{
			{Key: []byte("offer"), Value: []byte(addr.String())},
			{Key: []byte("maker"), Value: []byte(offer.Maker.String())},
			{Key: []byte("offer_id"), Value: []byte(strconv.FormatUint(offer.ID, 10))},
		},
	}, nil
}

func (h CreateOfferHandler) validate(ctx swap.Context, tx swap.Tx) (*CreateMsg, error) {
	var msg CreateMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return &msg, nil
}

// TakeOfferHandler settles offers.
type TakeOfferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ swap.Handler = TakeOfferHandler{}

// Check validates the message and the taker signature.
func (h TakeOfferHandler) Check(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return swap.NewCheck(takeOfferCost, ""), nil
}

// Deliver executes the swap and removes the offer.
func (h TakeOfferHandler) Deliver(ctx swap.Context, db swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	offer, err := h.ctrl.TakeOffer(ctx, db, msg)
	if err != nil {
		return nil, err
	}

	addr := offer.Address()
	swap.GetLogger(ctx).Info("offer taken",
		"offer", addr,
		"maker", offer.Maker,
		"taker", msg.Taker,
		"id", offer.ID,
		"amount_a", offer.AmountA,
		"amount_b", offer.AmountB)

	return &swap.DeliverResult{
		Data: addr,
		Tags: []common.KVPair{
			{Key: []byte("offer"), Value: []byte(addr.String())},
			{Key: []byte("maker"), Value: []byte(offer.Maker.String())},
			{Key: []byte("taker"), Value: []byte(msg.Taker.String())},
		},
	}, nil
}

func (h TakeOfferHandler) validate(ctx swap.Context, tx swap.Tx) (*TakeMsg, error) {
	var msg TakeMsg
	if err := swap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	return &msg, nil
}
