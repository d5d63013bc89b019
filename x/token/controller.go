package token

import (
	"math"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/x"
)

// Controller is the token accounting used by other extensions. All
// operations that move value out of an account require the owner of
// that account to be authorized in the context.
type Controller interface {
	// Balance returns the amount of asset held by owner. A missing
	// account holds nothing.
	Balance(db swap.ReadOnlyKVStore, asset, owner swap.Address) (uint64, error)

	// EnsureAccount creates the holding account of owner for given asset
	// unless it already exists. The storage deposit is paid by payer.
	EnsureAccount(ctx swap.Context, db swap.KVStore, payer, asset, owner swap.Address) error

	// Transfer moves amount of asset from the account of from to the
	// account of to. The destination account must exist.
	Transfer(ctx swap.Context, db swap.KVStore, asset, from, to swap.Address, amount uint64) error

	// Close deletes the empty holding account of owner and releases its
	// deposit to refundTo.
	Close(ctx swap.Context, db swap.KVStore, asset, owner, refundTo swap.Address) error

	// ChargeDeposit takes amount from the reserve of payer.
	ChargeDeposit(ctx swap.Context, db swap.KVStore, payer swap.Address, amount uint64) error

	// RefundDeposit adds amount to the reserve of to.
	RefundDeposit(db swap.KVStore, to swap.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	auth     x.Authenticator
	accounts orm.ModelBucket
	reserves orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller that uses given authenticator to
// verify account owners.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		auth:     auth,
		accounts: NewAccountBucket(),
		reserves: NewReserveBucket(),
	}
}

// Account returns the holding account of owner for given asset or
// ErrNotFound.
func (c BaseController) Account(db swap.ReadOnlyKVStore, asset, owner swap.Address) (*Account, error) {
	var acc Account
	if err := c.accounts.One(db, AccountAddress(asset, owner), &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

func (c BaseController) Balance(db swap.ReadOnlyKVStore, asset, owner swap.Address) (uint64, error) {
	acc, err := c.Account(db, asset, owner)
	switch {
	case err == nil:
		return acc.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c BaseController) EnsureAccount(ctx swap.Context, db swap.KVStore, payer, asset, owner swap.Address) error {
	key := AccountAddress(asset, owner)
	switch err := c.accounts.Has(db, key); {
	case err == nil:
		return nil
	case !errors.ErrNotFound.Is(err):
		return err
	}

	conf, err := loadConf(db)
	if err != nil {
		return err
	}
	if err := c.ChargeDeposit(ctx, db, payer, conf.AccountDeposit); err != nil {
		return errors.Wrap(err, "account deposit")
	}
	acc := Account{
		Owner:   owner,
		Asset:   asset,
		Deposit: conf.AccountDeposit,
	}
	if err := c.accounts.Put(db, key, &acc); err != nil {
		return errors.Wrap(err, "cannot create account")
	}
	return nil
}

func (c BaseController) Transfer(ctx swap.Context, db swap.KVStore, asset, from, to swap.Address, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrInvalidAmount, "transfer of nothing")
	}
	if !c.auth.HasAddress(ctx, from) {
		return errors.Wrap(errors.ErrUnauthorized, "source owner")
	}

	src, err := c.Account(db, asset, from)
	switch {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrInsufficientAmount, "no %s account of %s", asset, from)
	case err != nil:
		return err
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Amount, amount)
	}
	if from.Equals(to) {
		return nil
	}
	dst, err := c.Account(db, asset, to)
	if err != nil {
		return errors.Wrap(err, "destination account")
	}
	if dst.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, AccountAddress(asset, from), src); err != nil {
		return err
	}
	return c.accounts.Put(db, AccountAddress(asset, to), dst)
}

func (c BaseController) Close(ctx swap.Context, db swap.KVStore, asset, owner, refundTo swap.Address) error {
	if !c.auth.HasAddress(ctx, owner) {
		return errors.Wrap(errors.ErrUnauthorized, "account owner")
	}
	acc, err := c.Account(db, asset, owner)
	if err != nil {
		return err
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrInvalidState, "account holds %d", acc.Amount)
	}
	if err := c.accounts.Delete(db, AccountAddress(asset, owner)); err != nil {
		return err
	}
	return c.RefundDeposit(db, refundTo, acc.Deposit)
}

func (c BaseController) ChargeDeposit(ctx swap.Context, db swap.KVStore, payer swap.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if !c.auth.HasAddress(ctx, payer) {
		return errors.Wrap(errors.ErrUnauthorized, "deposit payer")
	}
	var r Reserve
	switch err := c.reserves.One(db, payer, &r); {
	case errors.ErrNotFound.Is(err):
		// Charged below as an empty reserve.
	case err != nil:
		return err
	}
	if r.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "reserve %d, deposit %d", r.Amount, amount)
	}
	r.Amount -= amount
	return c.reserves.Put(db, payer, &r)
}

func (c BaseController) RefundDeposit(db swap.KVStore, to swap.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	return AddReserve(db, to, amount)
}

// Reserve returns the native reserve of given address.
func (c BaseController) Reserve(db swap.ReadOnlyKVStore, addr swap.Address) (uint64, error) {
	var r Reserve
	switch err := c.reserves.One(db, addr, &r); {
	case err == nil:
		return r.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Issue creates amount of asset in the account of owner. The account is
// created without a deposit if missing. Use only for genesis and tests.
func Issue(db swap.KVStore, asset, owner swap.Address, amount uint64) error {
	bucket := NewAccountBucket()
	key := AccountAddress(asset, owner)
	acc := Account{Owner: owner, Asset: asset}
	if err := bucket.One(db, key, &acc); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	if acc.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	acc.Amount += amount
	return bucket.Put(db, key, &acc)
}

// AddReserve increases the native reserve of given address.
func AddReserve(db swap.KVStore, addr swap.Address, amount uint64) error {
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "reserve address")
	}
	bucket := NewReserveBucket()
	var r Reserve
	if err := bucket.One(db, addr, &r); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	if r.Amount > math.MaxUint64-amount {
		return errors.Wrap(errors.ErrOverflow, "reserve")
	}
	r.Amount += amount
	return bucket.Put(db, addr, &r)
}
