package offer

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
	"github.com/iov-one/swap/x"
	"github.com/iov-one/swap/x/token"
)

// Controller executes the offer protocols. Each protocol runs as a single
// unit: all changes are staged in a cache wrap and written only if every
// step succeeds.
type Controller struct {
	auth   x.Authenticator
	tokens token.Controller
	bucket orm.ModelBucket
}

// NewController returns a controller that authorizes makers and takers
// using auth. Offer entries are authorized by the controller itself.
func NewController(auth x.Authenticator) Controller {
	return Controller{
		auth:   auth,
		tokens: token.NewController(x.ChainAuth(auth, Authenticate{})),
		bucket: NewBucket(),
	}
}

// Get returns the offer stored at given address.
func (c Controller) Get(db swap.ReadOnlyKVStore, addr swap.Address) (*Offer, error) {
	var o Offer
	if err := c.bucket.One(db, addr, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// ByMaker returns all pending offers of given maker.
func (c Controller) ByMaker(db swap.ReadOnlyKVStore, maker swap.Address) ([]*Offer, error) {
	var offers []*Offer
	if _, err := c.bucket.ByIndex(db, "maker", maker, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// CreateOffer moves AmountA from the maker into a new vault and then
// records the offer entry. Nothing is written if any step fails.
func (c Controller) CreateOffer(ctx swap.Context, db swap.KVStore, msg *CreateMsg) (*Offer, error) {
	if !c.auth.HasAddress(ctx, msg.Maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	_, addr, salt, err := DeriveOfferAddress(msg.Maker, msg.ID)
	if err != nil {
		return nil, err
	}

	var offer *Offer
	err = atomically(db, func(db swap.KVStore) error {
		switch err := c.bucket.Has(db, addr); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "offer %d of %s", msg.ID, msg.Maker)
		case !errors.ErrNotFound.Is(err):
			return err
		}

		conf, err := loadConf(db)
		if err != nil {
			return err
		}
		offer = &Offer{
			ID:      msg.ID,
			Maker:   msg.Maker,
			AssetA:  msg.AssetA,
			AssetB:  msg.AssetB,
			AmountA: msg.AmountA,
			AmountB: msg.AmountB,
			Salt:    uint32(salt),
			Deposit: conf.EntryDeposit,
		}
		if err := offer.Validate(); err != nil {
			return err
		}

		maker := Human(msg.Maker)
		if err := c.tokens.EnsureAccount(ctx, db, msg.Maker, msg.AssetA, addr); err != nil {
			return errors.Wrap(err, "vault")
		}
		if err := c.transfer(ctx, db, msg.AssetA, maker, addr, msg.AmountA); err != nil {
			return errors.Wrap(err, "fund vault")
		}
		if err := c.tokens.ChargeDeposit(ctx, db, msg.Maker, conf.EntryDeposit); err != nil {
			return errors.Wrap(err, "entry deposit")
		}
		return c.bucket.Put(db, addr, offer)
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// TakeOffer settles an offer. The taker pays AmountB to the maker and
// receives the whole vault balance. The vault and the entry are removed,
// the vault deposit goes to the taker and the entry deposit to the maker.
// Nothing is written if any step fails.
func (c Controller) TakeOffer(ctx swap.Context, db swap.KVStore, msg *TakeMsg) (*Offer, error) {
	if !c.auth.HasAddress(ctx, msg.Taker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}

	var offer *Offer
	err := atomically(db, func(db swap.KVStore) error {
		o, err := c.locate(db, msg)
		if err != nil {
			return err
		}
		offer = o
		entry := offer.Address()

		taker := Human(msg.Taker)
		if err := c.tokens.EnsureAccount(ctx, db, msg.Taker, offer.AssetA, msg.Taker); err != nil {
			return errors.Wrap(err, "taker asset A account")
		}
		if err := c.tokens.EnsureAccount(ctx, db, msg.Taker, offer.AssetB, offer.Maker); err != nil {
			return errors.Wrap(err, "maker asset B account")
		}
		if err := c.transfer(ctx, db, offer.AssetB, taker, offer.Maker, offer.AmountB); err != nil {
			return errors.Wrap(err, "pay maker")
		}

		vault := derivedAuthority(offer)
		held, err := c.tokens.Balance(db, offer.AssetA, entry)
		if err != nil {
			return err
		}
		if held == 0 {
			return errors.Wrap(errors.ErrInvalidState, "empty vault")
		}
		if err := c.transfer(ctx, db, offer.AssetA, vault, msg.Taker, held); err != nil {
			return errors.Wrap(err, "release vault")
		}
		if err := c.tokens.Close(vault.authorize(ctx), db, offer.AssetA, entry, msg.Taker); err != nil {
			return errors.Wrap(err, "close vault")
		}

		if err := c.bucket.Delete(db, entry); err != nil {
			return err
		}
		return c.tokens.RefundDeposit(db, offer.Maker, offer.Deposit)
	})
	if err != nil {
		return nil, err
	}
	return offer, nil
}

// locate loads the offer a take message refers to and verifies that the
// message agrees with it.
func (c Controller) locate(db swap.ReadOnlyKVStore, msg *TakeMsg) (*Offer, error) {
	addr := msg.Offer
	if len(addr) == 0 {
		_, canonical, _, err := DeriveOfferAddress(msg.Maker, msg.OfferID)
		if err != nil {
			return nil, err
		}
		addr = canonical
	}

	offer, err := c.Get(db, addr)
	if err != nil {
		return nil, errors.Wrap(err, "offer")
	}

	if !offer.Maker.Equals(msg.Maker) {
		return nil, errors.Field("Maker", ErrEntryMismatch, "offer made by %s", offer.Maker)
	}
	if !offer.AssetA.Equals(msg.AssetA) {
		return nil, errors.Field("AssetA", ErrEntryMismatch, "offer holds %s", offer.AssetA)
	}
	if !offer.AssetB.Equals(msg.AssetB) {
		return nil, errors.Field("AssetB", ErrEntryMismatch, "offer wants %s", offer.AssetB)
	}

	if !offer.Address().Equals(addr) {
		return nil, errors.Wrap(ErrDerivationMismatch, "entry not stored at its derived address")
	}
	if len(msg.Offer) != 0 && msg.OfferID != 0 && msg.OfferID != offer.ID {
		return nil, errors.Field("OfferID", ErrDerivationMismatch, "offer reference has id %d", offer.ID)
	}
	if len(msg.Vault) != 0 && !msg.Vault.Equals(VaultKey(offer)) {
		return nil, errors.Field("Vault", ErrDerivationMismatch, "not the offer vault")
	}
	return offer, nil
}

// transfer moves amount of asset on behalf of from. It is used by both
// protocols, with a human authority when the maker or the taker pays, and
// with the derived authority of an entry when its vault pays.
func (c Controller) transfer(ctx swap.Context, db swap.KVStore, asset swap.Address, from Authority, to swap.Address, amount uint64) error {
	return c.tokens.Transfer(from.authorize(ctx), db, asset, from.Address(), to, amount)
}

// atomically runs fn on a cache wrap of db. Changes are written only if
// fn succeeds.
func atomically(db swap.KVStore, fn func(swap.KVStore) error) error {
	cstore, ok := db.(swap.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrHuman, "%T cannot be cache wrapped", db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return cache.Write()
}
