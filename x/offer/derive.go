package offer

import (
	"encoding/binary"

	"filippo.io/edwards25519"
	lru "github.com/hashicorp/golang-lru"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/token"
)

// ExtensionName is used for the conditions of offer entries.
const ExtensionName = "offer"

// OfferCondition returns the condition of the entry created by maker under
// given id, derived with the given salt.
func OfferCondition(maker swap.Address, id uint64, salt uint8) swap.Condition {
	data := make([]byte, len(maker)+9)
	copy(data, maker)
	binary.BigEndian.PutUint64(data[len(maker):], id)
	data[len(data)-1] = salt
	return swap.NewCondition(ExtensionName, "entry", data)
}

// derivation is the canonical result of DeriveOfferAddress.
type derivation struct {
	cond swap.Condition
	addr swap.Address
	salt uint8
}

// derivationCache holds canonical derivations. The search result depends only
// on its input, so entries never go stale.
var derivationCache = mustCache(4096)

func mustCache(size int) *lru.Cache {
	c, err := lru.New(size)
	if err != nil {
		panic(err)
	}
	return c
}

// maxSalt is the first salt tried by DeriveOfferAddress.
const maxSalt = 255

// DeriveOfferAddress returns the condition, the address and the salt of
// the offer entry created by maker under given id.
//
// Salts are tried from 255 downward. The first salt producing an address
// that is not a valid ed25519 public key is the canonical one. Such an
// address can never be controlled by a private key, so only the offer
// extension can authorize on its behalf.
func DeriveOfferAddress(maker swap.Address, id uint64) (swap.Condition, swap.Address, uint8, error) {
	raw := make([]byte, len(maker)+8)
	copy(raw, maker)
	binary.BigEndian.PutUint64(raw[len(maker):], id)
	key := string(raw)
	if v, ok := derivationCache.Get(key); ok {
		d := v.(derivation)
		return d.cond, d.addr, d.salt, nil
	}

	for salt := maxSalt; salt >= 0; salt-- {
		cond := OfferCondition(maker, id, uint8(salt))
		addr := cond.Address()
		if isCurvePoint(addr) {
			continue
		}
		derivationCache.Add(key, derivation{cond: cond, addr: addr, salt: uint8(salt)})
		return cond, addr, uint8(salt), nil
	}
	return nil, nil, 0, errors.Wrapf(errors.ErrInvalidState, "no offer address for id %d", id)
}

// isCurvePoint returns true if raw is the encoding of a point on the
// ed25519 curve.
func isCurvePoint(raw []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(raw)
	return err == nil
}

// VaultKey returns the storage key of the holding account that keeps the
// asset A of given offer. The account is owned by o.Address(), which is
// what the token controller expects as owner.
func VaultKey(o *Offer) swap.Address {
	return token.AccountAddress(o.AssetA, o.Address())
}
