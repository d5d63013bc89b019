package offer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
)

// BucketName is where offer entries are stored.
const BucketName = "offers"

// Offer is a pending swap. It is stored at the address derived from the
// maker and the id.
type Offer struct {
	ID      uint64       `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Maker   swap.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	AssetA  swap.Address `protobuf:"bytes,3,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB  swap.Address `protobuf:"bytes,4,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	AmountA uint64       `protobuf:"varint,5,opt,name=amount_a,json=amountA,proto3" json:"amount_a,omitempty"`
	AmountB uint64       `protobuf:"varint,6,opt,name=amount_b,json=amountB,proto3" json:"amount_b,omitempty"`
	// Salt is the canonical derivation salt found at creation. It always
	// fits in a byte.
	Salt uint32 `protobuf:"varint,7,opt,name=salt,proto3" json:"salt,omitempty"`
	// Deposit is the storage deposit paid by the maker.
	Deposit uint64 `protobuf:"varint,8,opt,name=deposit,proto3" json:"deposit,omitempty"`
}

var _ orm.Model = (*Offer)(nil)

// Condition returns the derived authority of this offer.
func (o *Offer) Condition() swap.Condition {
	return OfferCondition(o.Maker, o.ID, uint8(o.Salt))
}

// Address returns the address the offer is stored at.
func (o *Offer) Address() swap.Address {
	return o.Condition().Address()
}

func (o *Offer) Validate() error {
	if err := o.Maker.Validate(); err != nil {
		return errors.Field("Maker", err, "")
	}
	if err := o.AssetA.Validate(); err != nil {
		return errors.Field("AssetA", err, "")
	}
	if err := o.AssetB.Validate(); err != nil {
		return errors.Field("AssetB", err, "")
	}
	if o.AssetA.Equals(o.AssetB) {
		return errors.Field("AssetB", errors.ErrInvalidModel, "must differ from AssetA")
	}
	if o.AmountA == 0 {
		return errors.Field("AmountA", errors.ErrInvalidAmount, "must be positive")
	}
	if o.AmountB == 0 {
		return errors.Field("AmountB", errors.ErrInvalidAmount, "must be positive")
	}
	if o.Salt > maxSalt {
		return errors.Field("Salt", errors.ErrInvalidModel, "out of range")
	}
	return nil
}

func (o *Offer) Copy() orm.Model {
	cpy := *o
	return &cpy
}

func (o *Offer) Marshal() ([]byte, error) {
	return proto.Marshal((*offerPB)(o))
}

func (o *Offer) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*offerPB)(o))
}

func offerMaker(obj orm.Object) ([]byte, error) {
	o, ok := obj.Value().(*Offer)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", obj.Value())
	}
	return o.Maker, nil
}

// NewBucket returns the bucket of offer entries, indexed by maker.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Offer{},
		orm.WithIndex("maker", offerMaker, false))
}
