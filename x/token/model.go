package token

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/orm"
)

const (
	// ExtensionName is used for the conditions of associated accounts.
	ExtensionName = "token"

	// BucketName is where holding accounts are stored.
	BucketName = "tokens"

	// ReserveBucketName is where native reserves are stored.
	ReserveBucketName = "reserves"
)

// AccountCondition returns the condition of the holding account of owner
// for given asset.
func AccountCondition(asset, owner swap.Address) swap.Condition {
	data := make([]byte, 0, len(asset)+len(owner))
	data = append(data, asset...)
	data = append(data, owner...)
	return swap.NewCondition(ExtensionName, "assoc", data)
}

// AccountAddress returns the address at which the holding account of owner
// for given asset is stored. There is exactly one such address for every
// (asset, owner) pair.
func AccountAddress(asset, owner swap.Address) swap.Address {
	return AccountCondition(asset, owner).Address()
}

// Account is a holding account of a single asset.
type Account struct {
	Owner   swap.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Asset   swap.Address `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset,omitempty"`
	Amount  uint64       `protobuf:"varint,3,opt,name=amount,proto3" json:"amount,omitempty"`
	Deposit uint64       `protobuf:"varint,4,opt,name=deposit,proto3" json:"deposit,omitempty"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if err := a.Owner.Validate(); err != nil {
		return errors.Field("Owner", err, "")
	}
	if err := a.Asset.Validate(); err != nil {
		return errors.Field("Asset", err, "")
	}
	return nil
}

func (a *Account) Copy() orm.Model {
	cpy := *a
	return &cpy
}

func (a *Account) Marshal() ([]byte, error) {
	return proto.Marshal((*accountPB)(a))
}

func (a *Account) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*accountPB)(a))
}

// Reserve is the native balance of an address used to pay storage
// deposits.
type Reserve struct {
	Amount uint64 `protobuf:"varint,1,opt,name=amount,proto3" json:"amount,omitempty"`
}

var _ orm.Model = (*Reserve)(nil)

func (r *Reserve) Validate() error {
	return nil
}

func (r *Reserve) Copy() orm.Model {
	cpy := *r
	return &cpy
}

func (r *Reserve) Marshal() ([]byte, error) {
	return proto.Marshal((*reservePB)(r))
}

func (r *Reserve) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*reservePB)(r))
}

func accountOwner(obj orm.Object) ([]byte, error) {
	a, ok := obj.Value().(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", obj.Value())
	}
	return a.Owner, nil
}

// NewAccountBucket returns the bucket of holding accounts. Accounts are
// indexed by their owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{},
		orm.WithIndex("owner", accountOwner, false))
}

// NewReserveBucket returns the bucket of native reserves.
func NewReserveBucket() orm.ModelBucket {
	return orm.NewModelBucket(ReserveBucketName, &Reserve{})
}
