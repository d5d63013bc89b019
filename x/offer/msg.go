package offer

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

const (
	pathCreateOfferMsg = "offer/create"
	pathTakeOfferMsg   = "offer/take"
)

// CreateMsg locks AmountA of AssetA of the maker in a new offer asking
// for AmountB of AssetB.
type CreateMsg struct {
	ID      uint64       `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Maker   swap.Address `protobuf:"bytes,2,opt,name=maker,proto3" json:"maker,omitempty"`
	AssetA  swap.Address `protobuf:"bytes,3,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB  swap.Address `protobuf:"bytes,4,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	AmountA uint64       `protobuf:"varint,5,opt,name=amount_a,json=amountA,proto3" json:"amount_a,omitempty"`
	AmountB uint64       `protobuf:"varint,6,opt,name=amount_b,json=amountB,proto3" json:"amount_b,omitempty"`
}

var _ swap.Msg = (*CreateMsg)(nil)

// Path returns the routing path for this message.
func (CreateMsg) Path() string {
	return pathCreateOfferMsg
}

// Validate makes sure that this is sensible.
func (m *CreateMsg) Validate() error {
	if err := m.Maker.Validate(); err != nil {
		return errors.Field("Maker", err, "")
	}
	if err := validateAssets(m.AssetA, m.AssetB); err != nil {
		return err
	}
	if m.AmountA == 0 {
		return errors.Field("AmountA", errors.ErrInvalidAmount, "must be positive")
	}
	if m.AmountB == 0 {
		return errors.Field("AmountB", errors.ErrInvalidAmount, "must be positive")
	}
	return nil
}

func validateAssets(a, b swap.Address) error {
	if err := a.Validate(); err != nil {
		return errors.Field("AssetA", err, "")
	}
	if err := b.Validate(); err != nil {
		return errors.Field("AssetB", err, "")
	}
	if a.Equals(b) {
		return errors.Field("AssetB", errors.ErrInvalidMsg, "must differ from AssetA")
	}
	return nil
}

func (m *CreateMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createMsgPB)(m))
}

func (m *CreateMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createMsgPB)(m))
}

// TakeMsg settles an offer. The offer is located by its address when
// Offer is set, otherwise by Maker and OfferID. Maker, AssetA and AssetB
// must always match the stored entry. Vault is optional and, when set,
// must be the vault of the offer.
type TakeMsg struct {
	Taker   swap.Address `protobuf:"bytes,1,opt,name=taker,proto3" json:"taker,omitempty"`
	Offer   swap.Address `protobuf:"bytes,2,opt,name=offer,proto3" json:"offer,omitempty"`
	Maker   swap.Address `protobuf:"bytes,3,opt,name=maker,proto3" json:"maker,omitempty"`
	OfferID uint64       `protobuf:"varint,4,opt,name=offer_id,json=offerId,proto3" json:"offer_id,omitempty"`
	AssetA  swap.Address `protobuf:"bytes,5,opt,name=asset_a,json=assetA,proto3" json:"asset_a,omitempty"`
	AssetB  swap.Address `protobuf:"bytes,6,opt,name=asset_b,json=assetB,proto3" json:"asset_b,omitempty"`
	Vault   swap.Address `protobuf:"bytes,7,opt,name=vault,proto3" json:"vault,omitempty"`
}

var _ swap.Msg = (*TakeMsg)(nil)

// Path returns the routing path for this message.
func (TakeMsg) Path() string {
	return pathTakeOfferMsg
}

// Validate makes sure that this is sensible.
func (m *TakeMsg) Validate() error {
	if err := m.Taker.Validate(); err != nil {
		return errors.Field("Taker", err, "")
	}
	if err := m.Maker.Validate(); err != nil {
		return errors.Field("Maker", err, "")
	}
	if len(m.Offer) != 0 {
		if err := m.Offer.Validate(); err != nil {
			return errors.Field("Offer", err, "")
		}
	}
	if len(m.Vault) != 0 {
		if err := m.Vault.Validate(); err != nil {
			return errors.Field("Vault", err, "")
		}
	}
	return validateAssets(m.AssetA, m.AssetB)
}

func (m *TakeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*takeMsgPB)(m))
}

func (m *TakeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*takeMsgPB)(m))
}
