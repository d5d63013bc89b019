package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/x/offer"
	"github.com/iov-one/swap/x/sigs"
)

// Tx is the transaction accepted by the application. It carries the
// signatures of its signers and exactly one message.
type Tx struct {
	Signatures     []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	CreateOfferMsg *offer.CreateMsg     `protobuf:"bytes,2,opt,name=create_offer_msg,json=createOfferMsg,proto3" json:"create_offer_msg,omitempty"`
	TakeOfferMsg   *offer.TakeMsg       `protobuf:"bytes,3,opt,name=take_offer_msg,json=takeOfferMsg,proto3" json:"take_offer_msg,omitempty"`
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (swap.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// make sure tx fulfills all interfaces
var _ swap.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// GetMsg returns the message of this transaction.
func (tx *Tx) GetMsg() (swap.Msg, error) {
	switch {
	case tx.CreateOfferMsg != nil && tx.TakeOfferMsg != nil:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "more than one message")
	case tx.CreateOfferMsg != nil:
		return tx.CreateOfferMsg, nil
	case tx.TakeOfferMsg != nil:
		return tx.TakeOfferMsg, nil
	default:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	}
}

// SetMsg places msg in the transaction, replacing any previous message.
func (tx *Tx) SetMsg(msg swap.Msg) error {
	switch m := msg.(type) {
	case *offer.CreateMsg:
		tx.CreateOfferMsg, tx.TakeOfferMsg = m, nil
	case *offer.TakeMsg:
		tx.CreateOfferMsg, tx.TakeOfferMsg = nil, m
	default:
		return errors.Wrapf(errors.ErrInvalidType, "unsupported message %T", msg)
	}
	return nil
}

// GetSignatures returns all signatures of this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes that are signed, the serialized
// transaction without its signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	unsigned := Tx{
		CreateOfferMsg: tx.CreateOfferMsg,
		TakeOfferMsg:   tx.TakeOfferMsg,
	}
	return unsigned.Marshal()
}

func (tx *Tx) Marshal() ([]byte, error) {
	return proto.Marshal((*txPB)(tx))
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*txPB)(tx))
}
