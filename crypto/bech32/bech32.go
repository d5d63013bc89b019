/*
Package bech32 renders addresses in the human friendly bech32 format, with
a checksum and a human readable prefix naming the network.
*/
package bech32

import (
	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/swap/errors"
)

// Encode returns the bech32 representation of payload under hrp.
func Encode(hrp string, payload []byte) (string, error) {
	grouped, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "regroup payload: %s", err)
	}
	enc, err := bech32.Encode(hrp, grouped)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidInput, "encode: %s", err)
	}
	return enc, nil
}

// Decode returns the payload of a bech32 string. When hrp is not empty the
// human readable part must be equal to it.
func Decode(enc, hrp string) ([]byte, error) {
	gotHRP, grouped, err := bech32.Decode(enc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "decode: %s", err)
	}
	if hrp != "" && gotHRP != hrp {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "prefix %q, want %q", gotHRP, hrp)
	}
	payload, err := bech32.ConvertBits(grouped, 5, 8, false)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "regroup payload: %s", err)
	}
	return payload, nil
}
