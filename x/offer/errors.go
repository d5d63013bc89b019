package offer

import (
	"github.com/iov-one/swap/errors"
)

var (
	// ErrEntryMismatch is returned when the values supplied by a taker do
	// not match the stored offer entry.
	ErrEntryMismatch = errors.Register(601, "offer entry mismatch")

	// ErrDerivationMismatch is returned when a supplied address is not the
	// one derived from the offer entry.
	ErrDerivationMismatch = errors.Register(602, "offer derivation mismatch")
)
