package weavetest

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/crypto"
)

// NewKey returns a freshly generated ed25519 signer.
func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a fresh key.
func NewCondition() swap.Condition {
	return NewKey().PublicKey().Condition()
}
