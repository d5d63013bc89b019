package offer

import (
	"context"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/x"
)

type contextKey int // local to the offer module

const (
	contextKeyOffers contextKey = iota
)

// withOfferAuthority grants the derived authority of an offer entry.
// Unexported, as only this package may act on behalf of an entry.
func withOfferAuthority(ctx swap.Context, cond swap.Condition) swap.Context {
	prev := Authenticate{}.GetConditions(ctx)
	conds := make([]swap.Condition, 0, len(prev)+1)
	conds = append(conds, prev...)
	conds = append(conds, cond)
	return context.WithValue(ctx, contextKeyOffers, conds)
}

// Authenticate exposes the derived authorities granted by this package.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the offer conditions authorized in the context.
func (Authenticate) GetConditions(ctx swap.Context) []swap.Condition {
	val, _ := ctx.Value(contextKeyOffers).([]swap.Condition)
	return val
}

// HasAddress returns true if the address of an authorized offer equals
// addr.
func (a Authenticate) HasAddress(ctx swap.Context, addr swap.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// Authority is the party a transfer is made on behalf of. It is either a
// human, authorized by the signatures of the transaction, or an offer
// entry, authorized by this package.
type Authority interface {
	Address() swap.Address
	authorize(ctx swap.Context) swap.Context
}

// Human returns the authority of an identity that signed the transaction.
func Human(addr swap.Address) Authority {
	return human(addr)
}

type human swap.Address

func (h human) Address() swap.Address {
	return swap.Address(h)
}

func (h human) authorize(ctx swap.Context) swap.Context {
	return ctx
}

// derived is the authority of an offer entry. It can only be constructed
// by this package.
type derived struct {
	cond swap.Condition
}

func derivedAuthority(o *Offer) Authority {
	return derived{cond: o.Condition()}
}

func (d derived) Address() swap.Address {
	return d.cond.Address()
}

func (d derived) authorize(ctx swap.Context) swap.Context {
	return withOfferAuthority(ctx, d.cond)
}
