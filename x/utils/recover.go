package utils

import (
	"runtime/debug"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// Recovery turns a panic of the wrapped handler into an ErrPanic failure of
// the transaction. The panic and its stack are written to the context
// logger, the returned error only carries the panic value and is redacted
// outside of debug mode.
type Recovery struct{}

var _ swap.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx swap.Context, store swap.KVStore, tx swap.Tx, next swap.Checker) (_ *swap.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, "check", p)
		}
	}()
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx swap.Context, store swap.KVStore, tx swap.Tx, next swap.Deliverer) (_ *swap.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = panicked(ctx, tx, "deliver", p)
		}
	}()
	return next.Deliver(ctx, store, tx)
}

func panicked(ctx swap.Context, tx swap.Tx, stage string, p interface{}) error {
	swap.GetLogger(ctx).Error("panic recovered",
		"stage", stage,
		"path", swap.GetPath(tx),
		"panic", p,
		"stack", string(debug.Stack()))
	return errors.Wrapf(errors.ErrPanic, "%v", p)
}
