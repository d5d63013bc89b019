package utils

import (
	"github.com/iov-one/swap"
)

// writeHandler writes the key, value pair and returns the error (may be nil)
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

var _ swap.Handler = writeHandler{}

func (h writeHandler) Check(ctx swap.Context, store swap.KVStore, tx swap.Tx) (*swap.CheckResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &swap.CheckResult{}, nil
}

func (h writeHandler) Deliver(ctx swap.Context, store swap.KVStore, tx swap.Tx) (*swap.DeliverResult, error) {
	if err := store.Set(h.key, h.value); err != nil {
		return nil, err
	}
	if h.err != nil {
		return nil, h.err
	}
	return &swap.DeliverResult{Log: "written"}, nil
}

// panicHandler always panics with the given message
type panicHandler struct {
	msg string
}

var _ swap.Handler = panicHandler{}

func (h panicHandler) Check(swap.Context, swap.KVStore, swap.Tx) (*swap.CheckResult, error) {
	panic(h.msg)
}

func (h panicHandler) Deliver(swap.Context, swap.KVStore, swap.Tx) (*swap.DeliverResult, error) {
	panic(h.msg)
}
