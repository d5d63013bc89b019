/*
Package swap defines the common interfaces that tie the swap application
together: key value stores, conditions and addresses, transactions and
their handlers, and the helpers that carry block information through a
context.Context.

Extensions live under x/. The core of the application is x/offer, a two
party escrow where a maker locks one asset in a vault and a taker
atomically exchanges it for another asset.

Every value stored in a Context has a pair of helpers:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so lower level code cannot
overwrite what the application decided (eg. height, chain id).
*/
package swap
