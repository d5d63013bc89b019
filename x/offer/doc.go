/*
Package offer implements a two party atomic swap escrow.

A maker locks an amount of asset A in a vault and declares the amount of
asset B wanted in exchange. The offer entry is stored at an address that
is a pure function of the maker and a maker chosen id. The vault is the
holding account of asset A owned by that address, so only this package
can move tokens out of it.

A taker settles the offer by paying asset B to the maker. In the same
atomic unit the whole vault balance is released to the taker and both
the vault and the entry are removed, returning their storage deposits.
*/
package offer
