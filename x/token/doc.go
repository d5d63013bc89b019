/*
Package token implements the asset accounting the swap protocols rely on.

Every (asset, owner) pair has at most one holding account, stored at an
address derived from both identities. Assets are identified by a 32 byte
address, the same way owners are.

Creating an account locks a storage deposit taken from the reserve of the
payer. The deposit is released to a chosen address when the account is
closed. A deposit of zero disables charging.
*/
package token
