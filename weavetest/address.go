package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/swap"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// swap.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) swap.Address {
	t.Helper()

	addr, err := swap.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}

// RandomAddr returns a valid random address generated on the fly.
func RandomAddr(t testing.TB) swap.Address {
	t.Helper()

	raw := make([]byte, swap.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	a := swap.Address(raw)
	if err := a.Validate(); err != nil {
		t.Fatalf("generated address is not valid: %s", err)
	}
	return a
}
