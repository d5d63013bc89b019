package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/swap"
	"github.com/iov-one/swap/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of store.MemStore when you want
// the exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db swap.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "swap")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	s := iavl.NewCommitStore(dbpath, "db")
	return s, func() {
		s.Close()
		os.RemoveAll(dbpath)
	}
}
