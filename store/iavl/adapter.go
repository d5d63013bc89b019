/*
Package iavl provides the persistent, merkelized store used by the
application. State is kept in an iavl tree backed by goleveldb, every
commit produces a new version and the root hash becomes the app hash
reported to tendermint.
*/
package iavl

import (
	"github.com/iov-one/swap/errors"
	"github.com/iov-one/swap/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages an iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing in the given
// directory. An empty dir gives a memory only store, useful for tests.
func NewCommitStore(dir, name string) CommitStore {
	var db dbm.DB
	if dir == "" {
		db = dbm.NewMemDB()
	} else {
		db = dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	}
	return CommitStore{
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
		db:   db,
	}
}

// Get returns the value at last committed state
// returns nil iff key doesn't exist.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit the next version to disk, and returns info
func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. Writing it applies
// the changes to the working tree, they are persisted with the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	working := adapter{tree: s.tree, writer: s.tree}
	return store.NewBTreeCacheWrap(working, working.NewBatch(), nil)
}

// Committed returns a read only view of the last committed version.
func (s CommitStore) Committed() (store.ReadOnlyKVStore, error) {
	version := s.tree.Version()
	if version == 0 {
		return store.EmptyKVStore{}, nil
	}
	tree, err := s.tree.GetImmutable(version)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "version %d: %s", version, err)
	}
	return adapter{tree: tree}, nil
}

// Close releases the database.
func (s CommitStore) Close() {
	s.db.Close()
}

// reader is implemented by both the working and the committed trees.
type reader interface {
	Get(key []byte) (int64, []byte)
	Has(key []byte) bool
	IterateRange(start, end []byte, ascending bool, fn func(key []byte, value []byte) bool) bool
}

type writer interface {
	Set(key, value []byte) bool
	Remove(key []byte) ([]byte, bool)
}

// adapter exposes an iavl tree as a KVStore. A nil writer makes it read only.
type adapter struct {
	tree   reader
	writer writer
}

var _ store.KVStore = adapter{}

func (a adapter) Get(key []byte) ([]byte, error) {
	_, val := a.tree.Get(key)
	return val, nil
}

func (a adapter) Has(key []byte) (bool, error) {
	return a.tree.Has(key), nil
}

func (a adapter) Set(key, value []byte) error {
	if a.writer == nil {
		return errors.Wrap(errors.ErrHuman, "read only store")
	}
	a.writer.Set(key, value)
	return nil
}

func (a adapter) Delete(key []byte) error {
	if a.writer == nil {
		return errors.Wrap(errors.ErrHuman, "read only store")
	}
	a.writer.Remove(key)
	return nil
}

func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

// Iterator loads the whole range into memory. End is exclusive.
func (a adapter) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	a.tree.IterateRange(start, end, true, func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	})
	return store.NewSliceIterator(res), nil
}
