package orm

import (
	"github.com/iov-one/swap"
)

// Object is what is stored in the bucket.
// Key is joined with the prefix to set the full key.
// Value is the data stored.
type Object interface {
	Keyed
	Cloneable
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
	Value() swap.Persistent
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Cloneable will create a new object that can be loaded into
type Cloneable interface {
	Clone() Object
}

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	swap.Persistent
	Validate() error
	Copy() Model
}

// Index maintains a secondary index of a bucket.
type Index interface {
	swap.QueryHandler

	// Name returns the name of this index.
	Name() string

	// Update updates the index. It must be called whenever an entity of the
	// bucket changes.
	//
	// prev == nil means insert
	// save == nil means delete
	// both == nil is error
	// if both != nil and prev.Key() != save.Key() this is an error
	Update(db swap.KVStore, prev Object, save Object) error

	// GetAt returns the primary keys of all entities indexed under given
	// value.
	GetAt(db swap.ReadOnlyKVStore, index []byte) ([][]byte, error)
}

// Indexer calculates the secondary index key for a given object.
// A nil key means the object is not indexed.
type Indexer func(Object) ([]byte, error)
