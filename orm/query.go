package orm

import (
	"github.com/iov-one/swap"
	"github.com/iov-one/swap/errors"
)

// prefixRange turns a prefix into (start, end) to create
// and iterator
func prefixRange(prefix []byte) ([]byte, []byte) {
	// special case: no prefix is whole range
	if len(prefix) == 0 {
		return nil, nil
	}

	// copy the prefix and update last byte
	end := make([]byte, len(prefix))
	copy(end, prefix)
	l := len(end) - 1
	end[l]++

	// wait, what if that overflowed?....
	for end[l] == 0 && l > 0 {
		l--
		end[l]++
	}

	// okay, funny guy, you gave us FFF, no end to this range...
	if l == 0 && end[0] == 0 {
		end = nil
	}
	return prefix, end
}

// queryPrefix returns all models whose key starts with the prefix.
func queryPrefix(db swap.ReadOnlyKVStore, prefix []byte) ([]swap.Model, error) {
	iter, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, err
	}
	return consumeIterator(iter)
}

// consumeIterator reads all remaining data into an
// array and closes the iterator
func consumeIterator(iter swap.Iterator) ([]swap.Model, error) {
	defer iter.Close()

	var res []swap.Model
	for iter.Valid() {
		res = append(res, swap.Model{Key: iter.Key(), Value: iter.Value()})
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// RegisterQuery exposes the raw store under "/". Data is the full
// database key, with the bucket prefix included.
func RegisterQuery(qr swap.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db swap.ReadOnlyKVStore, mod string, data []byte) ([]swap.Model, error) {
	switch mod {
	case swap.KeyQueryMod:
		value, err := db.Get(data)
		if err != nil || value == nil {
			return nil, err
		}
		return []swap.Model{swap.Pair(data, value)}, nil
	case swap.PrefixQueryMod:
		return queryPrefix(db, data)
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "not implemented: %s", mod)
	}
}
