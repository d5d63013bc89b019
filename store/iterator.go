package store

import (
	"bytes"

	"github.com/google/btree"
)

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// cacheIterator joins the items staged in a cache with the iterator of the
// parent store, taking into consideration overwrites and deletes.
//
// Staged items are copied when the iterator is created, so writes done
// to the cache afterwards are not visible.
type cacheIterator struct {
	items  []btree.Item
	pos    int
	parent Iterator
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(bt *btree.BTree, start, end []byte, parent Iterator) (*cacheIterator, error) {
	var items []btree.Item
	collect := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}

	iter := &cacheIterator{
		items:  items,
		parent: parent,
	}
	if err := iter.skipDeleted(); err != nil {
		iter.Close()
		return nil, err
	}
	return iter, nil
}

// Valid implements Iterator and returns true iff it can be read
func (i *cacheIterator) Valid() bool {
	return i.ownValid() || i.parentValid()
}

// Next moves the iterator to the next key, skipping everything deleted in
// the cache.
func (i *cacheIterator) Next() error {
	switch i.firstKey() {
	case us:
		i.pos++
	case both:
		i.pos++
		if err := i.parent.Next(); err != nil {
			return err
		}
	case parent:
		if err := i.parent.Next(); err != nil {
			return err
		}
	default:
		panic("Advanced past the end!")
	}
	return i.skipDeleted()
}

// Key returns the key of the cursor.
func (i *cacheIterator) Key() []byte {
	switch i.firstKey() {
	case us, both:
		return i.current().Key()
	case parent:
		return i.parent.Key()
	default:
		panic("Advanced past the end!")
	}
}

// Value returns the value of the cursor.
func (i *cacheIterator) Value() []byte {
	switch i.firstKey() {
	case us, both:
		return i.current().(setItem).value
	case parent:
		return i.parent.Value()
	default:
		panic("Advanced past the end!")
	}
}

// Close releases the Iterator.
func (i *cacheIterator) Close() {
	if i.parent != nil {
		i.parent.Close()
	}
	i.items = nil
}

// skipDeleted fast forwards over all deleted items, together with the
// parent entries they hide.
func (i *cacheIterator) skipDeleted() error {
	for {
		src := i.firstKey()
		if src != us && src != both {
			return nil
		}
		if _, ok := i.current().(deletedItem); !ok {
			return nil
		}
		i.pos++
		if src == both {
			if err := i.parent.Next(); err != nil {
				return err
			}
		}
	}
}

// firstKey selects the iterator with the lowest key if any
func (i *cacheIterator) firstKey() source {
	if !i.parentValid() {
		if !i.ownValid() {
			return none
		}
		return us
	} else if !i.ownValid() {
		return parent
	}

	switch cmp := bytes.Compare(i.parent.Key(), i.current().Key()); {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

func (i *cacheIterator) current() keyer {
	return i.items[i.pos].(keyer)
}

func (i *cacheIterator) ownValid() bool {
	return i.pos < len(i.items)
}

func (i *cacheIterator) parentValid() bool {
	return i.parent != nil && i.parent.Valid()
}
