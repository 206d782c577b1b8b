// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package linear

import (
	"iter"
	"slices"
)

// Iterator is a cursor over the entries of a map. Entries can be removed
// through the cursor while iterating. Mutating the map by any other means
// during iteration leaves the order and completeness of the iteration
// unspecified.
//
// An unordered Iterator yields the zero key first, if present, followed by
// the occupied slots in index order. An ordered Iterator follows the key
// order of its map.
type Iterator[K comparable, V any] struct {
	t *table[K, V]
	// order is the key sequence of an ordered container, nil otherwise.
	order *[]K
	// pos is the slot (or order index) of the current entry. -1 denotes the
	// zero key.
	pos int
	// next is where the search for the following entry starts. -1 means
	// iteration has not started.
	next  int
	valid bool
	// skip holds keys that Remove shifted from the start of the slot array
	// to a slot ahead of the cursor. They have already been yielded.
	skip []K
	busy bool
}

func newIterator[K comparable, V any](t *table[K, V], order *[]K) *Iterator[K, V] {
	return &Iterator[K, V]{t: t, order: order, next: -1}
}

// Next advances to the next entry, reporting whether there is one.
func (it *Iterator[K, V]) Next() bool {
	it.valid = false
	if it.order != nil {
		if it.next < 0 {
			it.next = 0
		}
		if it.next < len(*it.order) {
			it.pos = it.next
			it.next++
			it.valid = true
		}
		return it.valid
	}

	if it.next < 0 {
		it.next = 0
		if it.t.hasZero {
			it.pos = -1
			it.valid = true
			return true
		}
	}
	var zero K
	keys := it.t.keys
	for i := it.next; i < len(keys); i++ {
		key := keys[i]
		if key == zero || (len(it.skip) > 0 && it.skipped(key)) {
			continue
		}
		it.pos, it.next, it.valid = i, i+1, true
		return true
	}
	it.next = len(keys)
	return false
}

// skipped reports whether key was already yielded before being shifted
// ahead of the cursor, forgetting it if so.
func (it *Iterator[K, V]) skipped(key K) bool {
	for i, k := range it.skip {
		if k == key {
			it.skip = slices.Delete(it.skip, i, i+1)
			return true
		}
	}
	return false
}

func (it *Iterator[K, V]) checkValid() {
	if !it.valid {
		panic(ErrNoCurrentElement)
	}
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K {
	it.checkValid()
	if it.order != nil {
		return (*it.order)[it.pos]
	}
	if it.pos < 0 {
		return it.t.zeroKey
	}
	return it.t.keys[it.pos]
}

// Value returns the value of the current entry.
func (it *Iterator[K, V]) Value() V {
	it.checkValid()
	if it.order != nil {
		v, _ := it.t.get((*it.order)[it.pos])
		return v
	}
	if it.pos < 0 {
		return it.t.zeroValue
	}
	return it.t.values[it.pos]
}

// SetValue replaces the value of the current entry.
func (it *Iterator[K, V]) SetValue(value V) {
	it.checkValid()
	switch {
	case it.order != nil:
		it.t.put((*it.order)[it.pos], value)
	case it.pos < 0:
		it.t.zeroValue = value
	default:
		it.t.values[it.pos] = value
	}
}

// Remove deletes the current entry from the map. The iterator has no
// current entry until Next is called again.
func (it *Iterator[K, V]) Remove() {
	it.checkValid()
	it.valid = false
	if it.order != nil {
		it.t.remove((*it.order)[it.pos])
		*it.order = slices.Delete(*it.order, it.pos, it.pos+1)
		it.next = it.pos
		return
	}
	if it.pos < 0 {
		it.t.removeZero()
		return
	}
	if w := it.t.removeAt(it.pos); w >= 0 {
		it.skip = append(it.skip, it.t.keys[w])
	}
	// An entry may have been shifted into the current slot.
	it.next = it.pos
}

// Reset rewinds the iterator to the beginning.
func (it *Iterator[K, V]) Reset() {
	it.next = -1
	it.valid = false
	it.skip = it.skip[:0]
}

// All returns a sequence yielding the remaining entries of the iterator.
// Ranging over the sequence while the same iterator is already being
// ranged over panics with ErrIteratorInUse.
func (it *Iterator[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if it.busy {
			panic(ErrIteratorInUse)
		}
		it.busy = true
		defer func() { it.busy = false }()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
	}
}

// SetIterator is a cursor over the elements of a set. See Iterator.
type SetIterator[K comparable] struct {
	it *Iterator[K, struct{}]
}

// Next advances to the next element, reporting whether there is one.
func (s *SetIterator[K]) Next() bool { return s.it.Next() }

// Key returns the current element.
func (s *SetIterator[K]) Key() K { return s.it.Key() }

// Remove deletes the current element from the set.
func (s *SetIterator[K]) Remove() { s.it.Remove() }

// Reset rewinds the iterator to the beginning.
func (s *SetIterator[K]) Reset() { s.it.Reset() }

// All returns a sequence yielding the remaining elements of the iterator.
// Ranging over the sequence while the same iterator is already being
// ranged over panics with ErrIteratorInUse.
func (s *SetIterator[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range s.it.All() {
			if !yield(k) {
				return
			}
		}
	}
}
