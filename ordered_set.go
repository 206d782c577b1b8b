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
	"strings"

	"golang.org/x/exp/constraints"
)

// OrderedSet is a set that iterates in a defined order. Elements are
// appended to the order when first added, and the order can be changed
// explicitly with the positional methods.
//
// An OrderedSet is NOT goroutine-safe.
type OrderedSet[K comparable] struct {
	t    table[K, struct{}]
	keys []K
}

// NewOrderedSet constructs a new OrderedSet able to hold capacity elements
// before it needs to grow.
func NewOrderedSet[K comparable](capacity int, options ...option[K]) *OrderedSet[K] {
	s := &OrderedSet[K]{}
	cfg := makeConfig(options)
	s.t.init(capacity, &cfg)
	s.keys = make([]K, 0, capacity)
	return s
}

// NewOrderedIntSet constructs an OrderedSet of integers that are used as
// their own hash.
func NewOrderedIntSet[K constraints.Integer](capacity int, options ...option[K]) *OrderedSet[K] {
	return NewOrderedSet[K](capacity, intOptions(options)...)
}

// NewOrderedSetFrom constructs an OrderedSet holding items in the order
// given, dropping later duplicates.
func NewOrderedSetFrom[K comparable](items ...K) *OrderedSet[K] {
	s := NewOrderedSet[K](len(items))
	for _, k := range items {
		s.Add(k)
	}
	return s
}

// Clone returns a copy of s that shares no storage with it.
func (s *OrderedSet[K]) Clone() *OrderedSet[K] {
	return &OrderedSet[K]{t: s.t.clone(), keys: slices.Clone(s.keys)}
}

// Add appends key to the set, reporting whether it was not already
// present. The position of an existing element does not change.
func (s *OrderedSet[K]) Add(key K) bool {
	if _, existed := s.t.put(key, struct{}{}); existed {
		return false
	}
	s.keys = append(s.keys, key)
	return true
}

// AddAt inserts key at index in the order, reporting whether it was not
// already present. An existing element is moved to index, which must then
// be less than Len(); a new one may be inserted at Len().
func (s *OrderedSet[K]) AddAt(index int, key K) bool {
	if i := indexOf(&s.t, s.keys, key); i >= 0 {
		move(s.keys, i, index)
		return false
	}
	checkIndex(index, len(s.keys)+1)
	checkKey(&s.t, key)
	s.t.put(key, struct{}{})
	s.keys = slices.Insert(s.keys, index, key)
	return true
}

// AddAll appends every element of seq, reporting whether the set changed.
func (s *OrderedSet[K]) AddAll(seq iter.Seq[K]) bool {
	changed := false
	for k := range seq {
		if s.Add(k) {
			changed = true
		}
	}
	return changed
}

// Contains reports whether key is present.
func (s *OrderedSet[K]) Contains(key K) bool {
	return s.t.contains(key)
}

// Remove deletes key from the set and the order, reporting whether it was
// present.
func (s *OrderedSet[K]) Remove(key K) bool {
	_, ok := removeOrdered(&s.t, &s.keys, key)
	return ok
}

// RemoveAt deletes the element at index in the order and returns it.
func (s *OrderedSet[K]) RemoveAt(index int) K {
	checkIndex(index, len(s.keys))
	key := s.keys[index]
	s.t.remove(key)
	s.keys = slices.Delete(s.keys, index, index+1)
	return key
}

// RemoveRange deletes the elements at positions [start, end) of the order.
func (s *OrderedSet[K]) RemoveRange(start, end int) {
	removeRange(&s.t, &s.keys, start, end)
}

// Truncate deletes elements from the end of the order until at most n
// remain.
func (s *OrderedSet[K]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(s.keys) {
		s.RemoveRange(n, len(s.keys))
	}
}

// At returns the element at index in the order.
func (s *OrderedSet[K]) At(index int) K {
	checkIndex(index, len(s.keys))
	return s.keys[index]
}

// First returns the first element in the order and whether the set is
// non-empty.
func (s *OrderedSet[K]) First() (K, bool) {
	if len(s.keys) == 0 {
		var zero K
		return zero, false
	}
	return s.keys[0], true
}

// Last returns the last element in the order and whether the set is
// non-empty.
func (s *OrderedSet[K]) Last() (K, bool) {
	if len(s.keys) == 0 {
		var zero K
		return zero, false
	}
	return s.keys[len(s.keys)-1], true
}

// IndexOf returns the position of key in the order, or -1.
func (s *OrderedSet[K]) IndexOf(key K) int {
	return indexOf(&s.t, s.keys, key)
}

// Order returns a copy of the element order.
func (s *OrderedSet[K]) Order() []K {
	return slices.Clone(s.keys)
}

// Swap exchanges the positions of the elements at indexes i and j.
func (s *OrderedSet[K]) Swap(i, j int) {
	swap(s.keys, i, j)
}

// Move relocates the element at index from to index to.
func (s *OrderedSet[K]) Move(from, to int) {
	move(s.keys, from, to)
}

// Alter replaces the element before with after at the same position. It
// returns false without changing anything if before is not present or
// after already is.
func (s *OrderedSet[K]) Alter(before, after K) bool {
	return alter(&s.t, s.keys, before, after)
}

// Sort sorts the order with cmp, which follows the conventions of
// slices.SortFunc.
func (s *OrderedSet[K]) Sort(cmp func(a, b K) int) {
	slices.SortFunc(s.keys, cmp)
}

// Len returns the number of elements in the set.
func (s *OrderedSet[K]) Len() int {
	return s.t.size
}

// IsEmpty reports whether the set has no elements.
func (s *OrderedSet[K]) IsEmpty() bool {
	return s.t.size == 0
}

// Clear deletes all elements, keeping the capacity of the set.
func (s *OrderedSet[K]) Clear() {
	s.t.clear()
	clear(s.keys)
	s.keys = s.keys[:0]
}

// ClearTo deletes all elements and releases storage beyond what
// maxCapacity elements need.
func (s *OrderedSet[K]) ClearTo(maxCapacity int) {
	s.t.clearTo(maxCapacity)
	if cap(s.keys) > maxCapacity {
		s.keys = make([]K, 0, maxCapacity)
	} else {
		clear(s.keys)
		s.keys = s.keys[:0]
	}
}

// EnsureCapacity grows the set, if necessary, so that additional more
// elements can be added without growing again.
func (s *OrderedSet[K]) EnsureCapacity(additional int) {
	s.t.ensureCapacity(additional)
	s.keys = slices.Grow(s.keys, additional)
}

// Shrink reduces the storage of the set to what max(maxCapacity, Len())
// elements need, if that is less than its current storage.
func (s *OrderedSet[K]) Shrink(maxCapacity int) {
	s.t.shrink(maxCapacity)
	s.keys = slices.Clip(s.keys)
}

// LoadFactor returns the fraction of slots that may be occupied before the
// set grows.
func (s *OrderedSet[K]) LoadFactor() float64 {
	return s.t.loadFactor
}

// SetLoadFactor changes the load factor, growing the set if it is now over
// its threshold.
func (s *OrderedSet[K]) SetLoadFactor(loadFactor float64) {
	s.t.setLoadFactor(loadFactor)
}

// Iterator returns a new cursor over the elements of the set in order.
func (s *OrderedSet[K]) Iterator() *SetIterator[K] {
	return &SetIterator[K]{it: newIterator(&s.t, &s.keys)}
}

// All returns a sequence of the elements of the set in order.
func (s *OrderedSet[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.Iterator().All()(yield)
	}
}

// Equal reports whether s and other contain the same elements, regardless
// of order.
func (s *OrderedSet[K]) Equal(other *OrderedSet[K]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, k := range s.keys {
		if !other.t.contains(k) {
			return false
		}
	}
	return true
}

// String renders the set in order as {a, b}.
func (s *OrderedSet[K]) String() string {
	return s.Format(defaultEntrySeparator, true)
}

// Format renders the set in order with sep between elements, optionally
// surrounded by braces.
func (s *OrderedSet[K]) Format(sep string, braces bool) string {
	var buf strings.Builder
	formatKeys(&buf, slices.Values(s.keys), sep, braces)
	return buf.String()
}

func (s *OrderedSet[K]) verify() error {
	return verifyOrder(&s.t, s.keys)
}
