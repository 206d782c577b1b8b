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
	"strings"

	"golang.org/x/exp/constraints"
)

// Set is an unordered set of keys, sharing the table design of Map.
//
// A Set is NOT goroutine-safe.
type Set[K comparable] struct {
	t table[K, struct{}]
}

// NewSet constructs a new Set able to hold capacity elements before it
// needs to grow.
func NewSet[K comparable](capacity int, options ...option[K]) *Set[K] {
	s := &Set[K]{}
	cfg := makeConfig(options)
	s.t.init(capacity, &cfg)
	return s
}

// NewIntSet constructs a Set of integers that are used as their own hash.
func NewIntSet[K constraints.Integer](capacity int, options ...option[K]) *Set[K] {
	return NewSet[K](capacity, intOptions(options)...)
}

// NewSetFrom constructs a Set holding items, using the default options.
func NewSetFrom[K comparable](items ...K) *Set[K] {
	s := NewSet[K](len(items))
	for _, k := range items {
		s.Add(k)
	}
	return s
}

// CollectSet constructs a Set from the elements of seq.
func CollectSet[K comparable](seq iter.Seq[K], options ...option[K]) *Set[K] {
	s := NewSet[K](0, options...)
	s.AddAll(seq)
	return s
}

// Clone returns a copy of s that shares no storage with it.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{t: s.t.clone()}
}

// Add inserts key, reporting whether it was not already present.
func (s *Set[K]) Add(key K) bool {
	_, existed := s.t.put(key, struct{}{})
	return !existed
}

// AddAll inserts every element of seq, reporting whether the set changed.
func (s *Set[K]) AddAll(seq iter.Seq[K]) bool {
	changed := false
	for k := range seq {
		if s.Add(k) {
			changed = true
		}
	}
	return changed
}

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool {
	return s.t.contains(key)
}

// Remove deletes key, reporting whether it was present.
func (s *Set[K]) Remove(key K) bool {
	_, ok := s.t.remove(key)
	return ok
}

// RemoveAll deletes every element of seq, reporting whether the set
// changed.
func (s *Set[K]) RemoveAll(seq iter.Seq[K]) bool {
	changed := false
	for k := range seq {
		if s.Remove(k) {
			changed = true
		}
	}
	return changed
}

// RemoveFunc deletes every element for which pred returns true and returns
// the number of elements deleted.
func (s *Set[K]) RemoveFunc(pred func(K) bool) int {
	n := 0
	it := s.Iterator()
	for it.Next() {
		if pred(it.Key()) {
			it.Remove()
			n++
		}
	}
	return n
}

// First returns an arbitrary element of the set and whether the set is
// non-empty.
func (s *Set[K]) First() (K, bool) {
	k, _, ok := s.t.first()
	return k, ok
}

// Len returns the number of elements in the set.
func (s *Set[K]) Len() int {
	return s.t.size
}

// IsEmpty reports whether the set has no elements.
func (s *Set[K]) IsEmpty() bool {
	return s.t.size == 0
}

// Clear deletes all elements, keeping the capacity of the set.
func (s *Set[K]) Clear() {
	s.t.clear()
}

// ClearTo deletes all elements and releases storage beyond what
// maxCapacity elements need.
func (s *Set[K]) ClearTo(maxCapacity int) {
	s.t.clearTo(maxCapacity)
}

// EnsureCapacity grows the set, if necessary, so that additional more
// elements can be inserted without growing again.
func (s *Set[K]) EnsureCapacity(additional int) {
	s.t.ensureCapacity(additional)
}

// Shrink reduces the storage of the set to what max(maxCapacity, Len())
// elements need, if that is less than its current storage.
func (s *Set[K]) Shrink(maxCapacity int) {
	s.t.shrink(maxCapacity)
}

// LoadFactor returns the fraction of slots that may be occupied before the
// set grows.
func (s *Set[K]) LoadFactor() float64 {
	return s.t.loadFactor
}

// SetLoadFactor changes the load factor, growing the set if it is now over
// its threshold.
func (s *Set[K]) SetLoadFactor(loadFactor float64) {
	s.t.setLoadFactor(loadFactor)
}

// Iterator returns a new cursor over the elements of the set.
func (s *Set[K]) Iterator() *SetIterator[K] {
	return &SetIterator[K]{it: newIterator(&s.t, nil)}
}

// All returns a sequence of the elements of the set in unspecified order.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.Iterator().All()(yield)
	}
}

// Equal reports whether s and other contain the same elements.
func (s *Set[K]) Equal(other *Set[K]) bool {
	if s.Len() != other.Len() {
		return false
	}
	equal := true
	s.t.all(func(k K, _ struct{}) bool {
		equal = other.t.contains(k)
		return equal
	})
	return equal
}

// String renders the set as {a, b}.
func (s *Set[K]) String() string {
	return s.Format(defaultEntrySeparator, true)
}

// Format renders the set with sep between elements, optionally surrounded
// by braces.
func (s *Set[K]) Format(sep string, braces bool) string {
	var buf strings.Builder
	formatKeys(&buf, iter.Seq[K](s.keys), sep, braces)
	return buf.String()
}

func (s *Set[K]) keys(yield func(K) bool) {
	s.t.all(func(k K, _ struct{}) bool { return yield(k) })
}
