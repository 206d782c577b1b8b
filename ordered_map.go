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

// OrderedMap is a map that iterates in a defined key order. Keys are
// appended to the order when first inserted, and the order can be changed
// explicitly with the positional methods. Lookups by key cost the same as
// for Map; removal by key is linear in the number of entries because the
// key must also be found in the order.
//
// An OrderedMap is NOT goroutine-safe.
type OrderedMap[K comparable, V any] struct {
	t            table[K, V]
	keys         []K
	defaultValue V
}

// NewOrdered constructs a new OrderedMap able to hold capacity entries
// before it needs to grow.
func NewOrdered[K comparable, V any](capacity int, options ...option[K]) *OrderedMap[K, V] {
	m := &OrderedMap[K, V]{}
	cfg := makeConfig(options)
	m.t.init(capacity, &cfg)
	m.keys = make([]K, 0, capacity)
	return m
}

// NewOrderedIntMap constructs an OrderedMap with integer keys that are used
// as their own hash.
func NewOrderedIntMap[K constraints.Integer, V any](capacity int, options ...option[K]) *OrderedMap[K, V] {
	return NewOrdered[K, V](capacity, intOptions(options)...)
}

// NewOrderedFromSlices constructs an OrderedMap holding keys[i]→values[i],
// in index order, for every index present in both slices.
func NewOrderedFromSlices[K comparable, V any](
	keys []K, values []V, options ...option[K],
) *OrderedMap[K, V] {
	n := min(len(keys), len(values))
	m := NewOrdered[K, V](n, options...)
	for i := 0; i < n; i++ {
		m.Put(keys[i], values[i])
	}
	return m
}

// CollectOrdered constructs an OrderedMap from a sequence of key/value
// pairs, ordered as the sequence first yields each key.
func CollectOrdered[K comparable, V any](seq iter.Seq2[K, V], options ...option[K]) *OrderedMap[K, V] {
	m := NewOrdered[K, V](0, options...)
	m.PutAll(seq)
	return m
}

// Clone returns a copy of m that shares no storage with it.
func (m *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		t:            m.t.clone(),
		keys:         slices.Clone(m.keys),
		defaultValue: m.defaultValue,
	}
}

// Put inserts an entry, appending key to the order if it is new, or
// overwrites the value of an existing entry without changing the order. It
// returns the previous value, or the default value if key was not present.
func (m *OrderedMap[K, V]) Put(key K, value V) V {
	old, existed := m.t.put(key, value)
	if existed {
		return old
	}
	m.keys = append(m.keys, key)
	return m.defaultValue
}

// PutAt inserts or overwrites the entry for key and places key at index in
// the order. For a new key index may be Len(); for an existing key it must
// be less than Len().
func (m *OrderedMap[K, V]) PutAt(index int, key K, value V) V {
	if i := indexOf(&m.t, m.keys, key); i >= 0 {
		checkIndex(index, len(m.keys))
		old, _ := m.t.put(key, value)
		move(m.keys, i, index)
		return old
	}
	checkIndex(index, len(m.keys)+1)
	checkKey(&m.t, key)
	m.t.put(key, value)
	m.keys = slices.Insert(m.keys, index, key)
	return m.defaultValue
}

// PutIfAbsent inserts an entry only if key is not present. It returns the
// value associated with key after the call.
func (m *OrderedMap[K, V]) PutIfAbsent(key K, value V) V {
	if v, ok := m.t.get(key); ok {
		return v
	}
	m.Put(key, value)
	return value
}

// PutAll inserts every entry of seq.
func (m *OrderedMap[K, V]) PutAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Put(k, v)
	}
}

// Get returns the value for key, or the default value if key is not
// present.
func (m *OrderedMap[K, V]) Get(key K) V {
	if v, ok := m.t.get(key); ok {
		return v
	}
	return m.defaultValue
}

// GetOrDefault returns the value for key, or fallback if key is not present.
func (m *OrderedMap[K, V]) GetOrDefault(key K, fallback V) V {
	if v, ok := m.t.get(key); ok {
		return v
	}
	return fallback
}

// Lookup returns the value for key and whether it was present.
func (m *OrderedMap[K, V]) Lookup(key K) (V, bool) {
	return m.t.get(key)
}

// Remove deletes the entry for key from the map and the order. It returns
// the removed value, or the default value if key was not present.
func (m *OrderedMap[K, V]) Remove(key K) V {
	if old, ok := removeOrdered(&m.t, &m.keys, key); ok {
		return old
	}
	return m.defaultValue
}

// RemoveAt deletes the entry at index in the order and returns it.
func (m *OrderedMap[K, V]) RemoveAt(index int) (K, V) {
	checkIndex(index, len(m.keys))
	key := m.keys[index]
	old, _ := m.t.remove(key)
	m.keys = slices.Delete(m.keys, index, index+1)
	return key, old
}

// RemoveRange deletes the entries at positions [start, end) of the order.
func (m *OrderedMap[K, V]) RemoveRange(start, end int) {
	removeRange(&m.t, &m.keys, start, end)
}

// Truncate deletes entries from the end of the order until at most n
// remain.
func (m *OrderedMap[K, V]) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n < len(m.keys) {
		m.RemoveRange(n, len(m.keys))
	}
}

// ContainsKey reports whether key is present.
func (m *OrderedMap[K, V]) ContainsKey(key K) bool {
	return m.t.contains(key)
}

// ContainsValueFunc reports whether any value satisfies pred.
func (m *OrderedMap[K, V]) ContainsValueFunc(pred func(V) bool) bool {
	found := false
	m.t.all(func(_ K, v V) bool {
		found = pred(v)
		return !found
	})
	return found
}

// EqualFunc reports whether m and other contain the same keys with values
// that are equal according to eq, regardless of order. other is a *Map or
// an *OrderedMap.
func (m *OrderedMap[K, V]) EqualFunc(other entries[K, V], eq func(a, b V) bool) bool {
	return equalFunc(&m.t, other, eq)
}

// KeyAt returns the key at index in the order.
func (m *OrderedMap[K, V]) KeyAt(index int) K {
	checkIndex(index, len(m.keys))
	return m.keys[index]
}

// ValueAt returns the value of the key at index in the order.
func (m *OrderedMap[K, V]) ValueAt(index int) V {
	checkIndex(index, len(m.keys))
	v, _ := m.t.get(m.keys[index])
	return v
}

// SetAt replaces the value of the key at index in the order, returning the
// previous value.
func (m *OrderedMap[K, V]) SetAt(index int, value V) V {
	checkIndex(index, len(m.keys))
	old, _ := m.t.put(m.keys[index], value)
	return old
}

// IndexOf returns the position of key in the order, or -1 if it is not
// present.
func (m *OrderedMap[K, V]) IndexOf(key K) int {
	return indexOf(&m.t, m.keys, key)
}

// Order returns a copy of the key order.
func (m *OrderedMap[K, V]) Order() []K {
	return slices.Clone(m.keys)
}

// Swap exchanges the positions of the keys at indexes i and j.
func (m *OrderedMap[K, V]) Swap(i, j int) {
	swap(m.keys, i, j)
}

// Move relocates the key at index from to index to.
func (m *OrderedMap[K, V]) Move(from, to int) {
	move(m.keys, from, to)
}

// Alter replaces the key before with after, keeping its value and its
// position in the order. It returns false without changing anything if
// before is not present or after already is.
func (m *OrderedMap[K, V]) Alter(before, after K) bool {
	return alter(&m.t, m.keys, before, after)
}

// SortKeys sorts the order by key with cmp, which follows the conventions
// of slices.SortFunc.
func (m *OrderedMap[K, V]) SortKeys(cmp func(a, b K) int) {
	slices.SortFunc(m.keys, cmp)
}

// SortValues sorts the order by value with cmp.
func (m *OrderedMap[K, V]) SortValues(cmp func(a, b V) int) {
	slices.SortFunc(m.keys, func(a, b K) int {
		va, _ := m.t.get(a)
		vb, _ := m.t.get(b)
		return cmp(va, vb)
	})
}

// Len returns the number of entries in the map.
func (m *OrderedMap[K, V]) Len() int {
	return m.t.size
}

// IsEmpty reports whether the map has no entries.
func (m *OrderedMap[K, V]) IsEmpty() bool {
	return m.t.size == 0
}

// Clear deletes all entries, keeping the capacity of the map.
func (m *OrderedMap[K, V]) Clear() {
	m.t.clear()
	clear(m.keys)
	m.keys = m.keys[:0]
}

// ClearTo deletes all entries and releases storage beyond what maxCapacity
// entries need.
func (m *OrderedMap[K, V]) ClearTo(maxCapacity int) {
	m.t.clearTo(maxCapacity)
	if cap(m.keys) > maxCapacity {
		m.keys = make([]K, 0, maxCapacity)
	} else {
		clear(m.keys)
		m.keys = m.keys[:0]
	}
}

// EnsureCapacity grows the map, if necessary, so that additional more
// entries can be inserted without growing again.
func (m *OrderedMap[K, V]) EnsureCapacity(additional int) {
	m.t.ensureCapacity(additional)
	m.keys = slices.Grow(m.keys, additional)
}

// Shrink reduces the storage of the map to what max(maxCapacity, Len())
// entries need, if that is less than its current storage.
func (m *OrderedMap[K, V]) Shrink(maxCapacity int) {
	m.t.shrink(maxCapacity)
	m.keys = slices.Clip(m.keys)
}

// LoadFactor returns the fraction of slots that may be occupied before the
// map grows.
func (m *OrderedMap[K, V]) LoadFactor() float64 {
	return m.t.loadFactor
}

// SetLoadFactor changes the load factor, growing the map if it is now over
// its threshold.
func (m *OrderedMap[K, V]) SetLoadFactor(loadFactor float64) {
	m.t.setLoadFactor(loadFactor)
}

// DefaultValue returns the value returned for absent keys.
func (m *OrderedMap[K, V]) DefaultValue() V {
	return m.defaultValue
}

// SetDefaultValue changes the value returned for absent keys.
func (m *OrderedMap[K, V]) SetDefaultValue(value V) {
	m.defaultValue = value
}

// Iterator returns a new cursor over the entries of the map in order.
func (m *OrderedMap[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(&m.t, &m.keys)
}

// All returns a sequence of the entries of the map in order.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.Iterator().All()(yield)
	}
}

// Keys returns a sequence of the keys of the map in order.
func (m *OrderedMap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, k := range m.keys {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns a sequence of the values of the map in order.
func (m *OrderedMap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// String renders the map in order as {k=v, k=v}.
func (m *OrderedMap[K, V]) String() string {
	return m.Format(defaultEntrySeparator, defaultKeyValueSeparator, true)
}

// Format renders the map in order with the given separators between entries
// and between each key and its value, optionally surrounded by braces.
func (m *OrderedMap[K, V]) Format(entrySep, kvSep string, braces bool) string {
	var buf strings.Builder
	formatEntries(&buf, m.All(), entrySep, kvSep, braces)
	return buf.String()
}

// AppendFormat appends the rendering produced by Format to b.
func (m *OrderedMap[K, V]) AppendFormat(b []byte, entrySep, kvSep string, braces bool) []byte {
	return appendFormat(b, m.All(), entrySep, kvSep, braces)
}

// verify checks the table invariants and that the order holds exactly the
// keys of the table.
func (m *OrderedMap[K, V]) verify() error {
	return verifyOrder(&m.t, m.keys)
}
