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

// Map is an unordered map from keys to values. By default, a Map[K,V] uses
// the same hash function as Go's builtin map[K]V, though a different hash
// function or equivalence relation can be specified using the WithHasher
// and WithHash options.
//
// Lookups of absent keys return the map's default value, which is the zero
// value of V unless changed with SetDefaultValue.
//
// A Map is NOT goroutine-safe.
type Map[K comparable, V any] struct {
	t            table[K, V]
	defaultValue V
}

// New constructs a new Map able to hold capacity entries before it needs to
// grow.
func New[K comparable, V any](capacity int, options ...option[K]) *Map[K, V] {
	m := &Map[K, V]{}
	cfg := makeConfig(options)
	m.t.init(capacity, &cfg)
	return m
}

// NewFromSlices constructs a Map holding keys[i]→values[i] for every index
// present in both slices. Later duplicates of a key overwrite earlier ones.
func NewFromSlices[K comparable, V any](keys []K, values []V, options ...option[K]) *Map[K, V] {
	n := min(len(keys), len(values))
	m := New[K, V](n, options...)
	for i := 0; i < n; i++ {
		m.Put(keys[i], values[i])
	}
	return m
}

// NewFromSeqs constructs a Map by pairing the keys and values sequences
// element by element until either is exhausted.
func NewFromSeqs[K comparable, V any](keys iter.Seq[K], values iter.Seq[V], options ...option[K]) *Map[K, V] {
	m := New[K, V](0, options...)
	nextKey, stopKeys := iter.Pull(keys)
	defer stopKeys()
	nextValue, stopValues := iter.Pull(values)
	defer stopValues()
	for {
		k, ok := nextKey()
		if !ok {
			break
		}
		v, ok := nextValue()
		if !ok {
			break
		}
		m.Put(k, v)
	}
	return m
}

// Collect constructs a Map from a sequence of key/value pairs.
func Collect[K comparable, V any](seq iter.Seq2[K, V], options ...option[K]) *Map[K, V] {
	m := New[K, V](0, options...)
	m.PutAll(seq)
	return m
}

// NewIntMap constructs a Map with integer keys that are used as their own
// hash.
func NewIntMap[K constraints.Integer, V any](capacity int, options ...option[K]) *Map[K, V] {
	return New[K, V](capacity, intOptions(options)...)
}

// Clone returns a copy of m that shares no storage with it.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		t:            m.t.clone(),
		defaultValue: m.defaultValue,
	}
}

// Put inserts an entry into the map, overwriting the value of an existing
// entry with the same key. It returns the previous value, or the default
// value if the key was not present.
func (m *Map[K, V]) Put(key K, value V) V {
	if old, ok := m.t.put(key, value); ok {
		return old
	}
	return m.defaultValue
}

// PutIfAbsent inserts an entry only if key is not present. It returns the
// value associated with key after the call.
func (m *Map[K, V]) PutIfAbsent(key K, value V) V {
	if v, ok := m.t.get(key); ok {
		return v
	}
	m.t.put(key, value)
	return value
}

// PutAll inserts every entry of seq.
func (m *Map[K, V]) PutAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.t.put(k, v)
	}
}

// Get returns the value for key, or the default value if key is not
// present.
func (m *Map[K, V]) Get(key K) V {
	if v, ok := m.t.get(key); ok {
		return v
	}
	return m.defaultValue
}

// GetOrDefault returns the value for key, or fallback if key is not present.
func (m *Map[K, V]) GetOrDefault(key K, fallback V) V {
	if v, ok := m.t.get(key); ok {
		return v
	}
	return fallback
}

// Lookup returns the value for key and whether it was present.
func (m *Map[K, V]) Lookup(key K) (V, bool) {
	return m.t.get(key)
}

// Remove deletes the entry for key. It returns the removed value, or the
// default value if key was not present.
func (m *Map[K, V]) Remove(key K) V {
	if old, ok := m.t.remove(key); ok {
		return old
	}
	return m.defaultValue
}

// ContainsKey reports whether key is present.
func (m *Map[K, V]) ContainsKey(key K) bool {
	return m.t.contains(key)
}

// ContainsValueFunc reports whether any value satisfies pred. It visits
// every entry in the worst case.
func (m *Map[K, V]) ContainsValueFunc(pred func(V) bool) bool {
	found := false
	m.t.all(func(_ K, v V) bool {
		found = pred(v)
		return !found
	})
	return found
}

// entries is the read side shared by Map and OrderedMap.
type entries[K comparable, V any] interface {
	Len() int
	Lookup(key K) (V, bool)
	All() iter.Seq2[K, V]
}

// ContainsValue reports whether value is associated with any key in m,
// which is a *Map or an *OrderedMap.
func ContainsValue[K, V comparable](m entries[K, V], value V) bool {
	_, ok := FindKey(m, value)
	return ok
}

// FindKey returns a key associated with value and whether one was found.
// For an *OrderedMap the key is the first one in order.
func FindKey[K, V comparable](m entries[K, V], value V) (K, bool) {
	for k, v := range m.All() {
		if v == value {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// Len returns the number of entries in the map.
func (m *Map[K, V]) Len() int {
	return m.t.size
}

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.t.size == 0
}

// Clear deletes all entries from the map, keeping its capacity.
func (m *Map[K, V]) Clear() {
	m.t.clear()
}

// ClearTo deletes all entries from the map and releases storage beyond what
// maxCapacity entries need.
func (m *Map[K, V]) ClearTo(maxCapacity int) {
	m.t.clearTo(maxCapacity)
}

// EnsureCapacity grows the map, if necessary, so that additional more
// entries can be inserted without growing again.
func (m *Map[K, V]) EnsureCapacity(additional int) {
	m.t.ensureCapacity(additional)
}

// Shrink reduces the storage of the map to what max(maxCapacity, Len())
// entries need, if that is less than its current storage.
func (m *Map[K, V]) Shrink(maxCapacity int) {
	m.t.shrink(maxCapacity)
}

// LoadFactor returns the fraction of slots that may be occupied before the
// map grows.
func (m *Map[K, V]) LoadFactor() float64 {
	return m.t.loadFactor
}

// SetLoadFactor changes the load factor, growing the map if it is now over
// its threshold.
func (m *Map[K, V]) SetLoadFactor(loadFactor float64) {
	m.t.setLoadFactor(loadFactor)
}

// DefaultValue returns the value returned for absent keys.
func (m *Map[K, V]) DefaultValue() V {
	return m.defaultValue
}

// SetDefaultValue changes the value returned for absent keys.
func (m *Map[K, V]) SetDefaultValue(value V) {
	m.defaultValue = value
}

// Iterator returns a new cursor over the entries of the map.
func (m *Map[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(&m.t, nil)
}

// All returns a sequence of the entries of the map in unspecified order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.Iterator().All()(yield)
	}
}

// Keys returns a sequence of the keys of the map in unspecified order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range m.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns a sequence of the values of the map in unspecified order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range m.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// EqualFunc reports whether m and other contain the same keys with values
// that are equal according to eq. other is a *Map or an *OrderedMap.
func (m *Map[K, V]) EqualFunc(other entries[K, V], eq func(a, b V) bool) bool {
	return equalFunc(&m.t, other, eq)
}

// Equal reports whether a and b contain the same entries. Either may be a
// *Map or an *OrderedMap; the order of an *OrderedMap is not compared.
func Equal[K, V comparable](a, b entries[K, V]) bool {
	if a.Len() != b.Len() {
		return false
	}
	for k, v := range a.All() {
		if bv, ok := b.Lookup(k); !ok || bv != v {
			return false
		}
	}
	return true
}

func equalFunc[K comparable, V any](t *table[K, V], other entries[K, V], eq func(a, b V) bool) bool {
	if t.size != other.Len() {
		return false
	}
	equal := true
	t.all(func(k K, v V) bool {
		ov, ok := other.Lookup(k)
		equal = ok && eq(v, ov)
		return equal
	})
	return equal
}

// String renders the map as {k=v, k=v}.
func (m *Map[K, V]) String() string {
	return m.Format(defaultEntrySeparator, defaultKeyValueSeparator, true)
}

// Format renders the map with the given separators between entries and
// between each key and its value, optionally surrounded by braces.
func (m *Map[K, V]) Format(entrySep, kvSep string, braces bool) string {
	var buf strings.Builder
	formatEntries(&buf, iter.Seq2[K, V](m.t.all), entrySep, kvSep, braces)
	return buf.String()
}

// AppendFormat appends the rendering produced by Format to b.
func (m *Map[K, V]) AppendFormat(b []byte, entrySep, kvSep string, braces bool) []byte {
	return appendFormat(b, iter.Seq2[K, V](m.t.all), entrySep, kvSep, braces)
}
