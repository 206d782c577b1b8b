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

// Package linear provides resizable hash maps and sets, both unordered and
// insertion-ordered, built on a single open-addressing table with linear
// probing.
//
// # Layout
//
// A table is a pair of parallel slices, keys and values, whose length is a
// power of two. The zero value of the key type marks an empty slot. Because
// a zero key (0, "", a zero struct) is also a legitimate key for value
// types, it is kept out of band in a dedicated field guarded by a flag. For
// reference-like key types (pointers, channels, interfaces) the zero key is
// nil, which is not a valid key and is rejected by Put.
//
// # Placement
//
// The home slot of a key is computed by multiplying its 64-bit hash by an
// odd multiplier and keeping the top log2(capacity) bits:
//
//	place(k) = (hash(k) * multiplier) >> (64 - log2(capacity))
//
// The multiplier is re-derived every time the slot arrays are reallocated,
// so a set of keys that clusters badly at one capacity is unlikely to
// cluster the same way after growth.
//
// # Probing and deletion
//
// Lookups walk forward from the home slot, wrapping at the end of the
// array, until they find the key or an empty slot. Deletion never leaves a
// tombstone. Instead the entries following the removed slot are shifted
// backward whenever leaving them in place would put an empty slot between
// them and their home slot (backward-shift deletion). Probe sequences
// therefore never degrade over the life of a table.
//
// # Ordering
//
// OrderedMap and OrderedSet pair the table with a slice of keys that
// records iteration order. Every mutation updates both in the same call.
//
// None of the types in this package are goroutine-safe.
package linear

import (
	"fmt"
	"math"
	"math/bits"
	"reflect"
	"strings"

	"go.uber.org/zap"
)

const (
	debug = false

	// minTableSize is the smallest slot array ever allocated.
	minTableSize = 4
	// maxTableSize bounds the slot arrays so that slot indexes and the
	// threshold computation stay well inside an int on every platform.
	maxTableSize = 1 << 30

	defaultLoadFactor = 0.7

	initialMultiplier uint64 = 0xD1B54A32D192ED03
	multiplierMix     uint64 = 0xF1357AEA2E62A9C5
)

// table is the open-addressing engine shared by every container in the
// package. The zero table is not usable; call init first.
type table[K comparable, V any] struct {
	hasher Hasher[K]
	log    *zap.Logger

	// keys and values are parallel and always have the same power of two
	// length. keys[i] == zero means slot i is empty and values[i] is zero.
	keys   []K
	values []V
	// size is the number of entries, including the out of band zero key.
	size int
	// mask is len(keys)-1.
	mask int
	// shift is 64-log2(len(keys)). Shifting a 64-bit product right by shift
	// yields an index in [0, mask].
	shift uint8
	// threshold is the size at which the next insertion grows the table.
	threshold  int
	loadFactor float64
	multiplier uint64

	// hasZero, zeroKey and zeroValue hold the entry for the zero key, which
	// cannot be stored in the slot arrays. zeroKey is the key as first
	// inserted; it differs from the zero value for keys such as -0.0 that
	// compare equal to it.
	hasZero   bool
	zeroKey   K
	zeroValue V
	// nilKeys is set when the zero key is a nil reference. Such keys are
	// rejected rather than stored out of band.
	nilKeys bool
}

func (t *table[K, V]) init(capacity int, cfg *config[K]) {
	if capacity < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity))
	}
	checkLoadFactor(cfg.loadFactor)

	t.hasher = cfg.hasher
	t.log = cfg.logger
	t.loadFactor = cfg.loadFactor
	t.multiplier = initialMultiplier
	t.nilKeys = isNilable[K]()
	t.allocate(tableSize(capacity, t.loadFactor))
	t.checkInvariants()
}

// isNilable reports whether the zero value of K is a nil reference.
func isNilable[K any]() bool {
	switch reflect.TypeOf((*K)(nil)).Elem().Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func checkLoadFactor(loadFactor float64) {
	if !(loadFactor > 0 && loadFactor <= 1) {
		panic(fmt.Errorf("%w: %v", ErrInvalidLoadFactor, loadFactor))
	}
}

// tableSize returns the slot count needed to hold capacity entries at the
// given load factor without growing: the smallest power of two n >=
// minTableSize whose threshold exceeds capacity.
func tableSize(capacity int, loadFactor float64) int {
	if capacity < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeCapacity, capacity))
	}
	// Computed in floating point so that capacities near math.MaxInt are
	// reported as overflow rather than wrapping.
	need := math.Ceil((float64(capacity) + 1) / loadFactor)
	// The threshold is clamped to leave one slot empty.
	need = max(need, float64(capacity)+2)
	if need > maxTableSize {
		panic(fmt.Errorf("%w: %d entries at load factor %v", ErrCapacityOverflow, capacity, loadFactor))
	}
	n := int(need)
	if n < minTableSize {
		n = minTableSize
	}
	return 1 << bits.Len(uint(n-1))
}

// computeThreshold returns the growth threshold for a table of n slots. At
// least one slot is always left empty so that probing terminates.
func computeThreshold(n int, loadFactor float64) int {
	threshold := int(float64(n) * loadFactor)
	if threshold >= n {
		threshold = n - 1
	}
	if threshold < 1 {
		threshold = 1
	}
	return threshold
}

// nextMultiplier derives the hash multiplier used after a reallocation from
// the one used before it. The result is always odd, which keeps the
// multiplication a bijection on uint64.
func nextMultiplier(m uint64, shift uint8, size int) uint64 {
	m ^= uint64(size)<<8 | uint64(shift)
	m *= multiplierMix
	m ^= m >> 29
	return m | 1
}

// allocate replaces the slot arrays with empty arrays of n slots. The
// caller is responsible for the entries stored in the old arrays.
func (t *table[K, V]) allocate(n int) {
	t.keys = make([]K, n)
	t.values = make([]V, n)
	t.mask = n - 1
	t.shift = uint8(64 - bits.TrailingZeros(uint(n)))
	t.threshold = computeThreshold(n, t.loadFactor)
}

// capacity returns the number of slots in the slot arrays.
func (t *table[K, V]) capacity() int {
	return len(t.keys)
}

// place returns the home slot of key.
func (t *table[K, V]) place(key K) int {
	return int((t.hasher.Hash(key) * t.multiplier) >> t.shift)
}

// locate returns the slot holding key, or the bitwise complement of the
// empty slot at which key would be inserted. key must not be the zero key.
func (t *table[K, V]) locate(key K) int {
	var zero K
	for i := t.place(key); ; i = (i + 1) & t.mask {
		other := t.keys[i]
		if other == zero {
			return ^i
		}
		if t.hasher.Equal(other, key) {
			return i
		}
	}
}

func (t *table[K, V]) get(key K) (value V, ok bool) {
	var zero K
	if key == zero {
		if t.hasZero {
			return t.zeroValue, true
		}
		return value, false
	}
	if i := t.locate(key); i >= 0 {
		return t.values[i], true
	}
	return value, false
}

func (t *table[K, V]) contains(key K) bool {
	var zero K
	if key == zero {
		return t.hasZero
	}
	return t.locate(key) >= 0
}

// put inserts or overwrites the entry for key. It returns the previous
// value and whether there was one.
func (t *table[K, V]) put(key K, value V) (old V, existed bool) {
	var zero K
	if key == zero {
		if t.nilKeys {
			panic(ErrNilKey)
		}
		old, existed = t.zeroValue, t.hasZero
		t.zeroValue = value
		if !existed {
			t.hasZero = true
			t.zeroKey = key
			t.grew()
		}
		return old, existed
	}

	i := t.locate(key)
	if i >= 0 {
		old = t.values[i]
		t.values[i] = value
		t.checkInvariants()
		return old, true
	}
	i = ^i
	if debug {
		t.log.Debug("put", zap.Any("key", key), zap.Int("slot", i), zap.Int("home", t.place(key)))
	}
	t.keys[i] = key
	t.values[i] = value
	t.grew()
	return old, false
}

// grew accounts for a new entry and doubles the table once the threshold is
// reached. Very small load factors may need more than one doubling.
func (t *table[K, V]) grew() {
	t.size++
	if t.size >= t.threshold {
		t.resize(max(t.capacity()<<1, tableSize(t.size, t.loadFactor)))
	}
	t.checkInvariants()
}

// uncheckedPut inserts an entry known not to be in the table into the first
// empty slot of its probe run. Used by resize, where every key is already
// known to be distinct.
func (t *table[K, V]) uncheckedPut(key K, value V) {
	var zero K
	for i := t.place(key); ; i = (i + 1) & t.mask {
		if t.keys[i] == zero {
			t.keys[i] = key
			t.values[i] = value
			return
		}
	}
}

// remove deletes the entry for key, returning its value and whether it was
// present.
func (t *table[K, V]) remove(key K) (old V, ok bool) {
	var zero K
	if key == zero {
		if !t.hasZero {
			return old, false
		}
		return t.removeZero(), true
	}
	i := t.locate(key)
	if i < 0 {
		return old, false
	}
	old = t.values[i]
	t.removeAt(i)
	return old, true
}

func (t *table[K, V]) removeZero() V {
	var zeroK K
	var zero V
	old := t.zeroValue
	t.zeroKey = zeroK
	t.zeroValue = zero
	t.hasZero = false
	t.size--
	t.checkInvariants()
	return old
}

// removeAt empties slot i and closes the hole by shifting later members of
// the cluster backward. An entry at next may move into the hole at i only
// if that does not place it before its home slot, which is the case when
// the distance from its home to next exceeds the distance from its home to
// i. The scan stops at the first empty slot.
//
// If the cluster wraps past the end of the array and an entry from the
// start of the array is moved into a slot at its end, removeAt returns that
// slot. Otherwise it returns -1. Iterators use this to avoid yielding the
// same entry twice.
func (t *table[K, V]) removeAt(i int) (wrapped int) {
	var zeroK K
	var zeroV V
	wrapped = -1
	mask := t.mask
	for next := (i + 1) & mask; ; next = (next + 1) & mask {
		key := t.keys[next]
		if key == zeroK {
			break
		}
		home := t.place(key)
		if (next-home)&mask > (i-home)&mask {
			if debug {
				t.log.Debug("remove(shift)", zap.Any("key", key), zap.Int("from", next), zap.Int("to", i))
			}
			if next < i {
				wrapped = i
			}
			t.keys[i] = key
			t.values[i] = t.values[next]
			i = next
		}
	}
	t.keys[i] = zeroK
	t.values[i] = zeroV
	t.size--
	t.checkInvariants()
	return wrapped
}

// resize reallocates the slot arrays with n slots, derives a new
// multiplier, and reinserts every entry. The zero key is not affected.
func (t *table[K, V]) resize(n int) {
	oldKeys, oldValues := t.keys, t.values
	oldCapacity := len(oldKeys)

	t.multiplier = nextMultiplier(t.multiplier, t.shift, t.size)
	t.allocate(n)

	var zero K
	for i, key := range oldKeys {
		if key != zero {
			t.uncheckedPut(key, oldValues[i])
		}
	}

	if ce := t.log.Check(zap.DebugLevel, "resize"); ce != nil {
		ce.Write(
			zap.Int("old-capacity", oldCapacity),
			zap.Int("new-capacity", n),
			zap.Int("size", t.size),
			zap.Uint64("multiplier", t.multiplier),
		)
	}
}

// ensureCapacity grows the table so that additional more entries can be
// added without a resize.
func (t *table[K, V]) ensureCapacity(additional int) {
	if additional < 0 {
		panic(fmt.Errorf("%w: additional capacity %d", ErrNegativeCapacity, additional))
	}
	if additional > math.MaxInt-t.size {
		panic(fmt.Errorf("%w: %d entries plus %d", ErrCapacityOverflow, t.size, additional))
	}
	if n := tableSize(t.size+additional, t.loadFactor); n > t.capacity() {
		t.resize(n)
	}
	t.checkInvariants()
}

// shrink reduces the slot arrays to the smallest size that holds
// max(maxCapacity, size) entries, if that is smaller than the current size.
func (t *table[K, V]) shrink(maxCapacity int) {
	if maxCapacity < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeCapacity, maxCapacity))
	}
	if maxCapacity >= t.threshold {
		// No smaller table holds maxCapacity entries.
		return
	}
	if maxCapacity < t.size {
		maxCapacity = t.size
	}
	if n := tableSize(maxCapacity, t.loadFactor); n < t.capacity() {
		t.resize(n)
	}
	t.checkInvariants()
}

// clear removes every entry, keeping the slot arrays.
func (t *table[K, V]) clear() {
	var zero V
	clear(t.keys)
	clear(t.values)
	t.size = 0
	t.hasZero = false
	t.zeroKey = *new(K)
	t.zeroValue = zero
}

// clearTo removes every entry and, if the table holds more slots than
// maxCapacity entries need, reallocates it at that smaller size.
func (t *table[K, V]) clearTo(maxCapacity int) {
	if maxCapacity < 0 {
		panic(fmt.Errorf("%w: %d", ErrNegativeCapacity, maxCapacity))
	}
	if maxCapacity >= t.threshold {
		t.clear()
		return
	}
	n := tableSize(maxCapacity, t.loadFactor)
	if t.capacity() <= n {
		t.clear()
		return
	}
	var zero V
	oldCapacity := t.capacity()
	t.size = 0
	t.hasZero = false
	t.zeroKey = *new(K)
	t.zeroValue = zero
	t.multiplier = nextMultiplier(t.multiplier, t.shift, 0)
	t.allocate(n)
	if ce := t.log.Check(zap.DebugLevel, "clear"); ce != nil {
		ce.Write(zap.Int("old-capacity", oldCapacity), zap.Int("new-capacity", n))
	}
}

func (t *table[K, V]) setLoadFactor(loadFactor float64) {
	checkLoadFactor(loadFactor)
	n := tableSize(t.size, loadFactor)
	t.loadFactor = loadFactor
	if n > t.capacity() {
		t.resize(n)
	} else {
		t.threshold = computeThreshold(t.capacity(), loadFactor)
	}
	t.checkInvariants()
}

// clone returns a deep copy of t. The slot arrays are never shared.
func (t *table[K, V]) clone() table[K, V] {
	c := *t
	c.keys = append([]K(nil), t.keys...)
	c.values = append([]V(nil), t.values...)
	return c
}

// all calls yield for every entry: the zero key first, then the slots in
// index order.
func (t *table[K, V]) all(yield func(key K, value V) bool) {
	var zero K
	if t.hasZero && !yield(t.zeroKey, t.zeroValue) {
		return
	}
	for i, key := range t.keys {
		if key != zero && !yield(key, t.values[i]) {
			return
		}
	}
}

// first returns an arbitrary entry: the zero key if present, otherwise the
// entry in the lowest occupied slot.
func (t *table[K, V]) first() (key K, value V, ok bool) {
	t.all(func(k K, v V) bool {
		key, value, ok = k, v, true
		return false
	})
	return key, value, ok
}

// verify checks the structural invariants of the table, returning an error
// describing the first violation found.
func (t *table[K, V]) verify() error {
	n := len(t.keys)
	if n < minTableSize || n&(n-1) != 0 {
		return fmt.Errorf("capacity %d is not a power of two >= %d", n, minTableSize)
	}
	if len(t.values) != n {
		return fmt.Errorf("values has %d slots, keys has %d", len(t.values), n)
	}
	if t.mask != n-1 {
		return fmt.Errorf("mask %d does not match capacity %d", t.mask, n)
	}
	if t.multiplier&1 == 0 {
		return fmt.Errorf("multiplier %#x is even", t.multiplier)
	}
	if t.size > t.threshold {
		return fmt.Errorf("size %d exceeds threshold %d", t.size, t.threshold)
	}

	var zero K
	used := 0
	for i, key := range t.keys {
		if key == zero {
			continue
		}
		used++
		if j := t.locate(key); j != i {
			return fmt.Errorf("slot %d: key %v located at %d", i, key, j)
		}
		for j := t.place(key); j != i; j = (j + 1) & t.mask {
			if t.keys[j] == zero {
				return fmt.Errorf("slot %d: key %v is orphaned by empty slot %d", i, key, j)
			}
		}
	}
	if t.hasZero {
		used++
	}
	if used != t.size {
		return fmt.Errorf("found %d entries, but size is %d", used, t.size)
	}
	return nil
}

func (t *table[K, V]) checkInvariants() {
	if invariants {
		if err := t.verify(); err != nil {
			panic(fmt.Sprintf("invariant failed: %v\n%s", err, t.debugString()))
		}
	}
}

func (t *table[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  size=%d  threshold=%d  multiplier=%#016x\n",
		len(t.keys), t.size, t.threshold, t.multiplier)
	if t.hasZero {
		fmt.Fprintf(&buf, "  zero: %v=%v\n", t.zeroKey, t.zeroValue)
	}
	var zero K
	for i, key := range t.keys {
		if key == zero {
			fmt.Fprintf(&buf, "  %4d: empty\n", i)
			continue
		}
		fmt.Fprintf(&buf, "  %4d: %v=%v [home=%d]\n", i, key, t.values[i], t.place(key))
	}
	return buf.String()
}
