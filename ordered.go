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
	"fmt"
	"slices"
)

// The ordered containers keep a table and a slice of its keys in lock
// step. The table is the authority on membership; the slice only records
// order. Every helper below validates its arguments before changing either
// side.

func checkIndex(index, n int) {
	if index < 0 || index >= n {
		panic(fmt.Errorf("%w: index %d with length %d", ErrIndexOutOfRange, index, n))
	}
}

func checkRange(start, end, n int) {
	if start < 0 || end > n || start > end {
		panic(fmt.Errorf("%w: range [%d:%d] with length %d", ErrIndexOutOfRange, start, end, n))
	}
}

// checkKey panics if key is a nil key of a table that rejects them, so that
// callers can fail before touching the order.
func checkKey[K comparable, V any](t *table[K, V], key K) {
	var zero K
	if t.nilKeys && key == zero {
		panic(ErrNilKey)
	}
}

// indexOf returns the position of key in order, comparing with the table's
// equivalence relation, or -1.
func indexOf[K comparable, V any](t *table[K, V], order []K, key K) int {
	if !t.contains(key) {
		return -1
	}
	return slices.IndexFunc(order, func(k K) bool { return t.hasher.Equal(k, key) })
}

// move relocates order[from] to index to, shifting the elements in between.
func move[K any](order []K, from, to int) {
	checkIndex(from, len(order))
	checkIndex(to, len(order))
	k := order[from]
	if from < to {
		copy(order[from:to], order[from+1:to+1])
	} else {
		copy(order[to+1:from+1], order[to:from])
	}
	order[to] = k
}

func swap[K any](order []K, i, j int) {
	checkIndex(i, len(order))
	checkIndex(j, len(order))
	order[i], order[j] = order[j], order[i]
}

// removeOrdered deletes key from the table and the order. It returns the
// removed value and whether key was present.
func removeOrdered[K comparable, V any](t *table[K, V], order *[]K, key K) (V, bool) {
	i := indexOf(t, *order, key)
	if i < 0 {
		var zero V
		return zero, false
	}
	old, _ := t.remove(key)
	*order = slices.Delete(*order, i, i+1)
	return old, true
}

// removeRange deletes order[start:end] from the table and the order.
func removeRange[K comparable, V any](t *table[K, V], order *[]K, start, end int) {
	checkRange(start, end, len(*order))
	for _, k := range (*order)[start:end] {
		t.remove(k)
	}
	*order = slices.Delete(*order, start, end)
}

// alter replaces before with after at the same position, keeping its value.
// It reports false, changing nothing, if before is absent or after is
// already present.
func alter[K comparable, V any](t *table[K, V], order []K, before, after K) bool {
	checkKey(t, after)
	if t.contains(after) {
		return false
	}
	i := indexOf(t, order, before)
	if i < 0 {
		return false
	}
	v, _ := t.remove(before)
	t.put(after, v)
	order[i] = after
	return true
}

// verifyOrder checks the table invariants and that order holds every key of
// the table exactly once.
func verifyOrder[K comparable, V any](t *table[K, V], order []K) error {
	if err := t.verify(); err != nil {
		return err
	}
	if len(order) != t.size {
		return fmt.Errorf("order has %d keys, but size is %d", len(order), t.size)
	}
	seen := make(map[K]struct{}, len(order))
	for i, k := range order {
		if !t.contains(k) {
			return fmt.Errorf("order[%d]: key %v is not in the table", i, k)
		}
		if _, ok := seen[k]; ok {
			return fmt.Errorf("order[%d]: key %v is duplicated", i, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
