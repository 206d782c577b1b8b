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
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

// removeWhile removes the keys for which pred returns true through an
// iterator, and returns how many times each key was visited.
func removeWhile[V any](m *Map[int, V], pred func(int) bool) map[int]int {
	visits := make(map[int]int)
	it := m.Iterator()
	for it.Next() {
		k := it.Key()
		visits[k]++
		if pred(k) {
			it.Remove()
		}
	}
	return visits
}

func TestIteratorRemove(t *testing.T) {
	t.Run("wrap", func(t *testing.T) {
		homes := map[int]int{1: 14, 2: 14, 3: 15, 4: 14, 5: 0, 6: 1}
		m := New[int, int](10, WithHash(func(k int) uint64 { return uint64(homes[k]) << 60 }))
		m.t.multiplier = 1
		for k := 1; k <= 6; k++ {
			m.Put(k, k)
		}
		require.Equal(t, map[int]int{14: 1, 15: 2, 0: 3, 1: 4, 2: 5, 3: 6}, m.t.slots())

		// Removing 1 shifts 3 from slot 0, already visited, to slot 15.
		visits := removeWhile(m, func(k int) bool { return k == 1 })
		require.Equal(t, map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1}, visits)
		require.Equal(t, map[int]int{2: 2, 3: 3, 4: 4, 5: 5, 6: 6}, m.toBuiltinMap())
		require.NoError(t, m.t.verify())

		visits = removeWhile(m, func(int) bool { return true })
		require.Equal(t, map[int]int{2: 1, 3: 1, 4: 1, 5: 1, 6: 1}, visits)
		require.True(t, m.IsEmpty())
	})

	t.Run("single-cluster", func(t *testing.T) {
		m := New[int, int](10, WithHash(func(int) uint64 { return 15 << 60 }))
		m.t.multiplier = 1
		for k := 1; k <= 8; k++ {
			m.Put(k, k)
		}
		visits := removeWhile(m, func(k int) bool { return k%2 == 1 })
		for k := 1; k <= 8; k++ {
			require.Equal(t, 1, visits[k], "key %d", k)
		}
		require.Equal(t, map[int]int{2: 2, 4: 4, 6: 6, 8: 8}, m.toBuiltinMap())
		require.NoError(t, m.t.verify())
	})

	t.Run("zero", func(t *testing.T) {
		m := NewIntMap[int, int](0)
		for k := 0; k < 10; k++ {
			m.Put(k, k)
		}
		it := m.Iterator()
		require.True(t, it.Next())
		require.Equal(t, 0, it.Key())
		it.Remove()
		require.False(t, m.ContainsKey(0))
		n := 0
		for it.Next() {
			n++
		}
		require.Equal(t, 9, n)
	})

	t.Run("random", func(t *testing.T) {
		hashes := map[string]func(int) uint64{
			"int":      IntHasher[int]{}.Hash,
			"runtime":  NewRuntimeHasher[int]().Hash,
			"constant": func(int) uint64 { return ^uint64(0) },
		}
		for name, hash := range hashes {
			t.Run(name, func(t *testing.T) {
				rng := rand.New(rand.NewSource(4))
				for round := 0; round < 50; round++ {
					m := New[int, int](0, WithHash(hash))
					n := 1 + rng.Intn(200)
					e := make(map[int]int)
					for i := 0; i < n; i++ {
						k := rng.Intn(1000)
						m.Put(k, k)
						e[k] = k
					}
					mod := 2 + rng.Intn(3)
					visits := removeWhile(m, func(k int) bool { return k%mod == 0 })
					require.Len(t, visits, len(e))
					for k := range e {
						require.Equal(t, 1, visits[k], "key %d", k)
						if k%mod == 0 {
							delete(e, k)
						}
					}
					require.Equal(t, e, m.toBuiltinMap())
					require.NoError(t, m.t.verify())
				}
			})
		}
	})
}

func TestIteratorMisuse(t *testing.T) {
	m := NewIntMap[int, int](0)
	m.Put(1, 1)
	m.Put(2, 2)

	it := m.Iterator()
	requirePanicIs(t, ErrNoCurrentElement, func() { it.Key() })
	requirePanicIs(t, ErrNoCurrentElement, func() { it.Value() })
	requirePanicIs(t, ErrNoCurrentElement, func() { it.Remove() })
	require.True(t, it.Next())
	it.Remove()
	requirePanicIs(t, ErrNoCurrentElement, func() { it.Remove() })
	requirePanicIs(t, ErrNoCurrentElement, func() { it.SetValue(0) })
	require.True(t, it.Next())
	require.False(t, it.Next())
	requirePanicIs(t, ErrNoCurrentElement, func() { it.Key() })

	it = m.Iterator()
	requirePanicIs(t, ErrIteratorInUse, func() {
		for range it.All() {
			for range it.All() {
			}
		}
	})
	// The iterator is usable again once the outer ranging has unwound.
	it.Reset()
	n := 0
	for range it.All() {
		n++
	}
	require.Equal(t, 1, n)
}

func TestIteratorSetValueAndReset(t *testing.T) {
	m := NewIntMap[int, int](0)
	for k := 0; k < 20; k++ {
		m.Put(k, k)
	}
	it := m.Iterator()
	for it.Next() {
		it.SetValue(it.Value() * 2)
	}
	for k := 0; k < 20; k++ {
		require.Equal(t, 2*k, m.Get(k))
	}

	it.Reset()
	n := 0
	for range it.All() {
		n++
	}
	require.Equal(t, 20, n)
	// Exhausted until reset.
	for range it.All() {
		require.Fail(t, "should not iterate")
	}
}

func TestOrderedIterator(t *testing.T) {
	m := NewOrderedIntMap[int, string](0)
	for k := 9; k >= 0; k-- {
		m.Put(k, fmt.Sprint(k))
	}
	it := m.Iterator()
	var seen []int
	for it.Next() {
		seen = append(seen, it.Key())
		if it.Key()%3 == 0 {
			it.Remove()
		} else {
			it.SetValue(it.Value() + "!")
		}
	}
	require.Equal(t, []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, seen)
	require.Equal(t, []int{8, 7, 5, 4, 2, 1}, m.Order())
	require.Equal(t, "8!", m.Get(8))
	require.NoError(t, m.verify())

	var values []string
	for k, v := range m.All() {
		values = append(values, fmt.Sprintf("%d:%s", k, v))
	}
	require.Equal(t, []string{"8:8!", "7:7!", "5:5!", "4:4!", "2:2!", "1:1!"}, values)
}

func TestSetIterator(t *testing.T) {
	s := NewOrderedSetFrom("a", "b", "c", "d")
	it := s.Iterator()
	for it.Next() {
		if it.Key() == "b" || it.Key() == "d" {
			it.Remove()
		}
	}
	require.Equal(t, []string{"a", "c"}, s.Order())
	it.Reset()
	require.Equal(t, []string{"a", "c"}, slices.Collect(it.All()))

	u := NewSetFrom(1, 2, 3)
	ui := u.Iterator()
	var got []int
	for k := range ui.All() {
		got = append(got, k)
	}
	slices.Sort(got)
	require.Equal(t, []int{1, 2, 3}, got)
	requirePanicIs(t, ErrIteratorInUse, func() {
		ui.Reset()
		for range ui.All() {
			for range ui.All() {
			}
		}
	})
}
