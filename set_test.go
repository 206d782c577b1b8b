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
	"maps"
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewIntSet[int](0)
	require.True(t, s.IsEmpty())
	for i := 0; i < 100; i++ {
		require.True(t, s.Add(i))
		require.False(t, s.Add(i))
	}
	require.Equal(t, 100, s.Len())
	for i := 0; i < 100; i++ {
		require.True(t, s.Contains(i))
	}
	require.False(t, s.Contains(100))

	for i := 0; i < 100; i += 2 {
		require.True(t, s.Remove(i))
		require.False(t, s.Remove(i))
	}
	require.Equal(t, 50, s.Len())
	for i := 0; i < 100; i++ {
		require.Equal(t, i%2 == 1, s.Contains(i))
	}
	require.NoError(t, s.t.verify())
}

func TestSetBulk(t *testing.T) {
	s := NewSetFrom("a", "b", "c", "a")
	require.Equal(t, 3, s.Len())
	require.False(t, s.AddAll(slices.Values([]string{"a", "b"})))
	require.True(t, s.AddAll(slices.Values([]string{"b", "d"})))
	require.Equal(t, []string{"a", "b", "c", "d"}, slices.Sorted(s.All()))

	require.True(t, s.RemoveAll(slices.Values([]string{"a", "x"})))
	require.False(t, s.RemoveAll(slices.Values([]string{"x", "y"})))
	require.Equal(t, []string{"b", "c", "d"}, slices.Sorted(s.All()))

	c := CollectSet(maps.Keys(map[int]struct{}{1: {}, 2: {}, 3: {}}))
	require.Equal(t, []int{1, 2, 3}, slices.Sorted(c.All()))
}

func TestSetRemoveFunc(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	s := NewIntSet[int](0)
	e := make(map[int]struct{})
	for i := 0; i < 1000; i++ {
		k := rng.Intn(1 << 20)
		s.Add(k)
		e[k] = struct{}{}
	}
	n := s.RemoveFunc(func(k int) bool { return k%3 == 0 })
	removed := 0
	for k := range e {
		if k%3 == 0 {
			delete(e, k)
			removed++
		}
	}
	require.Equal(t, removed, n)
	require.Equal(t, slices.Sorted(maps.Keys(e)), slices.Sorted(s.All()))
	require.NoError(t, s.t.verify())
}

func TestSetEqualAndClone(t *testing.T) {
	a := NewSetFrom(1, 2, 3)
	b := NewSetFrom(3, 2, 1)
	require.True(t, a.Equal(b))

	c := a.Clone()
	c.Add(4)
	require.False(t, a.Equal(c))
	require.False(t, a.Contains(4))
	c.Remove(4)
	require.True(t, a.Equal(c))
	c.Remove(1)
	c.Add(5)
	require.False(t, a.Equal(c))
}

func TestSetFirst(t *testing.T) {
	s := NewSet[string](0)
	_, ok := s.First()
	require.False(t, ok)
	s.Add("x")
	k, ok := s.First()
	require.True(t, ok)
	require.Equal(t, "x", k)
	s.Add("")
	k, _ = s.First()
	require.Equal(t, "", k)
}

func TestSetCapacity(t *testing.T) {
	s := NewSet[int](0)
	s.EnsureCapacity(50)
	capacity := s.t.capacity()
	for i := 0; i < 50; i++ {
		s.Add(i)
	}
	require.Equal(t, capacity, s.t.capacity())
	s.Clear()
	require.Equal(t, capacity, s.t.capacity())
	require.True(t, s.IsEmpty())

	s.Add(1)
	s.Shrink(0)
	require.Equal(t, minTableSize, s.t.capacity())
	s.ClearTo(0)
	require.True(t, s.IsEmpty())

	s.SetLoadFactor(0.5)
	require.Equal(t, 0.5, s.LoadFactor())
}

func TestSetFormat(t *testing.T) {
	s := NewIntSet[int](0)
	require.Equal(t, "{}", s.String())
	s.Add(7)
	require.Equal(t, "{7}", s.String())
	s.Add(0)
	require.Equal(t, "0|7", s.Format("|", false))
}

func TestFoldSet(t *testing.T) {
	s := NewSet[string](0, WithHasher[string](FoldHasher{}))
	require.True(t, s.Add("Hello"))
	require.False(t, s.Add("HELLO"))
	require.True(t, s.Contains("hello"))
	require.True(t, s.Remove("hElLo"))
	require.True(t, s.IsEmpty())
}
