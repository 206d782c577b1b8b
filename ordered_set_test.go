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
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderedSet(t *testing.T) {
	s := NewOrderedSet[string](0)
	for _, k := range []string{"c", "a", "b", "a"} {
		s.Add(k)
	}
	require.Equal(t, 3, s.Len())
	require.Equal(t, []string{"c", "a", "b"}, s.Order())
	require.Equal(t, []string{"c", "a", "b"}, slices.Collect(s.All()))
	require.Equal(t, "{c, a, b}", s.String())

	first, ok := s.First()
	require.True(t, ok)
	require.Equal(t, "c", first)
	last, ok := s.Last()
	require.True(t, ok)
	require.Equal(t, "b", last)

	require.True(t, s.Remove("a"))
	require.False(t, s.Remove("a"))
	require.Equal(t, []string{"c", "b"}, s.Order())
	require.NoError(t, s.verify())

	s.Clear()
	_, ok = s.First()
	require.False(t, ok)
	_, ok = s.Last()
	require.False(t, ok)
}

func TestOrderedSetPositional(t *testing.T) {
	s := NewOrderedIntSet[int](0)
	for i := 1; i <= 5; i++ {
		s.Add(i * 10)
	}
	require.True(t, s.AddAt(0, 5))
	require.Equal(t, []int{5, 10, 20, 30, 40, 50}, s.Order())
	require.False(t, s.AddAt(5, 5))
	require.Equal(t, []int{10, 20, 30, 40, 50, 5}, s.Order())
	requirePanicIs(t, ErrIndexOutOfRange, func() { s.AddAt(7, 1) })
	requirePanicIs(t, ErrIndexOutOfRange, func() { s.AddAt(6, 10) })
	require.False(t, s.Contains(1))

	require.Equal(t, 30, s.At(2))
	require.Equal(t, 2, s.IndexOf(30))
	require.Equal(t, -1, s.IndexOf(31))
	requirePanicIs(t, ErrIndexOutOfRange, func() { s.At(6) })

	require.Equal(t, 5, s.RemoveAt(5))
	s.RemoveRange(0, 2)
	require.Equal(t, []int{30, 40, 50}, s.Order())
	s.Swap(0, 2)
	s.Move(0, 1)
	require.Equal(t, []int{40, 50, 30}, s.Order())
	require.True(t, s.Alter(50, 0))
	require.Equal(t, []int{40, 0, 30}, s.Order())
	require.True(t, s.Contains(0))
	s.Sort(cmp.Compare[int])
	require.Equal(t, []int{0, 30, 40}, s.Order())
	s.Truncate(1)
	require.Equal(t, []int{0}, s.Order())
	require.NoError(t, s.verify())
}

func TestOrderedSetEqualAndClone(t *testing.T) {
	a := NewOrderedSetFrom(1, 2, 3)
	b := NewOrderedSetFrom(3, 2, 1)
	require.True(t, a.Equal(b))
	require.NotEqual(t, a.Order(), b.Order())

	c := a.Clone()
	c.Add(4)
	c.Swap(0, 1)
	require.Equal(t, []int{1, 2, 3}, a.Order())
	require.Equal(t, []int{2, 1, 3, 4}, c.Order())
	require.False(t, a.Equal(c))
}

func TestOrderedSetBulk(t *testing.T) {
	s := NewOrderedSet[string](0, WithHasher[string](FoldHasher{}))
	require.True(t, s.AddAll(slices.Values([]string{"One", "Two", "one"})))
	require.Equal(t, []string{"One", "Two"}, s.Order())
	require.False(t, s.AddAll(slices.Values([]string{"TWO"})))
	require.True(t, s.Remove("ONE"))
	require.Equal(t, []string{"Two"}, s.Order())
	require.Equal(t, "Two", s.Format(",", false))

	s.EnsureCapacity(100)
	s.Shrink(0)
	s.ClearTo(0)
	require.True(t, s.IsEmpty())
	require.Empty(t, s.Order())
	s.SetLoadFactor(0.5)
	require.Equal(t, 0.5, s.LoadFactor())
	require.NoError(t, s.verify())
}
