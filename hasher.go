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
	"strings"
	"unicode"

	"github.com/dolthub/maphash"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// A Hasher defines the hash function and the equivalence relation used to
// place and compare keys. Keys that are Equal must have the same Hash. The
// zero key must be Equal only to itself.
type Hasher[K any] interface {
	Hash(key K) uint64
	Equal(a, b K) bool
}

// RuntimeHasher hashes keys with the hash function Go's builtin map[K]V
// uses. It is the default Hasher.
type RuntimeHasher[K comparable] struct {
	h maphash.Hasher[K]
}

// NewRuntimeHasher returns a RuntimeHasher with a random seed.
func NewRuntimeHasher[K comparable]() RuntimeHasher[K] {
	return RuntimeHasher[K]{h: maphash.NewHasher[K]()}
}

func (r RuntimeHasher[K]) Hash(key K) uint64 { return r.h.Hash(key) }
func (RuntimeHasher[K]) Equal(a, b K) bool  { return a == b }

// IntHasher uses the value of an integer key as its hash. The placement
// multiplier supplies the mixing.
type IntHasher[K constraints.Integer] struct{}

func (IntHasher[K]) Hash(key K) uint64 { return uint64(key) }
func (IntHasher[K]) Equal(a, b K) bool { return a == b }

// StringHasher hashes string keys with XXH3.
type StringHasher struct{}

func (StringHasher) Hash(key string) uint64 { return xxh3.HashString(key) }
func (StringHasher) Equal(a, b string) bool { return a == b }

// FoldHasher treats string keys as equal under Unicode simple case folding,
// the relation implemented by strings.EqualFold.
type FoldHasher struct{}

func (FoldHasher) Hash(key string) uint64 {
	return xxh3.HashString(strings.Map(foldRune, key))
}

func (FoldHasher) Equal(a, b string) bool { return strings.EqualFold(a, b) }

// foldRune maps r to the smallest rune in its case folding orbit, so that
// runes equal under simple folding map to the same rune.
func foldRune(r rune) rune {
	if r < 0x80 {
		if 'a' <= r && r <= 'z' {
			r -= 'a' - 'A'
		}
		return r
	}
	lo := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < lo {
			lo = f
		}
	}
	return lo
}

// HashFunc adapts a hash function to a Hasher whose equivalence relation is
// ==.
type HashFunc[K comparable] func(key K) uint64

func (f HashFunc[K]) Hash(key K) uint64 { return f(key) }
func (HashFunc[K]) Equal(a, b K) bool  { return a == b }
