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

import "errors"

// Errors reported by panics on invalid arguments and misuse. A recovered
// panic value wraps one of these and can be matched with errors.Is.
var (
	// ErrInvalidLoadFactor is reported for a load factor outside (0, 1].
	ErrInvalidLoadFactor = errors.New("linear: load factor must be in (0, 1]")
	// ErrNegativeCapacity is reported for a negative capacity argument.
	ErrNegativeCapacity = errors.New("linear: negative capacity")
	// ErrCapacityOverflow is reported when a table would need more than
	// 2^30 slots.
	ErrCapacityOverflow = errors.New("linear: capacity overflow")
	// ErrIndexOutOfRange is reported by the positional operations of the
	// ordered containers.
	ErrIndexOutOfRange = errors.New("linear: index out of range")
	// ErrNilKey is reported when a nil key is inserted into a container
	// whose key type is a pointer, channel or interface.
	ErrNilKey = errors.New("linear: nil key")
	// ErrIteratorInUse is reported when an iterator is ranged over while it
	// is already being ranged over.
	ErrIteratorInUse = errors.New("linear: iterator already in use")
	// ErrNoCurrentElement is reported by iterator accessors called before
	// Next, after Next returned false, or after Remove.
	ErrNoCurrentElement = errors.New("linear: iterator has no current element")
)
