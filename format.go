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
	"iter"
	"strings"
)

// The rendering produced by String and Format is meant for debugging and
// tests. It is not a stable machine format.
const (
	defaultEntrySeparator    = ", "
	defaultKeyValueSeparator = "="
)

func formatEntries[K, V any](
	buf *strings.Builder, seq iter.Seq2[K, V], entrySep, kvSep string, braces bool,
) {
	if braces {
		buf.WriteByte('{')
	}
	first := true
	for k, v := range seq {
		if !first {
			buf.WriteString(entrySep)
		}
		first = false
		fmt.Fprint(buf, k)
		buf.WriteString(kvSep)
		fmt.Fprint(buf, v)
	}
	if braces {
		buf.WriteByte('}')
	}
}

func formatKeys[K any](buf *strings.Builder, seq iter.Seq[K], sep string, braces bool) {
	if braces {
		buf.WriteByte('{')
	}
	first := true
	for k := range seq {
		if !first {
			buf.WriteString(sep)
		}
		first = false
		fmt.Fprint(buf, k)
	}
	if braces {
		buf.WriteByte('}')
	}
}

func appendFormat[K, V any](
	b []byte, seq iter.Seq2[K, V], entrySep, kvSep string, braces bool,
) []byte {
	var buf strings.Builder
	formatEntries(&buf, seq, entrySep, kvSep, braces)
	return append(b, buf.String()...)
}
