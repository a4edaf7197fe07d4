// Copyright 2026 Blink Labs Software
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

package cbor

import (
	"bytes"
	"fmt"
)

// DumpValueStructure generates an indented string representing an assembled
// value tree for debugging purposes
func DumpValueStructure(v Value, prefix string) string {
	var ret bytes.Buffer
	switch v := v.(type) {
	case Uint:
		return fmt.Sprintf("%s0x%x (%d),\n", prefix, uint64(v), uint64(v))
	case Int:
		return fmt.Sprintf("%s%d,\n", prefix, int64(v))
	case BigInt:
		return fmt.Sprintf("%s%s,\n", prefix, v.Int.String())
	case Bytes:
		if v.ChunkSizes != nil {
			return fmt.Sprintf(
				"%s<bytes> (length %d, %d chunks),\n",
				prefix,
				len(v.Data),
				len(v.ChunkSizes),
			)
		}
		return fmt.Sprintf("%s<bytes> (length %d),\n", prefix, len(v.Data))
	case String:
		return fmt.Sprintf("%s%q,\n", prefix, v.Text)
	case Bool:
		return fmt.Sprintf("%s%v,\n", prefix, bool(v))
	case Float:
		return fmt.Sprintf("%s%v,\n", prefix, float64(v))
	case Nil:
		return fmt.Sprintf("%s<nil>,\n", prefix)
	case Array:
		ret.WriteString(prefix + "[\n")
		newPrefix := prefix
		// Override original user-provided prefix
		// This assumes the original prefix won't start with a space
		if len(newPrefix) > 1 && newPrefix[0] != ' ' {
			newPrefix = ""
		}
		// Add 2 more spaces to the new prefix
		newPrefix = "  " + newPrefix
		for _, item := range v {
			ret.WriteString(DumpValueStructure(item, newPrefix))
		}
		ret.WriteString(prefix + "],\n")
	default:
		return fmt.Sprintf("%s%#v,\n", prefix, v)
	}
	return ret.String()
}
