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

import "fmt"

// openStack tracks the indefinite-length constructs currently open in one
// decode session, innermost last. It grows only when an indefinite-length
// opener is decoded and shrinks only on a break code, so a non-zero depth
// always means the session is mid-aggregate
type openStack struct {
	kinds []Kind
}

func (s *openStack) push(kind Kind) {
	s.kinds = append(s.kinds, kind)
}

func (s *openStack) pop() (Kind, error) {
	if len(s.kinds) == 0 {
		return 0, fmt.Errorf("%w: no open construct to close", ErrUnexpectedBreak)
	}
	kind := s.kinds[len(s.kinds)-1]
	s.kinds = s.kinds[:len(s.kinds)-1]
	return kind, nil
}

func (s *openStack) depth() int {
	return len(s.kinds)
}
