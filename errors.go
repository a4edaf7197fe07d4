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

import "errors"

// Decode errors are terminal: a Decoder that returned any of these must be
// discarded, since its cursor position and open-construct state are no longer
// meaningful. Call sites wrap these with additional context; match with
// errors.Is
var (
	// ErrTruncatedInput is returned when fewer bytes remain than a declared
	// width or length requires
	ErrTruncatedInput = errors.New("truncated input")
	// ErrSizeExceeded is returned when a declared length or element count
	// exceeds the maximum supported size
	ErrSizeExceeded = errors.New("declared size exceeds maximum")
	// ErrUnsupportedLeadingByte is returned for header bytes outside the
	// dispatched ranges, including maps, tags, and reserved simple values
	ErrUnsupportedLeadingByte = errors.New("unsupported leading byte")
	// ErrUnexpectedBreak is returned for a break code with no open
	// indefinite-length construct to close
	ErrUnexpectedBreak = errors.New("unexpected break code")
	// ErrMixedChunkType is returned when a chunk inside an indefinite-length
	// string does not match the enclosing string type
	ErrMixedChunkType = errors.New("mixed chunk type in indefinite-length string")
	// ErrUnexpectedEndOfInput is returned when the input ends while an
	// indefinite-length construct is still open
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
)
