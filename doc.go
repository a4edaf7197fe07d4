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

// Package cbor provides a streaming CBOR token decoder and value assembler.
//
// # Decoding Model
//
// A Decoder is one decode session over one byte source. It offers two output
// levels:
//
//   - NextToken() returns one fully-assembled token per call. Chunked
//     (indefinite-length) byte and text strings are resolved into a single
//     token carrying the concatenated payload plus the per-chunk size
//     record; arrays stream as an opening token, element tokens, and (for
//     indefinite arrays) a closing end token. Null and undefined stay
//     distinct at this level.
//   - ReadValue() returns one fully nested Value per call, recursing through
//     definite- and indefinite-length arrays. Null and undefined both
//     collapse to Nil.
//
// Clean end of input at the top level is io.EOF from either method; input
// ending mid-construct is ErrUnexpectedEndOfInput.
//
// # Key Types
//
//   - Decoder: a single-session decoder; create with NewDecoder
//   - Token: one decoded item header plus inline payload
//   - Value: closed union of Uint, Int, BigInt, Bytes, String, Bool, Float,
//     Nil, and Array
//
// # Coverage
//
// The decoder dispatches unsigned and negative integers, byte strings, text
// strings, arrays (both definite- and indefinite-length), booleans, null,
// undefined, and floats. Maps (major type 5), tags (major type 6), and
// reserved simple values are rejected with ErrUnsupportedLeadingByte.
//
// # Gotchas
//
//  1. A Decoder that returned any error other than io.EOF must be discarded;
//     its cursor position and construct state are undefined
//  2. Negative integers with a 64-bit magnitude can fall below math.MinInt64
//     and then surface as BigInt rather than Int
//  3. Declared lengths and element counts are capped at math.MaxInt32 and
//     fail with ErrSizeExceeded beyond that
package cbor
