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

package cbor_test

import (
	"bytes"
	"encoding/hex"
	"errors"
	"io"
	"math"
	"math/big"
	"reflect"
	"testing"

	"github.com/blinklabs-io/cbor"
	"go.uber.org/goleak"
)

func decoderFromHex(t *testing.T, cborHex string) *cbor.Decoder {
	t.Helper()
	data, err := hex.DecodeString(cborHex)
	if err != nil {
		t.Fatalf("failed to decode CBOR hex: %s", err)
	}
	return cbor.NewDecoder(bytes.NewReader(data))
}

func TestNextTokenSmallUint(t *testing.T) {
	for b := byte(0x00); b <= 0x17; b++ {
		d := cbor.NewDecoder(bytes.NewReader([]byte{b}))
		tok, err := d.NextToken()
		if err != nil {
			t.Fatalf("unexpected error for leading byte 0x%02x: %s", b, err)
		}
		if tok.Kind != cbor.KindInt || tok.Neg || tok.Uint != uint64(b) {
			t.Fatalf(
				"leading byte 0x%02x decoded to %s %d, wanted Int %d",
				b,
				tok.Kind,
				tok.Uint,
				b,
			)
		}
	}
}

func TestNextTokenDirectNegative(t *testing.T) {
	for b := byte(0x20); b <= 0x37; b++ {
		d := cbor.NewDecoder(bytes.NewReader([]byte{b}))
		tok, err := d.NextToken()
		if err != nil {
			t.Fatalf("unexpected error for leading byte 0x%02x: %s", b, err)
		}
		expected := -int64(b-0x20) - 1
		if tok.Kind != cbor.KindInt || !tok.Neg || tok.Int != expected {
			t.Fatalf(
				"leading byte 0x%02x decoded to %d, wanted %d",
				b,
				tok.Int,
				expected,
			)
		}
	}
}

type tokenTestDefinition struct {
	CborHex string
	Token   cbor.Token
}

var tokenTests = []tokenTestDefinition{
	// Width-extended unsigned integers
	{
		CborHex: "1864",
		Token:   cbor.Token{Kind: cbor.KindInt, Uint: 100},
	},
	{
		CborHex: "192710",
		Token:   cbor.Token{Kind: cbor.KindInt, Uint: 10000},
	},
	{
		CborHex: "1a000186a0",
		Token:   cbor.Token{Kind: cbor.KindInt, Uint: 100000},
	},
	{
		CborHex: "1bffffffffffffffff",
		Token:   cbor.Token{Kind: cbor.KindInt, Uint: math.MaxUint64},
	},
	// Width-extended negative integers
	{
		CborHex: "38ff",
		Token:   cbor.Token{Kind: cbor.KindInt, Neg: true, Int: -256},
	},
	{
		CborHex: "39ffff",
		Token:   cbor.Token{Kind: cbor.KindInt, Neg: true, Int: -65536},
	},
	// 32-bit max magnitude widens to a 64-bit result without wrapping
	{
		CborHex: "3affffffff",
		Token:   cbor.Token{Kind: cbor.KindInt, Neg: true, Int: -4294967296},
	},
	{
		CborHex: "3b7fffffffffffffff",
		Token:   cbor.Token{Kind: cbor.KindInt, Neg: true, Int: math.MinInt64},
	},
	// Byte strings
	{
		CborHex: "40",
		Token:   cbor.Token{Kind: cbor.KindBytes, Bytes: []byte{}},
	},
	{
		CborHex: "4401020304",
		Token:   cbor.Token{Kind: cbor.KindBytes, Bytes: []byte{1, 2, 3, 4}},
	},
	{
		CborHex: "5803010203",
		Token:   cbor.Token{Kind: cbor.KindBytes, Bytes: []byte{1, 2, 3}},
	},
	// Text strings, including every width-extension class
	{
		CborHex: "6568656c6c6f",
		Token:   cbor.Token{Kind: cbor.KindString, String: "hello"},
	},
	{
		CborHex: "7803616263",
		Token:   cbor.Token{Kind: cbor.KindString, String: "abc"},
	},
	{
		CborHex: "790003616263",
		Token:   cbor.Token{Kind: cbor.KindString, String: "abc"},
	},
	{
		CborHex: "7a00000003616263",
		Token:   cbor.Token{Kind: cbor.KindString, String: "abc"},
	},
	{
		CborHex: "7b0000000000000003616263",
		Token:   cbor.Token{Kind: cbor.KindString, String: "abc"},
	},
	// Array headers carry the declared count only
	{
		CborHex: "83010203",
		Token:   cbor.Token{Kind: cbor.KindArray, Size: 3},
	},
	{
		CborHex: "981a",
		Token:   cbor.Token{Kind: cbor.KindArray, Size: 26},
	},
	{
		CborHex: "9f",
		Token:   cbor.Token{Kind: cbor.KindArray, Indefinite: true},
	},
	// Booleans, null, undefined
	{
		CborHex: "f4",
		Token:   cbor.Token{Kind: cbor.KindBool, Bool: false},
	},
	{
		CborHex: "f5",
		Token:   cbor.Token{Kind: cbor.KindBool, Bool: true},
	},
	{
		CborHex: "f6",
		Token:   cbor.Token{Kind: cbor.KindNull},
	},
	{
		CborHex: "f7",
		Token:   cbor.Token{Kind: cbor.KindUndefined},
	},
	// Floats
	{
		CborHex: "f93c00",
		Token:   cbor.Token{Kind: cbor.KindFloat, Float: 1.0},
	},
	{
		CborHex: "fa47c35000",
		Token:   cbor.Token{Kind: cbor.KindFloat, Float: 100000.0},
	},
	{
		CborHex: "fb3ff199999999999a",
		Token:   cbor.Token{Kind: cbor.KindFloat, Float: 1.1},
	},
	// Chunked byte string: chunks concatenate and sizes are recorded
	{
		CborHex: "5f4201024103ff",
		Token: cbor.Token{
			Kind:       cbor.KindBytes,
			Indefinite: true,
			Bytes:      []byte{1, 2, 3},
			ChunkSizes: []int{2, 1},
		},
	},
	// Chunked text string
	{
		CborHex: "7f626865636c6c6fff",
		Token: cbor.Token{
			Kind:       cbor.KindString,
			Indefinite: true,
			String:     "hello",
			ChunkSizes: []int{2, 3},
		},
	},
	// Empty chunked byte string
	{
		CborHex: "5fff",
		Token: cbor.Token{
			Kind:       cbor.KindBytes,
			Indefinite: true,
			Bytes:      []byte{},
			ChunkSizes: []int{},
		},
	},
}

func TestNextToken(t *testing.T) {
	for _, test := range tokenTests {
		d := decoderFromHex(t, test.CborHex)
		tok, err := d.NextToken()
		if err != nil {
			t.Fatalf("unexpected error decoding %s: %s", test.CborHex, err)
		}
		if !reflect.DeepEqual(tok, test.Token) {
			t.Fatalf(
				"%s did not decode to expected token\n  got: %#v\n  wanted: %#v",
				test.CborHex,
				tok,
				test.Token,
			)
		}
	}
}

func TestNextTokenBigNegative(t *testing.T) {
	// Magnitude of math.MaxUint64 yields -(2^64), below math.MinInt64
	d := decoderFromHex(t, "3bffffffffffffffff")
	tok, err := d.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if tok.Kind != cbor.KindInt || !tok.Neg || tok.BigInt == nil {
		t.Fatalf("expected big negative integer token, got %#v", tok)
	}
	expected, _ := new(big.Int).SetString("-18446744073709551616", 10)
	if tok.BigInt.Cmp(expected) != 0 {
		t.Fatalf(
			"did not get expected value, got: %s, wanted: %s",
			tok.BigInt,
			expected,
		)
	}
}

type tokenErrorTestDefinition struct {
	CborHex string
	Err     error
}

var tokenErrorTests = []tokenErrorTestDefinition{
	// Break with no open construct
	{
		CborHex: "ff",
		Err:     cbor.ErrUnexpectedBreak,
	},
	// Byte string declaring 5 bytes with only 3 remaining
	{
		CborHex: "45010203",
		Err:     cbor.ErrTruncatedInput,
	},
	// Width-extension byte with too few magnitude bytes
	{
		CborHex: "1a0001",
		Err:     cbor.ErrTruncatedInput,
	},
	// Declared lengths past MaxInt32
	{
		CborHex: "5affffffff",
		Err:     cbor.ErrSizeExceeded,
	},
	{
		CborHex: "9b0000000200000000",
		Err:     cbor.ErrSizeExceeded,
	},
	// Maps and tags are outside the dispatched ranges
	{
		CborHex: "a1616101",
		Err:     cbor.ErrUnsupportedLeadingByte,
	},
	{
		CborHex: "c202",
		Err:     cbor.ErrUnsupportedLeadingByte,
	},
	// Reserved additional info and one-byte simple values
	{
		CborHex: "1c",
		Err:     cbor.ErrUnsupportedLeadingByte,
	},
	{
		CborHex: "f820",
		Err:     cbor.ErrUnsupportedLeadingByte,
	},
	// Text chunk inside an indefinite byte string
	{
		CborHex: "5f6141ff",
		Err:     cbor.ErrMixedChunkType,
	},
	// Byte chunk inside an indefinite text string
	{
		CborHex: "7f4101ff",
		Err:     cbor.ErrMixedChunkType,
	},
	// Nested indefinite string inside a chunked string
	{
		CborHex: "5f5f41014102ffff",
		Err:     cbor.ErrMixedChunkType,
	},
	// Input ends while a chunked string is open
	{
		CborHex: "5f4101",
		Err:     cbor.ErrUnexpectedEndOfInput,
	},
}

func TestNextTokenErrors(t *testing.T) {
	for _, test := range tokenErrorTests {
		d := decoderFromHex(t, test.CborHex)
		_, err := d.NextToken()
		if !errors.Is(err, test.Err) {
			t.Fatalf(
				"did not find expected error for %s\n  got: %v\n  wanted: %v",
				test.CborHex,
				err,
				test.Err,
			)
		}
	}
}

func TestNextTokenEmptyInput(t *testing.T) {
	defer goleak.VerifyNone(t)
	d := cbor.NewDecoder(bytes.NewReader(nil))
	_, err := d.NextToken()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF for empty input, got: %v", err)
	}
	// End of input is sticky
	_, err = d.NextToken()
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF on repeat call, got: %v", err)
	}
}

func TestNextTokenSequence(t *testing.T) {
	// Two top-level items followed by clean end of input
	d := decoderFromHex(t, "0102")
	for i := uint64(1); i <= 2; i++ {
		tok, err := d.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if tok.Kind != cbor.KindInt || tok.Uint != i {
			t.Fatalf("expected Int %d, got %s %d", i, tok.Kind, tok.Uint)
		}
	}
	if _, err := d.NextToken(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF after final item, got: %v", err)
	}
}

func TestNextTokenOffset(t *testing.T) {
	d := decoderFromHex(t, "1864f5")
	if _, err := d.NextToken(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Offset() != 2 {
		t.Fatalf("expected offset 2, got %d", d.Offset())
	}
	if _, err := d.NextToken(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if d.Offset() != 3 {
		t.Fatalf("expected offset 3, got %d", d.Offset())
	}
}
