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
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Value is a fully assembled CBOR item. It is a closed union: the concrete
// types are Uint, Int, BigInt, Bytes, String, Bool, Float, Nil, and Array,
// and consumers are expected to type-switch over exactly that set. Null and
// Undefined both assemble to Nil; callers that need to tell them apart use
// the token interface instead
type Value interface {
	isValue()
}

// Uint is a non-negative integer
type Uint uint64

// Int is a negative integer that fits in 64 bits
type Int int64

// BigInt is a negative integer below math.MinInt64, which the offset-by-one
// encoding can produce from a 64-bit magnitude
type BigInt struct {
	Int *big.Int
}

// Bytes is a byte string. ChunkSizes is nil for definite-length strings; for
// indefinite-length strings it records the length of each original chunk in
// order, with Data holding the concatenation
type Bytes struct {
	Data       []byte
	ChunkSizes []int
}

// String is a text string. ChunkSizes follows the same convention as Bytes
type String struct {
	Text       string
	ChunkSizes []int
}

type Bool bool

type Float float64

// Nil marks the absence of a value (CBOR null or undefined)
type Nil struct{}

// Array is an ordered sequence of values
type Array []Value

func (Uint) isValue()   {}
func (Int) isValue()    {}
func (BigInt) isValue() {}
func (Bytes) isValue()  {}
func (String) isValue() {}
func (Bool) isValue()   {}
func (Float) isValue()  {}
func (Nil) isValue()    {}
func (Array) isValue()  {}

// ReadValue assembles the next fully nested value from the input, resolving
// definite- and indefinite-length arrays recursively. A clean end of input
// at the top level returns io.EOF
func (d *Decoder) ReadValue() (Value, error) {
	tok, err := d.NextToken()
	if err != nil {
		return nil, err
	}
	return d.assembleValue(tok)
}

// Cap on speculative array pre-allocation: a declared count is attacker
// controlled until the actual elements have been read
const arrayCapHint = 4096

func (d *Decoder) assembleValue(tok Token) (Value, error) {
	switch tok.Kind {
	case KindInt:
		switch {
		case tok.BigInt != nil:
			return BigInt{Int: tok.BigInt}, nil
		case tok.Neg:
			return Int(tok.Int), nil
		default:
			return Uint(tok.Uint), nil
		}
	case KindBytes:
		return Bytes{Data: tok.Bytes, ChunkSizes: tok.ChunkSizes}, nil
	case KindString:
		return String{Text: tok.String, ChunkSizes: tok.ChunkSizes}, nil
	case KindBool:
		return Bool(tok.Bool), nil
	case KindFloat:
		return Float(tok.Float), nil
	case KindNull, KindUndefined:
		return Nil{}, nil
	case KindArray:
		if tok.Indefinite {
			return d.assembleIndefiniteArray()
		}
		return d.assembleDefiniteArray(tok.Size)
	case KindArrayEnd, KindBytesArrayEnd, KindStringArrayEnd:
		// A break can only close the construct the assembler is currently
		// inside; surfacing here means it closed something else
		return nil, fmt.Errorf(
			"%w: break closes no construct at offset %d",
			ErrUnexpectedBreak,
			d.cursor.offset()-1,
		)
	}
	return nil, fmt.Errorf("unknown token kind: %d", tok.Kind)
}

func (d *Decoder) assembleDefiniteArray(count int) (Value, error) {
	capHint := count
	if capHint > arrayCapHint {
		capHint = arrayCapHint
	}
	items := make(Array, 0, capHint)
	for i := 0; i < count; i++ {
		item, err := d.ReadValue()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf(
					"%w: array wants %d elements, input ended after %d",
					ErrTruncatedInput,
					count,
					i,
				)
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *Decoder) assembleIndefiniteArray() (Value, error) {
	items := Array{}
	for {
		// The next token decides whether to recurse into assembly or stop,
		// so it has to be inspected before either path is taken
		tok, err := d.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindArrayEnd {
			return items, nil
		}
		item, err := d.assembleValue(tok)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

// DecodeValue assembles a single value from an in-memory buffer
func DecodeValue(data []byte) (Value, error) {
	return NewDecoder(bytes.NewReader(data)).ReadValue()
}

// Native converts an assembled value into untyped Go values: uint64, int64,
// *big.Int, []byte, string, bool, float64, nil, and []any. Chunk size
// records are dropped in the conversion
func Native(v Value) any {
	switch v := v.(type) {
	case Uint:
		return uint64(v)
	case Int:
		return int64(v)
	case BigInt:
		return v.Int
	case Bytes:
		return v.Data
	case String:
		return v.Text
	case Bool:
		return bool(v)
	case Float:
		return float64(v)
	case Nil:
		return nil
	case Array:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, Native(item))
		}
		return out
	}
	return nil
}
