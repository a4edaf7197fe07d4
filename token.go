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
	"math"
	"math/big"
)

// Kind identifies the category of a decoded token
type Kind uint8

const (
	KindInt Kind = iota
	KindBytes
	KindString
	KindBool
	KindFloat
	KindNull
	KindUndefined
	KindArray
	KindArrayEnd
	KindBytesArray
	KindBytesArrayEnd
	KindStringArray
	KindStringArrayEnd
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindBytes:
		return "Bytes"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindFloat:
		return "Float"
	case KindNull:
		return "Null"
	case KindUndefined:
		return "Undefined"
	case KindArray:
		return "Array"
	case KindArrayEnd:
		return "ArrayEnd"
	case KindBytesArray:
		return "BytesArray"
	case KindBytesArrayEnd:
		return "BytesArrayEnd"
	case KindStringArray:
		return "StringArray"
	case KindStringArrayEnd:
		return "StringArrayEnd"
	}
	return "Unknown"
}

// Token is a single decoded CBOR item header plus any inline payload. Which
// fields are populated depends entirely on Kind:
//
//   - KindInt: Uint for non-negative values; Neg set with Int (or BigInt when
//     the value is below math.MinInt64) for negative values
//   - KindBytes / KindString: Bytes or String holds the payload; for
//     indefinite-length strings assembled from chunks, Indefinite is set and
//     ChunkSizes records the length of each original chunk in order
//   - KindBool / KindFloat: Bool or Float
//   - KindArray: Size holds the declared element count, or Indefinite is set
//     and the element tokens follow until the matching KindArrayEnd
//
// The end kinds and KindNull/KindUndefined carry no payload. Tokens are not
// retained by the Decoder; the caller owns them once returned.
type Token struct {
	Kind       Kind
	Uint       uint64
	Int        int64
	BigInt     *big.Int
	Neg        bool
	Bool       bool
	Float      float64
	Bytes      []byte
	String     string
	Size       int
	Indefinite bool
	ChunkSizes []int
}

// negativeToken maps a stored magnitude m onto the value -(m+1). Each
// magnitude width is computed in the narrowest signed width that holds its
// entire range, stepping up one width where the narrower type would wrap; a
// 64-bit magnitude past math.MaxInt64 escapes to a big.Int since -(m+1) no
// longer fits in int64
func negativeToken(m uint64) Token {
	tok := Token{Kind: KindInt, Neg: true}
	switch {
	case m <= math.MaxUint8:
		tok.Int = int64(-int16(m) - 1)
	case m <= math.MaxUint16:
		tok.Int = int64(-int32(m) - 1)
	case m <= math.MaxUint32:
		tok.Int = -int64(m) - 1
	case m <= math.MaxInt64:
		tok.Int = -int64(m) - 1
	default:
		mag := new(big.Int).SetUint64(m)
		mag.Add(mag, big.NewInt(1))
		tok.BigInt = mag.Neg(mag)
	}
	return tok
}
