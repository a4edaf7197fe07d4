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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/x448/float16"
)

// Decoder is a single decode session over one byte source. It owns its
// cursor and open-construct stack exclusively, so independent Decoders over
// independent sources can run on separate goroutines with no coordination. A
// Decoder that has returned any error other than io.EOF must be discarded:
// its position and construct state are no longer meaningful
type Decoder struct {
	cursor *byteCursor
	stack  openStack
	logger *slog.Logger
}

// NewDecoder returns a decode session over the given byte source. In-memory
// data is decoded by wrapping it in a bytes.Reader
func NewDecoder(r io.Reader, opts ...DecoderOptionFunc) *Decoder {
	d := &Decoder{
		cursor: newByteCursor(r),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Offset returns the number of input bytes consumed so far. It is intended
// for diagnostics, particularly for locating the position of a decode error
func (d *Decoder) Offset() int {
	return d.cursor.offset()
}

// Depth returns the number of indefinite-length constructs currently open.
// It is zero whenever the session is not mid-aggregate
func (d *Decoder) Depth() int {
	return d.stack.depth()
}

// NextToken decodes and returns the next token from the input. Chunked
// (indefinite-length) byte and text strings are assembled into a single
// KindBytes or KindString token carrying the concatenated payload and the
// per-chunk size record; arrays stream as a KindArray token followed by the
// element tokens and, for indefinite arrays, a closing KindArrayEnd. Null
// and Undefined are preserved as distinct kinds. A clean end of input at the
// top level returns io.EOF
func (d *Decoder) NextToken() (Token, error) {
	tok, err := d.readToken()
	if err != nil {
		return Token{}, err
	}
	switch tok.Kind {
	case KindBytesArray:
		tok, err = d.assembleChunks(KindBytes, KindBytesArrayEnd)
	case KindStringArray:
		tok, err = d.assembleChunks(KindString, KindStringArrayEnd)
	}
	if err != nil {
		return Token{}, err
	}
	d.logger.Debug(
		"decoded token",
		"component", "cbor",
		"kind", tok.Kind.String(),
		"offset", d.cursor.offset(),
	)
	return tok, nil
}

// readToken decodes exactly one item header (plus any inline payload) by
// dispatching on the leading byte. Indefinite-length openers push the
// construct stack and break codes pop it
func (d *Decoder) readToken() (Token, error) {
	lead, err := d.cursor.next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			if d.stack.depth() > 0 {
				return Token{}, fmt.Errorf(
					"%w: %d construct(s) still open at offset %d",
					ErrUnexpectedEndOfInput,
					d.stack.depth(),
					d.cursor.offset(),
				)
			}
			return Token{}, io.EOF
		}
		return Token{}, err
	}
	switch {
	// Major type 0: unsigned integer
	case lead <= 0x17:
		return Token{Kind: KindInt, Uint: uint64(lead)}, nil
	case lead >= 0x18 && lead <= 0x1b:
		mag, err := d.cursor.readUint(1 << (lead - 0x18))
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: KindInt, Uint: mag}, nil

	// Major type 1: negative integer, stored magnitude m for value -(m+1)
	case lead >= 0x20 && lead <= 0x37:
		return negativeToken(uint64(lead - 0x20)), nil
	case lead >= 0x38 && lead <= 0x3b:
		mag, err := d.cursor.readUint(1 << (lead - 0x38))
		if err != nil {
			return Token{}, err
		}
		return negativeToken(mag), nil

	// Major type 2: byte string
	case lead >= 0x40 && lead <= 0x57:
		return d.bytesToken(int(lead - 0x40))
	case lead >= 0x58 && lead <= 0x5b:
		length, err := d.readLength(1 << (lead - 0x58))
		if err != nil {
			return Token{}, err
		}
		return d.bytesToken(length)
	case lead == 0x5f:
		d.stack.push(KindBytesArray)
		return Token{Kind: KindBytesArray, Indefinite: true}, nil

	// Major type 3: text string
	case lead >= 0x60 && lead <= 0x77:
		return d.textToken(int(lead - 0x60))
	case lead >= 0x78 && lead <= 0x7b:
		length, err := d.readLength(1 << (lead - 0x78))
		if err != nil {
			return Token{}, err
		}
		return d.textToken(length)
	case lead == 0x7f:
		d.stack.push(KindStringArray)
		return Token{Kind: KindStringArray, Indefinite: true}, nil

	// Major type 4: array
	case lead >= 0x80 && lead <= 0x97:
		return Token{Kind: KindArray, Size: int(lead - 0x80)}, nil
	case lead >= 0x98 && lead <= 0x9b:
		count, err := d.readLength(1 << (lead - 0x98))
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: KindArray, Size: count}, nil
	case lead == 0x9f:
		d.stack.push(KindArray)
		return Token{Kind: KindArray, Indefinite: true}, nil

	// Major type 7: booleans, null, undefined, floats
	case lead == 0xf4:
		return Token{Kind: KindBool, Bool: false}, nil
	case lead == 0xf5:
		return Token{Kind: KindBool, Bool: true}, nil
	case lead == 0xf6:
		return Token{Kind: KindNull}, nil
	case lead == 0xf7:
		return Token{Kind: KindUndefined}, nil
	case lead == 0xf9:
		bits, err := d.cursor.readUint(2)
		if err != nil {
			return Token{}, err
		}
		return Token{
			Kind:  KindFloat,
			Float: float64(float16.Frombits(uint16(bits)).Float32()),
		}, nil
	case lead == 0xfa:
		bits, err := d.cursor.readUint(4)
		if err != nil {
			return Token{}, err
		}
		return Token{
			Kind:  KindFloat,
			Float: float64(math.Float32frombits(uint32(bits))),
		}, nil
	case lead == 0xfb:
		bits, err := d.cursor.readUint(8)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: KindFloat, Float: math.Float64frombits(bits)}, nil

	// Break: close the innermost open indefinite-length construct
	case lead == 0xff:
		kind, err := d.stack.pop()
		if err != nil {
			return Token{}, fmt.Errorf("%w at offset %d", err, d.cursor.offset()-1)
		}
		switch kind {
		case KindArray:
			return Token{Kind: KindArrayEnd}, nil
		case KindBytesArray:
			return Token{Kind: KindBytesArrayEnd}, nil
		case KindStringArray:
			return Token{Kind: KindStringArrayEnd}, nil
		}
		return Token{}, fmt.Errorf(
			"%w: open construct has unexpected kind %s",
			ErrUnexpectedBreak,
			kind,
		)
	}
	// Maps (major type 5), tags (major type 6), and the remaining simple
	// values are not dispatched
	return Token{}, fmt.Errorf(
		"%w: 0x%02x at offset %d",
		ErrUnsupportedLeadingByte,
		lead,
		d.cursor.offset()-1,
	)
}

// readLength reads a width-extended length or element count and bounds it.
// Declared sizes past MaxInt32 are rejected before any allocation happens
func (d *Decoder) readLength(width int) (int, error) {
	mag, err := d.cursor.readUint(width)
	if err != nil {
		return 0, err
	}
	if mag > math.MaxInt32 {
		return 0, fmt.Errorf(
			"%w: declared size %d exceeds maximum %d",
			ErrSizeExceeded,
			mag,
			math.MaxInt32,
		)
	}
	return int(mag), nil
}

func (d *Decoder) bytesToken(length int) (Token, error) {
	data, err := d.cursor.readExact(length)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: KindBytes, Bytes: data}, nil
}

func (d *Decoder) textToken(length int) (Token, error) {
	text, err := d.cursor.readText(length)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: KindString, String: text}, nil
}

// assembleChunks resolves an indefinite-length string into a single token.
// Every chunk before the closing break must be a definite-length string of
// the enclosing type; the chunk payloads are concatenated in order and each
// chunk's length is recorded
func (d *Decoder) assembleChunks(chunkKind Kind, endKind Kind) (Token, error) {
	out := Token{
		Kind:       chunkKind,
		Indefinite: true,
		ChunkSizes: []int{},
	}
	var data []byte
	for {
		tok, err := d.readToken()
		if err != nil {
			return Token{}, err
		}
		if tok.Kind == endKind {
			break
		}
		if tok.Kind != chunkKind {
			return Token{}, fmt.Errorf(
				"%w: found %s chunk inside indefinite-length %s at offset %d",
				ErrMixedChunkType,
				tok.Kind,
				chunkKind,
				d.cursor.offset(),
			)
		}
		if chunkKind == KindBytes {
			out.ChunkSizes = append(out.ChunkSizes, len(tok.Bytes))
			data = append(data, tok.Bytes...)
		} else {
			out.ChunkSizes = append(out.ChunkSizes, len(tok.String))
			data = append(data, tok.String...)
		}
	}
	if chunkKind == KindBytes {
		if data == nil {
			data = []byte{}
		}
		out.Bytes = data
	} else {
		out.String = string(data)
	}
	return out, nil
}
