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
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// byteCursor provides sequential, position-tracking reads over a byte source.
// In-memory buffers and streaming sources look identical through the
// io.Reader; only next-byte and read-exact semantics matter here
type byteCursor struct {
	r   io.Reader
	buf [8]byte
	pos int
	eof bool
}

func newByteCursor(r io.Reader) *byteCursor {
	return &byteCursor{r: r}
}

// next returns the next byte from the source, or io.EOF once the source is
// exhausted. The end-of-input state is sticky: every call after exhaustion
// keeps returning io.EOF
func (c *byteCursor) next() (byte, error) {
	if c.eof {
		return 0, io.EOF
	}
	if _, err := io.ReadFull(c.r, c.buf[:1]); err != nil {
		c.eof = true
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, io.EOF
		}
		return 0, err
	}
	c.pos++
	return c.buf[0], nil
}

// readExact returns exactly n bytes from the source or fails with
// ErrTruncatedInput
func (c *byteCursor) readExact(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if c.eof {
		return nil, fmt.Errorf(
			"%w: wanted %d bytes at offset %d, input exhausted",
			ErrTruncatedInput,
			n,
			c.pos,
		)
	}
	data := make([]byte, n)
	got, err := io.ReadFull(c.r, data)
	start := c.pos
	c.pos += got
	if err != nil {
		c.eof = true
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf(
				"%w: wanted %d bytes at offset %d, got %d",
				ErrTruncatedInput,
				n,
				start,
				got,
			)
		}
		return nil, err
	}
	return data, nil
}

// readUint reads a big-endian unsigned integer of the given byte width
// (1, 2, 4, or 8)
func (c *byteCursor) readUint(width int) (uint64, error) {
	data, err := c.readExact(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(data[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(data)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(data)), nil
	case 8:
		return binary.BigEndian.Uint64(data), nil
	}
	return 0, fmt.Errorf("invalid uint width: %d", width)
}

// readText reads exactly n bytes as text. The input is assumed to be
// well-formed UTF-8; validation is left to the caller's policy
func (c *byteCursor) readText(n int) (string, error) {
	data, err := c.readExact(n)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// offset returns the number of bytes consumed so far, for diagnostics only
func (c *byteCursor) offset() int {
	return c.pos
}
