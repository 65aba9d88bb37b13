package bitstream

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnexpectedEndOfStream = errors.New("bitstream: unexpected end of stream")
	ErrReadTooWide           = errors.New("bitstream: read wider than 64 bits")
)

// Cursor is a sequential MSB-first reader over a fixed bit sequence.
// The offset only moves forward; there is no rewind and no concurrent use.
type Cursor struct {
	data  []byte
	nbits int
	off   int
}

// NewCursor wraps data as a bit sequence of nbits bits. The sequence is
// read MSB-first within each byte.
func NewCursor(data []byte, nbits int) *Cursor {
	if nbits > len(data)*8 {
		nbits = len(data) * 8
	}
	return &Cursor{data: data, nbits: nbits}
}

// FromHex expands a hex-digit string into a bit cursor, four bits per
// digit in big-endian order. Surrounding whitespace is stripped.
func FromHex(s string) (*Cursor, error) {
	s = strings.TrimSpace(s)
	data := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		v, err := hexDigit(s[i])
		if err != nil {
			return nil, err
		}
		if i%2 == 0 {
			data[i/2] = v << 4
		} else {
			data[i/2] |= v
		}
	}
	return NewCursor(data, len(s)*4), nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, fmt.Errorf("bitstream: invalid hex digit %q", c)
}

// ReadBits consumes the next n bits and returns them as a big-endian
// unsigned integer. n must be at most 64. Fails with
// ErrUnexpectedEndOfStream when fewer than n bits remain; the offset is
// untouched on failure.
func (c *Cursor) ReadBits(n int) (uint64, error) {
	if n > 64 {
		return 0, ErrReadTooWide
	}
	if n > c.nbits-c.off {
		return 0, ErrUnexpectedEndOfStream
	}
	var v uint64
	for i := 0; i < n; i++ {
		off := c.off + i
		bit := (c.data[off>>3] >> (7 - off&7)) & 1
		v = v<<1 | uint64(bit)
	}
	c.off += n
	return v, nil
}

// ReadBit consumes a single flag bit.
func (c *Cursor) ReadBit() (uint64, error) {
	return c.ReadBits(1)
}

// Offset reports the number of bits consumed so far. Sub-parse sizes are
// measured by taking the offset delta around the sub-parse.
func (c *Cursor) Offset() int {
	return c.off
}

// Len reports the total number of bits in the sequence.
func (c *Cursor) Len() int {
	return c.nbits
}

// Remaining reports the number of unread bits.
func (c *Cursor) Remaining() int {
	return c.nbits - c.off
}
