package bitstream

import (
	"encoding/hex"
	"strings"
)

// Writer is the encode-side twin of Cursor: an MSB-first bit appender.
// The zero value is ready to use.
type Writer struct {
	data  []byte
	nbits int
}

// WriteBits appends the low n bits of v, most-significant first.
func (w *Writer) WriteBits(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.WriteBit((v >> uint(i)) & 1)
	}
}

// WriteBit appends a single bit (the low bit of b).
func (w *Writer) WriteBit(b uint64) {
	if w.nbits%8 == 0 {
		w.data = append(w.data, 0)
	}
	if b&1 == 1 {
		w.data[w.nbits>>3] |= 1 << (7 - w.nbits&7)
	}
	w.nbits++
}

// AppendWriter appends every bit already written to o.
func (w *Writer) AppendWriter(o *Writer) {
	for i := 0; i < o.nbits; i++ {
		w.WriteBit(uint64((o.data[i>>3] >> (7 - i&7)) & 1))
	}
}

// Len reports the number of bits written.
func (w *Writer) Len() int {
	return w.nbits
}

// Cursor returns a read cursor over the written bits.
func (w *Writer) Cursor() *Cursor {
	return NewCursor(w.data, w.nbits)
}

// Hex renders the written bits as an uppercase hex string, zero-padded
// to a byte boundary. A decoder stops at the end of the root packet, so
// the padding bits are inert.
func (w *Writer) Hex() string {
	return strings.ToUpper(hex.EncodeToString(w.data))
}
