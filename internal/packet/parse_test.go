package packet

import (
	"errors"
	"testing"

	"github.com/danmuck/bitsctl/internal/bitstream"
)

func parseHex(t *testing.T, s string) (*Packet, *bitstream.Cursor) {
	t.Helper()
	cur, err := bitstream.FromHex(s)
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	p, err := Parse(cur)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return p, cur
}

func TestParseLiteral(t *testing.T) {
	p, cur := parseHex(t, "D2FE28")
	if p.Kind != KindLiteral {
		t.Fatalf("kind: got %s want literal", p.Kind)
	}
	if p.Version != 6 {
		t.Fatalf("version: got %d want 6", p.Version)
	}
	if p.Value.Uint64() != 2021 {
		t.Fatalf("value: got %s want 2021", p.Value.Dec())
	}
	if len(p.Children) != 0 {
		t.Fatalf("literal has children: %d", len(p.Children))
	}
	if p.BitLength != 21 {
		t.Fatalf("bit length: got %d want 21", p.BitLength)
	}
	if p.BitLength != cur.Offset() {
		t.Fatalf("bit length %d disagrees with cursor offset %d", p.BitLength, cur.Offset())
	}
}

func TestParseOperatorBitCountMode(t *testing.T) {
	p, _ := parseHex(t, "38006F45291200")
	if p.Kind != KindLessThan {
		t.Fatalf("kind: got %s want lt", p.Kind)
	}
	if p.Version != 1 {
		t.Fatalf("version: got %d want 1", p.Version)
	}
	if len(p.Children) != 2 {
		t.Fatalf("children: got %d want 2", len(p.Children))
	}
	if got := p.Children[0].Value.Uint64(); got != 10 {
		t.Fatalf("first child: got %d want 10", got)
	}
	if got := p.Children[1].Value.Uint64(); got != 20 {
		t.Fatalf("second child: got %d want 20", got)
	}

	// Bit-count framing: children widths plus the 1+15 framing bits plus
	// the 6 header bits must account for the packet exactly.
	sub := 0
	for _, c := range p.Children {
		sub += c.BitLength
	}
	if want := versionLen + typeIDLen + lengthTypeLen + bitCountLen + sub; p.BitLength != want {
		t.Fatalf("bit length: got %d want %d", p.BitLength, want)
	}
}

func TestParseOperatorSubCountMode(t *testing.T) {
	p, _ := parseHex(t, "EE00D40C823060")
	if p.Kind != KindMaximum {
		t.Fatalf("kind: got %s want max", p.Kind)
	}
	if p.Version != 7 {
		t.Fatalf("version: got %d want 7", p.Version)
	}
	if len(p.Children) != 3 {
		t.Fatalf("children: got %d want 3", len(p.Children))
	}
	for i, want := range []uint64{1, 2, 3} {
		if got := p.Children[i].Value.Uint64(); got != want {
			t.Fatalf("child %d: got %d want %d", i, got, want)
		}
	}
}

func TestVersionSums(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"D2FE28", 6},
		{"8A004A801A8002F478", 16},
		{"620080001611562C8802118E34", 12},
		{"C0015000016115A2E0802F182340", 23},
		{"A0016C880162017C3686B18A3D4780", 31},
	}
	for _, tc := range cases {
		p, _ := parseHex(t, tc.input)
		if got := VersionSum(p); got != tc.want {
			t.Fatalf("%s: version sum got %d want %d", tc.input, got, tc.want)
		}
	}
}

func TestBitLengthMatchesCursorDelta(t *testing.T) {
	inputs := []string{
		"D2FE28",
		"38006F45291200",
		"EE00D40C823060",
		"A0016C880162017C3686B18A3D4780",
		"9C0141080250320F1802104A08",
	}
	for _, input := range inputs {
		p, cur := parseHex(t, input)
		if p.BitLength != cur.Offset() {
			t.Fatalf("%s: bit length %d, cursor consumed %d", input, p.BitLength, cur.Offset())
		}
	}
}

func TestParseZeroLiteralGroup(t *testing.T) {
	var w bitstream.Writer
	w.WriteBits(0b000, 3) // version
	w.WriteBits(0b100, 3) // literal type code
	w.WriteBits(0b00000, 5)

	p, err := Parse(w.Cursor())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !p.Value.IsZero() {
		t.Fatalf("value: got %s want 0", p.Value.Dec())
	}
	if p.BitLength != 11 {
		t.Fatalf("bit length: got %d want 11", p.BitLength)
	}
}

func TestParseBitCountOverrunIsFramingMismatch(t *testing.T) {
	var w bitstream.Writer
	w.WriteBits(0b000, 3) // version
	w.WriteBits(0b000, 3) // sum
	w.WriteBit(0)         // bit-count mode
	w.WriteBits(20, 15)   // declares 20 sub-bits, but the child takes 21
	w.WriteBits(0b110, 3)
	w.WriteBits(0b100, 3)
	w.WriteBits(0b10111, 5)
	w.WriteBits(0b11110, 5)
	w.WriteBits(0b00101, 5)

	_, err := Parse(w.Cursor())
	if !errors.Is(err, ErrFramingMismatch) {
		t.Fatalf("expected ErrFramingMismatch, got %v", err)
	}
}

func TestParseDeclaredSubCountWithNoBits(t *testing.T) {
	var w bitstream.Writer
	w.WriteBits(0b000, 3) // version
	w.WriteBits(0b000, 3) // sum
	w.WriteBit(1)         // sub-count mode
	w.WriteBits(1, 11)    // declares one child; stream ends here

	_, err := Parse(w.Cursor())
	if !errors.Is(err, bitstream.ErrUnexpectedEndOfStream) {
		t.Fatalf("expected ErrUnexpectedEndOfStream, got %v", err)
	}
}

func TestParseTruncatedLiteralChain(t *testing.T) {
	var w bitstream.Writer
	w.WriteBits(0b000, 3)
	w.WriteBits(0b100, 3)
	w.WriteBits(0b10111, 5) // continuation flag set, then nothing

	_, err := Parse(w.Cursor())
	if !errors.Is(err, bitstream.ErrUnexpectedEndOfStream) {
		t.Fatalf("expected ErrUnexpectedEndOfStream, got %v", err)
	}
}

func TestParseLiteralOverflowPast256Bits(t *testing.T) {
	var w bitstream.Writer
	w.WriteBits(0b000, 3)
	w.WriteBits(0b100, 3)
	// 65 groups of 0b1111: 260 value bits, four past capacity.
	for i := 0; i < 64; i++ {
		w.WriteBit(1)
		w.WriteBits(0b1111, 4)
	}
	w.WriteBit(0)
	w.WriteBits(0b1111, 4)

	_, err := Parse(w.Cursor())
	if !errors.Is(err, ErrLiteralOverflow) {
		t.Fatalf("expected ErrLiteralOverflow, got %v", err)
	}
}
