package packet

import (
	"testing"

	"github.com/holiman/uint256"

	"github.com/danmuck/bitsctl/internal/bitstream"
)

func reparse(t *testing.T, p *Packet, mode LengthMode) *Packet {
	t.Helper()
	var w bitstream.Writer
	if err := Append(p, &w, mode); err != nil {
		t.Fatalf("append: %v", err)
	}
	out, err := Parse(w.Cursor())
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	return out
}

func TestEncodeLiteralRoundTrip(t *testing.T) {
	p, _ := parseHex(t, "D2FE28")
	out := reparse(t, p, LengthModeSubCount)
	if out.Version != 6 || out.Kind != KindLiteral {
		t.Fatalf("header mismatch: %+v", out)
	}
	if !out.Value.Eq(p.Value) {
		t.Fatalf("value: got %s want %s", out.Value.Dec(), p.Value.Dec())
	}
}

func TestEncodeWideLiteralRoundTrip(t *testing.T) {
	value := new(uint256.Int)
	// 97 bits, well past a native word.
	if err := value.SetFromDecimal("158456325028528675187087900672"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	p := &Packet{Version: 5, Kind: KindLiteral, Value: value}

	out := reparse(t, p, LengthModeSubCount)
	if !out.Value.Eq(value) {
		t.Fatalf("value: got %s want %s", out.Value.Dec(), value.Dec())
	}
	if out.Version != 5 {
		t.Fatalf("version: got %d want 5", out.Version)
	}
}

func TestEncodeZeroLiteralIsOneGroup(t *testing.T) {
	p := &Packet{Kind: KindLiteral, Value: new(uint256.Int)}
	var w bitstream.Writer
	if err := Append(p, &w, LengthModeSubCount); err != nil {
		t.Fatalf("append: %v", err)
	}
	if w.Len() != versionLen+typeIDLen+groupFlagLen+groupValueLen {
		t.Fatalf("width: got %d want %d", w.Len(), versionLen+typeIDLen+groupFlagLen+groupValueLen)
	}
}

func TestEncodeOperatorBothModes(t *testing.T) {
	p, _ := parseHex(t, "EE00D40C823060")
	for _, mode := range []LengthMode{LengthModeSubCount, LengthModeBitCount} {
		out := reparse(t, p, mode)
		if VersionSum(out) != VersionSum(p) {
			t.Fatalf("mode %d: version sum got %d want %d", mode, VersionSum(out), VersionSum(p))
		}
		got, err := Evaluate(out)
		if err != nil {
			t.Fatalf("mode %d: evaluate: %v", mode, err)
		}
		want, _ := Evaluate(p)
		if !got.Eq(want) {
			t.Fatalf("mode %d: got %s want %s", mode, got.Dec(), want.Dec())
		}
	}
}

func TestEncodeNestedTreeRoundTrip(t *testing.T) {
	p, _ := parseHex(t, "9C0141080250320F1802104A08")
	for _, mode := range []LengthMode{LengthModeSubCount, LengthModeBitCount} {
		out := reparse(t, p, mode)
		got, err := Evaluate(out)
		if err != nil {
			t.Fatalf("mode %d: evaluate: %v", mode, err)
		}
		if got.Uint64() != 1 {
			t.Fatalf("mode %d: got %s want 1", mode, got.Dec())
		}
	}
}

func TestEncodeHexIsParseable(t *testing.T) {
	p := &Packet{
		Version: 3,
		Kind:    KindSum,
		Children: []*Packet{
			{Kind: KindLiteral, Value: uint256.NewInt(1)},
			{Kind: KindLiteral, Value: uint256.NewInt(2)},
		},
	}
	s, err := EncodeHex(p, LengthModeBitCount)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	cur, err := bitstream.FromHex(s)
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	out, err := Parse(cur)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := Evaluate(out)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if v.Uint64() != 3 {
		t.Fatalf("value: got %s want 3", v.Dec())
	}
}
