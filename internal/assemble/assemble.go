// Package assemble turns expression text into packet trees, the
// authoring-side counterpart of the wire parser.
package assemble

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/holiman/uint256"

	"github.com/danmuck/bitsctl/internal/packet"
)

// Assembler parses expression text into packet trees.
type Assembler struct {
	parser *participle.Parser[exprGrammar]
}

var opKinds = map[string]packet.Kind{
	"sum":     packet.KindSum,
	"product": packet.KindProduct,
	"min":     packet.KindMinimum,
	"max":     packet.KindMaximum,
	"gt":      packet.KindGreaterThan,
	"lt":      packet.KindLessThan,
	"eq":      packet.KindEqualTo,
}

// New builds an assembler. The grammar is fixed, so errors only surface
// when the grammar structs and lexer rules drift apart.
func New() (*Assembler, error) {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "HexInt", Pattern: `0x[0-9A-Fa-f]+`},
		{Name: "Int", Pattern: `[0-9]+`},
		{Name: "Ident", Pattern: `[a-z]+`},
		{Name: "Punct", Pattern: `[@(),]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	p, err := participle.Build[exprGrammar](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		return nil, fmt.Errorf("building assembler grammar: %w", err)
	}
	return &Assembler{parser: p}, nil
}

// Assemble parses input into a packet tree. The tree has no BitLength
// until it is encoded.
func (a *Assembler) Assemble(input string) (*packet.Packet, error) {
	g, err := a.parser.ParseString("", input)
	if err != nil {
		return nil, err
	}
	return convert(g)
}

// AssembleHex parses input and renders it as a hex transmission.
func (a *Assembler) AssembleHex(input string, mode packet.LengthMode) (string, error) {
	p, err := a.Assemble(input)
	if err != nil {
		return "", err
	}
	return packet.EncodeHex(p, mode)
}

func convert(g *exprGrammar) (*packet.Packet, error) {
	if g.Call != nil {
		return convertCall(g.Call)
	}
	return convertLit(g.Lit)
}

func convertCall(c *callGrammar) (*packet.Packet, error) {
	kind, ok := opKinds[c.Op]
	if !ok {
		return nil, fmt.Errorf("assemble: unknown operator %q", c.Op)
	}
	version, err := parseVersion(c.Version)
	if err != nil {
		return nil, err
	}
	if len(c.Args) == 0 {
		return nil, fmt.Errorf("assemble: operator %q needs at least one operand", c.Op)
	}
	children := make([]*packet.Packet, 0, len(c.Args))
	for _, arg := range c.Args {
		child, err := convert(arg)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return &packet.Packet{Version: version, Kind: kind, Children: children}, nil
}

func convertLit(l *litGrammar) (*packet.Packet, error) {
	version, err := parseVersion(l.Version)
	if err != nil {
		return nil, err
	}
	value := new(uint256.Int)
	switch {
	case l.Hex != nil:
		if err := value.SetFromHex(*l.Hex); err != nil {
			return nil, fmt.Errorf("assemble: literal %s: %w", *l.Hex, err)
		}
	default:
		if err := value.SetFromDecimal(*l.Dec); err != nil {
			return nil, fmt.Errorf("assemble: literal %s: %w", *l.Dec, err)
		}
	}
	return &packet.Packet{Version: version, Kind: packet.KindLiteral, Value: value}, nil
}

func parseVersion(raw *string) (uint8, error) {
	if raw == nil {
		return 0, nil
	}
	v, err := strconv.ParseUint(*raw, 10, 8)
	if err != nil || v > 7 {
		return 0, fmt.Errorf("assemble: version %s out of range 0-7", *raw)
	}
	return uint8(v), nil
}
