package packet

import "github.com/holiman/uint256"

// Kind identifies one of the eight packet kinds. The set is closed: the
// 3-bit type code on the wire maps directly onto these values.
type Kind uint8

const (
	KindSum Kind = iota
	KindProduct
	KindMinimum
	KindMaximum
	KindLiteral
	KindGreaterThan
	KindLessThan
	KindEqualTo
)

// IsOperator reports whether the kind carries child packets rather than
// a literal value.
func (k Kind) IsOperator() bool {
	return k != KindLiteral
}

func (k Kind) String() string {
	switch k {
	case KindSum:
		return "sum"
	case KindProduct:
		return "product"
	case KindMinimum:
		return "min"
	case KindMaximum:
		return "max"
	case KindLiteral:
		return "literal"
	case KindGreaterThan:
		return "gt"
	case KindLessThan:
		return "lt"
	case KindEqualTo:
		return "eq"
	}
	return "unknown"
}

// Packet is one decoded node. Exactly one of Value (literal) or Children
// (operator) is populated. Packets are immutable once parsed and form a
// tree: no sharing, no back-references.
type Packet struct {
	Version  uint8
	Kind     Kind
	Value    *uint256.Int
	Children []*Packet

	// BitLength is the number of bits this packet consumed on the wire,
	// including all descendants. It is zero for hand-built trees.
	BitLength int
}

// Count returns the number of packets in the tree rooted at p, p included.
func (p *Packet) Count() int {
	n := 1
	for _, c := range p.Children {
		n += c.Count()
	}
	return n
}
