package packet

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Evaluate reduces a packet tree to its value. It is pure: the tree is
// never mutated, so concurrent evaluation of the same tree is safe.
//
// Relational kinds require exactly two operands; the wire grammar does
// not enforce that, so it is rejected here rather than silently
// truncating extras. Sum and Product keep their identities over zero
// children; Minimum and Maximum have no identity and are rejected empty.
func Evaluate(p *Packet) (*uint256.Int, error) {
	switch p.Kind {
	case KindLiteral:
		return new(uint256.Int).Set(p.Value), nil

	case KindSum:
		acc := new(uint256.Int)
		for _, c := range p.Children {
			v, err := Evaluate(c)
			if err != nil {
				return nil, err
			}
			if _, overflow := acc.AddOverflow(acc, v); overflow {
				return nil, ErrArithmeticOverflow
			}
		}
		return acc, nil

	case KindProduct:
		acc := uint256.NewInt(1)
		for _, c := range p.Children {
			v, err := Evaluate(c)
			if err != nil {
				return nil, err
			}
			if _, overflow := acc.MulOverflow(acc, v); overflow {
				return nil, ErrArithmeticOverflow
			}
		}
		return acc, nil

	case KindMinimum, KindMaximum:
		if len(p.Children) == 0 {
			return nil, fmt.Errorf("%w: %s over no operands", ErrMalformedOperands, p.Kind)
		}
		best, err := Evaluate(p.Children[0])
		if err != nil {
			return nil, err
		}
		for _, c := range p.Children[1:] {
			v, err := Evaluate(c)
			if err != nil {
				return nil, err
			}
			if p.Kind == KindMinimum && v.Lt(best) {
				best = v
			}
			if p.Kind == KindMaximum && v.Gt(best) {
				best = v
			}
		}
		return best, nil

	case KindGreaterThan, KindLessThan, KindEqualTo:
		if len(p.Children) != 2 {
			return nil, fmt.Errorf("%w: %s wants 2 operands, has %d",
				ErrMalformedOperands, p.Kind, len(p.Children))
		}
		a, err := Evaluate(p.Children[0])
		if err != nil {
			return nil, err
		}
		b, err := Evaluate(p.Children[1])
		if err != nil {
			return nil, err
		}
		var hold bool
		switch p.Kind {
		case KindGreaterThan:
			hold = a.Gt(b)
		case KindLessThan:
			hold = a.Lt(b)
		default:
			hold = a.Eq(b)
		}
		if hold {
			return uint256.NewInt(1), nil
		}
		return new(uint256.Int), nil
	}
	return nil, fmt.Errorf("packet: unknown kind %d", p.Kind)
}
