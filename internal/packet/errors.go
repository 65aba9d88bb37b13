package packet

import "errors"

var (
	ErrFramingMismatch    = errors.New("packet: sub-packet bits exceed declared total")
	ErrMalformedOperands  = errors.New("packet: operand count mismatch")
	ErrLiteralOverflow    = errors.New("packet: literal value exceeds 256 bits")
	ErrArithmeticOverflow = errors.New("packet: arithmetic overflow")
	ErrEncodeTooLarge     = errors.New("packet: encoded size exceeds length field")
)
