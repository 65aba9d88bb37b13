package packet

import (
	"github.com/holiman/uint256"

	"github.com/danmuck/bitsctl/internal/bitstream"
)

// LengthMode selects the operator framing used when encoding. The
// decoder accepts both, so the choice is the caller's.
type LengthMode uint8

const (
	LengthModeSubCount LengthMode = iota
	LengthModeBitCount
)

// Append writes p and its descendants to w. Literal values are emitted
// as the minimal continuation-group chain (a zero value is one group).
func Append(p *Packet, w *bitstream.Writer, mode LengthMode) error {
	w.WriteBits(uint64(p.Version), versionLen)
	w.WriteBits(uint64(p.Kind), typeIDLen)

	if p.Kind == KindLiteral {
		appendLiteralBody(w, p)
		return nil
	}

	if mode == LengthModeSubCount {
		if len(p.Children) >= 1<<subCountLen {
			return ErrEncodeTooLarge
		}
		w.WriteBit(1)
		w.WriteBits(uint64(len(p.Children)), subCountLen)
		for _, c := range p.Children {
			if err := Append(c, w, mode); err != nil {
				return err
			}
		}
		return nil
	}

	// Bit-count mode needs the children's total width up front, so they
	// are rendered to a scratch writer first.
	var sub bitstream.Writer
	for _, c := range p.Children {
		if err := Append(c, &sub, mode); err != nil {
			return err
		}
	}
	if sub.Len() >= 1<<bitCountLen {
		return ErrEncodeTooLarge
	}
	w.WriteBit(0)
	w.WriteBits(uint64(sub.Len()), bitCountLen)
	w.AppendWriter(&sub)
	return nil
}

func appendLiteralBody(w *bitstream.Writer, p *Packet) {
	groups := (p.Value.BitLen() + groupValueLen - 1) / groupValueLen
	if groups == 0 {
		groups = 1
	}
	for i := groups - 1; i >= 0; i-- {
		if i > 0 {
			w.WriteBit(1)
		} else {
			w.WriteBit(0)
		}
		nibble := new(uint256.Int).Rsh(p.Value, uint(i*groupValueLen))
		w.WriteBits(nibble.Uint64()&0xF, groupValueLen)
	}
}

// EncodeHex renders p as an uppercase hex transmission, padded with zero
// bits to a digit boundary.
func EncodeHex(p *Packet, mode LengthMode) (string, error) {
	var w bitstream.Writer
	if err := Append(p, &w, mode); err != nil {
		return "", err
	}
	return w.Hex(), nil
}
