package packet

import (
	"github.com/holiman/uint256"

	"github.com/danmuck/bitsctl/internal/bitstream"
)

// Field widths from the transmission wire contract.
const (
	versionLen    = 3
	typeIDLen     = 3
	groupFlagLen  = 1
	groupValueLen = 4
	lengthTypeLen = 1
	bitCountLen   = 15
	subCountLen   = 11
)

// A literal occupies at most 256 bits; one more nibble group past this
// limit would shift value bits out the top.
const maxLiteralBits = 256 - groupValueLen

// Parse consumes exactly one packet from cur, descendants included.
// Any structural violation aborts the whole parse; there is no partial
// result. The cursor is left positioned after the packet on success.
func Parse(cur *bitstream.Cursor) (*Packet, error) {
	start := cur.Offset()

	version, err := cur.ReadBits(versionLen)
	if err != nil {
		return nil, err
	}
	code, err := cur.ReadBits(typeIDLen)
	if err != nil {
		return nil, err
	}

	p := &Packet{Version: uint8(version), Kind: Kind(code)}
	if p.Kind == KindLiteral {
		p.Value, err = parseLiteralBody(cur)
	} else {
		p.Children, err = parseSubPackets(cur)
	}
	if err != nil {
		return nil, err
	}

	p.BitLength = cur.Offset() - start
	return p, nil
}

// parseLiteralBody reads 5-bit continuation groups until one with a zero
// flag, accumulating the 4 value bits of each group as the next nibble.
// There is no bound on the group count; exhausting the stream first
// surfaces as ErrUnexpectedEndOfStream.
func parseLiteralBody(cur *bitstream.Cursor) (*uint256.Int, error) {
	value := new(uint256.Int)
	for {
		more, err := cur.ReadBits(groupFlagLen)
		if err != nil {
			return nil, err
		}
		nibble, err := cur.ReadBits(groupValueLen)
		if err != nil {
			return nil, err
		}
		if value.BitLen() > maxLiteralBits {
			return nil, ErrLiteralOverflow
		}
		value.Lsh(value, groupValueLen)
		value.Or(value, uint256.NewInt(nibble))
		if more == 0 {
			return value, nil
		}
	}
}

// parseSubPackets reads the length-type flag and then the children under
// one of the two framing modes. The modes are mutually exclusive; there
// is no fallback.
func parseSubPackets(cur *bitstream.Cursor) ([]*Packet, error) {
	mode, err := cur.ReadBits(lengthTypeLen)
	if err != nil {
		return nil, err
	}

	if mode == 0 {
		// Bit-count mode: children must consume the declared total exactly.
		total, err := cur.ReadBits(bitCountLen)
		if err != nil {
			return nil, err
		}
		start := cur.Offset()
		var children []*Packet
		for uint64(cur.Offset()-start) < total {
			child, err := Parse(cur)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		if uint64(cur.Offset()-start) > total {
			return nil, ErrFramingMismatch
		}
		return children, nil
	}

	// Sub-count mode: exactly count children, no accumulation check.
	count, err := cur.ReadBits(subCountLen)
	if err != nil {
		return nil, err
	}
	children := make([]*Packet, 0, count)
	for i := uint64(0); i < count; i++ {
		child, err := Parse(cur)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}
