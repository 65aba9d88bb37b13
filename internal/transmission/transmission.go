// Package transmission owns the decode pipeline: hex text in, report out.
package transmission

import (
	"errors"
	"strings"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/bitsctl/internal/bitstream"
	"github.com/danmuck/bitsctl/internal/packet"
)

var ErrInputTooLarge = errors.New("transmission: input too large")

// Config bounds the pipeline. Parsing itself has no timeouts; the only
// lever against oversized input is refusing it before expansion.
type Config struct {
	MaxInputBytes int
}

func DefaultConfig() Config {
	return Config{MaxInputBytes: 1 << 20}
}

// Report is the outcome of decoding one transmission.
type Report struct {
	Root        *packet.Packet
	VersionSum  int
	Value       *uint256.Int
	PacketCount int
	BitLength   int
}

// Decode runs the full pipeline with default bounds.
func Decode(hexInput string) (Report, error) {
	return DecodeWithConfig(hexInput, DefaultConfig())
}

// DecodeWithConfig expands hexInput to bits, parses the root packet, and
// runs both tree consumers. The whole input is parsed in one pass; a
// failure anywhere yields no partial report.
func DecodeWithConfig(hexInput string, cfg Config) (Report, error) {
	trimmed := strings.TrimSpace(hexInput)
	if cfg.MaxInputBytes > 0 && len(trimmed) > cfg.MaxInputBytes {
		return Report{}, ErrInputTooLarge
	}

	cur, err := bitstream.FromHex(trimmed)
	if err != nil {
		return Report{}, err
	}
	root, err := packet.Parse(cur)
	if err != nil {
		return Report{}, err
	}
	value, err := packet.Evaluate(root)
	if err != nil {
		return Report{}, err
	}

	rep := Report{
		Root:        root,
		VersionSum:  packet.VersionSum(root),
		Value:       value,
		PacketCount: root.Count(),
		BitLength:   root.BitLength,
	}
	log.Debug().
		Int("bits", rep.BitLength).
		Int("packets", rep.PacketCount).
		Int("version_sum", rep.VersionSum).
		Msg("transmission decoded")
	return rep, nil
}
