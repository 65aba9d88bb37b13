// Package store keeps a SQLite history of decoded transmissions.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/danmuck/bitsctl/internal/transmission"
)

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Record is one decoded transmission.
type Record struct {
	ID          string
	Input       string
	VersionSum  int
	Value       string
	PacketCount int
	BitLength   int
	DecodedAt   time.Time
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transmissions (
		id TEXT PRIMARY KEY,
		input TEXT NOT NULL,
		version_sum INTEGER NOT NULL,
		value TEXT NOT NULL,
		packet_count INTEGER NOT NULL,
		bit_length INTEGER NOT NULL,
		decoded_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_transmissions_decoded_at ON transmissions(decoded_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add records one decode outcome and returns the record id. The value is
// stored as decimal text since it may exceed int64.
func (s *Store) Add(input string, rep transmission.Report) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO transmissions (id, input, version_sum, value, packet_count, bit_length, decoded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, input, rep.VersionSum, rep.Value.Dec(), rep.PacketCount, rep.BitLength, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("record transmission: %w", err)
	}
	log.Debug().Str("id", id).Int("bits", rep.BitLength).Msg("transmission recorded")
	return id, nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT id, input, version_sum, value, packet_count, bit_length, decoded_at
		 FROM transmissions ORDER BY decoded_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query transmissions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Input, &r.VersionSum, &r.Value, &r.PacketCount, &r.BitLength, &r.DecodedAt); err != nil {
			return nil, fmt.Errorf("scan transmission: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
