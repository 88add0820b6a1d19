// Package snapshot persists periodic World snapshots for crash recovery
// and determinism verification: JSON-encode, hash with blake3, compress
// with lz4, and store the blob in a local SQLite database, pruning down
// to the configured retention count.
package snapshot

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pierrec/lz4/v4"
	_ "modernc.org/sqlite"
	"lukechampine.com/blake3"

	"github.com/brookstalley/worldground/internal/tile"
)

// Store persists World snapshots to a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and
// ensures the snapshots table exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	tick        INTEGER PRIMARY KEY,
	world_id    TEXT NOT NULL,
	digest      TEXT NOT NULL,
	data        BLOB NOT NULL,
	raw_size    INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Digest computes the blake3 digest of w's JSON encoding, the value two
// independently run worlds are compared by to verify determinism.
func Digest(w *tile.World) (string, []byte, error) {
	data, err := json.Marshal(w)
	if err != nil {
		return "", nil, fmt.Errorf("encoding world: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), data, nil
}

// Save compresses and stores a snapshot of w at its current tick, then
// prunes older rows beyond maxSnapshots.
func (s *Store) Save(ctx context.Context, w *tile.World, maxSnapshots int) error {
	digest, raw, err := Digest(w)
	if err != nil {
		return err
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	var compressor lz4.Compressor
	n, err := compressor.CompressBlock(raw, compressed)
	if err != nil {
		return fmt.Errorf("compressing snapshot: %w", err)
	}
	compressed = compressed[:n]

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (tick, world_id, digest, data, raw_size, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		w.TickCount, w.ID.String(), digest, compressed, len(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE tick NOT IN (SELECT tick FROM snapshots ORDER BY tick DESC LIMIT ?)`,
		maxSnapshots,
	)
	if err != nil {
		return fmt.Errorf("pruning snapshots: %w", err)
	}
	return nil
}

// Load decompresses and decodes the snapshot stored for tick.
func (s *Store) Load(ctx context.Context, tick uint64) (*tile.World, string, error) {
	var digest string
	var compressed []byte
	var rawSize int
	row := s.db.QueryRowContext(ctx, `SELECT digest, data, raw_size FROM snapshots WHERE tick = ?`, tick)
	if err := row.Scan(&digest, &compressed, &rawSize); err != nil {
		return nil, "", fmt.Errorf("loading snapshot tick %d: %w", tick, err)
	}

	// lz4's CompressBlock format requires the decompressed size up front;
	// it is recorded alongside the compressed blob at Save time rather
	// than guessed from the compressed length, since a highly compressible
	// world can exceed any fixed compression-ratio assumption.
	raw := make([]byte, rawSize)
	n, err := lz4.UncompressBlock(compressed, raw)
	if err != nil {
		return nil, "", fmt.Errorf("decompressing snapshot tick %d: %w", tick, err)
	}
	raw = raw[:n]

	var w tile.World
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, "", fmt.Errorf("decoding snapshot tick %d: %w", tick, err)
	}
	return &w, digest, nil
}

// LatestTick returns the most recently stored snapshot's tick, or ok=false
// if the store is empty.
func (s *Store) LatestTick(ctx context.Context) (tick uint64, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT tick FROM snapshots ORDER BY tick DESC LIMIT 1`)
	if err := row.Scan(&tick); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return tick, true, nil
}
