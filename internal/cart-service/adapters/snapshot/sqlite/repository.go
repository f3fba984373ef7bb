// Package sqlite provides a SQLite-backed implementation of
// ports.SnapshotStore — the service-side stand-in for the browser's
// localStorage. One row per owner, snapshot stored as a JSON payload so the
// cart schema can evolve without migrations; loads re-normalize anyway.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/ports"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps Alpine/Docker builds simple.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_snapshots (
    -- One snapshot per owner (user or device key). Upserted in place.
    owner       TEXT PRIMARY KEY,

    -- JSON: {items, maxTotalKg, maxItems}. Never trusted raw on load.
    payload     TEXT NOT NULL,

    -- RFC3339 stored as TEXT, SQLite idiom.
    updated_at  TEXT NOT NULL
);
`

var _ ports.SnapshotStore = (*Repository)(nil)

// Repository is the SQLite implementation of ports.SnapshotStore.
type Repository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// WAL mode keeps the occasional read from blocking the write-after-mutation
// path; busy_timeout waits for locks instead of failing immediately.
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// SQLite performs best with a single writer connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: apply schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Close releases the database connection. Call it with defer in main().
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save upserts the owner's snapshot.
func (r *Repository) Save(ctx context.Context, owner string, snap domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("sqlite: encode snapshot for %q: %w", owner, err)
	}

	const q = `
		INSERT INTO cart_snapshots (owner, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(owner) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at`

	_, err = r.db.ExecContext(ctx, q, owner, string(payload), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("sqlite: save snapshot for %q: %w", owner, err)
	}
	return nil
}

// Load returns the owner's snapshot, or nil when none has been saved.
// A row that no longer parses is an error; the cart falls back to empty.
func (r *Repository) Load(ctx context.Context, owner string) (*domain.Snapshot, error) {
	const q = `SELECT payload FROM cart_snapshots WHERE owner = ?`

	var payload string
	err := r.db.QueryRowContext(ctx, q, owner).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: load snapshot for %q: %w", owner, err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("sqlite: corrupt snapshot for %q: %w", owner, err)
	}
	return &snap, nil
}

// Clear removes the owner's snapshot. Idempotent.
func (r *Repository) Clear(ctx context.Context, owner string) error {
	const q = `DELETE FROM cart_snapshots WHERE owner = ?`
	if _, err := r.db.ExecContext(ctx, q, owner); err != nil {
		return fmt.Errorf("sqlite: clear snapshot for %q: %w", owner, err)
	}
	return nil
}
