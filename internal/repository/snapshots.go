package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/boardwalk/monopoly-server-go/internal/game"
	"github.com/jackc/pgx/v5"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a game.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrSnapshotChecksum is returned when a stored snapshot fails its integrity
// check on load.
var ErrSnapshotChecksum = errors.New("snapshot checksum mismatch")

// SnapshotRepository persists engine snapshots as JSON rows, one current row
// per game.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates the repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// EnsureSchema creates the snapshot table if missing.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS game_snapshots (
			game_id        TEXT PRIMARY KEY,
			schema_version INT NOT NULL,
			state          JSONB NOT NULL,
			checksum       TEXT NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Save upserts the current snapshot for a game.
func (r *SnapshotRepository) Save(ctx context.Context, snap *game.Snapshot) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.db.pool.Exec(ctx, `
		INSERT INTO game_snapshots (game_id, schema_version, state, checksum, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (game_id)
		DO UPDATE SET schema_version = $2, state = $3, checksum = $4, updated_at = now()`,
		snap.GameID, snap.SchemaVersion, state, snap.ComputeChecksum().Hash)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load fetches the current snapshot for a game.
func (r *SnapshotRepository) Load(ctx context.Context, gameID string) (*game.Snapshot, error) {
	var state []byte
	var checksum string
	err := r.db.pool.QueryRow(ctx,
		`SELECT state, checksum FROM game_snapshots WHERE game_id = $1`, gameID).Scan(&state, &checksum)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(state, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snap.ComputeChecksum().Hash != checksum {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrSnapshotChecksum)
	}
	return &snap, nil
}

// Delete removes a game's snapshot.
func (r *SnapshotRepository) Delete(ctx context.Context, gameID string) error {
	_, err := r.db.pool.Exec(ctx,
		`DELETE FROM game_snapshots WHERE game_id = $1`, gameID)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}
