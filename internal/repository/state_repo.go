package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pc_restarter/internal/models"
)

// StateSQLite keeps the last merged device snapshot so a restarted console
// can show the last-known model while the device is unreachable.
type StateSQLite struct {
	db *sql.DB
}

func NewStateSQLite(db *sql.DB) *StateSQLite {
	return &StateSQLite{db: db}
}

const (
	deviceSnapshotRowID = 1

	upsertSnapshotSQL = `
		INSERT INTO device_snapshot (id, snapshot, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			snapshot=excluded.snapshot,
			updated_at=excluded.updated_at
	`

	selectSnapshotSQL = `
		SELECT snapshot, updated_at
		FROM device_snapshot WHERE id=?
	`
)

// Save upserts the single device_snapshot row (id always 1).
// The CSRF token is never persisted.
func (r *StateSQLite) Save(ctx context.Context, s models.StatusModel) error {
	tsUTC := s.UpdatedAt
	if tsUTC.IsZero() {
		tsUTC = time.Now().UTC()
	} else {
		tsUTC = tsUTC.UTC()
	}
	s.UpdatedAt = tsUTC

	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, upsertSnapshotSQL, deviceSnapshotRowID, string(b), tsUTC)
	return err
}

// Load fetches the persisted snapshot. With nothing stored it returns an
// empty model whose UpdatedAt is zero.
func (r *StateSQLite) Load(ctx context.Context) (models.StatusModel, error) {
	row := r.db.QueryRowContext(ctx, selectSnapshotSQL, deviceSnapshotRowID)

	var (
		raw       string
		updatedAt time.Time
	)
	if err := row.Scan(&raw, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewStatusModel(), nil
		}
		return models.NewStatusModel(), err
	}

	s := models.NewStatusModel()
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return models.NewStatusModel(), fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if s.Connectivity == "" {
		s.Connectivity = models.ConnectivityUnknown
	}
	s.UpdatedAt = updatedAt.UTC()
	return s, nil
}
