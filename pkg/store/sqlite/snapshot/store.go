package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pm-tools/project-pulse/pkg/models/store"
)

// Store persists point-in-time analytics snapshots per project.
type Store interface {
	Add(ctx context.Context, snapshot store.AnalyticsSnapshot) error
	Latest(ctx context.Context, project string) (*store.AnalyticsSnapshot, error)
	// Prune removes snapshots captured before the cutoff and reports how
	// many rows were deleted.
	Prune(ctx context.Context, project string, before time.Time) (int64, error)
}

type snapshotStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &snapshotStore{db: db}, nil
}

func (s *snapshotStore) Add(ctx context.Context, snapshot store.AnalyticsSnapshot) error {
	query := `
		INSERT INTO analytics_snapshots (project, captured_at, payload)
		VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		snapshot.Project,
		snapshot.CapturedAt,
		string(snapshot.Payload),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *snapshotStore) Latest(ctx context.Context, project string) (*store.AnalyticsSnapshot, error) {
	query := `
		SELECT project, captured_at, payload
		FROM analytics_snapshots
		WHERE project = ?
		ORDER BY captured_at DESC
		LIMIT 1`

	var (
		snapshot   store.AnalyticsSnapshot
		capturedAt time.Time
		payload    string
	)
	err := s.db.QueryRowContext(ctx, query, project).Scan(&snapshot.Project, &capturedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	snapshot.CapturedAt = capturedAt
	snapshot.Payload = []byte(payload)
	return &snapshot, nil
}

func (s *snapshotStore) Prune(ctx context.Context, project string, before time.Time) (int64, error) {
	query := `DELETE FROM analytics_snapshots WHERE project = ? AND captured_at < ?`

	result, err := s.db.ExecContext(ctx, query, project, before)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count pruned snapshots: %w", err)
	}
	return deleted, nil
}
