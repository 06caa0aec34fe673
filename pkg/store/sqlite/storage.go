package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SnapshotTableSchema = `
	CREATE TABLE IF NOT EXISTS analytics_snapshots (
		project VARCHAR NOT NULL,
		captured_at TIMESTAMP NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY (project, captured_at)
	);
`

var bootQueries = []string{
	SnapshotTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	for _, query := range bootQueries {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return db, nil
}
