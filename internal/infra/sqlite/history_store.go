// Package sqlite provides an embedded score history store for single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"quizgen-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS score_history (
    id          TEXT PRIMARY KEY,
    category    TEXT NOT NULL,
    label       TEXT NOT NULL,
    difficulty  TEXT NOT NULL DEFAULT '',
    score       INTEGER NOT NULL,
    total       INTEGER NOT NULL,
    recorded_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS score_history_category_recorded_at_idx
    ON score_history (category, recorded_at DESC);
`

// HistoryStore persists score records in a SQLite file.
type HistoryStore struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*HistoryStore, error) {
	if path == "" {
		path = "quizgen.db"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows one writer at a time.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

func (s *HistoryStore) Close() error {
	return s.db.Close()
}

func (s *HistoryStore) Save(ctx context.Context, rec domain.ScoreRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score_history (id, category, label, difficulty, score, total, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Category), rec.Label, rec.Difficulty, rec.Score, rec.Total, rec.Timestamp.UnixNano())
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

func (s *HistoryStore) List(ctx context.Context, category domain.QuizKind, limit int) ([]domain.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, label, difficulty, score, total, recorded_at
		 FROM score_history WHERE category = ? ORDER BY recorded_at DESC LIMIT ?`,
		string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScoreRecord, 0)
	for rows.Next() {
		var (
			rec      domain.ScoreRecord
			cat      string
			recorded int64
		)
		if err := rows.Scan(&rec.ID, &cat, &rec.Label, &rec.Difficulty, &rec.Score, &rec.Total, &recorded); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		rec.Category = domain.QuizKind(cat)
		rec.Timestamp = time.Unix(0, recorded).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
