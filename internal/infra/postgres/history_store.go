package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"quizgen-service/internal/domain"
)

// HistoryStore keeps score records as JSONB documents, indexed by category and time.
type HistoryStore struct {
	pool *pgxpool.Pool
}

func NewHistoryStore(pool *pgxpool.Pool) *HistoryStore {
	return &HistoryStore{pool: pool}
}

func (s *HistoryStore) Save(ctx context.Context, rec domain.ScoreRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal score: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO score_history (id, category, data, recorded_at) VALUES ($1, $2, $3::jsonb, $4)`,
		rec.ID, string(rec.Category), string(data), rec.Timestamp)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	return nil
}

func (s *HistoryStore) List(ctx context.Context, category domain.QuizKind, limit int) ([]domain.ScoreRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM score_history WHERE category=$1 ORDER BY recorded_at DESC LIMIT $2`,
		string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ScoreRecord, 0, limit)
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		var rec domain.ScoreRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal score: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
