package memory

import (
	"context"
	"sort"
	"sync"

	"quizgen-service/internal/domain"
)

// HistoryStore is an in-memory app.HistoryRepository.
type HistoryStore struct {
	mu      sync.RWMutex
	records []domain.ScoreRecord
}

func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

func (s *HistoryStore) Save(_ context.Context, rec domain.ScoreRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *HistoryStore) List(_ context.Context, category domain.QuizKind, limit int) ([]domain.ScoreRecord, error) {
	s.mu.RLock()
	out := make([]domain.ScoreRecord, 0)
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].Category == category {
			out = append(out, s.records[i])
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
