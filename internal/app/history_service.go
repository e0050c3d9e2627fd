package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizgen-service/internal/domain"
)

// DefaultHistoryLimit caps history reads.
const DefaultHistoryLimit = 50

// HistoryRepository persists score records. List returns newest first.
type HistoryRepository interface {
	Save(ctx context.Context, rec domain.ScoreRecord) error
	List(ctx context.Context, category domain.QuizKind, limit int) ([]domain.ScoreRecord, error)
}

// HistoryService validates and stores score history.
type HistoryService struct {
	repo  HistoryRepository
	limit int
	now   func() time.Time
}

func NewHistoryService(repo HistoryRepository, limit int) *HistoryService {
	return NewHistoryServiceWithClock(repo, limit, time.Now)
}

// NewHistoryServiceWithClock is used by tests that need deterministic timestamps.
func NewHistoryServiceWithClock(repo HistoryRepository, limit int, now func() time.Time) *HistoryService {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{repo: repo, limit: limit, now: now}
}

// RecordScore validates rec, stamps it and persists it.
func (s *HistoryService) RecordScore(ctx context.Context, rec domain.ScoreRecord) (domain.ScoreRecord, error) {
	if !rec.Category.Valid() {
		return domain.ScoreRecord{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidScore, rec.Category)
	}
	rec.Label = strings.TrimSpace(rec.Label)
	if rec.Label == "" {
		return domain.ScoreRecord{}, fmt.Errorf("%w: label is required", domain.ErrInvalidScore)
	}
	if rec.Total <= 0 || rec.Score < 0 || rec.Score > rec.Total {
		return domain.ScoreRecord{}, fmt.Errorf("%w: score %d of %d", domain.ErrInvalidScore, rec.Score, rec.Total)
	}

	rec.ID = uuid.NewString()
	rec.Timestamp = s.now().UTC()
	if err := s.repo.Save(ctx, rec); err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("save score: %w", err)
	}
	return rec, nil
}

// History returns the newest records of a category.
func (s *HistoryService) History(ctx context.Context, category domain.QuizKind) ([]domain.ScoreRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidScore, category)
	}
	return s.repo.List(ctx, category, s.limit)
}
