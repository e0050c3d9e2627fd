package memory

import (
	"context"
	"sync"

	"quizgen-service/internal/domain"
)

// QuizStore keeps quizzes in a map. Used when no database is configured, and in tests.
type QuizStore struct {
	mu      sync.RWMutex
	quizzes map[string]domain.Quiz
}

// NewQuizStore returns a store seeded with quizzes (which may be nil).
func NewQuizStore(seed map[string]domain.Quiz) *QuizStore {
	quizzes := make(map[string]domain.Quiz, len(seed))
	for id, q := range seed {
		quizzes[id] = q
	}
	return &QuizStore{quizzes: quizzes}
}

func (s *QuizStore) LoadQuiz(_ context.Context, quizID string) (domain.Quiz, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if quiz, ok := s.quizzes[quizID]; ok {
		return quiz, nil
	}
	return domain.Quiz{}, domain.ErrQuizNotFound
}

func (s *QuizStore) SaveQuiz(_ context.Context, quiz domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[quiz.ID] = quiz
	return nil
}
