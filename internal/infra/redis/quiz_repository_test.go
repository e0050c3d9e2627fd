package redis

import (
	"context"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap/zaptest"

	"quizgen-service/internal/domain"
	"quizgen-service/internal/infra/memory"
)

func TestQuizRepositoryCachesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := newClient(mr)

	store := &countingStore{QuizStore: memory.NewQuizStore(map[string]domain.Quiz{
		"quiz-1": sampleQuiz(),
	})}
	repo := NewQuizRepository(client, store, time.Minute, zaptest.NewLogger(t))

	got, err := repo.GetQuiz(context.Background(), "quiz-1")
	if err != nil {
		t.Fatalf("get quiz: %v", err)
	}
	if store.loads() != 1 {
		t.Fatalf("expected store called once, got %d", store.loads())
	}
	if !mr.Exists("quiz:quiz-1") {
		t.Fatalf("expected quiz cached in redis")
	}
	if ttl := mr.TTL("quiz:quiz-1"); ttl < time.Minute || ttl > time.Minute+6*time.Second {
		t.Fatalf("expected jittered ttl around a minute, got %v", ttl)
	}

	// Second call should hit cache, store not incremented.
	again, _ := repo.GetQuiz(context.Background(), "quiz-1")
	if store.loads() != 1 {
		t.Fatalf("expected cache hit, store calls=%d", store.loads())
	}
	if again.Questions[0].Answer != got.Questions[0].Answer || again.Topic != "Arithmetic" {
		t.Fatalf("cached quiz differs: %+v", again)
	}
}

func TestQuizRepositorySaveWritesThrough(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := &countingStore{QuizStore: memory.NewQuizStore(nil)}
	repo := NewQuizRepository(newClient(mr), store, time.Minute, nil)

	if err := repo.SaveQuiz(context.Background(), sampleQuiz()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.QuizStore.LoadQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("expected quiz in store: %v", err)
	}
	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if store.loads() != 0 {
		t.Fatalf("expected read served from redis, store calls=%d", store.loads())
	}
}

func TestQuizRepositoryIgnoresCorruptEntry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	_ = mr.Set("quiz:quiz-1", "{not json")
	store := &countingStore{QuizStore: memory.NewQuizStore(map[string]domain.Quiz{"quiz-1": sampleQuiz()})}
	repo := NewQuizRepository(newClient(mr), store, time.Minute, zaptest.NewLogger(t))

	if _, err := repo.GetQuiz(context.Background(), "quiz-1"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if store.loads() != 1 {
		t.Fatalf("expected fallback to store, got %d", store.loads())
	}
}

type countingStore struct {
	*memory.QuizStore
	mu    sync.Mutex
	calls int
}

func (s *countingStore) LoadQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.QuizStore.LoadQuiz(ctx, quizID)
}

func (s *countingStore) loads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func sampleQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    "quiz-1",
		Kind:  domain.KindTopic,
		Topic: "Arithmetic",
		Questions: []domain.Question{
			{
				ID: "q1",
				MCQRecord: domain.MCQRecord{
					Question: "What is 2 + 2?",
					Options:  []string{"3", "4", "5", "6"},
					Answer:   "4",
				},
			},
		},
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
