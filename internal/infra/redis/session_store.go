package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"quizgen-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Sessions and their broadcast fan-out stay in process; Redis only carries a
// liveness marker per quiz so other instances and operators can see which
// quizzes are being played.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) GetOrCreate(quizID string) *app.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[quizID]; ok {
		// best-effort refresh
		_ = s.client.Expire(context.Background(), sessionKey(quizID), s.ttl).Err()
		return session
	}
	session := app.NewSession(quizID)
	s.sessions[quizID] = session
	_ = s.client.Set(context.Background(), sessionKey(quizID), "1", s.ttl).Err()
	return session
}

func (s *SessionStore) Get(quizID string) (*app.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[quizID]
	return session, ok
}

func (s *SessionStore) DeleteIfEmpty(quizID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[quizID]
	if !ok || !session.IsEmpty() {
		return
	}
	delete(s.sessions, quizID)
	_ = s.client.Del(context.Background(), sessionKey(quizID)).Err()
}

// Live lists quiz IDs with a liveness marker, across all instances sharing Redis.
func (s *SessionStore) Live(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, sessionKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(sessionKey("")):])
	}
	return ids, iter.Err()
}

func sessionKey(quizID string) string {
	return "quiz:session:" + quizID
}
