package app

import (
	"sort"
	"sync"
	"time"

	"quizgen-service/internal/domain"
)

// Session is the in-memory state of a live quiz being played.
type Session struct {
	id           string
	createdAt    time.Time
	now          func() time.Time
	mu           sync.RWMutex
	participants map[string]*domain.Participant
	subscribers  map[chan domain.Leaderboard]struct{}
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string) *Session {
	return NewSessionWithClock(id, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(id string, now func() time.Time) *Session {
	return &Session{
		id:           id,
		createdAt:    now(),
		now:          now,
		participants: make(map[string]*domain.Participant),
		subscribers:  make(map[chan domain.Leaderboard]struct{}),
	}
}

// IsEmpty reports whether the session has no participants.
func (s *Session) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.participants) == 0
}

func (s *Session) join(userID, displayName string) domain.Leaderboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if participant, ok := s.participants[userID]; ok {
		participant.DisplayName = displayName
		participant.LastUpdated = now
	} else {
		s.participants[userID] = &domain.Participant{
			UserID:      userID,
			DisplayName: displayName,
			Answered:    make(map[string]bool),
			LastUpdated: now,
		}
	}
	return s.broadcastLocked()
}

// answerOutcome is what applyAnswer reports back to the play service.
type answerOutcome struct {
	leaderboard domain.Leaderboard
	score       int
	answered    int
}

func (s *Session) applyAnswer(userID, questionID string, correct bool) (answerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, ok := s.participants[userID]
	if !ok {
		return answerOutcome{}, domain.ErrParticipantNotFound
	}
	if participant.Answered[questionID] {
		return answerOutcome{}, domain.ErrAlreadyAnswered
	}

	participant.Answered[questionID] = true
	if correct {
		participant.Score++
	}
	participant.LastUpdated = s.now()

	return answerOutcome{
		leaderboard: s.broadcastLocked(),
		score:       participant.Score,
		answered:    len(participant.Answered),
	}, nil
}

func (s *Session) leave(userID string) domain.Leaderboard {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.participants, userID)
	return s.broadcastLocked()
}

func (s *Session) subscribe() (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	initial := s.snapshotLocked()
	s.mu.Unlock()

	ch <- initial

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Session) broadcastLocked() domain.Leaderboard {
	lb := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- lb:
		default:
			// Slow subscriber: drop its oldest snapshot so broadcast never blocks.
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
	return lb
}

func (s *Session) snapshotLocked() domain.Leaderboard {
	entries := make([]domain.LeaderboardEntry, 0, len(s.participants))
	for _, participant := range s.participants {
		entries = append(entries, domain.LeaderboardEntry{
			UserID:      participant.UserID,
			DisplayName: participant.DisplayName,
			Score:       participant.Score,
			Answered:    len(participant.Answered),
		})
	}

	// Score desc, then whoever reached it first, then name.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		pi := s.participants[entries[i].UserID]
		pj := s.participants[entries[j].UserID]
		if pi != nil && pj != nil && !pi.LastUpdated.Equal(pj.LastUpdated) {
			return pi.LastUpdated.Before(pj.LastUpdated)
		}
		return entries[i].DisplayName < entries[j].DisplayName
	})

	return domain.Leaderboard{
		QuizID:    s.id,
		Entries:   entries,
		UpdatedAt: s.now(),
	}
}
