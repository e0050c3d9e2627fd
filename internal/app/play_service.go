package app

import (
	"context"

	"go.uber.org/zap"

	"quizgen-service/internal/domain"
)

// SessionRepository abstracts how live sessions are stored (in-memory, Redis, etc).
type SessionRepository interface {
	GetOrCreate(quizID string) *Session
	Get(quizID string) (*Session, bool)
	DeleteIfEmpty(quizID string)
}

// ScoreRecorder receives the final score of a participant who answered every question.
type ScoreRecorder interface {
	RecordScore(ctx context.Context, rec domain.ScoreRecord) (domain.ScoreRecord, error)
}

// PlayService runs live sessions over generated quizzes.
type PlayService struct {
	sessions SessionRepository
	quizzes  QuizRepository
	scores   ScoreRecorder
	log      *zap.Logger
}

// NewPlayService wires the live play use cases. scores may be nil, in which
// case finished games are not written to history.
func NewPlayService(sessions SessionRepository, quizzes QuizRepository, scores ScoreRecorder, logger *zap.Logger) *PlayService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlayService{sessions: sessions, quizzes: quizzes, scores: scores, log: logger}
}

// Join registers or refreshes a participant in a quiz session.
func (s *PlayService) Join(ctx context.Context, quizID, userID, displayName string) (domain.Leaderboard, error) {
	// Users cannot join unknown quizzes.
	if _, err := s.quizzes.GetQuiz(ctx, quizID); err != nil {
		return domain.Leaderboard{}, err
	}

	session := s.sessions.GetOrCreate(quizID)
	return session.join(userID, displayName), nil
}

// SubmitAnswer scores one answer and updates the leaderboard.
func (s *PlayService) SubmitAnswer(ctx context.Context, quizID, userID string, submission domain.AnswerSubmission) (domain.AnswerResult, domain.Leaderboard, error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return domain.AnswerResult{}, domain.Leaderboard{}, domain.ErrSessionNotFound
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return domain.AnswerResult{}, domain.Leaderboard{}, err
	}

	question, err := findQuestion(quiz, submission)
	if err != nil {
		return domain.AnswerResult{}, domain.Leaderboard{}, err
	}

	correct := submission.Answer == question.Answer
	outcome, err := session.applyAnswer(userID, question.ID, correct)
	if err != nil {
		return domain.AnswerResult{}, domain.Leaderboard{}, err
	}

	result := domain.AnswerResult{
		QuestionID:    question.ID,
		Correct:       correct,
		CorrectAnswer: question.Answer,
		TotalScore:    outcome.score,
		Finished:      outcome.answered == len(quiz.Questions),
	}
	if correct {
		result.Awarded = 1
	}
	if result.Finished {
		s.recordFinal(ctx, quiz, userID, outcome.score)
	}
	return result, outcome.leaderboard, nil
}

// Subscribe returns a channel that receives leaderboard updates for a quiz.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *PlayService) Subscribe(_ context.Context, quizID string) (<-chan domain.Leaderboard, func(), error) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return nil, nil, domain.ErrSessionNotFound
	}
	ch, cancel := session.subscribe()
	return ch, cancel, nil
}

// Leave removes a participant from the session and drops the session if empty.
func (s *PlayService) Leave(_ context.Context, quizID, userID string) {
	session, ok := s.sessions.Get(quizID)
	if !ok {
		return
	}
	session.leave(userID)
	if session.IsEmpty() {
		s.sessions.DeleteIfEmpty(quizID)
	}
}

func (s *PlayService) recordFinal(ctx context.Context, quiz domain.Quiz, userID string, score int) {
	if s.scores == nil {
		return
	}
	_, err := s.scores.RecordScore(ctx, domain.ScoreRecord{
		Category:   quiz.Kind,
		Label:      quiz.Label(),
		Difficulty: quiz.Difficulty,
		Score:      score,
		Total:      len(quiz.Questions),
	})
	if err != nil {
		s.log.Warn("record final score failed",
			zap.String("quizId", quiz.ID), zap.String("userId", userID), zap.Error(err))
	}
}

func findQuestion(quiz domain.Quiz, submission domain.AnswerSubmission) (domain.Question, error) {
	for _, q := range quiz.Questions {
		if q.ID != submission.QuestionID {
			continue
		}
		if !q.HasOption(submission.Answer) {
			return domain.Question{}, domain.ErrOptionNotFound
		}
		return q, nil
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}
