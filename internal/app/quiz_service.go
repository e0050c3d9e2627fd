package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quizgen-service/internal/domain"
	"quizgen-service/internal/extract"
	"quizgen-service/internal/prompt"
)

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// QuizRepository stores generated quizzes (through a cache and backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
	SaveQuiz(ctx context.Context, quiz domain.Quiz) error
}

// TopicRequest asks for a quiz on a free-form topic.
type TopicRequest struct {
	Topic        string `json:"topic"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// ExamRequest asks for practice questions in the style of a named exam.
type ExamRequest struct {
	Exam         string `json:"exam"`
	Difficulty   string `json:"difficulty"`
	NumQuestions int    `json:"numQuestions"`
}

// QuizOptions tunes QuizService. Zero values fall back to defaults.
type QuizOptions struct {
	MaxQuestions int
	Timeout      time.Duration
	Logger       *zap.Logger
	Now          func() time.Time
}

const (
	DefaultMaxQuestions      = 20
	DefaultGenerationTimeout = 60 * time.Second
)

// QuizService turns quiz requests into validated, stored quizzes.
type QuizService struct {
	gen          Generator
	quizzes      QuizRepository
	maxQuestions int
	timeout      time.Duration
	log          *zap.Logger
	now          func() time.Time
}

func NewQuizService(gen Generator, quizzes QuizRepository, opts QuizOptions) *QuizService {
	s := &QuizService{
		gen:          gen,
		quizzes:      quizzes,
		maxQuestions: opts.MaxQuestions,
		timeout:      opts.Timeout,
		log:          opts.Logger,
		now:          opts.Now,
	}
	if s.maxQuestions <= 0 {
		s.maxQuestions = DefaultMaxQuestions
	}
	if s.timeout <= 0 {
		s.timeout = DefaultGenerationTimeout
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// GenerateTopicQuiz generates a four-option quiz about req.Topic.
func (s *QuizService) GenerateTopicQuiz(ctx context.Context, req TopicRequest) (domain.Quiz, error) {
	if err := s.validate(req.Topic, req.NumQuestions); err != nil {
		return domain.Quiz{}, err
	}
	quiz := domain.Quiz{
		Kind:       domain.KindTopic,
		Topic:      strings.TrimSpace(req.Topic),
		Difficulty: req.Difficulty,
	}
	return s.generate(ctx, quiz, prompt.Topic(quiz.Topic, req.Difficulty, req.NumQuestions))
}

// GenerateExamQuiz generates a five-option quiz styled after req.Exam.
func (s *QuizService) GenerateExamQuiz(ctx context.Context, req ExamRequest) (domain.Quiz, error) {
	if err := s.validate(req.Exam, req.NumQuestions); err != nil {
		return domain.Quiz{}, err
	}
	quiz := domain.Quiz{
		Kind:       domain.KindExam,
		Exam:       strings.TrimSpace(req.Exam),
		Difficulty: req.Difficulty,
	}
	return s.generate(ctx, quiz, prompt.Exam(quiz.Exam, req.Difficulty, req.NumQuestions))
}

// GetQuiz returns a previously generated quiz.
func (s *QuizService) GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error) {
	return s.quizzes.GetQuiz(ctx, quizID)
}

func (s *QuizService) validate(subject string, n int) error {
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("%w: subject is required", domain.ErrInvalidRequest)
	}
	if n < 1 || n > s.maxQuestions {
		return fmt.Errorf("%w: number of questions must be between 1 and %d", domain.ErrInvalidRequest, s.maxQuestions)
	}
	return nil
}

func (s *QuizService) generate(ctx context.Context, quiz domain.Quiz, p string) (domain.Quiz, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	raw, err := s.gen.Generate(genCtx, p)
	cancel()
	if err != nil {
		s.log.Warn("generation failed", zap.String("kind", string(quiz.Kind)), zap.Error(err))
		return domain.Quiz{}, fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}

	records, err := extract.Extract(raw)
	if err != nil {
		s.log.Warn("model reply rejected", zap.String("kind", string(quiz.Kind)), zap.Error(err))
		return domain.Quiz{}, err
	}
	if len(records) == 0 {
		return domain.Quiz{}, fmt.Errorf("%w: reply contained no questions", domain.ErrInvalidQuestionSet)
	}

	want := domain.OptionCount(quiz.Kind)
	quiz.Questions = make([]domain.Question, 0, len(records))
	for i, rec := range records {
		if len(rec.Options) != want {
			return domain.Quiz{}, fmt.Errorf("%w: question %d has %d options, expected %d",
				domain.ErrInvalidQuestionSet, i, len(rec.Options), want)
		}
		if strings.TrimSpace(rec.Explanation) == "" {
			rec.Explanation = fmt.Sprintf("The correct answer is %q.", rec.Answer)
		}
		quiz.Questions = append(quiz.Questions, domain.Question{
			ID:        fmt.Sprintf("q%d", i+1),
			MCQRecord: rec,
		})
	}

	quiz.ID = uuid.NewString()
	quiz.CreatedAt = s.now().UTC()
	if err := s.quizzes.SaveQuiz(ctx, quiz); err != nil {
		return domain.Quiz{}, fmt.Errorf("save quiz: %w", err)
	}
	s.log.Info("quiz generated",
		zap.String("quizId", quiz.ID),
		zap.String("kind", string(quiz.Kind)),
		zap.String("label", quiz.Label()),
		zap.Int("questions", len(quiz.Questions)))
	return quiz, nil
}
