package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"quizgen-service/internal/app"
	"quizgen-service/internal/config"
	"quizgen-service/internal/domain"
	"quizgen-service/internal/infra/memory"
	"quizgen-service/internal/llm"
)

// NewGenerateCmd runs a single generation against the configured backend and prints the quiz.
func NewGenerateCmd(configPath *string) *cobra.Command {
	var (
		exam       string
		difficulty string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "generate [topic]",
		Short: "Generate one quiz and print it as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (exam == "") {
				return fmt.Errorf("give either a topic argument or --exam")
			}
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			backend, err := llm.New(cmd.Context(), cfg.LLM, logger)
			if err != nil {
				return err
			}
			defer backend.Close()

			repo := memory.NewQuizRepository(memory.NewQuizStore(nil), time.Minute)
			service := app.NewQuizService(backend, repo, app.QuizOptions{
				MaxQuestions: config.IntOr(cfg.Quiz.MaxQuestions, app.DefaultMaxQuestions),
				Timeout:      config.TTLDuration(cfg.LLM.Timeout, app.DefaultGenerationTimeout),
				Logger:       logger,
			})

			var quiz domain.Quiz
			if exam != "" {
				quiz, err = service.GenerateExamQuiz(cmd.Context(), app.ExamRequest{Exam: exam, Difficulty: difficulty, NumQuestions: count})
			} else {
				quiz, err = service.GenerateTopicQuiz(cmd.Context(), app.TopicRequest{Topic: args[0], Difficulty: difficulty, NumQuestions: count})
			}
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(quiz)
		},
	}
	cmd.Flags().StringVar(&exam, "exam", "", "generate exam-style questions for this exam instead of a topic")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard")
	cmd.Flags().IntVarP(&count, "count", "n", 5, "number of questions")
	return cmd
}
