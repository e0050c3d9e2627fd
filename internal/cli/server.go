package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizgen-service/internal/app"
	"quizgen-service/internal/config"
	"quizgen-service/internal/infra/memory"
	"quizgen-service/internal/infra/postgres"
	redisinfra "quizgen-service/internal/infra/redis"
	"quizgen-service/internal/infra/sqlite"
	"quizgen-service/internal/llm"
	transport "quizgen-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrations(ctx, cfg, logger); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	backend, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		return err
	}
	defer backend.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var store memory.QuizLoader = memory.NewQuizStore(nil)
	if pool != nil {
		store = postgres.NewQuizStore(pool)
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 30*time.Minute)
	var quizRepo app.QuizRepository
	if redisClient != nil {
		quizRepo = redisinfra.NewQuizRepository(redisClient, store, quizTTL, logger)
	} else {
		quizRepo = memory.NewQuizRepository(store, quizTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	historyRepo, closeHistory, err := openHistory(cfg, pool)
	if err != nil {
		return err
	}
	defer closeHistory()

	history := app.NewHistoryService(historyRepo, config.IntOr(cfg.History.Limit, app.DefaultHistoryLimit))
	quizzes := app.NewQuizService(backend, quizRepo, app.QuizOptions{
		MaxQuestions: config.IntOr(cfg.Quiz.MaxQuestions, app.DefaultMaxQuestions),
		Timeout:      config.TTLDuration(cfg.LLM.Timeout, app.DefaultGenerationTimeout),
		Logger:       logger,
	})
	play := app.NewPlayService(sessions, quizRepo, history, logger)

	router := transport.NewRouter(transport.RouterConfig{
		Quizzes:        quizzes,
		History:        history,
		Play:           play,
		Logger:         logger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// Generation requests wait on the model.
		WriteTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("starting quiz service",
			zap.String("addr", server.Addr),
			zap.String("llm", cfg.LLM.Provider),
			zap.String("history", historyDriver(cfg)))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func historyDriver(cfg config.Config) string {
	driver := strings.ToLower(cfg.History.Driver)
	if driver == "" {
		if cfg.Postgres.URL != "" {
			return "postgres"
		}
		return "memory"
	}
	return driver
}

func openHistory(cfg config.Config, pool *pgxpool.Pool) (app.HistoryRepository, func(), error) {
	noop := func() {}
	switch historyDriver(cfg) {
	case "memory":
		return memory.NewHistoryStore(), noop, nil
	case "postgres":
		if pool == nil {
			return nil, noop, fmt.Errorf("history driver postgres needs postgres.url")
		}
		return postgres.NewHistoryStore(pool), noop, nil
	case "sqlite":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, noop, fmt.Errorf("unknown history driver %q", cfg.History.Driver)
	}
}
