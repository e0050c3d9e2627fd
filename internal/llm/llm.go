// Package llm adapts generative-AI SDKs to the single call the service needs:
// prompt in, raw text out.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"quizgen-service/internal/config"
)

// Backend is a text generator that may hold network resources.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

const systemInstruction = "You are an expert quiz author. You write accurate multiple choice questions and always answer with the exact JSON format requested."

// New builds the backend named by cfg.Provider, wrapped with logging.
func New(ctx context.Context, cfg config.LLM, logger *zap.Logger) (Backend, error) {
	var (
		backend Backend
		err     error
	)
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "":
		backend, err = NewGemini(ctx, cfg.APIKey, cfg.Model)
	case "openai":
		backend, err = NewOpenAI(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "static":
		backend = NewStatic(cfg.StaticReply)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return WithLogging(backend, logger), nil
}

// logged decorates a Backend with request/response logging.
type logged struct {
	Backend
	log *zap.Logger
}

// WithLogging logs every call: sizes and latency at info, full bodies at debug.
func WithLogging(b Backend, logger *zap.Logger) Backend {
	if logger == nil {
		return b
	}
	return &logged{Backend: b, log: logger.Named("llm")}
}

func (l *logged) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	l.log.Debug("llm request", zap.String("prompt", prompt))

	out, err := l.Backend.Generate(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		l.log.Warn("llm request failed", zap.Duration("elapsed", elapsed), zap.Error(err))
		return "", err
	}

	l.log.Info("llm response",
		zap.Int("promptBytes", len(prompt)),
		zap.Int("responseBytes", len(out)),
		zap.Duration("elapsed", elapsed))
	l.log.Debug("llm response body", zap.String("response", out))
	return out, nil
}
