package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"quizgen-service/internal/app"
)

// RouterConfig lists what the router serves. Play may be nil to disable /ws.
type RouterConfig struct {
	Quizzes        *app.QuizService
	History        *app.HistoryService
	Play           *app.PlayService
	Logger         *zap.Logger
	AllowedOrigins []string
	// RequestTimeout bounds REST handlers. Generation calls can be slow.
	RequestTimeout time.Duration
}

// NewRouter assembles the REST API and the live play socket.
func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger(logger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	if cfg.Play != nil {
		// The socket outlives any request timeout.
		r.Get("/ws", NewWSHandler(cfg.Play, logger).ServeWS)
	}

	quizzes := &quizHandler{service: cfg.Quizzes, log: logger}
	history := &historyHandler{service: cfg.History, log: logger}
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(timeout))
		api.Route("/quizzes", func(qr chi.Router) {
			qr.Post("/topic", quizzes.createTopic)
			qr.Post("/exam", quizzes.createExam)
			qr.Get("/{quizID}", quizzes.get)
		})
		api.Route("/history/{category}", func(hr chi.Router) {
			hr.Get("/", history.list)
			hr.Post("/", history.record)
		})
	})
	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("requestId", middleware.GetReqID(r.Context())))
		})
	}
}
