package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"quizgen-service/internal/app"
	"quizgen-service/internal/domain"
	"quizgen-service/internal/infra/memory"
	"quizgen-service/internal/llm"
)

type fixedGenerator struct {
	reply string
	err   error
}

func (g fixedGenerator) Generate(context.Context, string) (string, error) {
	return g.reply, g.err
}

func newTestRouter(t *testing.T, gen app.Generator) http.Handler {
	repo := memory.NewQuizRepository(memory.NewQuizStore(nil), time.Minute)
	logger := zaptest.NewLogger(t)
	history := app.NewHistoryService(memory.NewHistoryStore(), 0)
	return NewRouter(RouterConfig{
		Quizzes:        app.NewQuizService(gen, repo, app.QuizOptions{Logger: logger}),
		History:        history,
		Play:           app.NewPlayService(memory.NewSessionStore(), repo, history, logger),
		Logger:         logger,
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCreateTopicQuizAndFetch(t *testing.T) {
	h := newTestRouter(t, llm.NewStatic(""))

	rec := do(t, h, http.MethodPost, "/api/quizzes/topic", `{"topic":"Science","difficulty":"easy","numQuestions":3}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var quiz domain.Quiz
	if err := json.Unmarshal(rec.Body.Bytes(), &quiz); err != nil {
		t.Fatalf("decode quiz: %v", err)
	}
	if len(quiz.Questions) != 3 || quiz.Questions[0].Answer != "Mars" {
		t.Fatalf("unexpected quiz %+v", quiz)
	}
	if quiz.Questions[2].Explanation == "" {
		t.Fatalf("expected backfilled explanation")
	}

	rec = do(t, h, http.MethodGet, "/api/quizzes/"+quiz.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on fetch, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/quizzes/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCreateQuizErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		gen    app.Generator
		path   string
		body   string
		status int
		want   string
	}{
		{"bad body", llm.NewStatic(""), "/api/quizzes/topic", `{"topic":`, http.StatusBadRequest, "invalid quiz request"},
		{"unknown field", llm.NewStatic(""), "/api/quizzes/topic", `{"subject":"x","numQuestions":1}`, http.StatusBadRequest, "invalid quiz request"},
		{"too many", llm.NewStatic(""), "/api/quizzes/topic", `{"topic":"x","numQuestions":500}`, http.StatusBadRequest, "between 1 and"},
		{"upstream down", fixedGenerator{err: errors.New("quota")}, "/api/quizzes/topic", `{"topic":"x","numQuestions":1}`, http.StatusServiceUnavailable, "try again later"},
		{"unparseable reply", fixedGenerator{reply: "sorry"}, "/api/quizzes/topic", `{"topic":"x","numQuestions":1}`, http.StatusBadGateway, "no JSON array found"},
		{"wrong option count", llm.NewStatic(""), "/api/quizzes/exam", `{"exam":"GRE","numQuestions":3}`, http.StatusBadGateway, "expected 5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, newTestRouter(t, tc.gen), http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body)
			}
			var body errorBody
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if !strings.Contains(body.Error, tc.want) {
				t.Fatalf("expected %q in error, got %q", tc.want, body.Error)
			}
		})
	}
}

func TestHistoryEndpoints(t *testing.T) {
	h := newTestRouter(t, llm.NewStatic(""))

	rec := do(t, h, http.MethodPost, "/api/history/exam", `{"label":"GRE","score":4,"total":5}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}
	rec = do(t, h, http.MethodPost, "/api/history/exam", `{"label":"GRE","score":6,"total":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for impossible score, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/history/poetry", `{"label":"x","score":1,"total":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/history/exam", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var records []domain.ScoreRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &records); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(records) != 1 || records[0].Label != "GRE" || records[0].Category != domain.KindExam {
		t.Fatalf("unexpected history %+v", records)
	}
}

func TestHealthAndCORS(t *testing.T) {
	h := newTestRouter(t, llm.NewStatic(""))

	rec := do(t, h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected health response %d %q", rec.Code, rec.Body)
	}

	req := httptest.NewRequest(http.MethodOptions, "/api/quizzes/topic", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	preflight := httptest.NewRecorder()
	h.ServeHTTP(preflight, req)
	if got := preflight.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected CORS allow origin, got %q", got)
	}
}
