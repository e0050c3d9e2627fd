package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"quizgen-service/internal/app"
	"quizgen-service/internal/domain"
)

type historyHandler struct {
	service *app.HistoryService
	log     *zap.Logger
}

type scorePayload struct {
	Label      string `json:"label"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
}

func (h *historyHandler) record(w http.ResponseWriter, r *http.Request) {
	var payload scorePayload
	if err := decodeBody(w, r, &payload); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: %v", domain.ErrInvalidScore, err))
		return
	}
	rec, err := h.service.RecordScore(r.Context(), domain.ScoreRecord{
		Category:   domain.QuizKind(chi.URLParam(r, "category")),
		Label:      payload.Label,
		Difficulty: payload.Difficulty,
		Score:      payload.Score,
		Total:      payload.Total,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *historyHandler) list(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.History(r.Context(), domain.QuizKind(chi.URLParam(r, "category")))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
