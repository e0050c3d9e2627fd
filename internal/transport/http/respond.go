package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"quizgen-service/internal/domain"
	"quizgen-service/internal/extract"
)

// busyMessage is shown to end users whenever the upstream generator fails.
const busyMessage = "the AI service is busy, please try again later"

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto HTTP statuses.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrInvalidScore):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrQuizNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrGenerationUnavailable):
		status, message = http.StatusServiceUnavailable, busyMessage
	case errors.Is(err, extract.ErrParse), errors.Is(err, domain.ErrInvalidQuestionSet):
		status, message = http.StatusBadGateway, err.Error()
	}
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
