package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"quizgen-service/internal/app"
	"quizgen-service/internal/domain"
)

type quizHandler struct {
	service *app.QuizService
	log     *zap.Logger
}

func (h *quizHandler) createTopic(w http.ResponseWriter, r *http.Request) {
	var req app.TopicRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}
	quiz, err := h.service.GenerateTopicQuiz(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *quizHandler) createExam(w http.ResponseWriter, r *http.Request) {
	var req app.ExamRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err))
		return
	}
	quiz, err := h.service.GenerateExamQuiz(r.Context(), req)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, quiz)
}

func (h *quizHandler) get(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.service.GetQuiz(r.Context(), chi.URLParam(r, "quizID"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}
