package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quizgen-service/internal/app"
	"quizgen-service/internal/domain"
)

// defaultWriteWait bounds a single write to a peer.
const defaultWriteWait = 10 * time.Second

type WSHandler struct {
	service   *app.PlayService
	log       *zap.Logger
	upgrader  websocket.Upgrader
	writeWait time.Duration
}

func NewWSHandler(service *app.PlayService, logger *zap.Logger) *WSHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WSHandler{
		service:   service,
		log:       logger,
		writeWait: defaultWriteWait,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

func errorMessage(err error) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
}

// ServeWS upgrades HTTP requests to websockets and wires them into the live play use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	quizID := r.URL.Query().Get("quizId")
	userID := r.URL.Query().Get("userId")
	displayName := r.URL.Query().Get("name")
	if quizID == "" || userID == "" || displayName == "" {
		http.Error(w, "missing quizId, userId, or name", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.log.With(zap.String("quizId", quizID), zap.String("userId", userID))

	joined, err := h.service.Join(r.Context(), quizID, userID, displayName)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}

	updates, cancel, err := h.service.Subscribe(r.Context(), quizID)
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	defer cancel()
	defer h.service.Leave(r.Context(), quizID, userID)

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer goroutine: gorilla connections allow one concurrent writer.
	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(h.writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Debug("ws write error", zap.Error(err))
				// Unblocks ReadJSON so the handler can leave the session.
				_ = conn.Close()
				return
			}
		}
	}()

	emit := func(msg outboundMessage[any]) bool {
		select {
		case send <- msg:
			return true
		case <-writerDone:
			return false
		}
	}

	go func() {
		defer close(updatesDone)
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: "leaderboard", Payload: update}:
				case <-closeSignals:
					return
				case <-writerDone:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	emit(outboundMessage[any]{Type: "joined", Payload: joined})

read:
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		var out []outboundMessage[any]
		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				out = append(out, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid answer payload"}})
				break
			}
			result, lb, err := h.service.SubmitAnswer(r.Context(), quizID, userID, domain.AnswerSubmission{
				QuestionID: payload.QuestionID,
				Answer:     payload.Answer,
			})
			if err != nil {
				out = append(out, errorMessage(err))
				break
			}
			out = append(out,
				outboundMessage[any]{Type: "answerResult", Payload: result},
				outboundMessage[any]{Type: "leaderboard", Payload: lb})
		default:
			out = append(out, outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}})
		}
		for _, msg := range out {
			if !emit(msg) {
				break read
			}
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}
