package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"quiz-timer-service/internal/app"
	"quiz-timer-service/internal/domain"
)

// WSHandler lets a client play a session over a single websocket connection.
type WSHandler struct {
	service  *app.QuizService
	logger   *zap.SugaredLogger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, logger *zap.SugaredLogger) *WSHandler {
	return &WSHandler{
		service: service,
		logger:  logger,
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
	SelectedAnswer *int `json:"selectedAnswer"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type answerResult struct {
	IsCorrect   bool `json:"isCorrect"`
	Score       int  `json:"score"`
	Progress    int  `json:"progress"`
	IsCompleted bool `json:"isCompleted"`
}

// ServeWS upgrades the request and relays answers for the session named by ?sessionId=.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "missing sessionId", http.StatusBadRequest)
		return
	}
	if _, err := h.service.GetSession(r.Context(), sessionID); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	if err := h.sendState(conn, r, sessionID); err != nil {
		return
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debugw("ws read ended", "sessionId", sessionID, "error", err)
			}
			return
		}

		switch inbound.Type {
		case "answer":
			var payload answerPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.SelectedAnswer == nil {
				if h.sendError(conn, "invalid answer payload") != nil {
					return
				}
				continue
			}
			outcome, err := h.service.SubmitAnswer(r.Context(), sessionID, *payload.SelectedAnswer)
			if err != nil {
				_ = h.sendError(conn, err.Error())
				return
			}
			if err := conn.WriteJSON(outboundMessage[answerResult]{Type: "answerResult", Payload: answerResult{
				IsCorrect:   outcome.IsCorrect,
				Score:       outcome.Score,
				Progress:    outcome.Progress,
				IsCompleted: outcome.IsCompleted,
			}}); err != nil {
				h.logger.Warnw("ws write error", "sessionId", sessionID, "error", err)
				return
			}
			if err := h.sendState(conn, r, sessionID); err != nil {
				return
			}
		default:
			if h.sendError(conn, "unsupported message type") != nil {
				return
			}
		}
	}
}

// sendState pushes the current question, or the final results once the session is completed.
func (h *WSHandler) sendState(conn *websocket.Conn, r *http.Request, sessionID string) error {
	q, ok, err := h.service.CurrentQuestion(r.Context(), sessionID)
	if err != nil {
		_ = h.sendError(conn, err.Error())
		return err
	}
	if ok {
		err = conn.WriteJSON(outboundMessage[domain.Question]{Type: "question", Payload: q})
	} else {
		var results domain.Results
		results, err = h.service.FinalResults(r.Context(), sessionID)
		if err == nil {
			err = conn.WriteJSON(outboundMessage[domain.Results]{Type: "completed", Payload: results})
		}
	}
	if err != nil {
		h.logger.Warnw("ws write error", "sessionId", sessionID, "error", err)
	}
	return err
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) error {
	return conn.WriteJSON(outboundMessage[errorResponse]{Type: "error", Payload: errorResponse{Error: message}})
}
