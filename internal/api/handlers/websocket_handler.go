package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/metrics"
	"github.com/furyfist/WellNest/internal/responder"
	"github.com/furyfist/WellNest/internal/triage"
	"github.com/furyfist/WellNest/pkg/logger"
)

type WebSocketHandler struct {
	engine    *triage.Engine
	responder Responder
}

func NewWebSocketHandler(engine *triage.Engine, resp Responder) *WebSocketHandler {
	return &WebSocketHandler{engine: engine, responder: resp}
}

type wsInbound struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// HandleConnection serves one chat conversation. Message history lives only
// in the socket's lifetime on the client side; the server keeps nothing.
func (h *WebSocketHandler) HandleConnection(c *websocket.Conn) {
	logger.Info("WebSocket connection established")
	defer func() {
		c.Close()
		logger.Info("WebSocket connection closed")
	}()

	for {
		var msg wsInbound
		if err := c.ReadJSON(&msg); err != nil {
			logger.Debug("WebSocket read ended", zap.Error(err))
			return
		}
		if msg.Type != "message" {
			continue
		}

		if err := h.handleTurn(c, msg.Message); err != nil {
			logger.Error("Failed to handle chat turn", zap.Error(err))
			h.send(c, map[string]any{"type": "error", "error": "Failed to process message"})
		}
	}
}

// handleTurn mirrors the HTTP chat endpoint: the crisis scan completes
// before any token of a reply is released.
func (h *WebSocketHandler) handleTurn(c *websocket.Conn, raw string) error {
	message := triage.NormalizeMessage(raw)
	if message == "" {
		return h.send(c, map[string]any{"type": "error", "error": "Message is required"})
	}

	turnID := uuid.New().String()

	signal := h.engine.ScanMessage(message)
	if signal.Detected {
		metrics.ChatMessages.WithLabelValues("crisis").Inc()
		metrics.CrisisDetections.WithLabelValues(string(signal.Source)).Inc()
		logger.Warn("Crisis signal in chat turn", zap.String("turn_id", turnID))

		return h.send(c, map[string]any{
			"type":    "crisis",
			"turn_id": turnID,
			"crisis":  signal,
			"support": triage.DefaultCrisisResources(),
		})
	}

	reply, err := h.responder.Reply(context.Background(), message)
	if err != nil {
		metrics.ChatMessages.WithLabelValues("fallback").Inc()
		return h.send(c, map[string]any{
			"type":     "complete",
			"turn_id":  turnID,
			"response": responder.FallbackReply,
			"fallback": true,
		})
	}

	metrics.ChatMessages.WithLabelValues("replied").Inc()

	for _, word := range strings.Fields(reply) {
		if err := h.send(c, map[string]any{"type": "chunk", "content": word + " "}); err != nil {
			return err
		}
	}

	return h.send(c, map[string]any{
		"type":    "complete",
		"turn_id": turnID,
	})
}

func (h *WebSocketHandler) send(c *websocket.Conn, payload map[string]any) error {
	return c.WriteJSON(payload)
}
