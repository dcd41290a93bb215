package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/metrics"
	"github.com/furyfist/WellNest/internal/responder"
	"github.com/furyfist/WellNest/internal/triage"
	"github.com/furyfist/WellNest/pkg/logger"
)

// Responder is the external conversational collaborator. It is only invoked
// after the crisis scan has completed and passed.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ChatHandler struct {
	engine    *triage.Engine
	responder Responder
}

func NewChatHandler(engine *triage.Engine, resp Responder) *ChatHandler {
	return &ChatHandler{engine: engine, responder: resp}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	ID       string                  `json:"id"`
	Type     string                  `json:"type"`
	Response string                  `json:"response,omitempty"`
	Crisis   *triage.CrisisSignal    `json:"crisis,omitempty"`
	Support  *triage.CrisisResources `json:"support,omitempty"`
}

// HandleMessage runs the crisis scan before anything else. A detected
// crisis short-circuits to the fixed safety payload; the responder is
// never consulted for that turn. Nothing about the turn is stored.
func (h *ChatHandler) HandleMessage(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse chat request", zap.Error(err))
		metrics.ChatMessages.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message := triage.NormalizeMessage(req.Message)
	if message == "" {
		metrics.ChatMessages.WithLabelValues("rejected").Inc()
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Message is required",
		})
	}

	turnID := uuid.New().String()

	signal := h.engine.ScanMessage(message)
	if signal.Detected {
		metrics.ChatMessages.WithLabelValues("crisis").Inc()
		metrics.CrisisDetections.WithLabelValues(string(signal.Source)).Inc()
		logger.Warn("Crisis signal in chat turn",
			zap.String("turn_id", turnID),
			zap.Int("matched_phrases", len(signal.MatchedPhrases)),
		)

		support := triage.DefaultCrisisResources()
		return c.JSON(chatResponse{
			ID:      turnID,
			Type:    "crisis",
			Crisis:  &signal,
			Support: &support,
		})
	}

	start := time.Now()
	reply, err := h.responder.Reply(c.Context(), message)
	metrics.ResponderLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		if !errors.Is(err, responder.ErrUnavailable) {
			logger.Error("Responder failed", zap.String("turn_id", turnID), zap.Error(err))
		}
		metrics.ChatMessages.WithLabelValues("fallback").Inc()
		return c.JSON(chatResponse{
			ID:       turnID,
			Type:     "fallback",
			Response: responder.FallbackReply,
		})
	}

	metrics.ChatMessages.WithLabelValues("replied").Inc()
	return c.JSON(chatResponse{
		ID:       turnID,
		Type:     "reply",
		Response: reply,
	})
}
