// Package validation enforces transport-level request limits. It inspects
// shape, never content: a chat message must always reach the crisis scan,
// so no keyword or pattern filter is allowed to reject it here.
package validation

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Config struct {
	MaxMessageLength    int
	AllowedContentTypes []string
	Logger              *zap.Logger
}

func Middleware(cfg Config) fiber.Handler {
	if cfg.MaxMessageLength == 0 {
		cfg.MaxMessageLength = 5000
	}
	if len(cfg.AllowedContentTypes) == 0 {
		cfg.AllowedContentTypes = []string{"application/json"}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodPost || c.Method() == fiber.MethodPut {
			contentType := c.Get("Content-Type")
			if contentType != "" && !allowed(contentType, cfg.AllowedContentTypes) {
				return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
					"error": "Unsupported content type",
				})
			}
		}

		if strings.HasSuffix(c.Path(), "/chat/message") {
			var req struct {
				Message string `json:"message"`
			}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid JSON format",
				})
			}
			if strings.TrimSpace(req.Message) == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Message is required",
				})
			}
			if len(req.Message) > cfg.MaxMessageLength {
				cfg.Logger.Warn("Oversized chat message rejected",
					zap.Int("length", len(req.Message)),
				)
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Message exceeds maximum length",
				})
			}
		}

		return c.Next()
	}
}

func allowed(contentType string, allowedTypes []string) bool {
	for _, t := range allowedTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
