package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/metrics"
	"github.com/furyfist/WellNest/internal/triage"
	"github.com/furyfist/WellNest/pkg/logger"
)

type AssessmentHandler struct {
	engine *triage.Engine
}

func NewAssessmentHandler(engine *triage.Engine) *AssessmentHandler {
	return &AssessmentHandler{engine: engine}
}

type assessmentResponse struct {
	ID       string               `json:"id"`
	Result   *triage.TriageResult `json:"result,omitempty"`
	Warnings []triage.FieldError  `json:"warnings,omitempty"`
	Errors   []triage.FieldError  `json:"errors,omitempty"`
}

// HandleSubmit accepts the whole assessment in one payload and returns the
// triage result. On validation failure every offending field is reported at
// once; if the free-text notes carried a crisis phrase the escalation is
// returned alongside the errors, never suppressed by them.
func (h *AssessmentHandler) HandleSubmit(c *fiber.Ctx) error {
	var raw triage.RawAssessment
	if err := c.BodyParser(&raw); err != nil {
		logger.Error("Failed to parse assessment request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	submissionID := uuid.New().String()
	start := time.Now()

	result, flags, err := h.engine.Assess(raw)
	metrics.TriageDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		var validationErr *triage.ValidationError
		if !errors.As(err, &validationErr) {
			logger.Error("Assessment failed", zap.String("submission_id", submissionID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process assessment",
			})
		}

		metrics.ValidationFailures.Inc()
		resp := assessmentResponse{
			ID:       submissionID,
			Warnings: flags,
			Errors:   validationErr.Fields,
		}
		// A crisis found in the rejected submission's notes still escalates.
		if result != nil && result.Crisis.Detected {
			metrics.CrisisDetections.WithLabelValues(string(result.Crisis.Source)).Inc()
			resp.Result = result
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}

	metrics.TriageTotal.WithLabelValues(string(result.Severity.Band)).Inc()
	if result.Crisis.Detected {
		metrics.CrisisDetections.WithLabelValues(string(result.Crisis.Source)).Inc()
	}

	logger.Info("Assessment triaged",
		zap.String("submission_id", submissionID),
		zap.String("band", string(result.Severity.Band)),
		zap.Bool("crisis", result.Crisis.Detected),
		zap.Int("area_count", result.Severity.AreaCount),
	)

	return c.JSON(assessmentResponse{
		ID:       submissionID,
		Result:   result,
		Warnings: flags,
	})
}

// HandleCatalog serves the concern catalog and screening questionnaire so
// the client renders the same fixed lists the scorer works from.
func (h *AssessmentHandler) HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"areas":     triage.Areas(),
		"screening": triage.ScreeningItems(),
	})
}
