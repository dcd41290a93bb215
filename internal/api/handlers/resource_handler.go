package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/furyfist/WellNest/internal/metrics"
	"github.com/furyfist/WellNest/internal/resources"
	"github.com/furyfist/WellNest/pkg/logger"
)

// ResourceCache fronts the store for reads. The redis client satisfies it;
// a nil cache disables caching entirely.
type ResourceCache interface {
	GetResourceList(ctx context.Context, topic string) ([]resources.Resource, bool, error)
	SetResourceList(ctx context.Context, topic string, list []resources.Resource) error
	GetResource(ctx context.Context, id string) (*resources.Resource, bool, error)
	SetResource(ctx context.Context, r *resources.Resource) error
	InvalidateLists(ctx context.Context) error
}

type ResourceHandler struct {
	store    *resources.Store
	ingestor *resources.Ingestor
	cache    ResourceCache
}

func NewResourceHandler(store *resources.Store, ingestor *resources.Ingestor, cache ResourceCache) *ResourceHandler {
	return &ResourceHandler{store: store, ingestor: ingestor, cache: cache}
}

func (h *ResourceHandler) HandleList(c *fiber.Ctx) error {
	topic := c.Query("topic")
	ctx := c.Context()

	if h.cache != nil {
		if list, ok, err := h.cache.GetResourceList(ctx, topic); err == nil && ok {
			metrics.CacheHits.WithLabelValues("resource_list").Inc()
			return c.JSON(fiber.Map{"resources": list})
		}
		metrics.CacheMisses.WithLabelValues("resource_list").Inc()
	}

	list, err := h.store.List(topic)
	if err != nil {
		logger.Error("Failed to list resources", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list resources",
		})
	}

	if h.cache != nil {
		if err := h.cache.SetResourceList(ctx, topic, list); err != nil {
			logger.Warn("Failed to cache resource list", zap.Error(err))
		}
	}

	return c.JSON(fiber.Map{"resources": list})
}

func (h *ResourceHandler) HandleGet(c *fiber.Ctx) error {
	id := c.Params("id")
	ctx := c.Context()

	if h.cache != nil {
		if r, ok, err := h.cache.GetResource(ctx, id); err == nil && ok {
			metrics.CacheHits.WithLabelValues("resource").Inc()
			return c.JSON(r)
		}
		metrics.CacheMisses.WithLabelValues("resource").Inc()
	}

	r, err := h.store.Get(id)
	if errors.Is(err, resources.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	}
	if err != nil {
		logger.Error("Failed to get resource", zap.String("resource_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get resource",
		})
	}

	if h.cache != nil {
		if err := h.cache.SetResource(ctx, r); err != nil {
			logger.Warn("Failed to cache resource", zap.Error(err))
		}
	}

	return c.JSON(r)
}

type ingestRequest struct {
	Title   string `json:"title"`
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

func (h *ResourceHandler) HandleIngest(c *fiber.Ctx) error {
	var req ingestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Title == "" || req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title and content are required",
		})
	}

	resource, err := h.ingestor.Ingest(c.Context(), req.Title, req.Topic, req.Content)
	if err != nil {
		logger.Error("Failed to ingest resource", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to ingest resource",
		})
	}

	metrics.ResourcesIngested.Inc()
	if h.cache != nil {
		if err := h.cache.InvalidateLists(c.Context()); err != nil {
			logger.Warn("Failed to invalidate resource cache", zap.Error(err))
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resource)
}
