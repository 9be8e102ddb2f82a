package api

import (
	"context"
	"errors"

	"eprel-mirror/core/eprel"
	"eprel-mirror/core/logger"
	"eprel-mirror/feature/catalog/store"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Service is the catalog surface the HTTP handlers expose.
type Service interface {
	HealthCheck(ctx context.Context) (bool, error)
	Statistics() (*store.Statistics, error)
}

// Handler handles HTTP requests for the catalog mirror.
type Handler struct {
	service Service
	log     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/health", h.HandleHealth)
	app.Get("/statistics", h.HandleStatistics)
}

// HandleHealth reports whether the upstream API is reachable with the
// configured key.
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	ok, err := h.service.HealthCheck(c.Context())
	if ok {
		return c.JSON(fiber.Map{"status": "ok"})
	}

	status := fiber.StatusServiceUnavailable
	reason := "api unreachable"
	if errors.Is(err, eprel.ErrAuth) {
		status = fiber.StatusBadGateway
		reason = "api key rejected"
	}
	l.Warn("Health check failed", zap.String("reason", reason), zap.Error(err))

	return c.Status(status).JSON(fiber.Map{"status": "degraded", "reason": reason})
}

// HandleStatistics reports mirror counts per category and the latest
// completed sync.
func (h *Handler) HandleStatistics(c *fiber.Ctx) error {
	l := logger.WithRayID(h.log, c)

	stats, err := h.service.Statistics()
	if err != nil {
		l.Error("Failed to collect statistics", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to collect statistics",
		})
	}
	return c.JSON(stats)
}
