package handler

import (
	"quizwhiz/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports service liveness and cache reachability
type HealthHandler struct {
	cache domain.Cache
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Check handles GET /healthz
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.cache.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "degraded",
			"cache":  "unreachable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
