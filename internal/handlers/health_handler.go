package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"interview-coach/internal/services"
)

const serviceName = "interview-coach"

type HealthHandler struct {
	stats *services.OutcomeStats
}

func NewHealthHandler(stats *services.OutcomeStats) *HealthHandler {
	return &HealthHandler{stats: stats}
}

// HandleHealth handles GET /health
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
		"outcomes":  h.stats.Snapshot(),
	})
}
