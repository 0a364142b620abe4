package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	logger *logrus.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// Get handles the health check endpoint
func (h *HealthHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
