package handlers

import (
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports catalog row counts
type StatusHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(st *store.Store, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{store: st, logger: logger}
}

// Get handles the status endpoint
func (h *StatusHandler) Get(c *fiber.Ctx) error {
	counts, err := h.store.Count()
	if err != nil {
		h.logger.WithError(err).Error("Failed to count catalog")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to count catalog")
	}
	return c.JSON(counts)
}
