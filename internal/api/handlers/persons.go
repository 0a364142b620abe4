package handlers

import (
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// PersonHandler serves the person catalog
type PersonHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(st *store.Store, logger *logrus.Logger) *PersonHandler {
	return &PersonHandler{store: st, logger: logger}
}

// List handles GET /api/persons
func (h *PersonHandler) List(c *fiber.Ctx) error {
	f := store.NewPersonFilter()
	if v := c.Query("name_like"); v != "" {
		f.Name(store.OpLike, "%"+v+"%")
	}

	people, err := h.store.Persons(f)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list persons")
		return apiError(err)
	}
	return c.JSON(people)
}

// Get handles GET /api/persons/:id
func (h *PersonHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	person, err := h.store.Person(id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(person)
}
