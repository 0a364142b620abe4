package handlers

import (
	"errors"
	"strconv"

	"github.com/amaumene/gomediadex/internal/controllers"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
)

// apiError maps domain errors onto HTTP statuses
func apiError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, tmdb.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrSeasonNotFound):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, controllers.ErrMediaTypeMismatch):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// paramID parses a numeric path parameter
func paramID(c *fiber.Ctx, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
