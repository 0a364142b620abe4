package handlers

import (
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// MovieHandler serves the movie catalog
type MovieHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(st *store.Store, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{store: st, logger: logger}
}

// List handles GET /api/movies
func (h *MovieHandler) List(c *fiber.Ctx) error {
	f := store.NewMovieFilter()
	if v := c.Query("title_like"); v != "" {
		f.Title(store.OpLike, "%"+v+"%")
	}
	if v := c.Query("genre"); v != "" {
		f.Genre(v)
	}
	if v := c.QueryInt("cast"); v > 0 {
		f.Cast(uint64(v))
	}
	if v := c.QueryInt("collection"); v > 0 {
		f.Collection(uint64(v))
	}

	movies, err := h.store.Movies(f)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list movies")
		return apiError(err)
	}
	return c.JSON(movies)
}

// Get handles GET /api/movies/:id
func (h *MovieHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	movie, err := h.store.Movie(id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(movie)
}
