package handlers

import (
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// TvHandler serves the tv catalog
type TvHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewTvHandler creates a new tv handler
func NewTvHandler(st *store.Store, logger *logrus.Logger) *TvHandler {
	return &TvHandler{store: st, logger: logger}
}

// List handles GET /api/tvs
func (h *TvHandler) List(c *fiber.Ctx) error {
	f := store.NewTvFilter()
	if v := c.Query("title_like"); v != "" {
		f.Title(store.OpLike, "%"+v+"%")
	}
	if v := c.Query("genre"); v != "" {
		f.Genre(v)
	}
	if v := c.QueryInt("cast"); v > 0 {
		f.Cast(uint64(v))
	}

	tvs, err := h.store.Tvs(f)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list tvs")
		return apiError(err)
	}
	return c.JSON(tvs)
}

// Get handles GET /api/tvs/:id
func (h *TvHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tv, err := h.store.Tv(id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(tv)
}

// ListEpisodes handles GET /api/tvs/:id/seasons/:season/episodes
func (h *TvHandler) ListEpisodes(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	season, err := paramID(c, "season")
	if err != nil {
		return err
	}
	episodes, err := h.store.Episodes(id, uint(season))
	if err != nil {
		return apiError(err)
	}
	return c.JSON(episodes)
}

// GetEpisode handles GET /api/episodes/:id
func (h *TvHandler) GetEpisode(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	episode, err := h.store.Episode(id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(episode)
}
