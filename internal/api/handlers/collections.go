package handlers

import (
	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// CollectionHandler serves user collections
type CollectionHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(st *store.Store, logger *logrus.Logger) *CollectionHandler {
	return &CollectionHandler{store: st, logger: logger}
}

type collectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Creator     string `json:"creator"`
	PosterPath  string `json:"poster_path"`
}

// List handles GET /api/collections
func (h *CollectionHandler) List(c *fiber.Ctx) error {
	f := store.NewCollectionFilter()
	if v := c.Query("name_like"); v != "" {
		f.Name(store.OpLike, "%"+v+"%")
	}
	if v := c.Query("creator"); v != "" {
		f.Creator(v)
	}

	collections, err := h.store.Collections(f)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list collections")
		return apiError(err)
	}
	return c.JSON(collections)
}

// Get handles GET /api/collections/:id
func (h *CollectionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	collection, err := h.store.Collection(id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(collection)
}

// Create handles POST /api/collections
func (h *CollectionHandler) Create(c *fiber.Ctx) error {
	var req collectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	collection := &models.Collection{
		Name:        req.Name,
		Description: req.Description,
		Creator:     req.Creator,
		PosterPath:  req.PosterPath,
	}
	id, err := h.store.CreateCollection(collection)
	if err != nil {
		return apiError(err)
	}

	h.logger.WithFields(logrus.Fields{
		"collection_id": id,
		"name":          req.Name,
	}).Info("Created collection")
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// Update handles PUT /api/collections/:id
func (h *CollectionHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req collectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	collection := &models.Collection{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PosterPath:  req.PosterPath,
	}
	if err := h.store.UpdateCollection(collection); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete handles DELETE /api/collections/:id
func (h *CollectionHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeleteCollection(id); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddMovie handles POST /api/collections/:id/movies/:movieID
func (h *CollectionHandler) AddMovie(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	movieID, err := paramID(c, "movieID")
	if err != nil {
		return err
	}
	if err := h.store.AddMovieToCollection(id, movieID); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMovie handles DELETE /api/collections/:id/movies/:movieID
func (h *CollectionHandler) RemoveMovie(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	movieID, err := paramID(c, "movieID")
	if err != nil {
		return err
	}
	if err := h.store.RemoveMovieFromCollection(id, movieID); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddTv handles POST /api/collections/:id/tvs/:tvID
func (h *CollectionHandler) AddTv(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tvID, err := paramID(c, "tvID")
	if err != nil {
		return err
	}
	if err := h.store.AddTvToCollection(id, tvID); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveTv handles DELETE /api/collections/:id/tvs/:tvID
func (h *CollectionHandler) RemoveTv(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	tvID, err := paramID(c, "tvID")
	if err != nil {
		return err
	}
	if err := h.store.RemoveTvFromCollection(id, tvID); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
