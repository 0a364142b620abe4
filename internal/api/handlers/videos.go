package handlers

import (
	"strconv"

	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// VideoHandler serves the video catalog
type VideoHandler struct {
	store  *store.Store
	logger *logrus.Logger
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(st *store.Store, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{store: st, logger: logger}
}

// List handles GET /api/videos
func (h *VideoHandler) List(c *fiber.Ctx) error {
	f := store.NewVideoFilter()
	if v := c.Query("media_type"); v != "" {
		mt, ok := models.ParseMediaType(v)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "invalid media_type")
		}
		f.MediaType(mt)
	}
	if c.QueryBool("unassigned") {
		f.Unassigned()
	}
	if v := c.Query("path_like"); v != "" {
		f.Path(store.OpLike, "%"+v+"%")
	}
	if v := c.Query("codec"); v != "" {
		f.Codec(store.OpEq, v)
	}

	videos, err := h.store.Videos(f)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list videos")
		return apiError(err)
	}
	return c.JSON(videos)
}

// Get handles GET /api/videos/:id
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	video, err := h.store.Video(id)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(video)
}

type lastTimeRequest struct {
	UserID   uint64 `json:"user_id"`
	Position uint64 `json:"position"`
}

// SetLastTime handles POST /api/videos/:id/lasttime
func (h *VideoHandler) SetLastTime(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req lastTimeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if err := h.store.SetLastTime(id, req.UserID, req.Position); err != nil {
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetLastTime handles GET /api/videos/:id/lasttime?user_id=
func (h *VideoHandler) GetLastTime(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user_id")
	}
	position, err := h.store.GetLastTime(id, userID)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(fiber.Map{"video_id": id, "user_id": userID, "position": position})
}
