package handlers

import (
	"github.com/amaumene/gomediadex/internal/controllers"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// IngestHandler exposes ingestion, assignment, guessing and scanning
type IngestHandler struct {
	ingestCtrl *controllers.IngestController
	guessCtrl  *controllers.GuessController
	scanCtrl   *controllers.ScanController
	logger     *logrus.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingestCtrl *controllers.IngestController, guessCtrl *controllers.GuessController, scanCtrl *controllers.ScanController, logger *logrus.Logger) *IngestHandler {
	return &IngestHandler{
		ingestCtrl: ingestCtrl,
		guessCtrl:  guessCtrl,
		scanCtrl:   scanCtrl,
		logger:     logger,
	}
}

// IngestMovie handles POST /api/movies/:id/ingest
func (h *IngestHandler) IngestMovie(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.ingestCtrl.IngestMovie(c.Context(), id); err != nil {
		h.logger.WithError(err).WithField("movie_id", id).Error("Movie ingestion failed")
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// IngestTv handles POST /api/tvs/:id/ingest
func (h *IngestHandler) IngestTv(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.ingestCtrl.IngestTv(c.Context(), id); err != nil {
		h.logger.WithError(err).WithField("tv_id", id).Error("Tv ingestion failed")
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type assignMovieRequest struct {
	MovieID uint64 `json:"movie_id"`
}

// AssignMovie handles POST /api/videos/:id/assign/movie
func (h *IngestHandler) AssignMovie(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req assignMovieRequest
	if err := c.BodyParser(&req); err != nil || req.MovieID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "movie_id is required")
	}
	if err := h.ingestCtrl.AssignMovie(c.Context(), id, req.MovieID); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"video_id": id,
			"movie_id": req.MovieID,
		}).Error("Movie assignment failed")
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

type assignEpisodeRequest struct {
	TvID    uint64 `json:"tv_id"`
	Season  uint   `json:"season"`
	Episode uint   `json:"episode"`
}

// AssignEpisode handles POST /api/videos/:id/assign/episode
func (h *IngestHandler) AssignEpisode(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req assignEpisodeRequest
	if err := c.BodyParser(&req); err != nil || req.TvID == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "tv_id is required")
	}
	if err := h.ingestCtrl.AssignEpisode(c.Context(), id, req.TvID, req.Season, req.Episode); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"video_id": id,
			"tv_id":    req.TvID,
			"season":   req.Season,
			"episode":  req.Episode,
		}).Error("Episode assignment failed")
		return apiError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GuessMovie handles GET /api/guess/movie?filename=
func (h *IngestHandler) GuessMovie(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "filename is required")
	}
	guesses, err := h.guessCtrl.GuessMovie(c.Context(), filename)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(guesses)
}

// GuessTv handles GET /api/guess/tv?filename=
func (h *IngestHandler) GuessTv(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return fiber.NewError(fiber.StatusBadRequest, "filename is required")
	}
	guesses, err := h.guessCtrl.GuessTv(c.Context(), filename)
	if err != nil {
		return apiError(err)
	}
	return c.JSON(guesses)
}

// Scan handles POST /api/scan
func (h *IngestHandler) Scan(c *fiber.Ctx) error {
	added, err := h.scanCtrl.Scan(c.Context())
	if err != nil {
		h.logger.WithError(err).Error("Library scan failed")
		return apiError(err)
	}
	return c.JSON(fiber.Map{"added": added})
}
