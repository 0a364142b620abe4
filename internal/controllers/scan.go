package controllers

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/amaumene/gomediadex/internal/metrics"
	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/probe"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/amaumene/gomediadex/internal/utils"
	"github.com/sirupsen/logrus"
)

var videoExtensions = map[string]bool{
	".mkv":  true,
	".mp4":  true,
	".m4v":  true,
	".avi":  true,
	".mov":  true,
	".ts":   true,
	".webm": true,
}

// ScanController walks the library directory and registers every video file
// it does not know yet. Files already in the catalog and files matching the
// ignore list are skipped; a file that cannot be probed is logged and skipped
// so one broken file never aborts a scan.
type ScanController struct {
	store      *store.Store
	prober     probe.Prober
	ignore     *utils.IgnoreList
	libraryDir string
	logger     *logrus.Logger
}

// NewScanController creates a new scan controller
func NewScanController(st *store.Store, prober probe.Prober, ignore *utils.IgnoreList, libraryDir string, logger *logrus.Logger) *ScanController {
	return &ScanController{
		store:      st,
		prober:     prober,
		ignore:     ignore,
		libraryDir: libraryDir,
		logger:     logger,
	}
}

// Scan walks the library once. It returns the number of newly registered
// videos.
func (c *ScanController) Scan(ctx context.Context) (int, error) {
	c.logger.WithField("dir", c.libraryDir).Info("Starting library scan")

	added := 0
	err := filepath.WalkDir(c.libraryDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}
		if !videoExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if ignored, term := c.ignore.IsIgnored(path); ignored {
			c.logger.WithFields(logrus.Fields{
				"path": path,
				"term": term,
			}).Debug("Ignoring file")
			metrics.ScanFilesTotal.WithLabelValues("ignored").Inc()
			return nil
		}

		if _, err := c.store.VideoID(path); err == nil {
			metrics.ScanFilesTotal.WithLabelValues("known").Inc()
			return nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := c.register(ctx, path); err != nil {
			c.logger.WithError(err).WithField("path", path).Warn("Failed to register file, skipping")
			metrics.ScanFilesTotal.WithLabelValues("error").Inc()
			return nil
		}
		metrics.ScanFilesTotal.WithLabelValues("added").Inc()
		added++
		return nil
	})
	if err != nil {
		return added, err
	}

	c.logger.WithField("added", added).Info("Library scan completed")
	return added, nil
}

// register probes one file and stores it. The media type comes from the file
// name: an S01E01 marker means episode, anything else means movie. The video
// stays unassigned until a movie or episode is attached to it.
func (c *ScanController) register(ctx context.Context, path string) error {
	info, err := c.prober.Probe(ctx, path)
	if err != nil {
		return err
	}

	mediaType := models.MediaTypeMovie
	if _, _, ok := utils.ExtractEpisode(filepath.Base(path)); ok {
		mediaType = models.MediaTypeEpisode
	}

	video := &models.Video{
		Path:      path,
		MediaType: mediaType,
		Duration:  info.Duration,
		BitRate:   info.BitRate,
		Codec:     info.Codec,
		Width:     info.Width,
		Height:    info.Height,
		Size:      info.Size,
		Subtitles: utils.UniqueLanguages(info.Subtitles),
		Audios:    utils.UniqueLanguages(info.Audios),
	}
	id, err := c.store.CreateVideo(video)
	if err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"path":       path,
		"video_id":   id,
		"media_type": mediaType.String(),
	}).Info("Registered video")
	return nil
}
