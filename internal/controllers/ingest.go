package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/amaumene/gomediadex/internal/metrics"
	"github.com/amaumene/gomediadex/internal/models"
	"github.com/amaumene/gomediadex/internal/services/tmdb"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrMediaTypeMismatch marks an assignment whose video was registered with a
// different media type than the target
var ErrMediaTypeMismatch = errors.New("media type mismatch")

// MetadataClient fetches full documents from the metadata provider
type MetadataClient interface {
	GetMovie(ctx context.Context, id uint64) (*tmdb.Movie, error)
	GetTv(ctx context.Context, id uint64) (*tmdb.Tv, error)
	GetTvEpisode(ctx context.Context, tvID uint64, season, episode uint) (*tmdb.Episode, error)
	GetPerson(ctx context.Context, id uint64) (*tmdb.Person, error)
}

// ResourceFetcher downloads provider artwork to local storage
type ResourceFetcher interface {
	Fetch(ctx context.Context, path string) error
}

// IngestController drives metadata ingestion: it checks the catalog first,
// fetches missing documents from the provider, stores them and pulls the
// referenced people and artwork behind them.
type IngestController struct {
	store   *store.Store
	meta    MetadataClient
	fetcher ResourceFetcher
	logger  *logrus.Logger
	tracer  trace.Tracer
}

// NewIngestController creates a new ingest controller
func NewIngestController(st *store.Store, meta MetadataClient, fetcher ResourceFetcher, logger *logrus.Logger) *IngestController {
	return &IngestController{
		store:   st,
		meta:    meta,
		fetcher: fetcher,
		logger:  logger,
		tracer:  otel.Tracer("gomediadex/ingest"),
	}
}

// IngestMovie makes sure a movie, its billed cast and its artwork are in the
// catalog. A movie that is already present costs no provider request.
func (c *IngestController) IngestMovie(ctx context.Context, id uint64) error {
	ctx, span := c.tracer.Start(ctx, "IngestMovie",
		trace.WithAttributes(attribute.Int64("movie.id", int64(id))))
	defer span.End()

	timer := prometheus.NewTimer(metrics.IngestDuration.WithLabelValues("movie"))
	defer timer.ObserveDuration()

	exists, err := c.store.MovieExists(id)
	if err != nil {
		return err
	}
	if exists {
		metrics.IngestTotal.WithLabelValues("movie", "cached").Inc()
		return nil
	}

	doc, err := c.meta.GetMovie(ctx, id)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("movie", "error").Inc()
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	personIDs, images, err := c.store.CreateMovie(doc)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("movie", "error").Inc()
		return err
	}

	c.ingestPersons(ctx, personIDs)

	if err := c.fetchImages(ctx, images); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"movie_id": id,
		"title":    doc.Title,
		"persons":  len(personIDs),
	}).Info("Ingested movie")
	metrics.IngestTotal.WithLabelValues("movie", "created").Inc()
	return nil
}

// IngestTv makes sure a tv show, its seasons, billed cast and artwork are in
// the catalog
func (c *IngestController) IngestTv(ctx context.Context, id uint64) error {
	ctx, span := c.tracer.Start(ctx, "IngestTv",
		trace.WithAttributes(attribute.Int64("tv.id", int64(id))))
	defer span.End()

	timer := prometheus.NewTimer(metrics.IngestDuration.WithLabelValues("tv"))
	defer timer.ObserveDuration()

	exists, err := c.store.TvExists(id)
	if err != nil {
		return err
	}
	if exists {
		metrics.IngestTotal.WithLabelValues("tv", "cached").Inc()
		return nil
	}

	doc, err := c.meta.GetTv(ctx, id)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("tv", "error").Inc()
		return fmt.Errorf("failed to fetch tv %d: %w", id, err)
	}

	personIDs, images, err := c.store.CreateTv(doc)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("tv", "error").Inc()
		return err
	}

	c.ingestPersons(ctx, personIDs)

	if err := c.fetchImages(ctx, images); err != nil {
		return err
	}

	c.logger.WithFields(logrus.Fields{
		"tv_id":   id,
		"title":   doc.Name,
		"seasons": len(doc.Seasons),
	}).Info("Ingested tv show")
	metrics.IngestTotal.WithLabelValues("tv", "created").Inc()
	return nil
}

// IngestEpisode makes sure an episode and its show are in the catalog and
// returns the episode's provider ID. The show is ingested first, so an
// episode of an unknown show pulls everything in one call.
func (c *IngestController) IngestEpisode(ctx context.Context, tvID uint64, season, episode uint) (uint64, error) {
	ctx, span := c.tracer.Start(ctx, "IngestEpisode",
		trace.WithAttributes(
			attribute.Int64("tv.id", int64(tvID)),
			attribute.Int("season", int(season)),
			attribute.Int("episode", int(episode))))
	defer span.End()

	timer := prometheus.NewTimer(metrics.IngestDuration.WithLabelValues("episode"))
	defer timer.ObserveDuration()

	if err := c.IngestTv(ctx, tvID); err != nil {
		return 0, err
	}

	id, err := c.store.EpisodeID(tvID, season, episode)
	if err == nil {
		metrics.IngestTotal.WithLabelValues("episode", "cached").Inc()
		return id, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return 0, err
	}

	doc, err := c.meta.GetTvEpisode(ctx, tvID, season, episode)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("episode", "error").Inc()
		return 0, fmt.Errorf("failed to fetch episode %dx%d of tv %d: %w", season, episode, tvID, err)
	}

	personIDs, images, err := c.store.CreateEpisode(tvID, doc)
	if err != nil {
		metrics.IngestTotal.WithLabelValues("episode", "error").Inc()
		return 0, err
	}

	c.ingestPersons(ctx, personIDs)

	if err := c.fetchImages(ctx, images); err != nil {
		return 0, err
	}

	c.logger.WithFields(logrus.Fields{
		"tv_id":   tvID,
		"season":  season,
		"episode": episode,
	}).Info("Ingested episode")
	metrics.IngestTotal.WithLabelValues("episode", "created").Inc()
	return doc.ID, nil
}

// AssignMovie ingests the movie if needed and points the video at it. The
// video must have been registered as a movie.
func (c *IngestController) AssignMovie(ctx context.Context, videoID, movieID uint64) error {
	mediaType, ok, err := c.store.VideoMediaType(videoID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("video %d: %w", videoID, store.ErrNotFound)
	}
	if mediaType != models.MediaTypeMovie {
		return fmt.Errorf("video %d is %s: %w", videoID, mediaType, ErrMediaTypeMismatch)
	}

	if err := c.IngestMovie(ctx, movieID); err != nil {
		return err
	}
	return c.store.SetVideoMediaID(videoID, movieID)
}

// AssignEpisode ingests the episode (and its show) if needed and points the
// video at it. The video must have been registered as an episode.
func (c *IngestController) AssignEpisode(ctx context.Context, videoID, tvID uint64, season, episode uint) error {
	mediaType, ok, err := c.store.VideoMediaType(videoID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("video %d: %w", videoID, store.ErrNotFound)
	}
	if mediaType != models.MediaTypeEpisode {
		return fmt.Errorf("video %d is %s: %w", videoID, mediaType, ErrMediaTypeMismatch)
	}

	episodeID, err := c.IngestEpisode(ctx, tvID, season, episode)
	if err != nil {
		return err
	}
	return c.store.SetVideoMediaID(videoID, episodeID)
}

// ingestPersons pulls the people a stored document references. A person who
// cannot be fetched is logged and skipped: the referencing credit rows stay
// valid and the person can still arrive through a later ingestion.
func (c *IngestController) ingestPersons(ctx context.Context, personIDs []uint64) {
	for _, id := range personIDs {
		exists, err := c.store.PersonExists(id)
		if err != nil {
			c.logger.WithError(err).WithField("person_id", id).Error("Failed to check person")
			continue
		}
		if exists {
			metrics.IngestTotal.WithLabelValues("person", "cached").Inc()
			continue
		}

		doc, err := c.meta.GetPerson(ctx, id)
		if err != nil {
			c.logger.WithError(err).WithField("person_id", id).Warn("Failed to fetch person, skipping")
			metrics.IngestTotal.WithLabelValues("person", "error").Inc()
			continue
		}

		_, images, err := c.store.CreatePerson(doc)
		if err != nil {
			c.logger.WithError(err).WithField("person_id", id).Error("Failed to store person")
			metrics.IngestTotal.WithLabelValues("person", "error").Inc()
			continue
		}

		if err := c.fetchImages(ctx, images); err != nil {
			c.logger.WithError(err).WithField("person_id", id).Warn("Failed to fetch person artwork")
		}
		metrics.IngestTotal.WithLabelValues("person", "created").Inc()
	}
}

func (c *IngestController) fetchImages(ctx context.Context, paths []string) error {
	for _, p := range paths {
		if err := c.fetcher.Fetch(ctx, p); err != nil {
			metrics.ArtworkFetchTotal.WithLabelValues("error").Inc()
			return fmt.Errorf("failed to fetch artwork %s: %w", p, err)
		}
		metrics.ArtworkFetchTotal.WithLabelValues("ok").Inc()
	}
	return nil
}
