package api

import (
	"time"

	"github.com/amaumene/gomediadex/internal/api/handlers"
	"github.com/amaumene/gomediadex/internal/api/middleware"
	"github.com/amaumene/gomediadex/internal/config"
	"github.com/amaumene/gomediadex/internal/controllers"
	"github.com/amaumene/gomediadex/internal/store"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Server represents the HTTP server
type Server struct {
	app    *fiber.App
	port   string
	logger *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, st *store.Store, ingestCtrl *controllers.IngestController, guessCtrl *controllers.GuessController, scanCtrl *controllers.ScanController, logger *logrus.Logger) *Server {
	app := fiber.New(fiber.Config{
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          15 * time.Second,
		IdleTimeout:           60 * time.Second,
		DisableStartupMessage: true,
	})
	app.Use(middleware.Logging(logger))

	s := &Server{
		app:    app,
		port:   cfg.ServerPort,
		logger: logger,
	}
	s.setupRoutes(st, ingestCtrl, guessCtrl, scanCtrl)
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(st *store.Store, ingestCtrl *controllers.IngestController, guessCtrl *controllers.GuessController, scanCtrl *controllers.ScanController) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	s.app.Get("/health", healthHandler.Get)

	statusHandler := handlers.NewStatusHandler(st, s.logger)
	s.app.Get("/status", statusHandler.Get)

	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")

	videoHandler := handlers.NewVideoHandler(st, s.logger)
	api.Get("/videos", videoHandler.List)
	api.Get("/videos/:id", videoHandler.Get)
	api.Get("/videos/:id/lasttime", videoHandler.GetLastTime)
	api.Post("/videos/:id/lasttime", videoHandler.SetLastTime)

	movieHandler := handlers.NewMovieHandler(st, s.logger)
	api.Get("/movies", movieHandler.List)
	api.Get("/movies/:id", movieHandler.Get)

	tvHandler := handlers.NewTvHandler(st, s.logger)
	api.Get("/tvs", tvHandler.List)
	api.Get("/tvs/:id", tvHandler.Get)
	api.Get("/tvs/:id/seasons/:season/episodes", tvHandler.ListEpisodes)
	api.Get("/episodes/:id", tvHandler.GetEpisode)

	personHandler := handlers.NewPersonHandler(st, s.logger)
	api.Get("/persons", personHandler.List)
	api.Get("/persons/:id", personHandler.Get)

	collectionHandler := handlers.NewCollectionHandler(st, s.logger)
	api.Get("/collections", collectionHandler.List)
	api.Post("/collections", collectionHandler.Create)
	api.Get("/collections/:id", collectionHandler.Get)
	api.Put("/collections/:id", collectionHandler.Update)
	api.Delete("/collections/:id", collectionHandler.Delete)
	api.Post("/collections/:id/movies/:movieID", collectionHandler.AddMovie)
	api.Delete("/collections/:id/movies/:movieID", collectionHandler.RemoveMovie)
	api.Post("/collections/:id/tvs/:tvID", collectionHandler.AddTv)
	api.Delete("/collections/:id/tvs/:tvID", collectionHandler.RemoveTv)

	ingestHandler := handlers.NewIngestHandler(ingestCtrl, guessCtrl, scanCtrl, s.logger)
	api.Post("/movies/:id/ingest", ingestHandler.IngestMovie)
	api.Post("/tvs/:id/ingest", ingestHandler.IngestTv)
	api.Post("/videos/:id/assign/movie", ingestHandler.AssignMovie)
	api.Post("/videos/:id/assign/episode", ingestHandler.AssignEpisode)
	api.Get("/guess/movie", ingestHandler.GuessMovie)
	api.Get("/guess/tv", ingestHandler.GuessTv)
	api.Post("/scan", ingestHandler.Scan)
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.WithField("port", s.port).Info("Starting HTTP server")
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithTimeout(10 * time.Second)
}

// App exposes the underlying fiber app, for tests
func (s *Server) App() *fiber.App {
	return s.app
}
