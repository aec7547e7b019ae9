package server

import (
	"backend-waytrack/internal/blob"
	"backend-waytrack/internal/config"
	"backend-waytrack/internal/lookup"
	"backend-waytrack/internal/render"
	"backend-waytrack/internal/stream"
	"backend-waytrack/internal/tracker"
	"backend-waytrack/internal/workout"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App     *fiber.App
	Cfg     config.Config
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Stream  *stream.Hub
	Tracker *tracker.Service
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := stream.NewHub(redisClient)
	view := stream.NewView(hub, stream.DefaultChannel)
	rec := render.New(view, view)
	svc := tracker.NewService(
		workout.NewFactory(cfg.Months()),
		blobStore(cfg, db, redisClient),
		rec,
		lookup.New(cfg.GeocodeBaseURL, cfg.WeatherBaseURL),
		cfg.MapZoom,
	)

	s := &Server{
		App:     app,
		Cfg:     cfg,
		DB:      db,
		Redis:   redisClient,
		Stream:  hub,
		Tracker: svc,
	}

	registerRoutes(s)
	return s
}

// blobStore picks the persistence backend. Misconfigured redis/postgres
// backends fall back to the file store so the app still comes up.
func blobStore(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) blob.Store {
	switch cfg.StorageBackend {
	case "redis":
		if redisClient != nil {
			return blob.NewRedisStore(redisClient, cfg.BlobKey)
		}
	case "postgres":
		if db != nil {
			return blob.NewPostgresStore(db, cfg.BlobKey)
		}
	}
	return blob.NewFileStore(cfg.BlobPath)
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	tracker.RegisterRoutes(s.App, s.Tracker)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
