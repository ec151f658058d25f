package server

import (
	"context"

	"backend-trailbook/internal/achievements"
	"backend-trailbook/internal/auth"
	"backend-trailbook/internal/config"
	"backend-trailbook/internal/events"
	"backend-trailbook/internal/friends"
	"backend-trailbook/internal/hike"
	"backend-trailbook/internal/invite"
	"backend-trailbook/internal/plan"
	"backend-trailbook/internal/profile"
	"backend-trailbook/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Store  store.RecordStore
	Redis  *redis.Client
	Events *events.Hub
	Badges *achievements.Worker
}

func NewServer(cfg config.Config, recordStore store.RecordStore, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	hub := events.NewHub(redisClient)
	profiles := profile.NewService(recordStore)
	evaluator := achievements.NewEvaluator(achievements.DefaultRules())
	recomputer := achievements.NewRecomputer(recordStore, profiles, evaluator, hub)
	worker := achievements.NewWorker(recomputer, 64)

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Store:  recordStore,
		Redis:  redisClient,
		Events: hub,
		Badges: worker,
	}

	registerRoutes(s, profiles)
	return s
}

// Start launches the badge recompute worker.
func (s *Server) Start(ctx context.Context) {
	s.Badges.Start(ctx)
}

func registerRoutes(s *Server, profiles *profile.Service) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	hikes := hike.NewService(s.Store, s.Badges)
	plans := plan.NewService(s.Store, hikes)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.Store, profiles))
	hike.RegisterRoutes(s.App.Group("/hikes"), hikes, jwtMiddleware)
	friends.RegisterRoutes(s.App.Group("/friends"), friends.NewService(s.Store, profiles, s.Events), jwtMiddleware)
	invite.RegisterRoutes(s.App.Group("/invitations"), invite.NewService(s.Store, plans, s.Events), jwtMiddleware)
	plan.RegisterRoutes(s.App.Group("/plans"), plans, jwtMiddleware)
	events.RegisterRoutes(s.App.Group("/events"), s.Events)
}
