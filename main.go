package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"linkconnect/bootstrap"
	"linkconnect/config"
	"linkconnect/database"
	"linkconnect/internal/handlers"
	"linkconnect/internal/middleware"
	"linkconnect/internal/repository"
	"linkconnect/internal/routes"
	"linkconnect/internal/services"
	"linkconnect/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Pretty)

	client, err := database.Connect(cfg.Mongo.URI, cfg.Mongo.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	db := client.Database(cfg.Mongo.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := bootstrap.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("ensure indexes failed")
	}
	cancel()

	repos := repository.New(db)

	catalogSvc := services.NewCatalogService(repos.Catalog)
	resolver := services.NewAudienceResolver(repos.Users)
	fanout := services.NewFanout(resolver, repos.StudentLinks, repos.Links, log)
	authSvc := services.NewAuthService(repos.Users, repos.LoginStats, cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL, cfg.Auth.AllowSelfRegister, log)
	userSvc := services.NewUserService(repos.Users, repos.LoginStats, repos.StudentLinks, repos.Submissions)
	linkSvc := services.NewLinkService(repos.Links, repos.Users, repos.StudentLinks,
		repos.Submissions, catalogSvc, fanout, log)
	subSvc := services.NewSubmissionService(repos.Submissions, repos.Links, repos.Users,
		repos.StudentLinks, log)
	adminSvc := services.NewAdminService(repos.Users, repos.Links, repos.Submissions,
		repos.LoginStats, repos.Audits, cfg.Auth.DefaultPassword, log)
	analyticsSvc := services.NewAnalyticsService(repos.Users, repos.Links, repos.Submissions,
		repos.LoginStats, repos.Visits)

	limiter := services.NewRateLimiter(repos.RateLimits, cfg.RateLimit.WindowMs, cfg.RateLimit.Max, log)
	initCtx, initCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := limiter.Init(initCtx); err != nil {
		log.Warn().Err(err).Msg("rate limiter settings load failed, using defaults")
	}
	initCancel()

	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowCredentials: cfg.CORS.AllowCredentials,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Register(app, routes.Handlers{
		Auth:        handlers.NewAuthHandler(authSvc, log),
		Users:       handlers.NewUserHandler(userSvc, log),
		Links:       handlers.NewLinkHandler(linkSvc, catalogSvc, log),
		Submissions: handlers.NewSubmissionHandler(subSvc, log),
		Admin:       handlers.NewAdminHandler(adminSvc, catalogSvc, limiter, log),
		Analytics:   handlers.NewAnalyticsHandler(analyticsSvc, log),
		Health:      handlers.NewHealthHandler(client),

		Authenticated: middleware.Authenticated(authSvc),
		RateLimit:     middleware.RateLimit(limiter),
		VisitCounter:  middleware.VisitCounter(analyticsSvc, log),
	})

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("port", cfg.Server.Port).Msg("server listening")
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
