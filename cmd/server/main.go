package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/achoumais/achoumais/internal/analytics"
	"github.com/achoumais/achoumais/internal/cache"
	"github.com/achoumais/achoumais/internal/catalog"
	"github.com/achoumais/achoumais/internal/config"
	"github.com/achoumais/achoumais/internal/database"
	"github.com/achoumais/achoumais/internal/handler"
	"github.com/achoumais/achoumais/internal/middleware"
	"github.com/achoumais/achoumais/internal/repository"
	"github.com/achoumais/achoumais/internal/service"
	"github.com/achoumais/achoumais/internal/sse"
	"github.com/achoumais/achoumais/internal/utils"
	"github.com/achoumais/achoumais/internal/worker"
)

// main is the application entrypoint for the AchouMais catalog site.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting achoumais")

	// 3. Connect database (optional, enables the first-party event store)
	var db *sqlx.DB
	if cfg.DBEnabled() {
		db, err = database.Connect(&cfg.DB)
		if err != nil {
			log.Error().Err(err).Msg("database connection failed")
			fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
			os.Exit(1)
		}
		defer db.Close()

		// 3a. Run migrations
		if err := runMigrations(db.DB); err != nil {
			log.Error().Err(err).Msg("migration failed")
			fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
			os.Exit(1)
		}
		log.Info().Msg("migrations completed successfully")
	} else {
		log.Info().Msg("event store disabled, no database configured")
	}

	// 3b. Connect to Redis (optional, enables the pending-event queue)
	var redisClient *cache.RedisClient
	if cfg.RedisEnabled() {
		redisClient, err = cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected successfully")
	} else {
		log.Info().Msg("event queue disabled, no redis configured")
	}

	// 4. Initialize feed loader
	loader := catalog.NewFeedLoader(cfg.Catalog.FeedSources)

	// 5. Build the analytics sink fan-out. The structured-log sink is always
	// wired; GA4, queue and SSE sinks join when their subsystems exist.
	hub := sse.NewHub()
	sinks := []analytics.Tracker{analytics.LogTracker{}}
	if cfg.GA4Enabled() {
		sinks = append(sinks, analytics.NewGA4Client(cfg.GA4.MeasurementID, cfg.GA4.APISecret))
		log.Info().Msg("GA4 measurement protocol sink registered")
	}
	var eventQueue *cache.EventQueue
	if redisClient != nil {
		eventQueue = cache.NewEventQueue(redisClient)
		sinks = append(sinks, service.NewQueueTracker(eventQueue))
		log.Info().Msg("Redis event queue sink registered")
	}
	sinks = append(sinks, service.NewHubTracker(hub))
	tracker := analytics.NewMulti(sinks...)

	// 6. Initialize services
	catalogSvc := service.NewCatalogService(loader, tracker, cfg.Catalog.PageSize)
	redirectSvc := service.NewRedirectService(loader, tracker, cfg.BaseURL)
	trackingSvc := service.NewTrackingService(tracker)

	var eventRepo *repository.EventRepository
	var statsSvc *service.StatsService
	if db != nil {
		eventRepo = repository.NewEventRepository(db)
		statsSvc = service.NewStatsService(eventRepo)
	}

	jwtManager := utils.NewJWTManager(cfg.JWTSecret)
	adminAuthSvc := service.NewAdminAuthService(&cfg.Admin, jwtManager)

	// 7. Initialize handlers
	catalogH := handler.NewCatalogHandler(catalogSvc, cfg.SiteName)
	redirectH := handler.NewRedirectHandler(redirectSvc, cfg.SiteName, cfg.Catalog.CountdownSeconds)
	trackH := handler.NewTrackHandler(trackingSvc, middleware.NewIPRateLimiter(60, time.Minute))
	healthH := handler.NewHealthHandler(loader, db, redisClient)
	authH := handler.NewAuthHandler(adminAuthSvc)
	sseH := handler.NewSSEHandler(hub, jwtManager)

	// 8. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(jwtManager)

	// 9. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedHosts))
	router.Use(middleware.LoggingMiddleware())

	// Pages
	router.GET("/", catalogH.GetCatalog)
	router.GET("/p/produto", redirectH.GetProduct)
	router.GET("/out", redirectH.GetOutbound)
	router.Static("/assets", "./assets")

	// API
	router.GET("/v1/health", healthH.GetHealth)
	router.POST("/v1/track", trackH.PostTrack)

	// Admin routes, registered only with configured credentials
	if cfg.AdminEnabled() {
		loginLimiter := middleware.NewIPRateLimiter(10, time.Minute)
		admin := router.Group("/v1/admin")
		admin.POST("/auth/login", loginLimiter.Handle(), authH.Login)
		admin.GET("/sse", sseH.Stream)
		admin.Use(jwtMw.Handle())
		{
			if statsSvc != nil {
				admin.GET("/events", handler.NewStatsHandler(statsSvc).GetEvents)
			}
		}
		log.Info().Msg("admin routes registered")
	}

	// 10. Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 11. Start workers
	if eventQueue != nil && eventRepo != nil {
		go worker.NewFlushWorker(eventQueue, eventRepo, cfg.Worker.FlushInterval, cfg.Worker.FlushBatchSize).Start(ctx)
	}

	// 12. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 13. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 14. Cancel context to stop workers
	cancel()

	// 15. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// runMigrations runs database migrations using golang-migrate.
func runMigrations(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
