package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familykarting/api/middleware"
	"familykarting/api/modules"
	"familykarting/api/routes"
	"familykarting/pkg/config"
	"familykarting/pkg/database"
	"familykarting/pkg/logger"
	"familykarting/pkg/redis"
	"familykarting/pkg/storage"
	"familykarting/pkg/weather"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't initialize the configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Environment)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Api stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bucket := storage.NewClient(cfg.Bucket)

	if cfg.Bucket.LogBucket != "" {
		archiver, err := logger.NewArchiver(bucket, cfg.Bucket.LogBucket)
		if err != nil {
			return fmt.Errorf("couldn't create the log archive: %w", err)
		}
		archiver.Attach(log)

		defer func() {
			uploadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			key := fmt.Sprintf("api/%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))
			if err := archiver.Upload(uploadCtx, key); err != nil {
				log.WithError(err).Error("Couldn't upload the log archive")
			}
			archiver.Close()
		}()
	}

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return err
	}

	rawDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("couldn't get raw db connection: %w", err)
	}
	defer rawDB.Close()

	if err := database.RunMigrations(rawDB, cfg.Database.MigrationsPath, cfg.Database.Database, log); err != nil {
		return err
	}

	redisClient, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("couldn't connect to redis: %w", err)
	}
	defer redisClient.Close()

	weatherClient := weather.NewClient(weather.Options{
		ForecastURL: cfg.Weather.ForecastURL,
		ArchiveURL:  cfg.Weather.ArchiveURL,
		Timeout:     cfg.Weather.Timeout,
		MaxRetries:  cfg.Weather.MaxRetries,
		RateLimit:   cfg.Weather.RateLimit,
		CacheTTL:    cfg.Weather.CacheTTL,
		Logger:      log,
	})

	// Create a module with all necessary handlers.
	module := modules.NewModule(&modules.ModuleDependencies{
		DB:      db,
		Redis:   redisClient,
		Storage: bucket,
		Weather: weatherClient,
		Config:  cfg,
		Logger:  log,
	})

	if cfg.App.Environment == "production" || cfg.App.Environment == "docker" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.Metrics(),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.HTTP.AllowedOrigin),
	)

	// Create a new router with the routes setup.
	router := routes.NewRouter(engine,
		middleware.RequireAdmin(module.AuthService, cfg.Session.CookieName, log),
		middleware.OnSuccess(module.StatsService.Invalidate),
	)
	router.SetupRoutes(
		module.CircuitHandler,
		module.DriverHandler,
		module.RaceHandler,
		module.LapHandler,
		module.ScoreboardHandler,
		module.WeatherHandler,
		module.AuthHandler,
		module.UploadHandler,
		module.HealthHandler,
	)

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           router.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("address", cfg.HTTP.Address).Info("Api listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down api...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
