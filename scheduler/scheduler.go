package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"familykarting/api/modules"
	"familykarting/pkg/config"
	"familykarting/pkg/database"
	"familykarting/pkg/logger"
	"familykarting/pkg/storage"
	"familykarting/pkg/weather"
	"familykarting/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Couldn't initialize the configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Environment)

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.Fatal(err)
	}

	// Runs the migrations.
	rawDb, err := db.DB()
	if err != nil {
		log.Fatalf("Couldn't get raw db connection: %v", err)
	}
	defer rawDb.Close()

	if err := database.RunMigrations(rawDb, cfg.Database.MigrationsPath, cfg.Database.Database, log); err != nil {
		log.Fatal(err)
	}

	raceService := modules.NewRaceService(&modules.ModuleDependencies{
		DB: db,
		Weather: weather.NewClient(weather.Options{
			ForecastURL: cfg.Weather.ForecastURL,
			ArchiveURL:  cfg.Weather.ArchiveURL,
			Timeout:     cfg.Weather.Timeout,
			MaxRetries:  cfg.Weather.MaxRetries,
			RateLimit:   cfg.Weather.RateLimit,
			CacheTTL:    cfg.Weather.CacheTTL,
			Logger:      log,
		}),
		Config: cfg,
		Logger: log,
	})

	log.Info("Starting scheduler.")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(cfg.Location()),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Results recalculation - once per day at 3:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.RecalculateResults,
			raceService,
			log,
		),
		gocron.WithName("results-recalculation"),
		gocron.WithTags("results"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(jobFailureListener(log)),
	)
	if err != nil {
		log.Fatalf("Failed to create results recalculation job: %v", err)
	}

	// Weather backfill - once per day at 4:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(
			jobs.BackfillWeather,
			raceService,
			log,
		),
		gocron.WithName("weather-backfill"),
		gocron.WithTags("weather"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithEventListeners(jobFailureListener(log)),
	)
	if err != nil {
		log.Fatalf("Failed to create weather backfill job: %v", err)
	}

	if cfg.Bucket.LogBucket != "" {
		archiver, err := logger.NewArchiver(storage.NewClient(cfg.Bucket), cfg.Bucket.LogBucket)
		if err != nil {
			log.Fatalf("Failed to create the log archive: %v", err)
		}
		archiver.Attach(log)
		defer archiver.Close()

		_, err = s.NewJob(
			gocron.DurationJob(time.Hour),
			gocron.NewTask(
				jobs.ArchiveLogs,
				archiver,
				log,
			),
			gocron.WithName("log-archive"),
			gocron.WithTags("logs"),
			gocron.WithEventListeners(jobFailureListener(log)),
		)
		if err != nil {
			log.Fatalf("Failed to create log archive job: %v", err)
		}
	}

	// Start the scheduler.
	s.Start()

	defer func() {
		// Shutdown the scheduler when main() exits.
		if err := s.Shutdown(); err != nil {
			log.Errorf("Error shutting down scheduler: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Wait for termination signal.
	<-sigChan
	log.Info("Shutting down scheduler...")
}

// jobFailureListener logs the errors returned by the tasks, gocron drops them otherwise.
func jobFailureListener(log *logrus.Logger) gocron.EventListener {
	return gocron.AfterJobRunsWithError(func(jobID uuid.UUID, jobName string, err error) {
		log.WithError(err).WithField("job", jobName).Error("Job failed")
	})
}
