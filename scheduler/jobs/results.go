package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const jobTimeout = 30 * time.Minute

// RaceMaintainer is the part of the race service the jobs run.
type RaceMaintainer interface {
	RecalculateAll(ctx context.Context) (calculated int, failed int, err error)
	BackfillWeather(ctx context.Context) (fetched int, failed int, err error)
}

// RecalculateResults ranks every finished race again.
// Results are replaced per race, running it twice changes nothing.
func RecalculateResults(races RaceMaintainer, log *logrus.Logger) error {
	log.Info("Starting results recalculation")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	calculated, failed, err := races.RecalculateAll(ctx)
	if err != nil {
		return fmt.Errorf("couldn't list the finished races: %w", err)
	}

	entry := log.WithFields(logrus.Fields{
		"calculated": calculated,
		"failed":     failed,
		"duration":   time.Since(startTime).String(),
	})
	if failed > 0 {
		entry.Warn("Results recalculation finished with failures")
		return nil
	}

	entry.Info("Results recalculation finished")
	return nil
}

// BackfillWeather stores the weather of finished races that still have none.
func BackfillWeather(races RaceMaintainer, log *logrus.Logger) error {
	log.Info("Starting weather backfill")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	fetched, failed, err := races.BackfillWeather(ctx)
	if err != nil {
		return fmt.Errorf("couldn't list the races missing weather: %w", err)
	}

	log.WithFields(logrus.Fields{
		"fetched":  fetched,
		"failed":   failed,
		"duration": time.Since(startTime).String(),
	}).Info("Weather backfill finished")
	return nil
}
