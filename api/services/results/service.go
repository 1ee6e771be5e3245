package resultsservice

import (
	"context"
	"fmt"

	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"
	"familykarting/pkg/metrics"
	"familykarting/pkg/scoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Calculation outcomes.
const (
	StatusCalculated     = "calculated"
	StatusNoLaps         = "no_laps"
	StatusSkippedTesting = "skipped_testing"
	StatusNotDone        = "not_done"
	// The laps couldn't be read, the stored results are left as they are.
	StatusLapsUnavailable = "laps_unavailable"
)

// RaceResultStore is the persistence the calculation runs against.
type RaceResultStore interface {
	GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error)
	GetLapsByRace(ctx context.Context, raceID uuid.UUID) ([]scoring.Lap, error)
	ReplaceRaceResults(ctx context.Context, raceID uuid.UUID, results []scoring.Result) error
	ClearRaceResults(ctx context.Context, raceID uuid.UUID) error
}

// Outcome of a calculation, Results is empty unless the status is calculated.
type Outcome struct {
	RaceID  uuid.UUID        `json:"raceId"`
	Status  string           `json:"status"`
	Results []scoring.Result `json:"results"`
}

// ResultsService ranks the drivers of finished races.
type ResultsService struct {
	store  RaceResultStore
	logger *logrus.Logger
}

// ResultsServiceDeps is the dependency list for the results service.
type ResultsServiceDeps struct {
	Store  RaceResultStore
	Logger *logrus.Logger
}

// NewResultsService creates a results service.
func NewResultsService(deps *ResultsServiceDeps) *ResultsService {
	return &ResultsService{
		store:  deps.Store,
		logger: deps.Logger,
	}
}

// Calculate ranks the drivers of a race by their best lap and stores position and points.
//
// Only finished competitive races are ranked, anything else is reported on the outcome
// without touching the stored results. A race without laps, or whose laps can't be read,
// is a no-op. A failed write is returned and nothing of the race is changed.
func (s *ResultsService) Calculate(ctx context.Context, raceID uuid.UUID) (*Outcome, error) {
	race, err := s.store.GetRaceByID(ctx, raceID)
	if err != nil {
		metrics.ResultsCalculationsTotal.WithLabelValues("error").Inc()
		return nil, database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	outcome := &Outcome{RaceID: raceID, Results: []scoring.Result{}}

	if race.RaceType == models.RaceTypeTesting {
		outcome.Status = StatusSkippedTesting
		metrics.ResultsCalculationsTotal.WithLabelValues(outcome.Status).Inc()
		return outcome, nil
	}

	if !race.IsDone() {
		outcome.Status = StatusNotDone
		metrics.ResultsCalculationsTotal.WithLabelValues(outcome.Status).Inc()
		return outcome, nil
	}

	laps, err := s.store.GetLapsByRace(ctx, raceID)
	if err != nil {
		s.logger.WithError(err).WithField("race_id", raceID).Warn("Couldn't read the race laps, skipping the results")
		outcome.Status = StatusLapsUnavailable
		metrics.ResultsCalculationsTotal.WithLabelValues(outcome.Status).Inc()
		return outcome, nil
	}

	if len(laps) == 0 {
		outcome.Status = StatusNoLaps
		metrics.ResultsCalculationsTotal.WithLabelValues(outcome.Status).Inc()
		return outcome, nil
	}

	results := scoring.AggregateRace(raceID, laps)
	if err := s.store.ReplaceRaceResults(ctx, raceID, results); err != nil {
		metrics.ResultsCalculationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to store the results of race %s: %w", raceID, err)
	}

	metrics.ResultsCalculationsTotal.WithLabelValues(StatusCalculated).Inc()
	metrics.ResultsRowsWrittenTotal.Add(float64(len(results)))

	s.logger.WithFields(logrus.Fields{
		"race_id": raceID,
		"drivers": len(results),
	}).Info("Race results calculated")

	outcome.Status = StatusCalculated
	outcome.Results = results

	return outcome, nil
}

// Clear removes the results of a race, participants stay registered.
func (s *ResultsService) Clear(ctx context.Context, raceID uuid.UUID) error {
	if err := s.store.ClearRaceResults(ctx, raceID); err != nil {
		return fmt.Errorf("failed to clear the results of race %s: %w", raceID, err)
	}

	s.logger.WithField("race_id", raceID).Info("Race results cleared")
	return nil
}

// Refresh brings the stored results in line with the race: ranked when it counts,
// cleared when it doesn't or when it has no laps left. Unreadable laps leave the
// stored results untouched.
func (s *ResultsService) Refresh(ctx context.Context, raceID uuid.UUID) (*Outcome, error) {
	outcome, err := s.Calculate(ctx, raceID)
	if err != nil {
		return nil, err
	}

	switch outcome.Status {
	case StatusNoLaps, StatusSkippedTesting, StatusNotDone:
		if err := s.Clear(ctx, raceID); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

// RecalculateAll recalculates every race id, failures are logged and counted.
func (s *ResultsService) RecalculateAll(ctx context.Context, raceIDs []uuid.UUID) (calculated int, failed int) {
	for _, id := range raceIDs {
		if ctx.Err() != nil {
			break
		}

		outcome, err := s.Calculate(ctx, id)
		if err != nil {
			failed++
			s.logger.WithError(err).WithField("race_id", id).Error("Couldn't recalculate race results")
			continue
		}

		if outcome.Status == StatusCalculated {
			calculated++
		}
	}

	return calculated, failed
}
