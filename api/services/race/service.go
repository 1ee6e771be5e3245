package raceservice

import (
	"context"
	"fmt"
	"time"

	"familykarting/api/dto"
	"familykarting/api/filters"
	racerepo "familykarting/api/repositories/race"
	resultsservice "familykarting/api/services/results"
	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"
	"familykarting/pkg/weather"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResultsCalculator keeps the stored results of a race up to date.
type ResultsCalculator interface {
	Calculate(ctx context.Context, raceID uuid.UUID) (*resultsservice.Outcome, error)
	Refresh(ctx context.Context, raceID uuid.UUID) (*resultsservice.Outcome, error)
	RecalculateAll(ctx context.Context, raceIDs []uuid.UUID) (calculated int, failed int)
}

// WeatherProvider looks up the weather of a day.
type WeatherProvider interface {
	ForDate(ctx context.Context, lat, lon float64, date time.Time) (*weather.Report, error)
}

// RaceService with the race repository, the results calculation and the weather provider.
type RaceService struct {
	RaceRepository racerepo.RaceRepository
	results        ResultsCalculator
	weather        WeatherProvider
	location       *time.Location
	logger         *logrus.Logger
	now            func() time.Time
}

// RaceServiceDeps is the dependency list for the race service.
type RaceServiceDeps struct {
	DB       *gorm.DB
	Results  ResultsCalculator
	Weather  WeatherProvider
	Location *time.Location
	Logger   *logrus.Logger
}

// NewRaceService creates a race service.
func NewRaceService(deps *RaceServiceDeps) *RaceService {
	return &RaceService{
		RaceRepository: racerepo.NewRaceRepository(deps.DB),
		results:        deps.Results,
		weather:        deps.Weather,
		location:       deps.Location,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

// ListRaces returns the races matching the filters, newest first.
// The year filter follows the scoreboard: circuit timezone first, then the app one.
func (rs *RaceService) ListRaces(ctx context.Context, filters *filters.RaceFilter) ([]models.Race, error) {
	if filters != nil && filters.Year != 0 && filters.Timezone == "" {
		scoped := *filters
		scoped.Timezone = rs.timezoneName()
		filters = &scoped
	}
	return rs.RaceRepository.ListRaces(ctx, filters)
}

// timezoneName is the app timezone as postgres knows it.
// "Local" only exists on the Go side and is matched as UTC.
func (rs *RaceService) timezoneName() string {
	if rs.location == nil || rs.location == time.Local || rs.location.String() == "Local" {
		return "UTC"
	}
	return rs.location.String()
}

// GetRaceDetail returns the race with its circuit, ranked participants and laps.
func (rs *RaceService) GetRaceDetail(ctx context.Context, id uuid.UUID) (*dto.RaceDetail, error) {
	race, err := rs.RaceRepository.GetRaceDetail(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	// Laps come ordered by time, the first one of a driver is its best.
	bestLaps := make(map[uuid.UUID]float64, len(race.Drivers))
	for _, lap := range race.Laps {
		if _, seen := bestLaps[lap.DriverID]; !seen {
			bestLaps[lap.DriverID] = lap.LapTime
		}
	}

	results := make([]dto.RaceResult, 0, len(race.Drivers))
	for _, participant := range race.Drivers {
		result := dto.RaceResult{
			DriverID: participant.DriverID,
			Position: participant.Position,
			Points:   participant.Points,
		}
		if participant.Driver != nil {
			result.DriverName = participant.Driver.Name
		}
		if best, found := bestLaps[participant.DriverID]; found {
			result.BestLap = &best
		}
		results = append(results, result)
	}

	laps := race.Laps
	if laps == nil {
		laps = []models.Lap{}
	}

	race.Drivers = nil
	race.Laps = nil

	return &dto.RaceDetail{Race: race, Results: results, Laps: laps}, nil
}

// CreateRace stores the race with its participants and laps.
// A finished competitive race is ranked right away.
func (rs *RaceService) CreateRace(ctx context.Context, input *dto.RaceInput) (*models.Race, error) {
	race := &models.Race{}
	input.ToModel(race)

	laps := make([]models.Lap, 0, len(input.Laps))
	for _, entry := range input.Laps {
		if entry.LapTime <= 0 {
			return nil, messages.ErrInvalidLapTime
		}
		laps = append(laps, models.Lap{DriverID: entry.DriverID, LapTime: entry.LapTime})
	}

	if err := rs.RaceRepository.CreateRace(ctx, race, input.DriverIDs, laps); err != nil {
		return nil, err
	}

	rs.logger.WithFields(logrus.Fields{
		"race_id": race.ID,
		"status":  race.Status,
		"type":    race.RaceType,
		"laps":    len(laps),
	}).Info("Race created")

	if race.CountsForResults() {
		race.ResultsError = rs.calculate(ctx, race.ID)
	}

	return race, nil
}

// UpdateRace replaces the race fields and participants.
// Results follow the race: ranked when it counts, cleared when it doesn't.
func (rs *RaceService) UpdateRace(ctx context.Context, id uuid.UUID, input *dto.RaceInput) (*models.Race, error) {
	race, err := rs.RaceRepository.GetRaceByID(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	countedBefore := race.CountsForResults()
	input.ToModel(race)
	race.Circuit = nil

	if err := rs.RaceRepository.UpdateRace(ctx, race, input.DriverIDs); err != nil {
		return nil, database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	if countedBefore || race.CountsForResults() {
		if _, err := rs.results.Refresh(ctx, race.ID); err != nil {
			rs.logger.WithError(err).WithField("race_id", race.ID).Error("Couldn't refresh the race results")
			race.ResultsError = err.Error()
		}
	}

	return race, nil
}

// DeleteRace removes the race with its laps and participants.
func (rs *RaceService) DeleteRace(ctx context.Context, id uuid.UUID) error {
	if err := rs.RaceRepository.DeleteRace(ctx, id); err != nil {
		return database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	rs.logger.WithField("race_id", id).Info("Race deleted")
	return nil
}

// RecalculateResults ranks the race again, clearing stale results when it doesn't count.
func (rs *RaceService) RecalculateResults(ctx context.Context, id uuid.UUID) (*resultsservice.Outcome, error) {
	return rs.results.Refresh(ctx, id)
}

// RecalculateAll ranks every finished competitive race again.
func (rs *RaceService) RecalculateAll(ctx context.Context) (calculated int, failed int, err error) {
	ids, err := rs.RaceRepository.ListDoneRaceIDs(ctx)
	if err != nil {
		return 0, 0, err
	}

	calculated, failed = rs.results.RecalculateAll(ctx, ids)
	return calculated, failed, nil
}

// FetchWeather looks up the weather of the race day on its circuit and stores it.
func (rs *RaceService) FetchWeather(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	race, err := rs.RaceRepository.GetRaceByID(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	if err := rs.storeWeather(ctx, race); err != nil {
		return nil, err
	}

	return race, nil
}

// ClearWeather removes the stored weather of a race.
func (rs *RaceService) ClearWeather(ctx context.Context, id uuid.UUID) error {
	if err := rs.RaceRepository.SetWeather(ctx, id, models.Weather{}); err != nil {
		return database.WrapNotFound(err, messages.ErrRaceNotFound)
	}
	return nil
}

// BackfillWeather stores the weather of finished races that still miss it.
func (rs *RaceService) BackfillWeather(ctx context.Context) (fetched int, failed int, err error) {
	races, err := rs.RaceRepository.ListRacesMissingWeather(ctx, rs.now())
	if err != nil {
		return 0, 0, err
	}

	for i := range races {
		if ctx.Err() != nil {
			break
		}

		if err := rs.storeWeather(ctx, &races[i]); err != nil {
			failed++
			rs.logger.WithError(err).WithField("race_id", races[i].ID).Warn("Couldn't backfill the race weather")
			continue
		}
		fetched++
	}

	return fetched, failed, nil
}

func (rs *RaceService) storeWeather(ctx context.Context, race *models.Race) error {
	if race.Circuit == nil || !race.Circuit.HasCoordinates() {
		return messages.ErrMissingCoordinates
	}

	// The day of the race on the circuit, not on the server.
	loc := race.Circuit.Location()
	if loc == nil {
		loc = rs.location
	}
	date := race.RaceDate
	if loc != nil {
		date = date.In(loc)
	}

	report, err := rs.weather.ForDate(ctx, *race.Circuit.LocationLat, *race.Circuit.LocationLong, date)
	if err != nil {
		return fmt.Errorf("failed to fetch the weather of race %s: %w", race.ID, err)
	}

	fetchedAt := rs.now()
	race.Weather = models.Weather{
		Temp:        &report.Temp,
		Condition:   &report.Condition,
		Description: &report.Description,
		Icon:        &report.Icon,
		Humidity:    &report.Humidity,
		WindSpeed:   &report.WindSpeed,
		FetchedAt:   &fetchedAt,
	}

	if err := rs.RaceRepository.SetWeather(ctx, race.ID, race.Weather); err != nil {
		return database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	return nil
}

// calculate ranks a race. The race itself was saved, so a failure is logged and
// returned as the message shown with the race.
func (rs *RaceService) calculate(ctx context.Context, id uuid.UUID) string {
	if _, err := rs.results.Calculate(ctx, id); err != nil {
		rs.logger.WithError(err).WithField("race_id", id).Error("Couldn't calculate the race results")
		return err.Error()
	}
	return ""
}
