package circuitservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"familykarting/api/dto"
	"familykarting/api/filters"
	circuitrepo "familykarting/api/repositories/circuit"
	racerepo "familykarting/api/repositories/race"
	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/hours"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// TimezoneResolver finds the IANA timezone of a coordinate.
type TimezoneResolver interface {
	Timezone(ctx context.Context, lat, lon float64) (string, error)
}

// CircuitService with the circuit and race repositories.
type CircuitService struct {
	CircuitRepository circuitrepo.CircuitRepository
	RaceRepository    racerepo.RaceRepository
	timezones         TimezoneResolver
	logger            *logrus.Logger
	now               func() time.Time
}

// CircuitServiceDeps is the dependency list for the circuit service.
type CircuitServiceDeps struct {
	DB        *gorm.DB
	Timezones TimezoneResolver
	Logger    *logrus.Logger
}

// NewCircuitService creates a circuit service.
func NewCircuitService(deps *CircuitServiceDeps) *CircuitService {
	return &CircuitService{
		CircuitRepository: circuitrepo.NewCircuitRepository(deps.DB),
		RaceRepository:    racerepo.NewRaceRepository(deps.DB),
		timezones:         deps.Timezones,
		logger:            deps.Logger,
		now:               time.Now,
	}
}

// ListCircuits returns the circuits matching the filters.
func (cs *CircuitService) ListCircuits(ctx context.Context, filters *filters.CircuitFilter) ([]models.Circuit, error) {
	return cs.CircuitRepository.ListCircuits(ctx, filters)
}

// GetCircuit returns a single circuit.
func (cs *CircuitService) GetCircuit(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	circuit, err := cs.CircuitRepository.GetCircuitByID(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrCircuitNotFound)
	}
	return circuit, nil
}

// GetCircuitDetail returns the circuit with its races and the record lap.
func (cs *CircuitService) GetCircuitDetail(ctx context.Context, id uuid.UUID) (*dto.CircuitDetail, error) {
	circuit, err := cs.GetCircuit(ctx, id)
	if err != nil {
		return nil, err
	}

	races, err := cs.RaceRepository.ListRacesByCircuit(ctx, id)
	if err != nil {
		return nil, err
	}

	best, err := cs.CircuitRepository.GetBestLap(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.CircuitDetail{Circuit: circuit, Races: races}
	if best != nil {
		detail.BestLap = &dto.BestLap{
			LapTime:    best.LapTime,
			DriverID:   best.DriverID,
			DriverName: best.DriverName,
			RaceID:     best.RaceID,
		}
	}

	return detail, nil
}

// GetCircuitHours evaluates the operating hours of the circuit at the current instant.
// The timezone is resolved and stored on the first call when the circuit has coordinates.
func (cs *CircuitService) GetCircuitHours(ctx context.Context, id uuid.UUID) (*dto.CircuitHours, error) {
	circuit, err := cs.GetCircuit(ctx, id)
	if err != nil {
		return nil, err
	}

	if circuit.Timezone == nil && circuit.HasCoordinates() {
		if tz := cs.resolveTimezone(ctx, circuit); tz != nil {
			if err := cs.CircuitRepository.SetTimezone(ctx, circuit.ID, *tz); err != nil {
				cs.logger.WithError(err).WithField("circuit_id", circuit.ID).Warn("Couldn't store the circuit timezone")
			}
			circuit.Timezone = tz
		}
	}

	schedule := circuit.Schedule()
	status := hours.Evaluate(schedule, circuit.Location(), cs.now())

	return &dto.CircuitHours{
		OperatingHours: schedule,
		Status:         &status,
	}, nil
}

// CreateCircuit validates and stores a new circuit.
func (cs *CircuitService) CreateCircuit(ctx context.Context, input *dto.CircuitInput) (*models.Circuit, error) {
	circuit := &models.Circuit{}
	input.ToModel(circuit)

	if err := cs.prepare(ctx, circuit); err != nil {
		return nil, err
	}

	if err := cs.CircuitRepository.CreateCircuit(ctx, circuit); err != nil {
		return nil, err
	}

	cs.logger.WithFields(logrus.Fields{"circuit_id": circuit.ID, "name": circuit.Name}).Info("Circuit created")
	return circuit, nil
}

// UpdateCircuit replaces the editable fields of a circuit.
func (cs *CircuitService) UpdateCircuit(ctx context.Context, id uuid.UUID, input *dto.CircuitInput) (*models.Circuit, error) {
	circuit, err := cs.GetCircuit(ctx, id)
	if err != nil {
		return nil, err
	}

	previousLat, previousLong := circuit.LocationLat, circuit.LocationLong
	previousTimezone := circuit.Timezone

	input.ToModel(circuit)

	// Keep the stored timezone unless the circuit moved or a new one was given.
	if circuit.Timezone == nil && sameCoordinate(previousLat, circuit.LocationLat) && sameCoordinate(previousLong, circuit.LocationLong) {
		circuit.Timezone = previousTimezone
	}

	if err := cs.prepare(ctx, circuit); err != nil {
		return nil, err
	}

	if err := cs.CircuitRepository.UpdateCircuit(ctx, circuit); err != nil {
		return nil, database.WrapNotFound(err, messages.ErrCircuitNotFound)
	}

	return circuit, nil
}

// DeleteCircuit removes a circuit without races.
func (cs *CircuitService) DeleteCircuit(ctx context.Context, id uuid.UUID) error {
	if err := cs.CircuitRepository.DeleteCircuit(ctx, id); err != nil {
		return database.WrapNotFound(err, messages.ErrCircuitNotFound)
	}

	cs.logger.WithField("circuit_id", id).Info("Circuit deleted")
	return nil
}

// prepare validates the timezone and hours, resolving the timezone when missing.
func (cs *CircuitService) prepare(ctx context.Context, circuit *models.Circuit) error {
	if circuit.Timezone != nil && *circuit.Timezone == "" {
		circuit.Timezone = nil
	}

	if circuit.Timezone != nil {
		if _, err := time.LoadLocation(*circuit.Timezone); err != nil {
			return fmt.Errorf("%w: %q", messages.ErrInvalidTimezone, *circuit.Timezone)
		}
	}

	if schedule := circuit.Schedule(); schedule != nil {
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%w: %w", messages.ErrInvalidOperatingDay, err)
		}
	}

	if circuit.Timezone == nil && circuit.HasCoordinates() {
		circuit.Timezone = cs.resolveTimezone(ctx, circuit)
	}

	return nil
}

// resolveTimezone asks the provider, a failure leaves the timezone unknown.
func (cs *CircuitService) resolveTimezone(ctx context.Context, circuit *models.Circuit) *string {
	if cs.timezones == nil {
		return nil
	}

	tz, err := cs.timezones.Timezone(ctx, *circuit.LocationLat, *circuit.LocationLong)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			cs.logger.WithError(err).WithField("circuit", circuit.Name).Warn("Couldn't resolve the circuit timezone")
		}
		return nil
	}

	if _, err := time.LoadLocation(tz); err != nil {
		cs.logger.WithField("timezone", tz).Warn("Provider returned an unknown timezone")
		return nil
	}

	return &tz
}

func sameCoordinate(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
