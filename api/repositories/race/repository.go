package racerepo

import (
	"context"
	"time"

	"familykarting/api/filters"
	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type RaceRepository interface {
	ListRaces(ctx context.Context, filters *filters.RaceFilter) ([]models.Race, error)
	ListRacesByCircuit(ctx context.Context, circuitID uuid.UUID) ([]models.Race, error)
	GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error)
	GetRaceDetail(ctx context.Context, id uuid.UUID) (*models.Race, error)
	CreateRace(ctx context.Context, race *models.Race, driverIDs []uuid.UUID, laps []models.Lap) error
	UpdateRace(ctx context.Context, race *models.Race, driverIDs []uuid.UUID) error
	DeleteRace(ctx context.Context, id uuid.UUID) error
	SetWeather(ctx context.Context, id uuid.UUID, weather models.Weather) error
	ListDoneRaceIDs(ctx context.Context) ([]uuid.UUID, error)
	ListRacesMissingWeather(ctx context.Context, before time.Time) ([]models.Race, error)
}

// Race repository structure.
type raceRepository struct {
	db *gorm.DB
}

// NewRaceRepository creates a race repository.
func NewRaceRepository(db *gorm.DB) RaceRepository {
	return &raceRepository{db: db}
}

// ListRaces returns the races newest first, with their circuit.
// The year is taken on the circuit timezone, else on the filter timezone, else on UTC.
func (r *raceRepository) ListRaces(ctx context.Context, filters *filters.RaceFilter) ([]models.Race, error) {
	query := r.db.WithContext(ctx).
		Preload("Circuit").
		Order("races.race_date DESC")

	if filters != nil {
		if filters.Status != "" {
			query = query.Where("races.status = ?", filters.Status)
		}
		if filters.RaceType != "" {
			query = query.Where("races.race_type = ?", filters.RaceType)
		}
		if filters.CircuitID != nil {
			query = query.Where("races.circuit_id = ?", *filters.CircuitID)
		}
		if filters.Year != 0 {
			fallback := filters.Timezone
			if fallback == "" {
				fallback = "UTC"
			}
			query = query.
				Joins("LEFT JOIN circuits ON circuits.id = races.circuit_id").
				Where("EXTRACT(YEAR FROM races.race_date AT TIME ZONE COALESCE(NULLIF(circuits.timezone, ''), ?)) = ?", fallback, filters.Year)
		}
		if filters.Limit > 0 {
			query = query.Limit(filters.Limit)
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	races := []models.Race{}
	if err := query.Find(&races).Error; err != nil {
		return nil, err
	}

	return races, nil
}

// ListRacesByCircuit returns the races of a circuit, newest first.
func (r *raceRepository) ListRacesByCircuit(ctx context.Context, circuitID uuid.UUID) ([]models.Race, error) {
	races := []models.Race{}

	err := r.db.WithContext(ctx).
		Where("circuit_id = ?", circuitID).
		Order("race_date DESC").
		Find(&races).Error
	if err != nil {
		return nil, err
	}

	return races, nil
}

// GetRaceByID returns the race with its circuit.
func (r *raceRepository) GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	var race models.Race
	if err := r.db.WithContext(ctx).Preload("Circuit").First(&race, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &race, nil
}

// GetRaceDetail returns the race with the circuit, the participants ordered by position
// and the laps ordered by time.
func (r *raceRepository) GetRaceDetail(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	var race models.Race

	err := r.db.WithContext(ctx).
		Preload("Circuit").
		Preload("Drivers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC NULLS LAST, created_at ASC")
		}).
		Preload("Drivers.Driver").
		Preload("Laps", func(db *gorm.DB) *gorm.DB {
			return db.Order("lap_time ASC, created_at ASC")
		}).
		Preload("Laps.Driver").
		First(&race, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &race, nil
}

// CreateRace inserts the race, its participants and its laps in a single transaction.
// Drivers with laps are registered as participants even when missing from driverIDs.
func (r *raceRepository) CreateRace(ctx context.Context, race *models.Race, driverIDs []uuid.UUID, laps []models.Lap) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(race).Error; err != nil {
			return err
		}

		participants := make([]uuid.UUID, 0, len(driverIDs)+len(laps))
		participants = append(participants, driverIDs...)
		for i := range laps {
			laps[i].RaceID = race.ID
			participants = append(participants, laps[i].DriverID)
		}

		if err := registerParticipants(tx, race.ID, participants); err != nil {
			return err
		}

		if len(laps) > 0 {
			if err := tx.Omit(clause.Associations).Create(&laps).Error; err != nil {
				return err
			}
		}

		return nil
	})

	return database.TranslateError(err, messages.ErrUnknownReference)
}

// UpdateRace replaces the race columns. A non nil driverIDs becomes the participant list,
// participants left out are removed unless they have laps on the race.
func (r *raceRepository) UpdateRace(ctx context.Context, race *models.Race, driverIDs []uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(race).
			Select("race_date", "status", "race_type", "circuit_id", "description", "attachment_url", "updated_at").
			Updates(race)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if driverIDs == nil {
			return nil
		}

		removed := tx.Where("race_id = ?", race.ID).
			Where("driver_id NOT IN (SELECT driver_id FROM laps WHERE race_id = ?)", race.ID)
		if len(driverIDs) > 0 {
			removed = removed.Where("driver_id NOT IN ?", driverIDs)
		}
		if err := removed.Delete(&models.RaceDriver{}).Error; err != nil {
			return err
		}

		return registerParticipants(tx, race.ID, driverIDs)
	})

	return database.TranslateError(err, messages.ErrUnknownReference)
}

// registerParticipants adds the drivers to the race, existing participants are kept as they are.
func registerParticipants(tx *gorm.DB, raceID uuid.UUID, driverIDs []uuid.UUID) error {
	if len(driverIDs) == 0 {
		return nil
	}

	seen := make(map[uuid.UUID]bool, len(driverIDs))
	rows := make([]models.RaceDriver, 0, len(driverIDs))
	for _, id := range driverIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.RaceDriver{RaceID: raceID, DriverID: id})
	}

	return tx.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// DeleteRace removes the race with its laps and participants.
func (r *raceRepository) DeleteRace(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("race_id = ?", id).Delete(&models.Lap{}).Error; err != nil {
			return err
		}

		if err := tx.Where("race_id = ?", id).Delete(&models.RaceDriver{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Race{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

// SetWeather stores the weather of the race, an empty weather clears it.
func (r *raceRepository) SetWeather(ctx context.Context, id uuid.UUID, weather models.Weather) error {
	result := r.db.WithContext(ctx).
		Model(&models.Race{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"weather_temp":        weather.Temp,
			"weather_condition":   weather.Condition,
			"weather_description": weather.Description,
			"weather_icon":        weather.Icon,
			"weather_humidity":    weather.Humidity,
			"weather_wind_speed":  weather.WindSpeed,
			"weather_fetched_at":  weather.FetchedAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// ListDoneRaceIDs returns the finished competitive races, oldest first.
func (r *raceRepository) ListDoneRaceIDs(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}

	err := r.db.WithContext(ctx).
		Model(&models.Race{}).
		Where("status = ? AND race_type = ?", models.RaceStatusDone, models.RaceTypeRace).
		Order("race_date ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// ListRacesMissingWeather returns finished races held before the instant without stored weather,
// only when their circuit has coordinates.
func (r *raceRepository) ListRacesMissingWeather(ctx context.Context, before time.Time) ([]models.Race, error) {
	races := []models.Race{}

	err := r.db.WithContext(ctx).
		Preload("Circuit").
		Joins("JOIN circuits c ON c.id = races.circuit_id").
		Where("races.status = ?", models.RaceStatusDone).
		Where("races.weather_fetched_at IS NULL").
		Where("races.race_date < ?", before).
		Where("c.location_lat IS NOT NULL AND c.location_long IS NOT NULL").
		Order("races.race_date ASC").
		Find(&races).Error
	if err != nil {
		return nil, err
	}

	return races, nil
}
