package laprepo

import (
	"context"

	"familykarting/api/filters"
	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type LapRepository interface {
	ListLaps(ctx context.Context, filters *filters.LapFilter) ([]models.Lap, error)
	GetLapByID(ctx context.Context, id uuid.UUID) (*models.Lap, error)
	CreateLaps(ctx context.Context, laps []models.Lap) error
	UpdateLap(ctx context.Context, lap *models.Lap) error
	DeleteLap(ctx context.Context, id uuid.UUID) error
}

// Lap repository structure.
type lapRepository struct {
	db *gorm.DB
}

// NewLapRepository creates a lap repository.
func NewLapRepository(db *gorm.DB) LapRepository {
	return &lapRepository{db: db}
}

// ListLaps returns the laps fastest first, with driver and race.
func (r *lapRepository) ListLaps(ctx context.Context, filters *filters.LapFilter) ([]models.Lap, error) {
	query := r.db.WithContext(ctx).
		Preload("Driver").
		Preload("Race").
		Order("lap_time ASC, created_at ASC")

	if filters != nil {
		if filters.RaceID != nil {
			query = query.Where("race_id = ?", *filters.RaceID)
		}
		if filters.DriverID != nil {
			query = query.Where("driver_id = ?", *filters.DriverID)
		}
	}

	laps := []models.Lap{}
	if err := query.Find(&laps).Error; err != nil {
		return nil, err
	}

	return laps, nil
}

// GetLapByID returns gorm.ErrRecordNotFound when the lap doesn't exist.
func (r *lapRepository) GetLapByID(ctx context.Context, id uuid.UUID) (*models.Lap, error) {
	var lap models.Lap
	if err := r.db.WithContext(ctx).First(&lap, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &lap, nil
}

// CreateLaps inserts the laps in a single statement and registers their drivers on the races.
func (r *lapRepository) CreateLaps(ctx context.Context, laps []models.Lap) error {
	if len(laps) == 0 {
		return nil
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&laps).Error; err != nil {
			return err
		}

		participants := make([]models.RaceDriver, 0, len(laps))
		seen := make(map[[2]uuid.UUID]bool, len(laps))
		for _, lap := range laps {
			key := [2]uuid.UUID{lap.RaceID, lap.DriverID}
			if seen[key] {
				continue
			}
			seen[key] = true
			participants = append(participants, models.RaceDriver{RaceID: lap.RaceID, DriverID: lap.DriverID})
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&participants).Error
	})

	return database.TranslateError(err, messages.ErrUnknownReference)
}

// UpdateLap changes the driver and time of a lap, the race stays the same.
func (r *lapRepository) UpdateLap(ctx context.Context, lap *models.Lap) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(lap).
			Select("driver_id", "lap_time", "updated_at").
			Updates(lap)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.RaceDriver{RaceID: lap.RaceID, DriverID: lap.DriverID}).Error
	})

	return database.TranslateError(err, messages.ErrUnknownReference)
}

// DeleteLap removes a single lap.
func (r *lapRepository) DeleteLap(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Lap{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
