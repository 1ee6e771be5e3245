package driverrepo

import (
	"context"
	"database/sql"
	"time"

	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Public Interface.
type DriverRepository interface {
	ListDrivers(ctx context.Context) ([]DriverSummary, error)
	GetDriverByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	CreateDriver(ctx context.Context, driver *models.Driver) error
	UpdateDriver(ctx context.Context, driver *models.Driver) error
	DeleteDriver(ctx context.Context, id uuid.UUID) error
	GetDriverResults(ctx context.Context, id uuid.UUID) ([]DriverResultRow, error)
	GetDriverBestLap(ctx context.Context, id uuid.UUID) (*float64, error)
}

// Driver repository structure.
type driverRepository struct {
	db *gorm.DB
}

// DriverSummary is a driver with its competitive totals.
type DriverSummary struct {
	models.Driver
	TotalPoints int
	RacesCount  int
}

// DriverResultRow is a participation of the driver joined with its race.
type DriverResultRow struct {
	RaceID      uuid.UUID
	RaceDate    time.Time
	RaceType    string
	CircuitName string
	Position    *int
	Points      *int
}

// NewDriverRepository creates a driver repository.
func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

// ListDrivers returns every driver ordered by name with the points of competitive races.
func (r *driverRepository) ListDrivers(ctx context.Context) ([]DriverSummary, error) {
	drivers := []DriverSummary{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			d.*,
			COALESCE(SUM(rd.points) FILTER (WHERE r.race_type = 'race'), 0) AS total_points,
			COUNT(rd.position) FILTER (WHERE r.race_type = 'race') AS races_count
		FROM drivers d
		LEFT JOIN race_drivers rd ON rd.driver_id = d.id AND rd.position IS NOT NULL
		LEFT JOIN races r ON r.id = rd.race_id
		GROUP BY d.id
		ORDER BY d.name ASC
	`).Scan(&drivers).Error
	if err != nil {
		return nil, err
	}

	return drivers, nil
}

// GetDriverByID returns gorm.ErrRecordNotFound when the driver doesn't exist.
func (r *driverRepository) GetDriverByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	if err := r.db.WithContext(ctx).First(&driver, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &driver, nil
}

// CreateDriver inserts the driver, the id is filled by the database.
func (r *driverRepository) CreateDriver(ctx context.Context, driver *models.Driver) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(driver).Error, messages.ErrUnknownReference)
}

// UpdateDriver replaces every column of the driver.
func (r *driverRepository) UpdateDriver(ctx context.Context, driver *models.Driver) error {
	result := r.db.WithContext(ctx).
		Model(driver).
		Select("*").
		Omit("id", "created_at").
		Updates(driver)
	if result.Error != nil {
		return database.TranslateError(result.Error, messages.ErrUnknownReference)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteDriver removes the driver, its laps and participations go with it.
func (r *driverRepository) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Driver{}, "id = ?", id)
	if result.Error != nil {
		return database.TranslateError(result.Error, messages.ErrReferencedRecord)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// GetDriverResults returns every race the driver took part of, newest first.
func (r *driverRepository) GetDriverResults(ctx context.Context, id uuid.UUID) ([]DriverResultRow, error) {
	rows := []DriverResultRow{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			r.id AS race_id,
			r.race_date,
			r.race_type,
			c.name AS circuit_name,
			rd.position,
			rd.points
		FROM race_drivers rd
		JOIN races r ON r.id = rd.race_id
		JOIN circuits c ON c.id = r.circuit_id
		WHERE rd.driver_id = ?
		ORDER BY r.race_date DESC
	`, id).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetDriverBestLap returns the fastest lap of the driver, nil without laps.
func (r *driverRepository) GetDriverBestLap(ctx context.Context, id uuid.UUID) (*float64, error) {
	var best sql.NullFloat64

	err := r.db.WithContext(ctx).
		Model(&models.Lap{}).
		Select("MIN(lap_time)").
		Where("driver_id = ?", id).
		Scan(&best).Error
	if err != nil {
		return nil, err
	}

	if !best.Valid {
		return nil, nil
	}
	return &best.Float64, nil
}
