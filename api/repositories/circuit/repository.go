package circuitrepo

import (
	"context"

	"familykarting/api/filters"
	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Public Interface.
type CircuitRepository interface {
	ListCircuits(ctx context.Context, filters *filters.CircuitFilter) ([]models.Circuit, error)
	GetCircuitByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error)
	CreateCircuit(ctx context.Context, circuit *models.Circuit) error
	UpdateCircuit(ctx context.Context, circuit *models.Circuit) error
	DeleteCircuit(ctx context.Context, id uuid.UUID) error
	SetTimezone(ctx context.Context, id uuid.UUID, timezone string) error
	GetBestLap(ctx context.Context, id uuid.UUID) (*BestLap, error)
}

// Circuit repository structure.
type circuitRepository struct {
	db *gorm.DB
}

// BestLap is the record lap of a circuit.
type BestLap struct {
	LapTime    float64
	DriverID   uuid.UUID
	DriverName string
	RaceID     uuid.UUID
}

// NewCircuitRepository creates a circuit repository.
func NewCircuitRepository(db *gorm.DB) CircuitRepository {
	return &circuitRepository{db: db}
}

// ListCircuits returns the circuits ordered by name.
func (r *circuitRepository) ListCircuits(ctx context.Context, filters *filters.CircuitFilter) ([]models.Circuit, error) {
	query := r.db.WithContext(ctx).Order("name ASC")

	if filters != nil {
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.Type != "" {
			query = query.Where("type = ?", filters.Type)
		}
	}

	circuits := []models.Circuit{}
	if err := query.Find(&circuits).Error; err != nil {
		return nil, err
	}

	return circuits, nil
}

// GetCircuitByID returns gorm.ErrRecordNotFound when the circuit doesn't exist.
func (r *circuitRepository) GetCircuitByID(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	var circuit models.Circuit
	if err := r.db.WithContext(ctx).First(&circuit, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &circuit, nil
}

// CreateCircuit inserts the circuit, the id is filled by the database.
func (r *circuitRepository) CreateCircuit(ctx context.Context, circuit *models.Circuit) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(circuit).Error, messages.ErrUnknownReference)
}

// UpdateCircuit replaces every column of the circuit.
func (r *circuitRepository) UpdateCircuit(ctx context.Context, circuit *models.Circuit) error {
	result := r.db.WithContext(ctx).
		Model(circuit).
		Select("*").
		Omit("id", "created_at").
		Updates(circuit)
	if result.Error != nil {
		return database.TranslateError(result.Error, messages.ErrUnknownReference)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteCircuit fails with messages.ErrReferencedRecord while races point to it.
func (r *circuitRepository) DeleteCircuit(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Circuit{}, "id = ?", id)
	if result.Error != nil {
		return database.TranslateError(result.Error, messages.ErrReferencedRecord)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// SetTimezone stores a resolved timezone.
func (r *circuitRepository) SetTimezone(ctx context.Context, id uuid.UUID, timezone string) error {
	return r.db.WithContext(ctx).
		Model(&models.Circuit{}).
		Where("id = ?", id).
		Update("timezone", timezone).Error
}

// GetBestLap returns the fastest lap ever recorded on the circuit, nil when there is none.
// Equal times go to the lap recorded first.
func (r *circuitRepository) GetBestLap(ctx context.Context, id uuid.UUID) (*BestLap, error) {
	var laps []BestLap

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			l.lap_time,
			l.driver_id,
			d.name AS driver_name,
			l.race_id
		FROM laps l
		JOIN races r ON r.id = l.race_id
		JOIN drivers d ON d.id = l.driver_id
		WHERE r.circuit_id = ?
		ORDER BY l.lap_time ASC, l.created_at ASC, l.id ASC
		LIMIT 1
	`, id).Scan(&laps).Error
	if err != nil {
		return nil, err
	}

	if len(laps) == 0 {
		return nil, nil
	}

	return &laps[0], nil
}
