package resultrepo

import (
	"context"
	"time"

	"familykarting/pkg/database/models"
	"familykarting/pkg/scoring"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type ResultRepository interface {
	GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error)
	GetLapsByRace(ctx context.Context, raceID uuid.UUID) ([]scoring.Lap, error)
	ReplaceRaceResults(ctx context.Context, raceID uuid.UUID, results []scoring.Result) error
	ClearRaceResults(ctx context.Context, raceID uuid.UUID) error
	GetResultRows(ctx context.Context) ([]scoring.ResultRow, error)
}

// Result repository structure.
type resultRepository struct {
	db *gorm.DB
}

// rawResultRow is a result before the circuit timezone is loaded.
type rawResultRow struct {
	RaceID          uuid.UUID
	DriverID        uuid.UUID
	DriverName      string
	CircuitName     string
	CircuitTimezone *string
	Position        *int
	Points          *int
	RaceDate        time.Time
	RaceType        string
}

// NewResultRepository creates a result repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

// GetRaceByID returns gorm.ErrRecordNotFound when the race doesn't exist.
func (r *resultRepository) GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	var race models.Race
	if err := r.db.WithContext(ctx).First(&race, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &race, nil
}

// GetLapsByRace returns the laps of the race in recording order.
func (r *resultRepository) GetLapsByRace(ctx context.Context, raceID uuid.UUID) ([]scoring.Lap, error) {
	laps := []scoring.Lap{}

	err := r.db.WithContext(ctx).
		Model(&models.Lap{}).
		Select("driver_id", "lap_time").
		Where("race_id = ?", raceID).
		Order("created_at ASC, id ASC").
		Scan(&laps).Error
	if err != nil {
		return nil, err
	}

	return laps, nil
}

// ReplaceRaceResults writes the results of a race in one transaction.
// Previous results are cleared first, so participants missing from results end up without a position
// and the unique position index never sees two drivers on the same place.
func (r *resultRepository) ReplaceRaceResults(ctx context.Context, raceID uuid.UUID, results []scoring.Result) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearResults(tx, raceID); err != nil {
			return err
		}

		if len(results) == 0 {
			return nil
		}

		rows := make([]models.RaceDriver, 0, len(results))
		for _, result := range results {
			position, points := result.Position, result.Points
			rows = append(rows, models.RaceDriver{
				RaceID:   raceID,
				DriverID: result.DriverID,
				Position: &position,
				Points:   &points,
			})
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "race_id"}, {Name: "driver_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"position", "points", "updated_at"}),
			}).
			Create(&rows).Error
	})
}

// ClearRaceResults removes the position and points of every participant, they stay registered.
func (r *resultRepository) ClearRaceResults(ctx context.Context, raceID uuid.UUID) error {
	return clearResults(r.db.WithContext(ctx), raceID)
}

func clearResults(db *gorm.DB, raceID uuid.UUID) error {
	return db.Model(&models.RaceDriver{}).
		Where("race_id = ? AND position IS NOT NULL", raceID).
		Updates(map[string]any{"position": nil, "points": nil, "updated_at": time.Now()}).Error
}

// GetResultRows returns every scored result with its race, ordered by race date and position.
func (r *resultRepository) GetResultRows(ctx context.Context) ([]scoring.ResultRow, error) {
	raw := []rawResultRow{}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			rd.race_id,
			rd.driver_id,
			d.name AS driver_name,
			c.name AS circuit_name,
			c.timezone AS circuit_timezone,
			rd.position,
			rd.points,
			r.race_date,
			r.race_type
		FROM race_drivers rd
		JOIN races r ON r.id = rd.race_id
		JOIN drivers d ON d.id = rd.driver_id
		JOIN circuits c ON c.id = r.circuit_id
		WHERE rd.points IS NOT NULL
		ORDER BY r.race_date ASC, rd.position ASC
	`).Scan(&raw).Error
	if err != nil {
		return nil, err
	}

	locations := make(map[string]*time.Location)
	rows := make([]scoring.ResultRow, 0, len(raw))
	for _, row := range raw {
		rows = append(rows, scoring.ResultRow{
			RaceID:      row.RaceID,
			DriverID:    row.DriverID,
			DriverName:  row.DriverName,
			CircuitName: row.CircuitName,
			Position:    row.Position,
			Points:      row.Points,
			RaceDate:    row.RaceDate,
			RaceType:    row.RaceType,
			Location:    loadLocation(locations, row.CircuitTimezone),
		})
	}

	return rows, nil
}

// loadLocation loads a timezone once per call, invalid names are treated as unknown.
func loadLocation(cache map[string]*time.Location, name *string) *time.Location {
	if name == nil || *name == "" {
		return nil
	}

	if loc, ok := cache[*name]; ok {
		return loc
	}

	loc, err := time.LoadLocation(*name)
	if err != nil {
		loc = nil
	}
	cache[*name] = loc

	return loc
}
