package statsrepo

import (
	"context"

	"gorm.io/gorm"
)

// Public Interface.
type StatsRepository interface {
	GetCounts(ctx context.Context) (*Counts, error)
}

// Stats repository structure.
type statsRepository struct {
	db *gorm.DB
}

// Counts of the main tables.
type Counts struct {
	Circuits  int64
	Drivers   int64
	RacesDone int64
	Laps      int64
}

// NewStatsRepository creates a stats repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// GetCounts counts everything in a single round trip.
func (r *statsRepository) GetCounts(ctx context.Context) (*Counts, error) {
	var counts Counts

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*) FROM circuits) AS circuits,
			(SELECT COUNT(*) FROM drivers) AS drivers,
			(SELECT COUNT(*) FROM races WHERE status = 'done') AS races_done,
			(SELECT COUNT(*) FROM laps) AS laps
	`).Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	return &counts, nil
}
