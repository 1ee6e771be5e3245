package scoreboardservice

import (
	"context"
	"time"

	"familykarting/api/filters"
	"familykarting/pkg/metrics"
	"familykarting/pkg/scoring"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ResultRowReader loads every stored result joined with its race.
type ResultRowReader interface {
	GetResultRows(ctx context.Context) ([]scoring.ResultRow, error)
}

// ScoreboardService builds the leaderboards from the stored results.
type ScoreboardService struct {
	rows     ResultRowReader
	location *time.Location
	logger   *logrus.Logger
}

// ScoreboardServiceDeps is the dependency list for the scoreboard service.
type ScoreboardServiceDeps struct {
	Rows     ResultRowReader
	Location *time.Location
	Logger   *logrus.Logger
}

// NewScoreboardService creates a scoreboard service.
func NewScoreboardService(deps *ScoreboardServiceDeps) *ScoreboardService {
	return &ScoreboardService{
		rows:     deps.Rows,
		location: deps.Location,
		logger:   deps.Logger,
	}
}

// GetScoreboard returns the overall and yearly standings.
// A failed read degrades to an empty scoreboard.
func (s *ScoreboardService) GetScoreboard(ctx context.Context, filter *filters.ScoreboardFilter) scoring.Scoreboard {
	rows, err := s.rows.GetResultRows(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Couldn't load the results, returning an empty scoreboard")
		rows = nil
	}

	scoreboard := scoring.BuildScoreboard(rows, s.location)
	metrics.ScoreboardBuildsTotal.Inc()

	if filter == nil || filter.Year == 0 {
		return scoreboard
	}

	// Overall and the year list are kept, only the yearly boards are narrowed.
	board, found := scoreboard.Yearly[filter.Year]
	if !found {
		board = scoring.Board{Entries: []scoring.Entry{}, Results: map[uuid.UUID][]scoring.DriverResult{}}
	}
	scoreboard.Yearly = map[int]scoring.Board{filter.Year: board}

	return scoreboard
}
