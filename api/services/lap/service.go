package lapservice

import (
	"context"

	"familykarting/api/dto"
	"familykarting/api/filters"
	laprepo "familykarting/api/repositories/lap"
	racerepo "familykarting/api/repositories/race"
	resultsservice "familykarting/api/services/results"
	"familykarting/pkg/database"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ResultsRefresher recalculates the stored results of a race.
type ResultsRefresher interface {
	Refresh(ctx context.Context, raceID uuid.UUID) (*resultsservice.Outcome, error)
}

// LapService with the lap and race repositories.
type LapService struct {
	LapRepository  laprepo.LapRepository
	RaceRepository racerepo.RaceRepository
	results        ResultsRefresher
	logger         *logrus.Logger
}

// LapServiceDeps is the dependency list for the lap service.
type LapServiceDeps struct {
	DB      *gorm.DB
	Results ResultsRefresher
	Logger  *logrus.Logger
}

// NewLapService creates a lap service.
func NewLapService(deps *LapServiceDeps) *LapService {
	return &LapService{
		LapRepository:  laprepo.NewLapRepository(deps.DB),
		RaceRepository: racerepo.NewRaceRepository(deps.DB),
		results:        deps.Results,
		logger:         deps.Logger,
	}
}

// ListLaps returns the laps matching the filters.
func (ls *LapService) ListLaps(ctx context.Context, filters *filters.LapFilter) ([]models.Lap, error) {
	return ls.LapRepository.ListLaps(ctx, filters)
}

// CreateLap records a single lap.
func (ls *LapService) CreateLap(ctx context.Context, input *dto.LapInput) (*models.Lap, error) {
	laps, err := ls.CreateLaps(ctx, &dto.LapBatchInput{
		RaceID: input.RaceID,
		Laps:   []dto.LapEntry{{DriverID: input.DriverID, LapTime: input.LapTime}},
	})
	if err != nil {
		return nil, err
	}

	return &laps[0], nil
}

// CreateLaps records many laps of one race, ranking the race again when finished.
func (ls *LapService) CreateLaps(ctx context.Context, input *dto.LapBatchInput) ([]models.Lap, error) {
	race, err := ls.RaceRepository.GetRaceByID(ctx, input.RaceID)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrRaceNotFound)
	}

	laps := make([]models.Lap, 0, len(input.Laps))
	for _, entry := range input.Laps {
		if entry.LapTime <= 0 {
			return nil, messages.ErrInvalidLapTime
		}
		laps = append(laps, models.Lap{RaceID: race.ID, DriverID: entry.DriverID, LapTime: entry.LapTime})
	}

	if err := ls.LapRepository.CreateLaps(ctx, laps); err != nil {
		return nil, err
	}

	ls.logger.WithFields(logrus.Fields{"race_id": race.ID, "laps": len(laps)}).Info("Laps recorded")
	ls.refresh(ctx, race)

	return laps, nil
}

// UpdateLap changes the driver or the time of a lap.
func (ls *LapService) UpdateLap(ctx context.Context, id uuid.UUID, input *dto.LapInput) (*models.Lap, error) {
	if input.LapTime <= 0 {
		return nil, messages.ErrInvalidLapTime
	}

	lap, err := ls.LapRepository.GetLapByID(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrLapNotFound)
	}

	// A lap stays on its race, moving it would be a delete and a create.
	lap.DriverID = input.DriverID
	lap.LapTime = input.LapTime
	lap.Driver = nil
	lap.Race = nil

	if err := ls.LapRepository.UpdateLap(ctx, lap); err != nil {
		return nil, database.WrapNotFound(err, messages.ErrLapNotFound)
	}

	ls.refreshByID(ctx, lap.RaceID)
	return lap, nil
}

// DeleteLap removes a lap, ranking its race again when finished.
func (ls *LapService) DeleteLap(ctx context.Context, id uuid.UUID) error {
	lap, err := ls.LapRepository.GetLapByID(ctx, id)
	if err != nil {
		return database.WrapNotFound(err, messages.ErrLapNotFound)
	}

	if err := ls.LapRepository.DeleteLap(ctx, id); err != nil {
		return database.WrapNotFound(err, messages.ErrLapNotFound)
	}

	ls.refreshByID(ctx, lap.RaceID)
	return nil
}

func (ls *LapService) refreshByID(ctx context.Context, raceID uuid.UUID) {
	race, err := ls.RaceRepository.GetRaceByID(ctx, raceID)
	if err != nil {
		ls.logger.WithError(err).WithField("race_id", raceID).Error("Couldn't load the race of the lap")
		return
	}
	ls.refresh(ctx, race)
}

// refresh ranks a finished race again, the lap change itself is already saved.
func (ls *LapService) refresh(ctx context.Context, race *models.Race) {
	if !race.CountsForResults() {
		return
	}

	if _, err := ls.results.Refresh(ctx, race.ID); err != nil {
		ls.logger.WithError(err).WithField("race_id", race.ID).Error("Couldn't refresh the race results")
	}
}
