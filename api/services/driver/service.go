package driverservice

import (
	"context"

	"familykarting/api/dto"
	driverrepo "familykarting/api/repositories/driver"
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

// DriverService with the driver repository.
type DriverService struct {
	DriverRepository driverrepo.DriverRepository
	results          ResultsRefresher
	logger           *logrus.Logger
}

// DriverServiceDeps is the dependency list for the driver service.
type DriverServiceDeps struct {
	DB      *gorm.DB
	Results ResultsRefresher
	Logger  *logrus.Logger
}

// NewDriverService creates a driver service.
func NewDriverService(deps *DriverServiceDeps) *DriverService {
	return &DriverService{
		DriverRepository: driverrepo.NewDriverRepository(deps.DB),
		results:          deps.Results,
		logger:           deps.Logger,
	}
}

// ListDrivers returns every driver with the competitive totals.
func (ds *DriverService) ListDrivers(ctx context.Context) ([]dto.DriverSummary, error) {
	drivers, err := ds.DriverRepository.ListDrivers(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.DriverSummary, 0, len(drivers))
	for _, d := range drivers {
		summaries = append(summaries, dto.DriverSummary{
			Driver:      d.Driver,
			TotalPoints: d.TotalPoints,
			RacesCount:  d.RacesCount,
		})
	}

	return summaries, nil
}

// GetDriverDetail returns the driver, its totals, the best lap and every race, newest first.
func (ds *DriverService) GetDriverDetail(ctx context.Context, id uuid.UUID) (*dto.DriverDetail, error) {
	driver, err := ds.DriverRepository.GetDriverByID(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrDriverNotFound)
	}

	rows, err := ds.DriverRepository.GetDriverResults(ctx, id)
	if err != nil {
		return nil, err
	}

	bestLap, err := ds.DriverRepository.GetDriverBestLap(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &dto.DriverDetail{
		Driver:  driver,
		BestLap: bestLap,
		Results: make([]dto.DriverRaceResult, 0, len(rows)),
	}

	for _, row := range rows {
		detail.Results = append(detail.Results, dto.DriverRaceResult{
			RaceID:      row.RaceID,
			RaceDate:    row.RaceDate,
			RaceType:    row.RaceType,
			CircuitName: row.CircuitName,
			Position:    row.Position,
			Points:      row.Points,
		})

		// Testing sessions and unranked participations don't count.
		if row.RaceType != models.RaceTypeRace || row.Position == nil {
			continue
		}

		detail.RacesCount++
		if row.Points != nil {
			detail.TotalPoints += *row.Points
		}
		if *row.Position == 1 {
			detail.Wins++
		}
	}

	return detail, nil
}

// CreateDriver stores a new driver.
func (ds *DriverService) CreateDriver(ctx context.Context, input *dto.DriverInput) (*models.Driver, error) {
	driver := &models.Driver{}
	input.ToModel(driver)

	if err := ds.DriverRepository.CreateDriver(ctx, driver); err != nil {
		return nil, err
	}

	ds.logger.WithFields(logrus.Fields{"driver_id": driver.ID, "name": driver.Name}).Info("Driver created")
	return driver, nil
}

// UpdateDriver replaces the editable fields of a driver.
func (ds *DriverService) UpdateDriver(ctx context.Context, id uuid.UUID, input *dto.DriverInput) (*models.Driver, error) {
	driver, err := ds.DriverRepository.GetDriverByID(ctx, id)
	if err != nil {
		return nil, database.WrapNotFound(err, messages.ErrDriverNotFound)
	}

	input.ToModel(driver)
	if err := ds.DriverRepository.UpdateDriver(ctx, driver); err != nil {
		return nil, database.WrapNotFound(err, messages.ErrDriverNotFound)
	}

	return driver, nil
}

// DeleteDriver removes the driver along with its laps and participations.
// The races it was ranked on are ranked again without it.
func (ds *DriverService) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	rows, err := ds.DriverRepository.GetDriverResults(ctx, id)
	if err != nil {
		return err
	}

	if err := ds.DriverRepository.DeleteDriver(ctx, id); err != nil {
		return database.WrapNotFound(err, messages.ErrDriverNotFound)
	}

	ds.logger.WithField("driver_id", id).Info("Driver deleted")

	for _, row := range rows {
		if row.Position == nil {
			continue
		}
		if _, err := ds.results.Refresh(ctx, row.RaceID); err != nil {
			ds.logger.WithError(err).WithField("race_id", row.RaceID).Error("Couldn't refresh the race results after deleting a driver")
		}
	}

	return nil
}
