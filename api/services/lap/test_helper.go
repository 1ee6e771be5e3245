package lapservice

import (
	"familykarting/api/services/testutil"
	"familykarting/api/services/testutil/resultsmock"
	"familykarting/pkg/database/models"
	"familykarting/pkg/logger"

	"github.com/google/uuid"
)

var (
	raceID  = uuid.MustParse("00000000-0000-0000-0000-00000000aaa1")
	lapID   = uuid.MustParse("00000000-0000-0000-0000-00000000bb01")
	driverA = uuid.MustParse("00000000-0000-0000-0000-00000000dd01")
	driverB = uuid.MustParse("00000000-0000-0000-0000-00000000dd02")
)

type mocks struct {
	laps    *testutil.MockLapRepository
	races   *testutil.MockRaceRepository
	results *resultsmock.MockResultsService
}

// Helper to initialize the mocks.
func setupTestService() (*LapService, *mocks) {
	m := &mocks{
		laps:    new(testutil.MockLapRepository),
		races:   new(testutil.MockRaceRepository),
		results: new(resultsmock.MockResultsService),
	}

	service := &LapService{
		LapRepository:  m.laps,
		RaceRepository: m.races,
		results:        m.results,
		logger:         logger.Discard(),
	}

	return service, m
}

func getMockRace(status, raceType string) *models.Race {
	return &models.Race{ID: raceID, Status: status, RaceType: raceType}
}

func getMockLap() *models.Lap {
	return &models.Lap{ID: lapID, RaceID: raceID, DriverID: driverA, LapTime: 45.2}
}
