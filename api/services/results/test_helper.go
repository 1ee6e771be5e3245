package resultsservice

import (
	"time"

	"familykarting/api/services/testutil"
	"familykarting/pkg/database/models"
	"familykarting/pkg/logger"
	"familykarting/pkg/scoring"

	"github.com/google/uuid"
)

var (
	raceID  = uuid.MustParse("00000000-0000-0000-0000-00000000aaa1")
	driverA = uuid.MustParse("00000000-0000-0000-0000-00000000dd01")
	driverB = uuid.MustParse("00000000-0000-0000-0000-00000000dd02")
)

// Helper to initialize the mocks.
func setupTestService() (*ResultsService, *testutil.MockResultRepository) {
	store := new(testutil.MockResultRepository)

	service := NewResultsService(&ResultsServiceDeps{
		Store:  store,
		Logger: logger.Discard(),
	})

	return service, store
}

// Return a race with the given status and type.
func getMockRace(status, raceType string) *models.Race {
	return &models.Race{
		ID:        raceID,
		RaceDate:  time.Date(2025, time.May, 4, 10, 0, 0, 0, time.UTC),
		Status:    status,
		RaceType:  raceType,
		CircuitID: uuid.MustParse("00000000-0000-0000-0000-00000000cc01"),
	}
}

// Laps where B is recorded first but A has the fastest lap.
func getMockLaps() []scoring.Lap {
	return []scoring.Lap{
		{DriverID: driverB, LapTime: 46.0},
		{DriverID: driverA, LapTime: 45.2},
		{DriverID: driverA, LapTime: 44.8},
	}
}

func getExpectedResults() []scoring.Result {
	return []scoring.Result{
		{RaceID: raceID, DriverID: driverA, BestLap: 44.8, Position: 1, Points: 10},
		{RaceID: raceID, DriverID: driverB, BestLap: 46.0, Position: 2, Points: 8},
	}
}
