package driverservice

import (
	"time"

	driverrepo "familykarting/api/repositories/driver"
	"familykarting/api/services/testutil"
	"familykarting/api/services/testutil/resultsmock"
	"familykarting/pkg/database/models"
	"familykarting/pkg/logger"

	"github.com/google/uuid"
)

var (
	driverID  = uuid.MustParse("00000000-0000-0000-0000-00000000dd01")
	raceOne   = uuid.MustParse("00000000-0000-0000-0000-00000000aaa1")
	raceTwo   = uuid.MustParse("00000000-0000-0000-0000-00000000aaa2")
	raceThree = uuid.MustParse("00000000-0000-0000-0000-00000000aaa3")
)

// Helper to initialize the mocks.
func setupTestService() (*DriverService, *testutil.MockDriverRepository, *resultsmock.MockResultsService) {
	repo := new(testutil.MockDriverRepository)
	results := new(resultsmock.MockResultsService)

	service := &DriverService{
		DriverRepository: repo,
		results:          results,
		logger:           logger.Discard(),
	}

	return service, repo, results
}

func intPtr(v int) *int { return &v }

func getMockDriver() *models.Driver {
	return &models.Driver{ID: driverID, Name: "Ana"}
}

// A win, a testing session and a participation without result, newest first.
func getMockResultRows() []driverrepo.DriverResultRow {
	return []driverrepo.DriverResultRow{
		{
			RaceID: raceThree, RaceDate: time.Date(2025, time.July, 6, 10, 0, 0, 0, time.UTC),
			RaceType: models.RaceTypeRace, CircuitName: "Indoor",
		},
		{
			RaceID: raceTwo, RaceDate: time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC),
			RaceType: models.RaceTypeTesting, CircuitName: "Indoor",
		},
		{
			RaceID: raceOne, RaceDate: time.Date(2025, time.May, 4, 10, 0, 0, 0, time.UTC),
			RaceType: models.RaceTypeRace, CircuitName: "Outdoor", Position: intPtr(1), Points: intPtr(10),
		},
	}
}
