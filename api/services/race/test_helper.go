package raceservice

import (
	"time"

	"familykarting/api/services/testutil"
	"familykarting/api/services/testutil/resultsmock"
	"familykarting/pkg/database/models"
	"familykarting/pkg/logger"
	"familykarting/pkg/weather"

	"github.com/google/uuid"
)

var (
	raceID    = uuid.MustParse("00000000-0000-0000-0000-00000000aaa1")
	circuitID = uuid.MustParse("00000000-0000-0000-0000-00000000cc01")
	driverA   = uuid.MustParse("00000000-0000-0000-0000-00000000dd01")
	driverB   = uuid.MustParse("00000000-0000-0000-0000-00000000dd02")

	fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)
)

type mocks struct {
	races   *testutil.MockRaceRepository
	results *resultsmock.MockResultsService
	weather *testutil.MockWeatherProvider
}

// Helper to initialize the mocks.
func setupTestService() (*RaceService, *mocks) {
	m := &mocks{
		races:   new(testutil.MockRaceRepository),
		results: new(resultsmock.MockResultsService),
		weather: new(testutil.MockWeatherProvider),
	}

	service := &RaceService{
		RaceRepository: m.races,
		results:        m.results,
		weather:        m.weather,
		location:       time.UTC,
		logger:         logger.Discard(),
		now:            func() time.Time { return fixedNow },
	}

	return service, m
}

func ptr[T any](v T) *T { return &v }

func getMockCircuit() *models.Circuit {
	return &models.Circuit{
		ID:           circuitID,
		Name:         "Kartódromo",
		LocationLat:  ptr(38.72),
		LocationLong: ptr(-9.14),
		Timezone:     ptr("Europe/Lisbon"),
	}
}

func getMockRace(status, raceType string) *models.Race {
	return &models.Race{
		ID:        raceID,
		RaceDate:  time.Date(2025, time.May, 4, 23, 30, 0, 0, time.UTC),
		Status:    status,
		RaceType:  raceType,
		CircuitID: circuitID,
		Circuit:   getMockCircuit(),
	}
}

func getMockReport() *weather.Report {
	return &weather.Report{
		Data: weather.Data{
			Temp:        21.5,
			Condition:   "Clear",
			Description: "Clear sky",
			Icon:        "01d",
			Humidity:    45,
			WindSpeed:   12,
		},
		Date:     "2025-05-05",
		Timezone: "Europe/Lisbon",
	}
}
