package circuitservice

import (
	"time"

	"familykarting/api/dto"
	"familykarting/api/services/testutil"
	"familykarting/pkg/database/models"
	"familykarting/pkg/hours"
	"familykarting/pkg/logger"

	"github.com/google/uuid"
)

var circuitID = uuid.MustParse("00000000-0000-0000-0000-00000000cc01")

// Monday 2026-10-19 at 10:30 in Lisbon.
var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

type mocks struct {
	circuits  *testutil.MockCircuitRepository
	races     *testutil.MockRaceRepository
	timezones *testutil.MockWeatherProvider
}

// Helper to initialize the mocks.
func setupTestService() (*CircuitService, *mocks) {
	m := &mocks{
		circuits:  new(testutil.MockCircuitRepository),
		races:     new(testutil.MockRaceRepository),
		timezones: new(testutil.MockWeatherProvider),
	}

	service := &CircuitService{
		CircuitRepository: m.circuits,
		RaceRepository:    m.races,
		timezones:         m.timezones,
		logger:            logger.Discard(),
		now:               func() time.Time { return fixedNow },
	}

	return service, m
}

func ptr[T any](v T) *T { return &v }

func getMockCircuit() *models.Circuit {
	circuit := &models.Circuit{
		ID:           circuitID,
		Name:         "Kartódromo Internacional",
		Type:         models.CircuitTypeOutdoor,
		Status:       models.CircuitStatusActive,
		LocationLat:  ptr(38.72),
		LocationLong: ptr(-9.14),
	}
	circuit.SetSchedule(&hours.OperatingHours{
		Monday:   hours.DayHours{IsOpen: true, OpenTime: "10:00", CloseTime: "19:00"},
		Saturday: hours.DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "20:00"},
	})
	return circuit
}

func getMockInput() *dto.CircuitInput {
	return &dto.CircuitInput{
		Name:         "Kartódromo Internacional",
		LocationLat:  ptr(38.72),
		LocationLong: ptr(-9.14),
	}
}
