package testutil

import (
	"testing"
	"time"

	"familykarting/pkg/database/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Truncate clears every table between tests.
func Truncate(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Exec("TRUNCATE TABLE laps, race_drivers, races, drivers, circuits, admins CASCADE").Error)
}

// SeedCircuit creates a circuit, lat/lon are optional.
func SeedCircuit(t *testing.T, db *gorm.DB, name string, timezone *string) *models.Circuit {
	t.Helper()

	circuit := &models.Circuit{
		Name:     name,
		Type:     models.CircuitTypeOutdoor,
		Status:   models.CircuitStatusActive,
		Timezone: timezone,
	}
	require.NoError(t, db.Create(circuit).Error)

	return circuit
}

// SeedDriver creates a driver.
func SeedDriver(t *testing.T, db *gorm.DB, name string) *models.Driver {
	t.Helper()

	driver := &models.Driver{Name: name}
	require.NoError(t, db.Create(driver).Error)

	return driver
}

// SeedRace creates a race on the circuit.
func SeedRace(t *testing.T, db *gorm.DB, circuitID uuid.UUID, date time.Time, status, raceType string) *models.Race {
	t.Helper()

	race := &models.Race{
		RaceDate:  date,
		Status:    status,
		RaceType:  raceType,
		CircuitID: circuitID,
	}
	require.NoError(t, db.Omit("Circuit", "Drivers", "Laps").Create(race).Error)

	return race
}

// SeedLap creates a lap, the created_at is spaced so the recording order is stable.
func SeedLap(t *testing.T, db *gorm.DB, raceID, driverID uuid.UUID, lapTime float64, createdAt time.Time) *models.Lap {
	t.Helper()

	lap := &models.Lap{
		RaceID:    raceID,
		DriverID:  driverID,
		LapTime:   lapTime,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Omit("Driver", "Race").Create(lap).Error)

	return lap
}

// SeedResult registers a participant, position and points may be nil.
func SeedResult(t *testing.T, db *gorm.DB, raceID, driverID uuid.UUID, position, points *int) {
	t.Helper()

	require.NoError(t, db.Omit("Driver", "Race").Create(&models.RaceDriver{
		RaceID:   raceID,
		DriverID: driverID,
		Position: position,
		Points:   points,
	}).Error)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
