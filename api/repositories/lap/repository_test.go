package laprepo

import (
	"context"
	"testing"
	"time"

	"familykarting/api/filters"
	"familykarting/api/repositories/testutil"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewLapRepository(t *testing.T) {
	repository := NewLapRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestLapRepository(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewLapRepository(db)
	ctx := context.Background()

	testutil.Truncate(t, db)
	circuit := testutil.SeedCircuit(t, db, "Baltar", nil)
	ana := testutil.SeedDriver(t, db, "Ana")
	rui := testutil.SeedDriver(t, db, "Rui")
	race := testutil.SeedRace(t, db, circuit.ID, time.Now(), models.RaceStatusDone, models.RaceTypeRace)

	t.Run("batchCreateRegistersParticipants", func(t *testing.T) {
		laps := []models.Lap{
			{RaceID: race.ID, DriverID: ana.ID, LapTime: 45.2},
			{RaceID: race.ID, DriverID: ana.ID, LapTime: 44.8},
			{RaceID: race.ID, DriverID: rui.ID, LapTime: 46.0},
		}
		require.NoError(t, repository.CreateLaps(ctx, laps))
		for _, lap := range laps {
			assert.NotEqual(t, uuid.Nil, lap.ID)
		}

		var participants int64
		require.NoError(t, db.Model(&models.RaceDriver{}).Where("race_id = ?", race.ID).Count(&participants).Error)
		assert.Equal(t, int64(2), participants)

		listed, err := repository.ListLaps(ctx, &filters.LapFilter{RaceID: &race.ID, DriverID: &ana.ID})
		require.NoError(t, err)
		require.Len(t, listed, 2)
		assert.Equal(t, 44.8, listed[0].LapTime)
		assert.Equal(t, "Ana", listed[0].Driver.Name)
	})

	t.Run("invalidLapTime", func(t *testing.T) {
		err := repository.CreateLaps(ctx, []models.Lap{{RaceID: race.ID, DriverID: ana.ID, LapTime: -1}})
		assert.Error(t, err)
	})

	t.Run("unknownRace", func(t *testing.T) {
		err := repository.CreateLaps(ctx, []models.Lap{{RaceID: uuid.New(), DriverID: ana.ID, LapTime: 40}})
		assert.ErrorIs(t, err, messages.ErrUnknownReference)
	})

	t.Run("updateAndDelete", func(t *testing.T) {
		laps := []models.Lap{{RaceID: race.ID, DriverID: ana.ID, LapTime: 47}}
		require.NoError(t, repository.CreateLaps(ctx, laps))

		lap := laps[0]
		lap.LapTime = 43.5
		lap.DriverID = rui.ID
		require.NoError(t, repository.UpdateLap(ctx, &lap))

		found, err := repository.GetLapByID(ctx, lap.ID)
		require.NoError(t, err)
		assert.Equal(t, 43.5, found.LapTime)
		assert.Equal(t, rui.ID, found.DriverID)

		require.NoError(t, repository.DeleteLap(ctx, lap.ID))
		assert.ErrorIs(t, repository.DeleteLap(ctx, lap.ID), gorm.ErrRecordNotFound)

		_, err = repository.GetLapByID(ctx, lap.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
