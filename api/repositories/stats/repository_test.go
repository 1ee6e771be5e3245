package statsrepo

import (
	"context"
	"testing"
	"time"

	"familykarting/api/repositories/testutil"
	"familykarting/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewStatsRepository(t *testing.T) {
	repository := NewStatsRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestGetCounts(t *testing.T) {
	db, cleanup := testutil.NewTestConnection(t)
	defer cleanup()

	repository := NewStatsRepository(db)
	testutil.Truncate(t, db)

	circuit := testutil.SeedCircuit(t, db, "Baltar", nil)
	ana := testutil.SeedDriver(t, db, "Ana")
	testutil.SeedDriver(t, db, "Rui")
	done := testutil.SeedRace(t, db, circuit.ID, time.Now(), models.RaceStatusDone, models.RaceTypeRace)
	testutil.SeedRace(t, db, circuit.ID, time.Now(), models.RaceStatusPlanned, models.RaceTypeRace)
	testutil.SeedLap(t, db, done.ID, ana.ID, 44.1, time.Now())

	counts, err := repository.GetCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &Counts{Circuits: 1, Drivers: 2, RacesDone: 1, Laps: 1}, counts)
}
