package driverservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"familykarting/api/dto"
	driverrepo "familykarting/api/repositories/driver"
	resultsservice "familykarting/api/services/results"
	"familykarting/api/services/testutil"
	"familykarting/api/services/testutil/resultsmock"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewDriverService(t *testing.T) {
	service := NewDriverService(&DriverServiceDeps{DB: new(gorm.DB)})
	assert.NotNil(t, service)
	assert.NotNil(t, service.DriverRepository)
}

func TestListDrivers(t *testing.T) {
	ctx := context.Background()

	t.Run("summaries", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("ListDrivers", ctx).Return([]driverrepo.DriverSummary{
			{Driver: *getMockDriver(), TotalPoints: 18, RacesCount: 2},
		}, nil)

		drivers, err := service.ListDrivers(ctx)
		require.NoError(t, err)
		require.Len(t, drivers, 1)
		assert.Equal(t, "Ana", drivers[0].Name)
		assert.Equal(t, 18, drivers[0].TotalPoints)
		assert.Equal(t, 2, drivers[0].RacesCount)
	})

	t.Run("databaseError", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("ListDrivers", ctx).Return(nil, errors.New(testutil.DatabaseError))

		drivers, err := service.ListDrivers(ctx)
		assert.ErrorContains(t, err, testutil.DatabaseError)
		assert.Nil(t, drivers)
	})
}

func TestGetDriverDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("totalsSkipTestingAndUnranked", func(t *testing.T) {
		service, repo, _ := setupTestService()
		best := 41.3
		repo.On("GetDriverByID", ctx, driverID).Return(getMockDriver(), nil)
		repo.On("GetDriverResults", ctx, driverID).Return(getMockResultRows(), nil)
		repo.On("GetDriverBestLap", ctx, driverID).Return(&best, nil)

		detail, err := service.GetDriverDetail(ctx, driverID)
		require.NoError(t, err)

		assert.Equal(t, 10, detail.TotalPoints)
		assert.Equal(t, 1, detail.RacesCount)
		assert.Equal(t, 1, detail.Wins)
		assert.Equal(t, 41.3, *detail.BestLap)
		require.Len(t, detail.Results, 3)
		assert.Equal(t, dto.DriverRaceResult{
			RaceID:      raceOne,
			RaceDate:    time.Date(2025, time.May, 4, 10, 0, 0, 0, time.UTC),
			RaceType:    models.RaceTypeRace,
			CircuitName: "Outdoor",
			Position:    intPtr(1),
			Points:      intPtr(10),
		}, detail.Results[2])
		testutil.VerifyAllMocks(t, repo)
	})

	t.Run("noLaps", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("GetDriverByID", ctx, driverID).Return(getMockDriver(), nil)
		repo.On("GetDriverResults", ctx, driverID).Return([]driverrepo.DriverResultRow{}, nil)
		repo.On("GetDriverBestLap", ctx, driverID).Return(nil, nil)

		detail, err := service.GetDriverDetail(ctx, driverID)
		require.NoError(t, err)
		assert.Nil(t, detail.BestLap)
		assert.NotNil(t, detail.Results)
		assert.Zero(t, detail.TotalPoints)
	})

	t.Run("notFound", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("GetDriverByID", ctx, driverID).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.GetDriverDetail(ctx, driverID)
		assert.ErrorIs(t, err, messages.ErrDriverNotFound)
	})
}

func TestCreateAndUpdateDriver(t *testing.T) {
	ctx := context.Background()
	input := &dto.DriverInput{Name: "Bruno", PhotoURL: "https://cdn.example.com/bruno.jpg"}

	t.Run("create", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("CreateDriver", ctx, mock.MatchedBy(func(d *models.Driver) bool {
			return d.Name == "Bruno" && d.PhotoURL == input.PhotoURL
		})).Return(nil)

		driver, err := service.CreateDriver(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, "Bruno", driver.Name)
	})

	t.Run("update", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("GetDriverByID", ctx, driverID).Return(getMockDriver(), nil)
		repo.On("UpdateDriver", ctx, mock.Anything).Return(nil)

		driver, err := service.UpdateDriver(ctx, driverID, input)
		require.NoError(t, err)
		assert.Equal(t, driverID, driver.ID)
		assert.Equal(t, "Bruno", driver.Name)
	})

	t.Run("updateNotFound", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("GetDriverByID", ctx, driverID).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.UpdateDriver(ctx, driverID, input)
		assert.ErrorIs(t, err, messages.ErrDriverNotFound)
	})
}

func TestDeleteDriver(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshesRankedRaces", func(t *testing.T) {
		service, repo, results := setupTestService()
		repo.On("GetDriverResults", ctx, driverID).Return(getMockResultRows(), nil)
		repo.On("DeleteDriver", ctx, driverID).Return(nil)
		results.On("Refresh", ctx, raceOne).Return(resultsmock.Outcome(raceOne, resultsservice.StatusCalculated), nil)

		require.NoError(t, service.DeleteDriver(ctx, driverID))
		results.AssertNumberOfCalls(t, "Refresh", 1)
		testutil.VerifyAllMocks(t, repo, results)
	})

	t.Run("refreshFailureIsLogged", func(t *testing.T) {
		service, repo, results := setupTestService()
		repo.On("GetDriverResults", ctx, driverID).Return(getMockResultRows(), nil)
		repo.On("DeleteDriver", ctx, driverID).Return(nil)
		results.On("Refresh", ctx, raceOne).Return(nil, errors.New(testutil.DatabaseError))

		assert.NoError(t, service.DeleteDriver(ctx, driverID))
	})

	t.Run("notFound", func(t *testing.T) {
		service, repo, results := setupTestService()
		repo.On("GetDriverResults", ctx, driverID).Return([]driverrepo.DriverResultRow{}, nil)
		repo.On("DeleteDriver", ctx, driverID).Return(gorm.ErrRecordNotFound)

		err := service.DeleteDriver(ctx, driverID)
		assert.ErrorIs(t, err, messages.ErrDriverNotFound)
		results.AssertNotCalled(t, "Refresh", mock.Anything, mock.Anything)
	})
}
