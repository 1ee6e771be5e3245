package handlers

import (
	"net/http"
	"testing"

	"familykarting/api/dto"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupLapHandler() (*mockLapService, *LapHandler) {
	service := new(mockLapService)
	return service, NewLapHandler(&LapHandlerDependencies{LapService: service, Logger: testLogger})
}

func TestCreateLaps(t *testing.T) {
	raceID := uuid.New()
	driverID := uuid.New()

	t.Run("single", func(t *testing.T) {
		service, handler := setupLapHandler()
		engine := newTestEngine()
		engine.POST("/laps", handler.CreateLaps)

		service.On("CreateLap", mock.Anything, &dto.LapInput{RaceID: raceID, DriverID: driverID, LapTime: 44.8}).
			Return(&models.Lap{ID: uuid.New(), RaceID: raceID, DriverID: driverID, LapTime: 44.8}, nil)

		rec := performRequest(engine, http.MethodPost, "/laps", map[string]any{
			"raceId": raceID, "driverId": driverID, "lapTime": 44.8,
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		service.AssertExpectations(t)
		service.AssertNotCalled(t, "CreateLaps", mock.Anything, mock.Anything)
	})

	t.Run("batch", func(t *testing.T) {
		service, handler := setupLapHandler()
		engine := newTestEngine()
		engine.POST("/laps", handler.CreateLaps)

		service.On("CreateLaps", mock.Anything, mock.MatchedBy(func(input *dto.LapBatchInput) bool {
			return input.RaceID == raceID && len(input.Laps) == 2
		})).Return([]models.Lap{{RaceID: raceID}, {RaceID: raceID}}, nil)

		rec := performRequest(engine, http.MethodPost, "/laps", map[string]any{
			"raceId": raceID,
			"laps": []map[string]any{
				{"driverId": driverID, "lapTime": 45.1},
				{"driverId": driverID, "lapTime": 44.9},
			},
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, decodeResponse(t, rec)["result"], 2)
	})

	t.Run("emptyBatch", func(t *testing.T) {
		service, handler := setupLapHandler()
		engine := newTestEngine()
		engine.POST("/laps", handler.CreateLaps)

		rec := performRequest(engine, http.MethodPost, "/laps", map[string]any{"raceId": raceID, "laps": []any{}})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		service.AssertNotCalled(t, "CreateLaps", mock.Anything, mock.Anything)
	})

	t.Run("negativeTime", func(t *testing.T) {
		_, handler := setupLapHandler()
		engine := newTestEngine()
		engine.POST("/laps", handler.CreateLaps)

		rec := performRequest(engine, http.MethodPost, "/laps", map[string]any{
			"raceId": raceID, "driverId": driverID, "lapTime": -3,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed", func(t *testing.T) {
		_, handler := setupLapHandler()
		engine := newTestEngine()
		engine.POST("/laps", handler.CreateLaps)

		rec := performRequest(engine, http.MethodPost, "/laps", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("raceNotFound", func(t *testing.T) {
		service, handler := setupLapHandler()
		engine := newTestEngine()
		engine.POST("/laps", handler.CreateLaps)

		service.On("CreateLap", mock.Anything, mock.Anything).Return(nil, messages.ErrUnknownReference)

		rec := performRequest(engine, http.MethodPost, "/laps", map[string]any{
			"raceId": raceID, "driverId": driverID, "lapTime": 44.8,
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestUpdateAndDeleteLap(t *testing.T) {
	id := uuid.New()
	raceID := uuid.New()
	driverID := uuid.New()
	service, handler := setupLapHandler()
	engine := newTestEngine()
	engine.PUT("/laps/:id", handler.UpdateLap)
	engine.DELETE("/laps/:id", handler.DeleteLap)

	service.On("UpdateLap", mock.Anything, id, mock.Anything).
		Return(&models.Lap{ID: id, RaceID: raceID, DriverID: driverID, LapTime: 43.9}, nil)
	service.On("DeleteLap", mock.Anything, id).Return(nil)

	rec := performRequest(engine, http.MethodPut, "/laps/"+id.String(), map[string]any{
		"raceId": raceID, "driverId": driverID, "lapTime": 43.9,
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(engine, http.MethodDelete, "/laps/"+id.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	service.AssertExpectations(t)
}
