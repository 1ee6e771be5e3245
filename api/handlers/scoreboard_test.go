package handlers

import (
	"errors"
	"net/http"
	"testing"

	"familykarting/api/dto"
	"familykarting/api/filters"
	"familykarting/pkg/scoring"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupScoreboardHandler() (*mockScoreboardService, *mockStatsService, *ScoreboardHandler) {
	scoreboard := new(mockScoreboardService)
	stats := new(mockStatsService)
	return scoreboard, stats, NewScoreboardHandler(&ScoreboardHandlerDependencies{
		ScoreboardService: scoreboard,
		StatsService:      stats,
		Logger:            testLogger,
	})
}

func TestGetScoreboard(t *testing.T) {
	t.Run("yearFilter", func(t *testing.T) {
		scoreboard, _, handler := setupScoreboardHandler()
		engine := newTestEngine()
		engine.GET("/scoreboard", handler.GetScoreboard)

		scoreboard.On("GetScoreboard", mock.Anything, &filters.ScoreboardFilter{Year: 2026}).
			Return(scoring.Scoreboard{Yearly: map[int]scoring.Board{2026: {}}, Years: []int{2026, 2025}})

		rec := performRequest(engine, http.MethodGet, "/scoreboard?year=2026", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		result := decodeResponse(t, rec)["result"].(map[string]any)
		assert.Equal(t, []any{float64(2026), float64(2025)}, result["years"])
		assert.Contains(t, result["yearly"], "2026")
	})

	t.Run("invalidYear", func(t *testing.T) {
		scoreboard, _, handler := setupScoreboardHandler()
		engine := newTestEngine()
		engine.GET("/scoreboard", handler.GetScoreboard)

		rec := performRequest(engine, http.MethodGet, "/scoreboard?year=abc", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		scoreboard.AssertNotCalled(t, "GetScoreboard", mock.Anything, mock.Anything)
	})
}

func TestGetStats(t *testing.T) {
	t.Run("counts", func(t *testing.T) {
		_, stats, handler := setupScoreboardHandler()
		engine := newTestEngine()
		engine.GET("/stats", handler.GetStats)

		stats.On("GetStats", mock.Anything).Return(&dto.Stats{Circuits: 2, Drivers: 5, RacesDone: 7, Laps: 210}, nil)

		rec := performRequest(engine, http.MethodGet, "/stats", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		result := decodeResponse(t, rec)["result"].(map[string]any)
		assert.Equal(t, float64(7), result["racesDone"])
	})

	t.Run("failure", func(t *testing.T) {
		_, stats, handler := setupScoreboardHandler()
		engine := newTestEngine()
		engine.GET("/stats", handler.GetStats)

		stats.On("GetStats", mock.Anything).Return(nil, errors.New("database error"))

		rec := performRequest(engine, http.MethodGet, "/stats", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
