package handlers

import (
	"context"
	"net/http"

	"familykarting/api/dto"
	"familykarting/api/filters"
	"familykarting/pkg/scoring"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ScoreboardService builds the standings.
type ScoreboardService interface {
	GetScoreboard(ctx context.Context, filter *filters.ScoreboardFilter) scoring.Scoreboard
}

// StatsService serves the headline counters.
type StatsService interface {
	GetStats(ctx context.Context) (*dto.Stats, error)
}

// ScoreboardHandler serves the standings and the counters.
type ScoreboardHandler struct {
	ScoreboardService ScoreboardService
	StatsService      StatsService
	Logger            *logrus.Logger
}

type ScoreboardHandlerDependencies struct {
	ScoreboardService ScoreboardService
	StatsService      StatsService
	Logger            *logrus.Logger
}

// NewScoreboardHandler creates a new instance of the scoreboard handler.
func NewScoreboardHandler(deps *ScoreboardHandlerDependencies) *ScoreboardHandler {
	return &ScoreboardHandler{
		ScoreboardService: deps.ScoreboardService,
		StatsService:      deps.StatsService,
		Logger:            deps.Logger,
	}
}

// GetScoreboard returns the overall and yearly standings.
func (h *ScoreboardHandler) GetScoreboard(c *gin.Context) {
	var qp filters.ScoreboardQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.ScoreboardService.GetScoreboard(c.Request.Context(), filters.NewScoreboardFilter(qp))
	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetStats returns the counters.
func (h *ScoreboardHandler) GetStats(c *gin.Context) {
	result, err := h.StatsService.GetStats(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}
