package handlers

import (
	"context"
	"net/http"

	"familykarting/api/dto"
	"familykarting/api/filters"
	resultsservice "familykarting/api/services/results"
	"familykarting/pkg/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RaceService is what the race endpoints need.
type RaceService interface {
	ListRaces(ctx context.Context, filters *filters.RaceFilter) ([]models.Race, error)
	GetRaceDetail(ctx context.Context, id uuid.UUID) (*dto.RaceDetail, error)
	CreateRace(ctx context.Context, input *dto.RaceInput) (*models.Race, error)
	UpdateRace(ctx context.Context, id uuid.UUID, input *dto.RaceInput) (*models.Race, error)
	DeleteRace(ctx context.Context, id uuid.UUID) error
	RecalculateResults(ctx context.Context, id uuid.UUID) (*resultsservice.Outcome, error)
	FetchWeather(ctx context.Context, id uuid.UUID) (*models.Race, error)
	ClearWeather(ctx context.Context, id uuid.UUID) error
}

// RaceHandler is the handler for the race endpoints.
type RaceHandler struct {
	RaceService RaceService
	Logger      *logrus.Logger
}

type RaceHandlerDependencies struct {
	RaceService RaceService
	Logger      *logrus.Logger
}

// NewRaceHandler creates a new instance of the race handler.
func NewRaceHandler(deps *RaceHandlerDependencies) *RaceHandler {
	return &RaceHandler{
		RaceService: deps.RaceService,
		Logger:      deps.Logger,
	}
}

// ListRaces handles the race listing.
func (h *RaceHandler) ListRaces(c *gin.Context) {
	var qp filters.RaceQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.RaceService.ListRaces(c.Request.Context(), filters.NewRaceFilter(qp))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetRace returns the race with results and laps.
func (h *RaceHandler) GetRace(c *gin.Context) {
	id, ok := parseID(c, "id", "race")
	if !ok {
		return
	}

	result, err := h.RaceService.GetRaceDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CreateRace handles the race creation, laps may come along.
func (h *RaceHandler) CreateRace(c *gin.Context) {
	var input dto.RaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.RaceService.CreateRace(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// UpdateRace replaces a race, laps on the body are ignored.
func (h *RaceHandler) UpdateRace(c *gin.Context) {
	id, ok := parseID(c, "id", "race")
	if !ok {
		return
	}

	var input dto.RaceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.RaceService.UpdateRace(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteRace removes a race with everything recorded on it.
func (h *RaceHandler) DeleteRace(c *gin.Context) {
	id, ok := parseID(c, "id", "race")
	if !ok {
		return
	}

	if err := h.RaceService.DeleteRace(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RecalculateResults ranks the race again.
func (h *RaceHandler) RecalculateResults(c *gin.Context) {
	id, ok := parseID(c, "id", "race")
	if !ok {
		return
	}

	result, err := h.RaceService.RecalculateResults(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// FetchWeather stores the weather of the race day.
func (h *RaceHandler) FetchWeather(c *gin.Context) {
	id, ok := parseID(c, "id", "race")
	if !ok {
		return
	}

	result, err := h.RaceService.FetchWeather(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result.Weather})
}

// ClearWeather removes the stored weather.
func (h *RaceHandler) ClearWeather(c *gin.Context) {
	id, ok := parseID(c, "id", "race")
	if !ok {
		return
	}

	if err := h.RaceService.ClearWeather(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
