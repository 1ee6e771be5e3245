package handlers

import (
	"context"
	"net/http"

	"familykarting/api/dto"
	"familykarting/api/filters"
	"familykarting/pkg/database/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LapService is what the lap endpoints need.
type LapService interface {
	ListLaps(ctx context.Context, filters *filters.LapFilter) ([]models.Lap, error)
	CreateLap(ctx context.Context, input *dto.LapInput) (*models.Lap, error)
	CreateLaps(ctx context.Context, input *dto.LapBatchInput) ([]models.Lap, error)
	UpdateLap(ctx context.Context, id uuid.UUID, input *dto.LapInput) (*models.Lap, error)
	DeleteLap(ctx context.Context, id uuid.UUID) error
}

// LapHandler is the handler for the lap endpoints.
type LapHandler struct {
	LapService LapService
	Logger     *logrus.Logger
}

type LapHandlerDependencies struct {
	LapService LapService
	Logger     *logrus.Logger
}

// NewLapHandler creates a new instance of the lap handler.
func NewLapHandler(deps *LapHandlerDependencies) *LapHandler {
	return &LapHandler{
		LapService: deps.LapService,
		Logger:     deps.Logger,
	}
}

// ListLaps handles the lap listing.
func (h *LapHandler) ListLaps(c *gin.Context) {
	var qp filters.LapQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.LapService.ListLaps(c.Request.Context(), filters.NewLapFilter(qp))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// batchProbe tells a batch body apart from a single lap.
type batchProbe struct {
	Laps []dto.LapEntry `json:"laps"`
}

// CreateLaps accepts a single lap or a batch of laps of one race.
func (h *LapHandler) CreateLaps(c *gin.Context) {
	var probe batchProbe
	// The body is read twice, ShouldBindBodyWith keeps a copy.
	if err := c.ShouldBindBodyWith(&probe, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if probe.Laps != nil {
		var input dto.LapBatchInput
		if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result, err := h.LapService.CreateLaps(c.Request.Context(), &input)
		if err != nil {
			respondError(c, h.Logger, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"result": result})
		return
	}

	var input dto.LapInput
	if err := c.ShouldBindBodyWith(&input, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.LapService.CreateLap(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// UpdateLap changes the driver or the time of a lap.
func (h *LapHandler) UpdateLap(c *gin.Context) {
	id, ok := parseID(c, "id", "lap")
	if !ok {
		return
	}

	var input dto.LapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.LapService.UpdateLap(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteLap removes a lap.
func (h *LapHandler) DeleteLap(c *gin.Context) {
	id, ok := parseID(c, "id", "lap")
	if !ok {
		return
	}

	if err := h.LapService.DeleteLap(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
