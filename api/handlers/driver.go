package handlers

import (
	"context"
	"net/http"

	"familykarting/api/dto"
	"familykarting/pkg/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// DriverService is what the driver endpoints need.
type DriverService interface {
	ListDrivers(ctx context.Context) ([]dto.DriverSummary, error)
	GetDriverDetail(ctx context.Context, id uuid.UUID) (*dto.DriverDetail, error)
	CreateDriver(ctx context.Context, input *dto.DriverInput) (*models.Driver, error)
	UpdateDriver(ctx context.Context, id uuid.UUID, input *dto.DriverInput) (*models.Driver, error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error
}

// DriverHandler is the handler for the driver endpoints.
type DriverHandler struct {
	DriverService DriverService
	Logger        *logrus.Logger
}

type DriverHandlerDependencies struct {
	DriverService DriverService
	Logger        *logrus.Logger
}

// NewDriverHandler creates a new instance of the driver handler.
func NewDriverHandler(deps *DriverHandlerDependencies) *DriverHandler {
	return &DriverHandler{
		DriverService: deps.DriverService,
		Logger:        deps.Logger,
	}
}

// ListDrivers returns every driver with the totals.
func (h *DriverHandler) ListDrivers(c *gin.Context) {
	result, err := h.DriverService.ListDrivers(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetDriver returns the driver detail.
func (h *DriverHandler) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id", "driver")
	if !ok {
		return
	}

	result, err := h.DriverService.GetDriverDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CreateDriver handles the driver creation.
func (h *DriverHandler) CreateDriver(c *gin.Context) {
	var input dto.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DriverService.CreateDriver(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// UpdateDriver replaces a driver.
func (h *DriverHandler) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id", "driver")
	if !ok {
		return
	}

	var input dto.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DriverService.UpdateDriver(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteDriver removes a driver.
func (h *DriverHandler) DeleteDriver(c *gin.Context) {
	id, ok := parseID(c, "id", "driver")
	if !ok {
		return
	}

	if err := h.DriverService.DeleteDriver(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
