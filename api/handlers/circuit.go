package handlers

import (
	"context"
	"net/http"

	"familykarting/api/dto"
	"familykarting/api/filters"
	"familykarting/pkg/database/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CircuitService is what the circuit endpoints need.
type CircuitService interface {
	ListCircuits(ctx context.Context, filters *filters.CircuitFilter) ([]models.Circuit, error)
	GetCircuitDetail(ctx context.Context, id uuid.UUID) (*dto.CircuitDetail, error)
	GetCircuitHours(ctx context.Context, id uuid.UUID) (*dto.CircuitHours, error)
	CreateCircuit(ctx context.Context, input *dto.CircuitInput) (*models.Circuit, error)
	UpdateCircuit(ctx context.Context, id uuid.UUID, input *dto.CircuitInput) (*models.Circuit, error)
	DeleteCircuit(ctx context.Context, id uuid.UUID) error
}

// CircuitHandler is the handler for the circuit endpoints.
type CircuitHandler struct {
	CircuitService CircuitService
	Logger         *logrus.Logger
}

type CircuitHandlerDependencies struct {
	CircuitService CircuitService
	Logger         *logrus.Logger
}

// NewCircuitHandler creates a new instance of the circuit handler.
func NewCircuitHandler(deps *CircuitHandlerDependencies) *CircuitHandler {
	return &CircuitHandler{
		CircuitService: deps.CircuitService,
		Logger:         deps.Logger,
	}
}

// ListCircuits handles the circuit listing.
func (h *CircuitHandler) ListCircuits(c *gin.Context) {
	var qp filters.CircuitQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.CircuitService.ListCircuits(c.Request.Context(), filters.NewCircuitFilter(qp))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetCircuit returns a circuit with its races and record lap.
func (h *CircuitHandler) GetCircuit(c *gin.Context) {
	id, ok := parseID(c, "id", "circuit")
	if !ok {
		return
	}

	result, err := h.CircuitService.GetCircuitDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetCircuitHours returns the operating hours evaluated now.
func (h *CircuitHandler) GetCircuitHours(c *gin.Context) {
	id, ok := parseID(c, "id", "circuit")
	if !ok {
		return
	}

	result, err := h.CircuitService.GetCircuitHours(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// CreateCircuit handles the circuit creation.
func (h *CircuitHandler) CreateCircuit(c *gin.Context) {
	var input dto.CircuitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.CircuitService.CreateCircuit(c.Request.Context(), &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"result": result})
}

// UpdateCircuit replaces a circuit.
func (h *CircuitHandler) UpdateCircuit(c *gin.Context) {
	id, ok := parseID(c, "id", "circuit")
	if !ok {
		return
	}

	var input dto.CircuitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.CircuitService.UpdateCircuit(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// DeleteCircuit removes a circuit.
func (h *CircuitHandler) DeleteCircuit(c *gin.Context) {
	id, ok := parseID(c, "id", "circuit")
	if !ok {
		return
	}

	if err := h.CircuitService.DeleteCircuit(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
