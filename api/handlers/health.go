package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the service can't work without.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a function to a Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

// HealthHandler reports whether the dependencies answer.
type HealthHandler struct {
	Checks map[string]Pinger
}

// NewHealthHandler creates a new instance of the health handler.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{Checks: checks}
}

// Health answers 200 when every check passes, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	result := make(gin.H, len(h.Checks))
	for name, check := range h.Checks {
		if err := check.PingContext(ctx); err != nil {
			status = http.StatusServiceUnavailable
			result[name] = err.Error()
			continue
		}
		result[name] = "ok"
	}

	c.JSON(status, gin.H{"result": result})
}
