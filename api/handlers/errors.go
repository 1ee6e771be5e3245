package handlers

import (
	"errors"
	"fmt"
	"net/http"

	photoservice "familykarting/api/services/photo"
	"familykarting/pkg/imaging"
	"familykarting/pkg/messages"
	"familykarting/pkg/weather"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var badRequestErrors = []error{
	messages.ErrInvalidLapTime,
	messages.ErrInvalidOperatingDay,
	messages.ErrInvalidTimezone,
	messages.ErrInvalidFolder,
	messages.ErrMissingCoordinates,
	messages.ErrWeakPassword,
	imaging.ErrUnsupportedFormat,
	photoservice.ErrNotOwnURL,
	weather.ErrInvalidLocation,
	weather.ErrDateOutOfRange,
}

var conflictErrors = []error{
	messages.ErrReferencedRecord,
	messages.ErrDuplicateRecord,
	messages.ErrUnknownReference,
}

var unauthorizedErrors = []error{
	messages.ErrInvalidCredentials,
	messages.ErrSessionNotFound,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// statusFor maps a service error to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case matchesAny(err, unauthorizedErrors):
		return http.StatusUnauthorized
	case matchesAny(err, conflictErrors):
		return http.StatusConflict
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes the error with its status, server errors are logged.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError && log != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
	}

	c.JSON(status, gin.H{"error": err.Error()})
}

// parseID reads a uuid path parameter, writing a bad request when invalid.
func parseID(c *gin.Context, param string, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf(messages.InvalidIdMsg, entity)})
		return uuid.Nil, false
	}
	return id, true
}
