package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"familykarting/api/dto"
	"familykarting/pkg/messages"
	"familykarting/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// SessionKey is where RequireAdmin stores the session on the context.
const SessionKey = "session"

// SessionReader resolves a session token.
type SessionReader interface {
	GetSession(ctx context.Context, token string) (*dto.Session, error)
}

// RequireAdmin rejects requests without a valid session cookie.
func RequireAdmin(sessions SessionReader, cookieName string, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": messages.UnauthorizedMsg})
			return
		}

		session, err := sessions.GetSession(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, messages.ErrSessionNotFound) {
				log.WithError(err).Error("Couldn't read the session")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": messages.UnauthorizedMsg})
			return
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// GetSession returns the session set by RequireAdmin.
func GetSession(c *gin.Context) (*dto.Session, bool) {
	value, exists := c.Get(SessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*dto.Session)
	return session, ok
}

// RequestLogger logs every request once it is served.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		})

		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("Request served")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("Request served")
		default:
			entry.Debug("Request served")
		}
	}
}

// Metrics counts the requests by route and status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// Unmatched paths would explode the label cardinality.
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CORS allows the frontend origin to send the session cookie.
// An empty origin disables CORS headers entirely.
func CORS(allowedOrigin string) gin.HandlerFunc {
	if allowedOrigin == "" {
		return func(c *gin.Context) { c.Next() }
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.GetHeader("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// OnSuccess runs fn after a request that didn't fail.
func OnSuccess(fn func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusBadRequest {
			fn()
		}
	}
}
