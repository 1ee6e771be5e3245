package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"familykarting/api/dto"
	"familykarting/pkg/logger"
	"familykarting/pkg/messages"
	"familykarting/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) GetSession(ctx context.Context, token string) (*dto.Session, error) {
	args := m.Called(ctx, token)
	session, _ := args.Get(0).(*dto.Session)
	return session, args.Error(1)
}

func setupAdminRouter(sessions SessionReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/admin", RequireAdmin(sessions, "fk_session", logger.Discard()), func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": session.Email})
	})
	return engine
}

func TestRequireAdmin(t *testing.T) {
	session := &dto.Session{AdminID: uuid.New(), Email: "admin@family.test"}

	tests := []struct {
		name           string
		cookie         string
		sessionErr     error
		expectedStatus int
	}{
		{name: "noCookie", expectedStatus: http.StatusUnauthorized},
		{name: "valid", cookie: "token", expectedStatus: http.StatusOK},
		{name: "expired", cookie: "token", sessionErr: messages.ErrSessionNotFound, expectedStatus: http.StatusUnauthorized},
		{name: "storeDown", cookie: "token", sessionErr: errors.New("connection refused"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(mockSessions)
			if tt.cookie != "" {
				if tt.sessionErr != nil {
					sessions.On("GetSession", mock.Anything, tt.cookie).Return(nil, tt.sessionErr)
				} else {
					sessions.On("GetSession", mock.Anything, tt.cookie).Return(session, nil)
				}
			}

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "fk_session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			setupAdminRouter(sessions).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.JSONEq(t, `{"result":"admin@family.test"}`, rec.Body.String())
			}
			sessions.AssertExpectations(t)
		})
	}
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(Metrics(), RequestLogger(logger.Discard()))
	engine.GET("/circuits/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	counter := metrics.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/circuits/:id", "200")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/circuits/abc", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS("https://karting.family"))
	engine.GET("/races", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/races", nil)
		req.Header.Set("Origin", "https://karting.family")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://karting.family", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("foreignOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/races", nil)
		req.Header.Set("Origin", "https://elsewhere.example")
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestOnSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calls := 0

	engine := gin.New()
	engine.Use(OnSuccess(func() { calls++ }))
	engine.POST("/ok", func(c *gin.Context) { c.Status(http.StatusCreated) })
	engine.POST("/fail", func(c *gin.Context) { c.Status(http.StatusConflict) })

	for _, path := range []string{"/ok", "/fail", "/ok"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, path, nil))
	}

	assert.Equal(t, 2, calls)
}
