package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"familykarting/api/dto"
	"familykarting/pkg/messages"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testCookie = CookieSettings{Name: "fk_session", TTL: time.Hour, Secure: true}

func setupAuthHandler() (*mockAuthService, *AuthHandler) {
	service := new(mockAuthService)
	return service, NewAuthHandler(&AuthHandlerDependencies{AuthService: service, Cookie: testCookie, Logger: testLogger})
}

func TestLogin(t *testing.T) {
	t.Run("setsCookie", func(t *testing.T) {
		service, handler := setupAuthHandler()
		engine := newTestEngine()
		engine.POST("/auth/login", handler.Login)

		session := &dto.Session{AdminID: uuid.New(), Email: "admin@example.com"}
		service.On("Login", mock.Anything, "admin@example.com", "correct horse").Return("token-1", session, nil)

		rec := performRequest(engine, http.MethodPost, "/auth/login", map[string]any{
			"email": "admin@example.com", "password": "correct horse",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "fk_session", cookies[0].Name)
		assert.Equal(t, "token-1", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	})

	t.Run("wrongPassword", func(t *testing.T) {
		service, handler := setupAuthHandler()
		engine := newTestEngine()
		engine.POST("/auth/login", handler.Login)

		service.On("Login", mock.Anything, mock.Anything, mock.Anything).Return("", nil, messages.ErrInvalidCredentials)

		rec := performRequest(engine, http.MethodPost, "/auth/login", map[string]any{
			"email": "admin@example.com", "password": "nope",
		})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("invalidEmail", func(t *testing.T) {
		_, handler := setupAuthHandler()
		engine := newTestEngine()
		engine.POST("/auth/login", handler.Login)

		rec := performRequest(engine, http.MethodPost, "/auth/login", map[string]any{"email": "admin", "password": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogout(t *testing.T) {
	service, handler := setupAuthHandler()
	engine := newTestEngine()
	engine.POST("/auth/logout", handler.Logout)

	service.On("Logout", mock.Anything, "token-1").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "fk_session", Value: "token-1"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
	service.AssertExpectations(t)
}

func TestGetSessionHandler(t *testing.T) {
	t.Run("noCookie", func(t *testing.T) {
		service, handler := setupAuthHandler()
		engine := newTestEngine()
		engine.GET("/auth/session", handler.GetSession)

		rec := performRequest(engine, http.MethodGet, "/auth/session", nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		service.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
	})

	t.Run("expired", func(t *testing.T) {
		service, handler := setupAuthHandler()
		engine := newTestEngine()
		engine.GET("/auth/session", handler.GetSession)

		service.On("GetSession", mock.Anything, "stale").Return(nil, messages.ErrSessionNotFound)

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(&http.Cookie{Name: "fk_session", Value: "stale"})
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
