package handlers

import (
	"context"
	"net/http"
	"time"

	"familykarting/api/dto"
	"familykarting/pkg/messages"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthService is what the auth endpoints need.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *dto.Session, error)
	GetSession(ctx context.Context, token string) (*dto.Session, error)
	Logout(ctx context.Context, token string) error
}

// CookieSettings configures the session cookie.
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthHandler is the handler for the admin sessions.
type AuthHandler struct {
	AuthService AuthService
	Cookie      CookieSettings
	Logger      *logrus.Logger
}

type AuthHandlerDependencies struct {
	AuthService AuthService
	Cookie      CookieSettings
	Logger      *logrus.Logger
}

// NewAuthHandler creates a new instance of the auth handler.
func NewAuthHandler(deps *AuthHandlerDependencies) *AuthHandler {
	return &AuthHandler{
		AuthService: deps.AuthService,
		Cookie:      deps.Cookie,
		Logger:      deps.Logger,
	}
}

// Login opens a session and sets its cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, session, err := h.AuthService.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, token, int(h.Cookie.TTL.Seconds()), "/", "", h.Cookie.Secure, true)
	c.JSON(http.StatusOK, gin.H{"result": session})
}

// Logout closes the session and expires the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.Cookie.Name)

	if err := h.AuthService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cookie.Name, "", -1, "/", "", h.Cookie.Secure, true)
	c.Status(http.StatusNoContent)
}

// GetSession returns the admin of the current cookie.
func (h *AuthHandler) GetSession(c *gin.Context) {
	token, err := c.Cookie(h.Cookie.Name)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": messages.UnauthorizedMsg})
		return
	}

	session, err := h.AuthService.GetSession(c.Request.Context(), token)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": session})
}
