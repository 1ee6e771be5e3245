package authservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"familykarting/api/dto"
	adminrepo "familykarting/api/repositories/admin"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"
	"familykarting/pkg/redis"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	sessionPrefix     = "session:"
	minPasswordLength = 8
)

// Compared against when the email is unknown, so both paths cost a bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("family-karting-dummy"), bcrypt.DefaultCost)

// SessionStore keeps the sessions with an expiration.
type SessionStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// AuthService authenticates the admins.
type AuthService struct {
	AdminRepository adminrepo.AdminRepository
	sessions        SessionStore
	ttl             time.Duration
	logger          *logrus.Logger
}

// AuthServiceDeps is the dependency list for the auth service.
type AuthServiceDeps struct {
	DB         *gorm.DB
	Sessions   SessionStore
	SessionTTL time.Duration
	Logger     *logrus.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(deps *AuthServiceDeps) *AuthService {
	return &AuthService{
		AdminRepository: adminrepo.NewAdminRepository(deps.DB),
		sessions:        deps.Sessions,
		ttl:             deps.SessionTTL,
		logger:          deps.Logger,
	}
}

func sessionKey(token string) string {
	return sessionPrefix + token
}

// Login checks the credentials and opens a session, returning its token.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, *dto.Session, error) {
	admin, err := as.AdminRepository.GetAdminByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, err
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, messages.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		as.logger.WithField("email", admin.Email).Warn("Failed login attempt")
		return "", nil, messages.ErrInvalidCredentials
	}

	session := &dto.Session{AdminID: admin.ID, Email: admin.Email}
	payload, err := json.Marshal(session)
	if err != nil {
		return "", nil, err
	}

	token := uuid.NewString()
	if err := as.sessions.Set(ctx, sessionKey(token), payload, as.ttl); err != nil {
		return "", nil, fmt.Errorf("failed to store the session: %w", err)
	}

	as.logger.WithField("admin_id", admin.ID).Info("Admin logged in")
	return token, session, nil
}

// GetSession returns the admin behind a token.
func (as *AuthService) GetSession(ctx context.Context, token string) (*dto.Session, error) {
	if token == "" {
		return nil, messages.ErrSessionNotFound
	}

	payload, err := as.sessions.Get(ctx, sessionKey(token))
	if err != nil {
		if redis.IsNil(err) {
			return nil, messages.ErrSessionNotFound
		}
		return nil, err
	}

	var session dto.Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, messages.ErrSessionNotFound
	}

	return &session, nil
}

// Logout closes the session, unknown tokens are ignored.
func (as *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return as.sessions.Del(ctx, sessionKey(token))
}

// CreateAdmin stores an admin, replacing the password when the email already exists.
func (as *AuthService) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	if len(password) < minPasswordLength {
		return nil, messages.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash the password: %w", err)
	}

	admin := &models.Admin{Email: email, PasswordHash: string(hash)}
	if err := as.AdminRepository.UpsertAdmin(ctx, admin); err != nil {
		return nil, err
	}

	as.logger.WithField("email", admin.Email).Info("Admin saved")
	return admin, nil
}
