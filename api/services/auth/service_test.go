package authservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"familykarting/api/dto"
	"familykarting/api/services/testutil"
	"familykarting/pkg/database/models"
	"familykarting/pkg/messages"
	"familykarting/pkg/redis"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestNewAuthService(t *testing.T) {
	service := NewAuthService(&AuthServiceDeps{DB: new(gorm.DB), SessionTTL: testTTL})
	assert.NotNil(t, service.AdminRepository)
	assert.Equal(t, testTTL, service.ttl)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		service, repo, sessions := setupTestService()
		repo.On("GetAdminByEmail", ctx, testEmail).Return(getMockAdmin(), nil)
		sessions.On("Set", ctx, mock.MatchedBy(func(key string) bool {
			return strings.HasPrefix(key, "session:")
		}), mock.Anything, testTTL).Return(nil)

		token, session, err := service.Login(ctx, testEmail, testPassword)
		require.NoError(t, err)
		_, parseErr := uuid.Parse(token)
		assert.NoError(t, parseErr)
		assert.Equal(t, &dto.Session{AdminID: adminID, Email: testEmail}, session)

		payload := sessions.Calls[0].Arguments.Get(2).([]byte)
		var stored dto.Session
		require.NoError(t, json.Unmarshal(payload, &stored))
		assert.Equal(t, adminID, stored.AdminID)
		assert.Equal(t, "session:"+token, sessions.Calls[0].Arguments.String(1))
		testutil.VerifyAllMocks(t, repo, sessions)
	})

	t.Run("wrongPassword", func(t *testing.T) {
		service, repo, sessions := setupTestService()
		repo.On("GetAdminByEmail", ctx, testEmail).Return(getMockAdmin(), nil)

		_, _, err := service.Login(ctx, testEmail, "wrong password")
		assert.ErrorIs(t, err, messages.ErrInvalidCredentials)
		sessions.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknownEmail", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("GetAdminByEmail", ctx, "nobody@family.test").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := service.Login(ctx, "nobody@family.test", testPassword)
		assert.ErrorIs(t, err, messages.ErrInvalidCredentials)
	})

	t.Run("databaseError", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("GetAdminByEmail", ctx, testEmail).Return(nil, errors.New(testutil.DatabaseError))

		_, _, err := service.Login(ctx, testEmail, testPassword)
		assert.ErrorContains(t, err, testutil.DatabaseError)
		assert.NotErrorIs(t, err, messages.ErrInvalidCredentials)
	})

	t.Run("sessionStoreDown", func(t *testing.T) {
		service, repo, sessions := setupTestService()
		repo.On("GetAdminByEmail", ctx, testEmail).Return(getMockAdmin(), nil)
		sessions.On("Set", ctx, mock.Anything, mock.Anything, testTTL).Return(errors.New("connection refused"))

		_, _, err := service.Login(ctx, testEmail, testPassword)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestGetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		service, _, sessions := setupTestService()
		sessions.On("Get", ctx, "session:abc").Return(`{"adminId":"`+adminID.String()+`","email":"`+testEmail+`"}`, nil)

		session, err := service.GetSession(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, adminID, session.AdminID)
	})

	t.Run("expired", func(t *testing.T) {
		service, _, sessions := setupTestService()
		sessions.On("Get", ctx, "session:abc").Return("", redis.ErrNil)

		_, err := service.GetSession(ctx, "abc")
		assert.ErrorIs(t, err, messages.ErrSessionNotFound)
	})

	t.Run("emptyToken", func(t *testing.T) {
		service, _, sessions := setupTestService()

		_, err := service.GetSession(ctx, "")
		assert.ErrorIs(t, err, messages.ErrSessionNotFound)
		sessions.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("corrupted", func(t *testing.T) {
		service, _, sessions := setupTestService()
		sessions.On("Get", ctx, "session:abc").Return("not json", nil)

		_, err := service.GetSession(ctx, "abc")
		assert.ErrorIs(t, err, messages.ErrSessionNotFound)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	service, _, sessions := setupTestService()
	sessions.On("Del", ctx, []string{"session:abc"}).Return(nil)

	assert.NoError(t, service.Logout(ctx, "abc"))
	assert.NoError(t, service.Logout(ctx, ""))
	sessions.AssertNumberOfCalls(t, "Del", 1)
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("hashesPassword", func(t *testing.T) {
		service, repo, _ := setupTestService()
		repo.On("UpsertAdmin", ctx, mock.MatchedBy(func(a *models.Admin) bool {
			return a.Email == testEmail && bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(testPassword)) == nil
		})).Return(nil)

		admin, err := service.CreateAdmin(ctx, testEmail, testPassword)
		require.NoError(t, err)
		assert.NotEqual(t, testPassword, admin.PasswordHash)
		testutil.VerifyAllMocks(t, repo)
	})

	t.Run("weakPassword", func(t *testing.T) {
		service, repo, _ := setupTestService()

		_, err := service.CreateAdmin(ctx, testEmail, "short")
		assert.ErrorIs(t, err, messages.ErrWeakPassword)
		repo.AssertNotCalled(t, "UpsertAdmin", mock.Anything, mock.Anything)
	})
}
