package authservice

import (
	"time"

	"familykarting/api/services/testutil"
	"familykarting/pkg/database/models"
	"familykarting/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "admin@family.test"
	testPassword = "correct horse"
	testTTL      = time.Hour
)

var adminID = uuid.MustParse("00000000-0000-0000-0000-00000000ad01")

// Helper to initialize the mocks.
func setupTestService() (*AuthService, *testutil.MockAdminRepository, *testutil.MockSessionStore) {
	repo := new(testutil.MockAdminRepository)
	sessions := new(testutil.MockSessionStore)

	service := &AuthService{
		AdminRepository: repo,
		sessions:        sessions,
		ttl:             testTTL,
		logger:          logger.Discard(),
	}

	return service, repo, sessions
}

func getMockAdmin() *models.Admin {
	hash, _ := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	return &models.Admin{ID: adminID, Email: testEmail, PasswordHash: string(hash)}
}
