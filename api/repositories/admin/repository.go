package adminrepo

import (
	"context"
	"strings"

	"familykarting/pkg/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Public Interface.
type AdminRepository interface {
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	UpsertAdmin(ctx context.Context, admin *models.Admin) error
}

// Admin repository structure.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates an admin repository.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// GetAdminByEmail matches the email case insensitively.
func (r *adminRepository) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).
		First(&admin, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}

	return &admin, nil
}

// GetAdminByID returns gorm.ErrRecordNotFound when the admin doesn't exist.
func (r *adminRepository) GetAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &admin, nil
}

// UpsertAdmin creates the admin or replaces the password of an existing email.
func (r *adminRepository) UpsertAdmin(ctx context.Context, admin *models.Admin) error {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).
		Create(admin).Error
}
