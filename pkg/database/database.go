package database

import (
	"errors"
	"fmt"

	"familykarting/pkg/config"
	"familykarting/pkg/messages"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Postgres error codes the repositories translate.
const (
	ForeignKeyViolation = "23503"
	UniqueViolation     = "23505"
	CheckViolation      = "23514"
)

// NewConnection opens the connection pool.
func NewConnection(cfg config.DatabaseConfiguration) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get the SQL database itself.
	sqlDb, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get the sql connection: %w", err)
	}

	// Set the pool values.
	sqlDb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDb.SetConnMaxIdleTime(cfg.ConnMaxLifetime)

	// Test the connection
	if err := sqlDb.Ping(); err != nil {
		sqlDb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// PgErrorCode returns the postgres error code wrapped in err, empty when there is none.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// TranslateError maps constraint violations to the domain errors, the driver error stays wrapped.
// onForeignKey depends on the operation: a delete breaks references, an insert points to a missing row.
func TranslateError(err error, onForeignKey error) error {
	if err == nil {
		return nil
	}

	switch PgErrorCode(err) {
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", onForeignKey, err)
	case UniqueViolation:
		return fmt.Errorf("%w: %w", messages.ErrDuplicateRecord, err)
	}

	return err
}

// WrapNotFound tags a missing record with the domain error, keeping gorm.ErrRecordNotFound matchable.
func WrapNotFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}
