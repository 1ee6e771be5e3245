package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

const migrationsLockKey = "familykarting_migrations_lock"

// RunMigrations applies all pending migrations to the database.
// The api and the scheduler may start together, an advisory lock keeps a single runner.
func RunMigrations(db *sql.DB, migrationsPath, database string, log *logrus.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		database,
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	var lockAcquired bool
	err = db.QueryRow("SELECT pg_try_advisory_lock(hashtext($1))", migrationsLockKey).Scan(&lockAcquired)
	if err != nil {
		return err
	}

	if !lockAcquired {
		log.Info("Another process is already running migrations, skipping")
		return nil
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	var lockReleased bool
	err = db.QueryRow("SELECT pg_advisory_unlock(hashtext($1))", migrationsLockKey).Scan(&lockReleased)
	if err != nil {
		return fmt.Errorf("could not release advisory lock: %w", err)
	}
	if !lockReleased {
		return errors.New("could not release advisory lock")
	}

	log.Info("Migrations applied")
	return nil
}
