package cmd

import (
	"fmt"
	"os"

	"familykarting/pkg/config"
	"familykarting/pkg/database"
	"familykarting/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:          "fkadmin",
	Short:        "Operator commands for the family karting backend",
	SilenceUsage: true,
}

// Execute runs the command line, called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateAdminCmd())
	rootCmd.AddCommand(newRecomputeCmd())
	rootCmd.AddCommand(newScoreboardCmd())
}

// environment is what every command connects to.
type environment struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

func connect() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.App.LogLevel, cfg.App.Environment)
	log.SetOutput(os.Stderr)

	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, log: log, db: db}, nil
}

func (e *environment) close() {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (e *environment) migrate() error {
	rawDB, err := e.db.DB()
	if err != nil {
		return fmt.Errorf("couldn't get raw db connection: %w", err)
	}

	return database.RunMigrations(rawDB, e.cfg.Database.MigrationsPath, e.cfg.Database.Database, e.log)
}
