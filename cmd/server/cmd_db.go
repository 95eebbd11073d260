package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/showroom/config"
	"github.com/shashiranjanraj/showroom/database/seeders"
	"github.com/shashiranjanraj/showroom/pkg/database"
	"github.com/shashiranjanraj/showroom/pkg/logger"
	"github.com/shashiranjanraj/showroom/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logClose, err := logger.Setup(logger.Options{Env: cfg.AppEnv()})
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg.DatabaseDriver(), cfg.DatabaseDSN())
	if err != nil {
		logClose()
		return nil, nil, err
	}
	cleanup := func() {
		database.Close(db) //nolint:errcheck
		logClose()
	}
	return db, cleanup, nil
}

// showroom migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()
		fmt.Println("Running migrations...")
		return migration.New(db).Run()
	},
}

// showroom migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()
		fmt.Println("Rolling back last batch...")
		return migration.New(db).Rollback()
	},
}

// showroom migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()
		return migration.New(db).Status()
	},
}

// showroom seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cleanup, err := bootDB()
		if err != nil {
			return err
		}
		defer cleanup()
		fmt.Println("Running seeders...")
		return seeders.RunAll(db)
	},
}
