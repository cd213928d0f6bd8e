package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/migrations"
)

var dsn string

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Manage the recipe tracker database schema",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply every pending migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := database.RunMigrations(db, migrations.FS); err != nil {
			return err
		}
		slog.Info("Migrations completed successfully")
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last applied migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		name, err := database.RollbackLast(db, migrations.FS)
		if errors.Is(err, database.ErrNoMigrations) {
			slog.Info("No migrations to roll back")
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", name)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, closeDB, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB()

		applied, err := database.AppliedMigrations(db)
		if err != nil {
			return err
		}
		pending, err := database.PendingMigrations(db, migrations.FS)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, m := range applied {
			fmt.Fprintf(out, "applied  %s  %s\n", m.Name, m.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		for _, name := range pending {
			fmt.Fprintf(out, "pending  %s\n", name)
		}
		return nil
	},
}

// openDB connects through lib/pq to DATABASE_URL, or the configured
// database when no URL is given.
func openDB() (*gorm.DB, func(), error) {
	url := dsn
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		url = cfg.DatabaseURL()
	}

	sqlDB, err := sql.Open("postgres", url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}
	return db, func() { sqlDB.Close() }, nil
}

func main() {
	if _, err := logging.New(os.Getenv("LOG_LEVEL"), "text"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	rootCmd.PersistentFlags().StringVar(&dsn, "database-url", "", "postgres URL (defaults to DATABASE_URL or the app configuration)")
	rootCmd.AddCommand(upCmd, downCmd, statusCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
