package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
)

const migrationsTable = "schema_migrations"

// ErrNoMigrations is returned by RollbackLast when nothing has been applied.
var ErrNoMigrations = errors.New("no migrations to roll back")

// AppliedMigration is a row of the migrations table.
type AppliedMigration struct {
	Name      string
	AppliedAt time.Time
}

// sqliteIndexes mirror the partial indexes of the postgres schema.
var sqliteIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_tags_name_type ON tags (lower(name), tag_type) WHERE NOT is_deleted`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_equipment_name ON equipment (lower(name)) WHERE NOT is_deleted`,
	`CREATE INDEX IF NOT EXISTS idx_recipes_listing ON recipes (created_at DESC, id DESC) WHERE NOT is_deleted`,
}

// RunMigrations brings the schema up to date. SQLite uses GORM auto-migration;
// PostgreSQL applies every pending .sql file in fsys in name order.
func RunMigrations(db *gorm.DB, fsys fs.FS) error {
	if db.Dialector.Name() == "sqlite" {
		slog.Debug("Using GORM auto-migration for SQLite")
		if err := db.AutoMigrate(
			&model.Recipe{},
			&model.Tag{},
			&model.Equipment{},
			&model.RecipeTag{},
			&model.RecipeEquipment{},
		); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		for _, stmt := range sqliteIndexes {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create index: %w", err)
			}
		}
		return nil
	}

	files, err := migrationFiles(fsys)
	if err != nil {
		return err
	}

	if err := ensureMigrationsTable(db); err != nil {
		return err
	}

	applied, err := AppliedMigrations(db)
	if err != nil {
		return err
	}
	done := make(map[string]bool, len(applied))
	for _, m := range applied {
		done[m.Name] = true
	}

	for _, name := range files {
		if done[name] {
			slog.Debug("Skipping migration", slog.String("name", name))
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return err
			}
			return tx.Exec("INSERT INTO "+migrationsTable+" (name) VALUES (?)", name).Error
		})
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}

		slog.Info("Applied migration", slog.String("name", name))
	}

	return nil
}

// RollbackLast reverts the most recently applied migration using its
// _rollback.sql counterpart and returns its name.
func RollbackLast(db *gorm.DB, fsys fs.FS) (string, error) {
	if err := ensureMigrationsTable(db); err != nil {
		return "", err
	}

	var last AppliedMigration
	err := db.Table(migrationsTable).Select("name", "applied_at").Order("id DESC").Limit(1).Scan(&last).Error
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}
	if last.Name == "" {
		return "", ErrNoMigrations
	}

	rollbackFile := strings.TrimSuffix(last.Name, ".sql") + "_rollback.sql"
	content, err := fs.ReadFile(fsys, rollbackFile)
	if err != nil {
		return "", fmt.Errorf("rollback file not found: %s: %w", rollbackFile, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(string(content)).Error; err != nil {
			return err
		}
		return tx.Exec("DELETE FROM "+migrationsTable+" WHERE name = ?", last.Name).Error
	})
	if err != nil {
		return "", fmt.Errorf("failed to roll back %s: %w", last.Name, err)
	}

	slog.Info("Rolled back migration", slog.String("name", last.Name))
	return last.Name, nil
}

// AppliedMigrations lists applied migrations, oldest first.
func AppliedMigrations(db *gorm.DB) ([]AppliedMigration, error) {
	var applied []AppliedMigration
	if err := db.Table(migrationsTable).Select("name", "applied_at").Order("id").Scan(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}
	return applied, nil
}

// PendingMigrations lists the migration files in fsys that have not been applied.
func PendingMigrations(db *gorm.DB, fsys fs.FS) ([]string, error) {
	files, err := migrationFiles(fsys)
	if err != nil {
		return nil, err
	}
	applied, err := AppliedMigrations(db)
	if err != nil {
		return nil, err
	}
	done := make(map[string]bool, len(applied))
	for _, m := range applied {
		done[m.Name] = true
	}

	var pending []string
	for _, name := range files {
		if !done[name] {
			pending = append(pending, name)
		}
	}
	return pending, nil
}

func ensureMigrationsTable(db *gorm.DB) error {
	err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func migrationFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, "_rollback.sql") {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}
