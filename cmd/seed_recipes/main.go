package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-tracker/backend/config"
	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/logging"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/migrations"
)

var (
	seedPath string
	migrate  bool
)

var rootCmd = &cobra.Command{
	Use:          "seed_recipes",
	Short:        "Load recipes from a YAML file into the database",
	SilenceUsage: true,
	RunE:         run,
}

func run(cmd *cobra.Command, args []string) error {
	f, err := os.Open(seedPath)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	inputs, err := loadSeedFile(f)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	if migrate {
		if err := database.RunMigrations(db, migrations.FS); err != nil {
			return err
		}
	}

	recipes := service.NewRecipeService(db)
	ctx := context.Background()
	for _, input := range inputs {
		id, err := recipes.CreateRecipe(ctx, input)
		if err != nil {
			return fmt.Errorf("failed to seed %q: %w", input.Title, err)
		}
		slog.Info("Seeded recipe", slog.String("id", id.String()), slog.String("title", input.Title))
	}

	slog.Info("Seeding complete", slog.Int("count", len(inputs)))
	return nil
}

func main() {
	if _, err := logging.New(os.Getenv("LOG_LEVEL"), "text"); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	rootCmd.Flags().StringVarP(&seedPath, "file", "f", "seed/recipes.yaml", "YAML file with a top-level recipes list")
	rootCmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before seeding")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
