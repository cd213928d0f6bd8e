package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/pagination"
	"github.com/pageza/recipe-tracker/backend/internal/repository"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// RecipeService handles recipe operations. Every mutation runs in a single
// transaction.
type RecipeService struct {
	db          *gorm.DB
	recipes     *repository.RecipeRepository
	tags        *repository.TagRepository
	equipment   *repository.EquipmentRepository
	maxPageSize int
	now         func() time.Time
}

type Option func(*RecipeService)

// WithMaxPageSize caps the page size ListRecipes accepts.
func WithMaxPageSize(n int) Option {
	return func(s *RecipeService) {
		s.maxPageSize = n
	}
}

// WithClock replaces time.Now for audit stamps.
func WithClock(now func() time.Time) Option {
	return func(s *RecipeService) {
		s.now = now
	}
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, opts ...Option) *RecipeService {
	s := &RecipeService{
		db:          db,
		recipes:     repository.NewRecipeRepository(db),
		tags:        repository.NewTagRepository(db),
		equipment:   repository.NewEquipmentRepository(db),
		maxPageSize: pagination.DefaultMaxSize,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRecipe stores a recipe with its tags and equipment and returns its id.
func (s *RecipeService) CreateRecipe(ctx context.Context, input CreateRecipeInput) (uuid.UUID, error) {
	if strings.TrimSpace(input.Title) == "" {
		return uuid.Nil, fmt.Errorf("%w: title is required", ErrInvalidRecipe)
	}
	if strings.TrimSpace(input.Instructions) == "" {
		return uuid.Nil, fmt.Errorf("%w: instructions are required", ErrInvalidRecipe)
	}

	recipe := model.NewRecipe(input.Title, input.Instructions)
	recipe.Description = input.Description
	recipe.PrepTimeMinutes = input.PrepTimeMinutes
	recipe.CookTimeMinutes = input.CookTimeMinutes
	recipe.Servings = input.Servings
	recipe.ProteinGrams = input.ProteinGrams
	recipe.IsTried = input.IsTried
	recipe.SourceURL = input.SourceURL
	recipe.ImageURL = input.ImageURL
	recipe.Notes = input.Notes
	recipe.WorkspaceNeeded = input.WorkspaceNeeded
	recipe.TimeCategory = input.TimeCategory
	recipe.Messiness = input.Messiness
	recipe.StampCreated(types.ActorFromContext(ctx), s.now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.recipes.WithTx(tx).Create(ctx, recipe); err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		return s.replaceAssociations(ctx, tx, recipe.ID, &input.Tags, &input.EquipmentNames)
	})
	if err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "recipe created",
		slog.String("recipe_id", recipe.ID.String()),
		slog.Int("tags", len(input.Tags)),
		slog.Int("equipment", len(input.EquipmentNames)),
	)
	return recipe.ID, nil
}

// GetRecipe returns an active recipe with its active tags and equipment.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDetails, error) {
	recipe, err := s.recipes.FindActive(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	details, err := s.withAssociations(ctx, s.recipes, []model.Recipe{*recipe})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListRecipes returns one page of the active recipes matching filter, newest
// first.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) (*pagination.Result[RecipeDetails], error) {
	if err := pagination.Validate(filter.PageNumber, filter.PageSize, s.maxPageSize); err != nil {
		return nil, err
	}

	criteria := repository.RecipeCriteria{
		IsTried:         filter.IsTried,
		Cuisines:        filter.Cuisines,
		Types:           filter.Types,
		Equipment:       filter.Equipment,
		WorkspaceNeeded: filter.WorkspaceNeeded,
		TimeCategory:    filter.TimeCategory,
		Messiness:       filter.Messiness,
		MinProteinGrams: filter.MinProteinGrams,
	}
	if filter.SearchTerm != nil {
		criteria.SearchTerm = strings.ToLower(strings.TrimSpace(*filter.SearchTerm))
	}

	var result *pagination.Result[RecipeDetails]
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipes := s.recipes.WithTx(tx)
		rows, total, err := recipes.Filter(ctx, criteria,
			pagination.Offset(filter.PageNumber, filter.PageSize), filter.PageSize)
		if err != nil {
			return err
		}

		page, err := pagination.New(total, filter.PageNumber, filter.PageSize)
		if err != nil {
			return err
		}
		items, err := s.withAssociations(ctx, recipes, rows)
		if err != nil {
			return err
		}
		result = &pagination.Result[RecipeDetails]{Items: items, Page: page}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateRecipe applies a partial update to an active recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) error {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidRecipe)
	}
	if input.Instructions != nil && strings.TrimSpace(*input.Instructions) == "" {
		return fmt.Errorf("%w: instructions cannot be empty", ErrInvalidRecipe)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipes := s.recipes.WithTx(tx)
		recipe, err := recipes.FindActive(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("failed to get recipe: %w", err)
		}

		input.apply(recipe)
		recipe.StampUpdated(types.ActorFromContext(ctx), s.now())
		// A delete committed since the read leaves nothing to update.
		found, err := recipes.SaveActive(ctx, recipe)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if !found {
			return ErrRecipeNotFound
		}
		return s.replaceAssociations(ctx, tx, recipe.ID, input.Tags, input.EquipmentNames)
	})
}

// DeleteRecipe soft deletes an active recipe. Its tags and equipment stay.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	found, err := s.recipes.SoftDelete(ctx, id, types.ActorFromContext(ctx), s.now())
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if !found {
		return ErrRecipeNotFound
	}
	slog.InfoContext(ctx, "recipe deleted", slog.String("recipe_id", id.String()))
	return nil
}

func (s *RecipeService) MarkTried(ctx context.Context, id uuid.UUID) error {
	return s.setTried(ctx, id, true)
}

func (s *RecipeService) MarkNotTried(ctx context.Context, id uuid.UUID) error {
	return s.setTried(ctx, id, false)
}

func (s *RecipeService) setTried(ctx context.Context, id uuid.UUID, tried bool) error {
	found, err := s.recipes.SetTried(ctx, id, tried, types.ActorFromContext(ctx), s.now())
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if !found {
		return ErrRecipeNotFound
	}
	return nil
}

// replaceAssociations swaps the recipe's tags and equipment for the given
// sets. A nil set is left untouched.
func (s *RecipeService) replaceAssociations(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID, tags *[]TagInput, equipment *[]string) error {
	recipes := s.recipes.WithTx(tx)
	if tags != nil {
		ids, err := s.resolveTags(ctx, tx, *tags)
		if err != nil {
			return err
		}
		if err := recipes.ReplaceTags(ctx, recipeID, ids); err != nil {
			return err
		}
	}
	if equipment != nil {
		ids, err := s.resolveEquipment(ctx, tx, *equipment)
		if err != nil {
			return err
		}
		if err := recipes.ReplaceEquipment(ctx, recipeID, ids); err != nil {
			return err
		}
	}
	return nil
}

func (s *RecipeService) withAssociations(ctx context.Context, recipes *repository.RecipeRepository, rows []model.Recipe) ([]RecipeDetails, error) {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	tags, err := recipes.LoadTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	equipment, err := recipes.LoadEquipment(ctx, ids)
	if err != nil {
		return nil, err
	}

	details := make([]RecipeDetails, 0, len(rows))
	for _, r := range rows {
		details = append(details, RecipeDetails{
			Recipe:    r,
			Tags:      tags[r.ID],
			Equipment: equipment[r.ID],
		})
	}
	return details, nil
}
