package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/pagination"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, input CreateRecipeInput) (uuid.UUID, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*RecipeDetails, error)
	ListRecipes(ctx context.Context, filter RecipeFilter) (*pagination.Result[RecipeDetails], error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, input UpdateRecipeInput) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
	MarkTried(ctx context.Context, id uuid.UUID) error
	MarkNotTried(ctx context.Context, id uuid.UUID) error
}

// ITagService defines the interface for tag autocomplete
type ITagService interface {
	SearchTags(ctx context.Context, term string) ([]model.Tag, error)
}

// IEquipmentService defines the interface for equipment autocomplete
type IEquipmentService interface {
	SearchEquipment(ctx context.Context, term string) ([]model.Equipment, error)
}

var (
	_ IRecipeService    = (*RecipeService)(nil)
	_ ITagService       = (*TagService)(nil)
	_ IEquipmentService = (*EquipmentService)(nil)
)
