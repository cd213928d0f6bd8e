package service

import (
	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/pagination"
)

// TagInput names a tag by its name and type.
type TagInput struct {
	Name    string
	TagType model.TagType
}

type CreateRecipeInput struct {
	Title           string
	Instructions    string
	Description     *string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Servings        *int
	ProteinGrams    *float64
	IsTried         bool
	SourceURL       *string
	ImageURL        *string
	Notes           *string
	WorkspaceNeeded *model.WorkspaceNeeded
	TimeCategory    *model.TimeCategory
	Messiness       *model.Messiness
	Tags            []TagInput
	EquipmentNames  []string
}

// UpdateRecipeInput is a partial update: nil means "leave as is". Tags and
// EquipmentNames replace the whole set when non-nil, even when empty.
type UpdateRecipeInput struct {
	Title           *string
	Instructions    *string
	Description     *string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	Servings        *int
	ProteinGrams    *float64
	IsTried         *bool
	SourceURL       *string
	ImageURL        *string
	Notes           *string
	WorkspaceNeeded *model.WorkspaceNeeded
	TimeCategory    *model.TimeCategory
	Messiness       *model.Messiness
	Tags            *[]TagInput
	EquipmentNames  *[]string
}

func (in UpdateRecipeInput) apply(r *model.Recipe) {
	setIfProvided(&r.Title, in.Title)
	setIfProvided(&r.Instructions, in.Instructions)
	setIfProvided(&r.IsTried, in.IsTried)
	setOptional(&r.Description, in.Description)
	setOptional(&r.PrepTimeMinutes, in.PrepTimeMinutes)
	setOptional(&r.CookTimeMinutes, in.CookTimeMinutes)
	setOptional(&r.Servings, in.Servings)
	setOptional(&r.ProteinGrams, in.ProteinGrams)
	setOptional(&r.SourceURL, in.SourceURL)
	setOptional(&r.ImageURL, in.ImageURL)
	setOptional(&r.Notes, in.Notes)
	setOptional(&r.WorkspaceNeeded, in.WorkspaceNeeded)
	setOptional(&r.TimeCategory, in.TimeCategory)
	setOptional(&r.Messiness, in.Messiness)
}

func setIfProvided[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setOptional[T any](dst **T, v *T) {
	if v != nil {
		value := *v
		*dst = &value
	}
}

// RecipeFilter selects a page of recipes. Zero-valued criteria impose no
// constraint; the page fields are validated as given.
type RecipeFilter struct {
	SearchTerm      *string
	IsTried         *bool
	Cuisines        []string
	Types           []string
	Equipment       []string
	WorkspaceNeeded *model.WorkspaceNeeded
	TimeCategory    *model.TimeCategory
	Messiness       *model.Messiness
	MinProteinGrams *float64
	PageNumber      int
	PageSize        int
}

// NewRecipeFilter returns an unconstrained filter for the first page.
func NewRecipeFilter() RecipeFilter {
	return RecipeFilter{
		PageNumber: pagination.DefaultPageNumber,
		PageSize:   pagination.DefaultPageSize,
	}
}

// RecipeDetails is a recipe with its active tags and equipment.
type RecipeDetails struct {
	model.Recipe
	Tags      []model.Tag
	Equipment []model.Equipment
}
