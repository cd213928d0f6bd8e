package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/model"
)

type TagResponse struct {
	ID      uuid.UUID     `json:"id"`
	Name    string        `json:"name"`
	TagType model.TagType `json:"tagType"`
}

type EquipmentResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// RecipeResponse is the full projection of a recipe.
type RecipeResponse struct {
	ID              uuid.UUID              `json:"id"`
	Title           string                 `json:"title"`
	Description     *string                `json:"description"`
	Instructions    string                 `json:"instructions"`
	PrepTimeMinutes *int                   `json:"prepTimeMinutes"`
	CookTimeMinutes *int                   `json:"cookTimeMinutes"`
	Servings        *int                   `json:"servings"`
	ProteinGrams    *float64               `json:"proteinGrams"`
	IsTried         bool                   `json:"isTried"`
	SourceURL       *string                `json:"sourceUrl"`
	ImageURL        *string                `json:"imageUrl"`
	Notes           *string                `json:"notes"`
	WorkspaceNeeded *model.WorkspaceNeeded `json:"workspaceNeeded"`
	TimeCategory    *model.TimeCategory    `json:"timeCategory"`
	Messiness       *model.Messiness       `json:"messiness"`
	Tags            []TagResponse          `json:"tags"`
	Equipment       []EquipmentResponse    `json:"equipment"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       *time.Time             `json:"updatedAt"`
}

// RecipeListResponse is one page of recipes plus the paging metadata.
type RecipeListResponse struct {
	Items           []RecipeResponse `json:"items"`
	TotalCount      int64            `json:"totalCount"`
	PageNumber      int              `json:"pageNumber"`
	PageSize        int              `json:"pageSize"`
	TotalPages      int              `json:"totalPages"`
	HasPreviousPage bool             `json:"hasPreviousPage"`
	HasNextPage     bool             `json:"hasNextPage"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type ImageUploadResponse struct {
	UploadURL string    `json:"uploadUrl"`
	ImageURL  string    `json:"imageUrl"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
