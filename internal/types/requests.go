package types

import (
	"github.com/pageza/recipe-tracker/backend/internal/model"
)

// TagRequest names a tag to attach. It is created when no active tag with
// the same name and type exists.
type TagRequest struct {
	Name    string         `json:"name" binding:"required,max=100"`
	TagType *model.TagType `json:"tagType" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Title           string                 `json:"title" binding:"required,max=255"`
	Instructions    string                 `json:"instructions" binding:"required"`
	Description     *string                `json:"description" binding:"omitempty,max=2000"`
	PrepTimeMinutes *int                   `json:"prepTimeMinutes" binding:"omitempty,min=1"`
	CookTimeMinutes *int                   `json:"cookTimeMinutes" binding:"omitempty,min=1"`
	Servings        *int                   `json:"servings" binding:"omitempty,min=1"`
	ProteinGrams    *float64               `json:"proteinGrams" binding:"omitempty,min=0"`
	IsTried         bool                   `json:"isTried"`
	SourceURL       *string                `json:"sourceUrl" binding:"omitempty,max=2048,url"`
	ImageURL        *string                `json:"imageUrl" binding:"omitempty,max=2048,url"`
	Notes           *string                `json:"notes"`
	WorkspaceNeeded *model.WorkspaceNeeded `json:"workspaceNeeded"`
	TimeCategory    *model.TimeCategory    `json:"timeCategory"`
	Messiness       *model.Messiness       `json:"messiness"`
	Tags            []TagRequest           `json:"tags" binding:"omitempty,dive"`
	EquipmentNames  []string               `json:"equipmentNames" binding:"omitempty,dive,required,max=100"`
}

// UpdateRecipeRequest carries a partial update. Nil fields are left as they
// are. A non-nil Tags or EquipmentNames replaces the whole set, so an empty
// list clears it.
type UpdateRecipeRequest struct {
	Title           *string                `json:"title" binding:"omitempty,min=1,max=255"`
	Instructions    *string                `json:"instructions" binding:"omitempty,min=1"`
	Description     *string                `json:"description" binding:"omitempty,max=2000"`
	PrepTimeMinutes *int                   `json:"prepTimeMinutes" binding:"omitempty,min=1"`
	CookTimeMinutes *int                   `json:"cookTimeMinutes" binding:"omitempty,min=1"`
	Servings        *int                   `json:"servings" binding:"omitempty,min=1"`
	ProteinGrams    *float64               `json:"proteinGrams" binding:"omitempty,min=0"`
	IsTried         *bool                  `json:"isTried"`
	SourceURL       *string                `json:"sourceUrl" binding:"omitempty,max=2048,url"`
	ImageURL        *string                `json:"imageUrl" binding:"omitempty,max=2048,url"`
	Notes           *string                `json:"notes"`
	WorkspaceNeeded *model.WorkspaceNeeded `json:"workspaceNeeded"`
	TimeCategory    *model.TimeCategory    `json:"timeCategory"`
	Messiness       *model.Messiness       `json:"messiness"`
	Tags            *[]TagRequest          `json:"tags" binding:"omitempty,dive"`
	EquipmentNames  *[]string              `json:"equipmentNames" binding:"omitempty,dive,required,max=100"`
}

// ImageUploadRequest asks for a presigned upload URL.
type ImageUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}
