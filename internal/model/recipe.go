package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity holds the audit columns shared by every table. Rows are never
// removed by the application; IsDeleted marks them as gone.
type Entity struct {
	CreatedAt time.Time  `gorm:"not null"`
	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	IsDeleted bool       `gorm:"not null;default:false"`
	DeletedAt *time.Time
	DeletedBy *uuid.UUID `gorm:"type:uuid"`
}

// StampCreated records who created the row and when.
func (e *Entity) StampCreated(actor *uuid.UUID, now time.Time) {
	e.CreatedAt = now
	e.CreatedBy = actor
}

// StampUpdated records who last changed the row and when.
func (e *Entity) StampUpdated(actor *uuid.UUID, now time.Time) {
	e.UpdatedAt = &now
	e.UpdatedBy = actor
}

// Recipe is a stored recipe together with its optional facets.
type Recipe struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Title           string           `gorm:"size:255;not null"`
	Instructions    string           `gorm:"type:text;not null"`
	Description     *string          `gorm:"size:2000"`
	PrepTimeMinutes *int             `gorm:"column:prep_time_minutes"`
	CookTimeMinutes *int             `gorm:"column:cook_time_minutes"`
	Servings        *int             `gorm:"column:servings"`
	ProteinGrams    *float64         `gorm:"type:numeric(10,2)"`
	IsTried         bool             `gorm:"not null;default:false;index"`
	SourceURL       *string          `gorm:"column:source_url;size:2048"`
	ImageURL        *string          `gorm:"column:image_url;size:2048"`
	Notes           *string          `gorm:"type:text"`
	WorkspaceNeeded *WorkspaceNeeded `gorm:"type:smallint;index"`
	TimeCategory    *TimeCategory    `gorm:"type:smallint;index"`
	Messiness       *Messiness       `gorm:"type:smallint"`
	Entity
}

func (Recipe) TableName() string { return "recipes" }

// NewRecipe returns a recipe with a fresh id and its required fields set.
func NewRecipe(title, instructions string) *Recipe {
	return &Recipe{
		ID:           uuid.New(),
		Title:        title,
		Instructions: instructions,
	}
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RecipeTag links a recipe to a tag. Deleting either side removes the link.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tag      *Tag      `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}

func (RecipeTag) TableName() string { return "recipe_tags" }

// RecipeEquipment links a recipe to a piece of equipment.
type RecipeEquipment struct {
	RecipeID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EquipmentID uuid.UUID  `gorm:"type:uuid;primaryKey;index"`
	Recipe      *Recipe    `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
}

func (RecipeEquipment) TableName() string { return "recipe_equipment" }

// NormalizeName is the form tag and equipment names are compared in.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
