package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
)

// RecipeCriteria is the conjunctive filter applied to active recipes.
// Zero-valued fields impose no constraint.
type RecipeCriteria struct {
	// SearchTerm must already be trimmed and lower-cased.
	SearchTerm      string
	IsTried         *bool
	Cuisines        []string
	Types           []string
	Equipment       []string
	WorkspaceNeeded *model.WorkspaceNeeded
	TimeCategory    *model.TimeCategory
	Messiness       *model.Messiness
	MinProteinGrams *float64
}

// RecipeRepository reads and writes recipes and their join rows.
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *RecipeRepository) WithTx(tx *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: tx}
}

// FindActive returns gorm.ErrRecordNotFound for missing or deleted recipes.
func (r *RecipeRepository) FindActive(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Scopes(Active("recipes")).
		Where("recipes.id = ?", id).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// editableColumns are the recipe columns an update writes. Creation and
// deletion stamps are never part of an update.
var editableColumns = []string{
	"title", "instructions", "description",
	"prep_time_minutes", "cook_time_minutes", "servings", "protein_grams",
	"is_tried", "source_url", "image_url", "notes",
	"workspace_needed", "time_category", "messiness",
	"updated_at", "updated_by",
}

// SaveActive writes the editable columns of recipe, provided it is still
// active, and reports whether it was.
func (r *RecipeRepository) SaveActive(ctx context.Context, recipe *model.Recipe) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(recipe).
		Select(editableColumns).
		Scopes(Active("recipes")).
		Updates(recipe)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateActive applies columns to an active recipe and reports whether one
// was found.
func (r *RecipeRepository) UpdateActive(ctx context.Context, id uuid.UUID, columns map[string]any) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Scopes(Active("recipes")).
		Where("recipes.id = ?", id).
		Updates(columns)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetTried sets is_tried on an active recipe.
func (r *RecipeRepository) SetTried(ctx context.Context, id uuid.UUID, tried bool, actor *uuid.UUID, now time.Time) (bool, error) {
	return r.UpdateActive(ctx, id, map[string]any{
		"is_tried":   tried,
		"updated_at": now,
		"updated_by": actor,
	})
}

// SoftDelete marks an active recipe deleted. Its join rows are kept.
func (r *RecipeRepository) SoftDelete(ctx context.Context, id uuid.UUID, actor *uuid.UUID, now time.Time) (bool, error) {
	return r.UpdateActive(ctx, id, map[string]any{
		"is_deleted": true,
		"deleted_at": now,
		"deleted_by": actor,
		"updated_at": now,
		"updated_by": actor,
	})
}

// ReplaceTags makes tagIDs the complete tag set of the recipe.
func (r *RecipeRepository) ReplaceTags(ctx context.Context, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&model.RecipeTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear recipe tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	links := make([]model.RecipeTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		links = append(links, model.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to attach recipe tags: %w", err)
	}
	return nil
}

// ReplaceEquipment makes equipmentIDs the complete equipment set of the recipe.
func (r *RecipeRepository) ReplaceEquipment(ctx context.Context, recipeID uuid.UUID, equipmentIDs []uuid.UUID) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&model.RecipeEquipment{}).Error; err != nil {
		return fmt.Errorf("failed to clear recipe equipment: %w", err)
	}
	if len(equipmentIDs) == 0 {
		return nil
	}

	links := make([]model.RecipeEquipment, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		links = append(links, model.RecipeEquipment{RecipeID: recipeID, EquipmentID: id})
	}
	if err := db.Create(&links).Error; err != nil {
		return fmt.Errorf("failed to attach recipe equipment: %w", err)
	}
	return nil
}

// LoadTags returns the active tags of each recipe ordered by type then name.
func (r *RecipeRepository) LoadTags(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]model.Tag, error) {
	result := make(map[uuid.UUID][]model.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	db := r.db.WithContext(ctx)
	var links []model.RecipeTag
	if err := db.Where("recipe_id IN ?", recipeIDs).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe tags: %w", err)
	}
	if len(links) == 0 {
		return result, nil
	}

	tagIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		tagIDs = append(tagIDs, link.TagID)
	}
	var tags []model.Tag
	err := db.Scopes(Active("tags")).
		Where("tags.id IN ?", tagIDs).
		Order("tags.tag_type").Order("tags.name").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}

	recipesByTag := make(map[uuid.UUID][]uuid.UUID, len(tags))
	for _, link := range links {
		recipesByTag[link.TagID] = append(recipesByTag[link.TagID], link.RecipeID)
	}
	// Walk tags in their sorted order so each recipe's slice stays sorted.
	for _, tag := range tags {
		for _, recipeID := range recipesByTag[tag.ID] {
			result[recipeID] = append(result[recipeID], tag)
		}
	}
	return result, nil
}

// LoadEquipment returns the active equipment of each recipe ordered by name.
func (r *RecipeRepository) LoadEquipment(ctx context.Context, recipeIDs []uuid.UUID) (map[uuid.UUID][]model.Equipment, error) {
	result := make(map[uuid.UUID][]model.Equipment, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	db := r.db.WithContext(ctx)
	var links []model.RecipeEquipment
	if err := db.Where("recipe_id IN ?", recipeIDs).Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipe equipment: %w", err)
	}
	if len(links) == 0 {
		return result, nil
	}

	equipmentIDs := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		equipmentIDs = append(equipmentIDs, link.EquipmentID)
	}
	var equipment []model.Equipment
	err := db.Scopes(Active("equipment")).
		Where("equipment.id IN ?", equipmentIDs).
		Order("equipment.name").
		Find(&equipment).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load equipment: %w", err)
	}

	recipesByEquipment := make(map[uuid.UUID][]uuid.UUID, len(equipment))
	for _, link := range links {
		recipesByEquipment[link.EquipmentID] = append(recipesByEquipment[link.EquipmentID], link.RecipeID)
	}
	for _, item := range equipment {
		for _, recipeID := range recipesByEquipment[item.ID] {
			result[recipeID] = append(result[recipeID], item)
		}
	}
	return result, nil
}

// Filter counts the active recipes matching c and returns the requested
// window, newest first with id as the tie-break.
func (r *RecipeRepository) Filter(ctx context.Context, c RecipeCriteria, offset, limit int) ([]model.Recipe, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Recipe{}).
		Scopes(Active("recipes"), r.matching(c)).
		Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []model.Recipe
	err := query.
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, total, nil
}

// FilterStatement renders the listing query for c without running it.
func (r *RecipeRepository) FilterStatement(c RecipeCriteria, offset, limit int) *gorm.Statement {
	stmt := r.db.Session(&gorm.Session{DryRun: true}).
		Model(&model.Recipe{}).
		Scopes(Active("recipes"), r.matching(c)).
		Order("recipes.created_at DESC").
		Order("recipes.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&[]model.Recipe{}).Statement
	return stmt
}

func (r *RecipeRepository) matching(c RecipeCriteria) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if c.SearchTerm != "" {
			db = db.Where(
				"(similarity(lower(recipes.title), ?) > ? OR similarity(lower(coalesce(recipes.description, '')), ?) > ?)",
				c.SearchTerm, SearchSimilarityThreshold, c.SearchTerm, SearchSimilarityThreshold,
			)
		}
		if c.IsTried != nil {
			db = db.Where("recipes.is_tried = ?", *c.IsTried)
		}
		if len(c.Cuisines) > 0 {
			db = db.Where("EXISTS (?)", r.taggedWith(model.TagTypeCuisine, c.Cuisines))
		}
		if len(c.Types) > 0 {
			db = db.Where("EXISTS (?)", r.taggedWith(model.TagTypeType, c.Types))
		}
		if len(c.Equipment) > 0 {
			db = db.Where("EXISTS (?)", r.usesEquipment(c.Equipment))
		}
		if c.WorkspaceNeeded != nil {
			db = db.Where("recipes.workspace_needed = ?", *c.WorkspaceNeeded)
		}
		if c.TimeCategory != nil {
			db = db.Where("recipes.time_category = ?", *c.TimeCategory)
		}
		if c.Messiness != nil {
			db = db.Where("recipes.messiness = ?", *c.Messiness)
		}
		if c.MinProteinGrams != nil {
			db = db.Where("recipes.protein_grams >= ?", *c.MinProteinGrams)
		}
		return db
	}
}

func (r *RecipeRepository) taggedWith(tagType model.TagType, names []string) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true}).
		Table("recipe_tags").
		Select("1").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Scopes(Active("tags")).
		Where("recipe_tags.recipe_id = recipes.id").
		Where("tags.tag_type = ?", tagType).
		Where("lower(tags.name) IN ?", lowerAll(names))
}

func (r *RecipeRepository) usesEquipment(names []string) *gorm.DB {
	return r.db.Session(&gorm.Session{NewDB: true}).
		Table("recipe_equipment").
		Select("1").
		Joins("JOIN equipment ON equipment.id = recipe_equipment.equipment_id").
		Scopes(Active("equipment")).
		Where("recipe_equipment.recipe_id = recipes.id").
		Where("lower(equipment.name) IN ?", lowerAll(names))
}

func lowerAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, model.NormalizeName(name))
	}
	return out
}
