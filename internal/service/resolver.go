package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/database"
	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// ResolveTag returns the active tag called name (ignoring case and
// surrounding whitespace) of tagType, creating it inside tx when missing.
func (s *RecipeService) ResolveTag(ctx context.Context, tx *gorm.DB, name string, tagType model.TagType) (*model.Tag, error) {
	repo := s.tags.WithTx(tx)

	tag, err := repo.FindByName(ctx, name, tagType)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up tag %q: %w", name, err)
	}

	tag = model.NewTag(name, tagType)
	tag.StampCreated(types.ActorFromContext(ctx), s.now())
	if err := repo.Insert(ctx, tag); err != nil {
		if !database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create tag %q: %w", name, err)
		}
		// A concurrent request created it between the lookup and the insert.
		tag, err = repo.FindByName(ctx, name, tagType)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q after conflict: %w", name, err)
		}
	}
	return tag, nil
}

// ResolveEquipment is ResolveTag for equipment, keyed by name only.
func (s *RecipeService) ResolveEquipment(ctx context.Context, tx *gorm.DB, name string) (*model.Equipment, error) {
	repo := s.equipment.WithTx(tx)

	equipment, err := repo.FindByName(ctx, name)
	if err == nil {
		return equipment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up equipment %q: %w", name, err)
	}

	equipment = model.NewEquipment(name)
	equipment.StampCreated(types.ActorFromContext(ctx), s.now())
	if err := repo.Insert(ctx, equipment); err != nil {
		if !database.IsUniqueViolation(err) {
			return nil, fmt.Errorf("failed to create equipment %q: %w", name, err)
		}
		equipment, err = repo.FindByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve equipment %q after conflict: %w", name, err)
		}
	}
	return equipment, nil
}

func (s *RecipeService) resolveTags(ctx context.Context, tx *gorm.DB, inputs []TagInput) ([]uuid.UUID, error) {
	type key struct {
		name    string
		tagType model.TagType
	}
	seen := make(map[key]bool, len(inputs))
	ids := make([]uuid.UUID, 0, len(inputs))
	attached := make(map[uuid.UUID]bool, len(inputs))

	for _, in := range inputs {
		k := key{model.NormalizeName(in.Name), in.TagType}
		if k.name == "" {
			return nil, fmt.Errorf("%w: tag name is required", ErrInvalidRecipe)
		}
		if seen[k] {
			continue
		}
		seen[k] = true

		tag, err := s.ResolveTag(ctx, tx, in.Name, in.TagType)
		if err != nil {
			return nil, err
		}
		if !attached[tag.ID] {
			attached[tag.ID] = true
			ids = append(ids, tag.ID)
		}
	}
	return ids, nil
}

func (s *RecipeService) resolveEquipment(ctx context.Context, tx *gorm.DB, names []string) ([]uuid.UUID, error) {
	seen := make(map[string]bool, len(names))
	ids := make([]uuid.UUID, 0, len(names))
	attached := make(map[uuid.UUID]bool, len(names))

	for _, name := range names {
		normalized := model.NormalizeName(name)
		if normalized == "" {
			return nil, fmt.Errorf("%w: equipment name is required", ErrInvalidRecipe)
		}
		if seen[normalized] {
			continue
		}
		seen[normalized] = true

		equipment, err := s.ResolveEquipment(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		if !attached[equipment.ID] {
			attached[equipment.ID] = true
			ids = append(ids, equipment.ID)
		}
	}
	return ids, nil
}
