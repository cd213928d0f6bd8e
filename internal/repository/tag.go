package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) WithTx(tx *gorm.DB) *TagRepository {
	return &TagRepository{db: tx}
}

// FindByName looks up an active tag of tagType whose name equals name
// ignoring case and surrounding whitespace.
func (r *TagRepository) FindByName(ctx context.Context, name string, tagType model.TagType) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Scopes(Active("tags")).
		Where("lower(tags.name) = ? AND tags.tag_type = ?", model.NormalizeName(name), tagType).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// Insert creates tag inside a savepoint so a constraint violation leaves an
// enclosing transaction usable.
func (r *TagRepository) Insert(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(tag).Error
	})
}

// Search returns active tags similar to term ordered by type then name.
func (r *TagRepository) Search(ctx context.Context, term string) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Scopes(Active("tags"), NameSimilarTo("tags.name", term, AutocompleteSimilarityThreshold)).
		Order("tags.tag_type").
		Order("tags.name").
		Find(&tags).Error
	return tags, err
}
