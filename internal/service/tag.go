package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/repository"
)

// TagService serves tag autocomplete.
type TagService struct {
	tags *repository.TagRepository
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{tags: repository.NewTagRepository(db)}
}

// SearchTags returns active tags whose name is similar to term. An empty
// term returns every active tag.
func (s *TagService) SearchTags(ctx context.Context, term string) ([]model.Tag, error) {
	tags, err := s.tags.Search(ctx, strings.ToLower(strings.TrimSpace(term)))
	if err != nil {
		return nil, fmt.Errorf("failed to search tags: %w", err)
	}
	return tags, nil
}
