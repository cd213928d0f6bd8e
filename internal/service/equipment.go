package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/repository"
)

type EquipmentService struct {
	equipment *repository.EquipmentRepository
}

func NewEquipmentService(db *gorm.DB) *EquipmentService {
	return &EquipmentService{equipment: repository.NewEquipmentRepository(db)}
}

func (s *EquipmentService) SearchEquipment(ctx context.Context, term string) ([]model.Equipment, error) {
	equipment, err := s.equipment.Search(ctx, strings.ToLower(strings.TrimSpace(term)))
	if err != nil {
		return nil, fmt.Errorf("failed to search equipment: %w", err)
	}
	return equipment, nil
}
