package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pageza/recipe-tracker/backend/internal/model"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) WithTx(tx *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: tx}
}

func (r *EquipmentRepository) FindByName(ctx context.Context, name string) (*model.Equipment, error) {
	var equipment model.Equipment
	err := r.db.WithContext(ctx).
		Scopes(Active("equipment")).
		Where("lower(equipment.name) = ?", model.NormalizeName(name)).
		First(&equipment).Error
	if err != nil {
		return nil, err
	}
	return &equipment, nil
}

// Insert creates equipment inside a savepoint, like TagRepository.Insert.
func (r *EquipmentRepository) Insert(ctx context.Context, equipment *model.Equipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(equipment).Error
	})
}

func (r *EquipmentRepository) Search(ctx context.Context, term string) ([]model.Equipment, error) {
	var equipment []model.Equipment
	err := r.db.WithContext(ctx).
		Scopes(Active("equipment"), NameSimilarTo("equipment.name", term, AutocompleteSimilarityThreshold)).
		Order("equipment.name").
		Find(&equipment).Error
	return equipment, err
}
