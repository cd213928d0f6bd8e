package model

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag labels recipes. The pair (lower(name), tag type) is unique among
// tags that are not deleted.
type Tag struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"size:100;not null"`
	TagType TagType   `gorm:"type:smallint;not null"`
	Entity
}

func (Tag) TableName() string { return "tags" }

// NewTag keeps the caller's casing and strips surrounding whitespace.
func NewTag(name string, tagType TagType) *Tag {
	return &Tag{
		ID:      uuid.New(),
		Name:    strings.TrimSpace(name),
		TagType: tagType,
	}
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Equipment is a tool a recipe needs. lower(name) is unique among rows
// that are not deleted.
type Equipment struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"size:100;not null"`
	Entity
}

func (Equipment) TableName() string { return "equipment" }

func NewEquipment(name string) *Equipment {
	return &Equipment{
		ID:   uuid.New(),
		Name: strings.TrimSpace(name),
	}
}

func (e *Equipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
