// Package repository holds the gorm queries behind the recipe services.
// Every read goes through Active so soft-deleted rows stay invisible.
package repository

import (
	"gorm.io/gorm"
)

const (
	// SearchSimilarityThreshold is the minimum trigram similarity for a
	// recipe title or description to match a search term.
	SearchSimilarityThreshold = 0.1
	// AutocompleteSimilarityThreshold is the minimum similarity for tag and
	// equipment name suggestions.
	AutocompleteSimilarityThreshold = 0.2
)

// Active limits a query to rows of table that are not soft deleted.
func Active(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".is_deleted = ?", false)
	}
}

// NameSimilarTo keeps rows whose lower-cased column is similar to term
// beyond threshold. An empty term keeps everything.
func NameSimilarTo(column, term string, threshold float64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		return db.Where("similarity(lower("+column+"), ?) > ?", term, threshold)
	}
}
