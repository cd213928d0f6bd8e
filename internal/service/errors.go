package service

import "errors"

var (
	// ErrRecipeNotFound is returned for ids that do not exist or name a
	// deleted recipe.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvalidRecipe wraps input the service refuses before touching the
	// database.
	ErrInvalidRecipe = errors.New("invalid recipe")
)
