package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

type seedFile struct {
	Recipes []seedRecipe `yaml:"recipes"`
}

type seedTag struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type seedRecipe struct {
	Title           string    `yaml:"title"`
	Description     *string   `yaml:"description"`
	Instructions    string    `yaml:"instructions"`
	PrepTimeMinutes *int      `yaml:"prepTimeMinutes"`
	CookTimeMinutes *int      `yaml:"cookTimeMinutes"`
	Servings        *int      `yaml:"servings"`
	ProteinGrams    *float64  `yaml:"proteinGrams"`
	IsTried         bool      `yaml:"isTried"`
	SourceURL       *string   `yaml:"sourceUrl"`
	Notes           *string   `yaml:"notes"`
	WorkspaceNeeded string    `yaml:"workspaceNeeded"`
	TimeCategory    string    `yaml:"timeCategory"`
	Messiness       string    `yaml:"messiness"`
	Tags            []seedTag `yaml:"tags"`
	Equipment       []string  `yaml:"equipment"`
}

// loadSeedFile decodes a YAML recipe list into create inputs.
func loadSeedFile(r io.Reader) ([]service.CreateRecipeInput, error) {
	var file seedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	inputs := make([]service.CreateRecipeInput, 0, len(file.Recipes))
	for i, recipe := range file.Recipes {
		input, err := recipe.toInput()
		if err != nil {
			return nil, fmt.Errorf("recipe %d (%s): %w", i+1, recipe.Title, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func (s seedRecipe) toInput() (service.CreateRecipeInput, error) {
	input := service.CreateRecipeInput{
		Title:           s.Title,
		Description:     s.Description,
		Instructions:    s.Instructions,
		PrepTimeMinutes: s.PrepTimeMinutes,
		CookTimeMinutes: s.CookTimeMinutes,
		Servings:        s.Servings,
		ProteinGrams:    s.ProteinGrams,
		IsTried:         s.IsTried,
		SourceURL:       s.SourceURL,
		Notes:           s.Notes,
		EquipmentNames:  s.Equipment,
	}

	if s.WorkspaceNeeded != "" {
		v, err := model.ParseWorkspaceNeeded(s.WorkspaceNeeded)
		if err != nil {
			return input, err
		}
		input.WorkspaceNeeded = &v
	}
	if s.TimeCategory != "" {
		v, err := model.ParseTimeCategory(s.TimeCategory)
		if err != nil {
			return input, err
		}
		input.TimeCategory = &v
	}
	if s.Messiness != "" {
		v, err := model.ParseMessiness(s.Messiness)
		if err != nil {
			return input, err
		}
		input.Messiness = &v
	}

	for _, tag := range s.Tags {
		tagType, err := model.ParseTagType(tag.Type)
		if err != nil {
			return input, err
		}
		input.Tags = append(input.Tags, service.TagInput{Name: tag.Name, TagType: tagType})
	}
	return input, nil
}
