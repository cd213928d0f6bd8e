package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/model"
)

const sample = `
recipes:
  - title: Tomato Soup
    instructions: Simmer and blend.
    proteinGrams: 8
    timeCategory: Quick
    messiness: low
    tags:
      - {name: Italian, type: Cuisine}
      - {name: Soup, type: Type}
    equipment: [Pot, Blender]
  - title: Toast
    instructions: Toast the bread.
`

func TestLoadSeedFile(t *testing.T) {
	inputs, err := loadSeedFile(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	soup := inputs[0]
	assert.Equal(t, "Tomato Soup", soup.Title)
	require.NotNil(t, soup.ProteinGrams)
	assert.Equal(t, 8.0, *soup.ProteinGrams)
	require.NotNil(t, soup.TimeCategory)
	assert.Equal(t, model.TimeQuick, *soup.TimeCategory)
	require.NotNil(t, soup.Messiness)
	assert.Equal(t, model.MessinessLow, *soup.Messiness)
	assert.Equal(t, []string{"Pot", "Blender"}, soup.EquipmentNames)
	require.Len(t, soup.Tags, 2)
	assert.Equal(t, model.TagTypeCuisine, soup.Tags[0].TagType)

	assert.Nil(t, inputs[1].TimeCategory)
	assert.Empty(t, inputs[1].Tags)
}

func TestLoadSeedFileRejectsUnknownEnum(t *testing.T) {
	_, err := loadSeedFile(strings.NewReader(`
recipes:
  - title: Bad
    instructions: x
    tags: [{name: Brunch, type: Meal}]
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recipe 1 (Bad)")
}
