package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

func TestSearchTags(t *testing.T) {
	svc, db := newService(t)
	tags := service.NewTagService(db)
	ctx := context.Background()

	createRecipe(t, svc, service.CreateRecipeInput{
		Title: "Risotto",
		Tags: []service.TagInput{
			{Name: "Italian", TagType: model.TagTypeCuisine},
			{Name: "Vegetarian", TagType: model.TagTypeCustom},
			{Name: "Dinner", TagType: model.TagTypeType},
		},
	})

	found, err := tags.SearchTags(ctx, " ITAL")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Italian", found[0].Name)

	all, err := tags.SearchTags(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Italian", "Dinner", "Vegetarian"}, []string{all[0].Name, all[1].Name, all[2].Name})

	none, err := tags.SearchTags(ctx, "qqq")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchEquipment(t *testing.T) {
	svc, db := newService(t)
	equipment := service.NewEquipmentService(db)
	ctx := context.Background()

	createRecipe(t, svc, service.CreateRecipeInput{Title: "Stir Fry", EquipmentNames: []string{"Wok", "Cutting Board", "Chef Knife"}})

	found, err := equipment.SearchEquipment(ctx, "knif")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Chef Knife", found[0].Name)

	all, err := equipment.SearchEquipment(ctx, "  ")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Chef Knife", all[0].Name)
	assert.Equal(t, "Wok", all[2].Name)
}
