package integration

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
)

func TestConcurrentCreatesShareTagsOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := recipes.CreateRecipe(ctx, service.CreateRecipeInput{
				Title:          "Pho",
				Instructions:   "Simmer the broth.",
				Tags:           []service.TagInput{{Name: "Vietnamese", TagType: model.TagTypeCuisine}},
				EquipmentNames: []string{"Stock Pot"},
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var tagCount, equipmentCount int64
	require.NoError(t, db.Model(&model.Tag{}).Where("lower(name) = ?", "vietnamese").Count(&tagCount).Error)
	require.NoError(t, db.Model(&model.Equipment{}).Where("lower(name) = ?", "stock pot").Count(&equipmentCount).Error)
	assert.EqualValues(t, 1, tagCount)
	assert.EqualValues(t, 1, equipmentCount)
}

func TestSearchAndFacetsOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testhelpers.SetupTestDatabase(t)
	recipes := service.NewRecipeService(db)
	tags := service.NewTagService(db)
	ctx := context.Background()

	protein := 30.0
	quick := model.TimeQuick
	tacosID, err := recipes.CreateRecipe(ctx, service.CreateRecipeInput{
		Title:          "Chicken Tacos",
		Instructions:   "Grill and serve.",
		ProteinGrams:   &protein,
		TimeCategory:   &quick,
		Tags:           []service.TagInput{{Name: "Mexican", TagType: model.TagTypeCuisine}},
		EquipmentNames: []string{"Skillet"},
	})
	require.NoError(t, err)
	_, err = recipes.CreateRecipe(ctx, service.CreateRecipeInput{
		Title:        "Green Salad",
		Instructions: "Toss.",
	})
	require.NoError(t, err)

	term := "chiken tacos"
	filter := service.NewRecipeFilter()
	filter.SearchTerm = &term
	page, err := recipes.ListRecipes(ctx, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, tacosID, page.Items[0].ID)

	minProtein := 25.0
	filter = service.NewRecipeFilter()
	filter.Cuisines = []string{"mexican"}
	filter.Equipment = []string{"SKILLET"}
	filter.MinProteinGrams = &minProtein
	page, err = recipes.ListRecipes(ctx, filter)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.EqualValues(t, 1, page.TotalCount)
	require.Len(t, page.Items[0].Tags, 1)
	assert.Equal(t, "Mexican", page.Items[0].Tags[0].Name)

	found, err := tags.SearchTags(ctx, "mexcan")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, model.TagTypeCuisine, found[0].TagType)

	require.NoError(t, recipes.DeleteRecipe(ctx, tacosID))
	_, err = recipes.GetRecipe(ctx, tacosID)
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	assert.ErrorIs(t, recipes.DeleteRecipe(ctx, uuid.New()), service.ErrRecipeNotFound)
}
