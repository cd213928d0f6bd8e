package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/repository"
	"github.com/pageza/recipe-tracker/backend/internal/testhelpers"
)

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db, mock
}

func TestFilterStatementOnPostgres(t *testing.T) {
	db, _ := newMockPostgres(t)
	repo := repository.NewRecipeRepository(db)

	minProtein := 20.0
	stmt := repo.FilterStatement(repository.RecipeCriteria{
		SearchTerm:      "tomatoe",
		Cuisines:        []string{"Italian", " MEXICAN "},
		Equipment:       []string{"Pot"},
		MinProteinGrams: &minProtein,
	}, 10, 10)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "recipes.is_deleted = $1")
	assert.Regexp(t, `similarity\(lower\(recipes\.title\), \$\d+\) > \$\d+`, sql)
	assert.Regexp(t, `similarity\(lower\(coalesce\(recipes\.description, ''\)\), \$\d+\) > \$\d+`, sql)
	assert.Contains(t, sql, "tags.is_deleted = $")
	assert.Contains(t, sql, "tags.tag_type = $")
	assert.Regexp(t, `lower\(tags\.name\) IN \(\$\d+,\$\d+\)`, sql)
	assert.Contains(t, sql, "equipment.is_deleted = $")
	assert.Contains(t, sql, "recipes.protein_grams >= $")
	assert.Contains(t, sql, "ORDER BY recipes.created_at DESC,recipes.id DESC")

	assert.Contains(t, stmt.Vars, "tomatoe")
	assert.Contains(t, stmt.Vars, "italian")
	assert.Contains(t, stmt.Vars, "mexican")
	assert.Contains(t, stmt.Vars, "pot")
	assert.Contains(t, stmt.Vars, repository.SearchSimilarityThreshold)
}

func TestFilterCountsBeforePaging(t *testing.T) {
	db, mock := newMockPostgres(t)
	repo := repository.NewRecipeRepository(db)

	id := uuid.New()
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "recipes" WHERE recipes.is_deleted = \$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE recipes.is_deleted = \$1 ORDER BY recipes.created_at DESC,recipes.id DESC LIMIT \$2`).
		WithArgs(false, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "instructions", "created_at", "is_deleted"}).
			AddRow(id.String(), "Tomato Soup", "Simmer", created, false))

	recipes, total, err := repo.Filter(context.Background(), repository.RecipeCriteria{}, 0, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, id, recipes[0].ID)
	assert.Equal(t, "Tomato Soup", recipes[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func seedRecipe(t *testing.T, db *gorm.DB, title string, created time.Time, tags []*model.Tag, equipment []*model.Equipment) *model.Recipe {
	t.Helper()
	recipe := model.NewRecipe(title, "Cook it")
	recipe.StampCreated(nil, created)
	require.NoError(t, db.Create(recipe).Error)
	for _, tag := range tags {
		require.NoError(t, db.Create(&model.RecipeTag{RecipeID: recipe.ID, TagID: tag.ID}).Error)
	}
	for _, item := range equipment {
		require.NoError(t, db.Create(&model.RecipeEquipment{RecipeID: recipe.ID, EquipmentID: item.ID}).Error)
	}
	return recipe
}

func TestFilterByTagsAndEquipment(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	italian := model.NewTag("Italian", model.TagTypeCuisine)
	soup := model.NewTag("Soup", model.TagTypeType)
	// A Custom tag named like a cuisine must not satisfy the cuisine filter.
	customItalian := model.NewTag("Italian", model.TagTypeCustom)
	pot := model.NewEquipment("Pot")
	for _, v := range []any{italian, soup, customItalian, pot} {
		require.NoError(t, db.Create(v).Error)
	}

	minestrone := seedRecipe(t, db, "Minestrone", base, []*model.Tag{italian, soup}, []*model.Equipment{pot})
	seedRecipe(t, db, "Pizza", base.Add(time.Hour), []*model.Tag{customItalian}, nil)

	recipes, total, err := repo.Filter(ctx, repository.RecipeCriteria{Cuisines: []string{"ITALIAN"}}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, recipes, 1)
	assert.Equal(t, minestrone.ID, recipes[0].ID)

	recipes, _, err = repo.Filter(ctx, repository.RecipeCriteria{Equipment: []string{"pot"}, Types: []string{"soup"}}, 0, 10)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, minestrone.ID, recipes[0].ID)

	// Deleting the tag hides it from the filter.
	require.NoError(t, db.Model(italian).Update("is_deleted", true).Error)
	_, total, err = repo.Filter(ctx, repository.RecipeCriteria{Cuisines: []string{"italian"}}, 0, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestLoadTagsSkipsDeletedTags(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)

	italian := model.NewTag("Italian", model.TagTypeCuisine)
	quick := model.NewTag("Weeknight", model.TagTypeCustom)
	dinner := model.NewTag("Dinner", model.TagTypeType)
	for _, tag := range []*model.Tag{italian, quick, dinner} {
		require.NoError(t, db.Create(tag).Error)
	}
	recipe := seedRecipe(t, db, "Lasagna", time.Now().UTC(), []*model.Tag{quick, dinner, italian}, nil)
	require.NoError(t, db.Model(dinner).Update("is_deleted", true).Error)

	tags, err := repo.LoadTags(context.Background(), []uuid.UUID{recipe.ID})
	require.NoError(t, err)
	require.Len(t, tags[recipe.ID], 2)
	assert.Equal(t, "Italian", tags[recipe.ID][0].Name)
	assert.Equal(t, "Weeknight", tags[recipe.ID][1].Name)
}

func TestSoftDeleteHidesRecipe(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	recipe := seedRecipe(t, db, "Stew", time.Now().UTC(), nil, nil)

	found, err := repo.SoftDelete(ctx, recipe.ID, nil, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, found)

	_, err = repo.FindActive(ctx, recipe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err = repo.SoftDelete(ctx, recipe.ID, nil, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveActiveSkipsDeletedRecipe(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	recipe := seedRecipe(t, db, "Paella", time.Now().UTC(), nil, nil)
	stale, err := repo.FindActive(ctx, recipe.ID)
	require.NoError(t, err)

	found, err := repo.SoftDelete(ctx, recipe.ID, nil, time.Now().UTC())
	require.NoError(t, err)
	require.True(t, found)

	notes := "late edit"
	stale.Notes = &notes
	found, err = repo.SaveActive(ctx, stale)
	require.NoError(t, err)
	assert.False(t, found)

	var row model.Recipe
	require.NoError(t, db.First(&row, "id = ?", recipe.ID).Error)
	assert.True(t, row.IsDeleted)
	assert.NotNil(t, row.DeletedAt)
	assert.Nil(t, row.Notes)
}

func TestSaveActiveWritesEditableColumnsOnly(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	creator := uuid.New()
	recipe := model.NewRecipe("Dal", "Simmer lentils")
	recipe.Notes = ptrTo("use red lentils")
	recipe.StampCreated(&creator, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, db.Create(recipe).Error)

	edited, err := repo.FindActive(ctx, recipe.ID)
	require.NoError(t, err)
	edited.Title = "Tadka Dal"
	edited.Notes = nil
	edited.CreatedBy = nil
	edited.StampUpdated(nil, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	found, err := repo.SaveActive(ctx, edited)
	require.NoError(t, err)
	require.True(t, found)

	var row model.Recipe
	require.NoError(t, db.First(&row, "id = ?", recipe.ID).Error)
	assert.Equal(t, "Tadka Dal", row.Title)
	assert.Nil(t, row.Notes)
	require.NotNil(t, row.CreatedBy)
	assert.Equal(t, creator, *row.CreatedBy)
	require.NotNil(t, row.UpdatedAt)
}

func ptrTo[T any](v T) *T { return &v }

func TestLoadAssociationsAcrossRecipes(t *testing.T) {
	db := testhelpers.NewSQLiteDB(t)
	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	soup := model.NewTag("Soup", model.TagTypeType)
	italian := model.NewTag("Italian", model.TagTypeCuisine)
	thai := model.NewTag("Thai", model.TagTypeCuisine)
	pot := model.NewEquipment("Pot")
	wok := model.NewEquipment("Wok")
	for _, v := range []any{soup, italian, thai, pot, wok} {
		require.NoError(t, db.Create(v).Error)
	}

	minestrone := seedRecipe(t, db, "Minestrone", now, []*model.Tag{soup, italian}, []*model.Equipment{pot})
	tomYum := seedRecipe(t, db, "Tom Yum", now, []*model.Tag{thai, soup}, []*model.Equipment{wok, pot})
	plain := seedRecipe(t, db, "Toast", now, nil, nil)
	ids := []uuid.UUID{minestrone.ID, tomYum.ID, plain.ID}

	tags, err := repo.LoadTags(ctx, ids)
	require.NoError(t, err)
	assert.Equal(t, []string{"Italian", "Soup"}, tagNames(tags[minestrone.ID]))
	assert.Equal(t, []string{"Thai", "Soup"}, tagNames(tags[tomYum.ID]))
	assert.Empty(t, tags[plain.ID])

	equipment, err := repo.LoadEquipment(ctx, ids)
	require.NoError(t, err)
	require.Len(t, equipment[minestrone.ID], 1)
	require.Len(t, equipment[tomYum.ID], 2)
	assert.Equal(t, "Pot", equipment[tomYum.ID][0].Name)
	assert.Equal(t, "Wok", equipment[tomYum.ID][1].Name)
	assert.Empty(t, equipment[plain.ID])
}

func tagNames(tags []model.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}
