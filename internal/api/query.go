package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/model"
	"github.com/pageza/recipe-tracker/backend/internal/service"
)

// parseRecipeFilter reads the list query string. Missing page parameters
// take their defaults; present ones are passed through for validation.
func parseRecipeFilter(c *gin.Context) (service.RecipeFilter, error) {
	filter := service.NewRecipeFilter()

	if v, ok := c.GetQuery("searchTerm"); ok {
		filter.SearchTerm = &v
	}
	if v := c.Query("isTried"); v != "" {
		tried, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errors.New("isTried must be true or false")
		}
		filter.IsTried = &tried
	}

	filter.Cuisines = queryList(c, "cuisines")
	filter.Types = queryList(c, "types")
	filter.Equipment = queryList(c, "equipment")

	if v := c.Query("workspaceNeeded"); v != "" {
		workspace, err := model.ParseWorkspaceNeeded(v)
		if err != nil {
			return filter, err
		}
		filter.WorkspaceNeeded = &workspace
	}
	if v := c.Query("timeCategory"); v != "" {
		category, err := model.ParseTimeCategory(v)
		if err != nil {
			return filter, err
		}
		filter.TimeCategory = &category
	}
	if v := c.Query("messiness"); v != "" {
		messiness, err := model.ParseMessiness(v)
		if err != nil {
			return filter, err
		}
		filter.Messiness = &messiness
	}
	if v := c.Query("minProteinGrams"); v != "" {
		grams, err := strconv.ParseFloat(v, 64)
		if err != nil || grams < 0 {
			return filter, errors.New("minProteinGrams must be a non-negative number")
		}
		filter.MinProteinGrams = &grams
	}

	var err error
	if filter.PageNumber, err = queryInt(c, "pageNumber", filter.PageNumber); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt(c, "pageSize", filter.PageSize); err != nil {
		return filter, err
	}
	return filter, nil
}

// queryList collects a list parameter given either repeated or comma
// separated.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range c.QueryArray(key) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryInt(c *gin.Context, key string, fallback int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}
