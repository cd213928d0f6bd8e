package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/pagination"
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

const recipeNotFoundMessage = "Recipe not found."

type RecipeHandler struct {
	recipes   service.IRecipeService
	tags      service.ITagService
	equipment service.IEquipmentService
	// writeMiddleware runs in front of every mutating route.
	writeMiddleware []gin.HandlerFunc
}

func NewRecipeHandler(recipes service.IRecipeService, tags service.ITagService, equipment service.IEquipmentService, writeMiddleware ...gin.HandlerFunc) *RecipeHandler {
	useJSONFieldNames()
	return &RecipeHandler{
		recipes:         recipes,
		tags:            tags,
		equipment:       equipment,
		writeMiddleware: writeMiddleware,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/tags", h.SearchTags)
		recipes.GET("/equipment", h.SearchEquipment)
		recipes.GET("/:id", h.GetRecipe)
	}

	writes := recipes.Group("", h.writeMiddleware...)
	{
		writes.POST("", h.CreateRecipe)
		writes.PUT("/:id", h.UpdateRecipe)
		writes.DELETE("/:id", h.DeleteRecipe)
		writes.POST("/:id/tried", h.MarkTried)
		writes.DELETE("/:id/tried", h.MarkNotTried)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	filter, err := parseRecipeFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.recipes.ListRecipes(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	items := make([]types.RecipeResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, toRecipeResponse(&result.Items[i]))
	}
	c.JSON(http.StatusOK, types.RecipeListResponse{
		Items:           items,
		TotalCount:      result.TotalCount,
		PageNumber:      result.PageNumber,
		PageSize:        result.PageSize,
		TotalPages:      result.TotalPages,
		HasPreviousPage: result.HasPreviousPage,
		HasNextPage:     result.HasNextPage,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	details, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRecipeResponse(details))
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: bindingMessage(err)})
		return
	}

	id, err := h.recipes.CreateRecipe(c.Request.Context(), toCreateInput(&req))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+id.String())
	c.JSON(http.StatusCreated, types.CreatedResponse{ID: id})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := recipeID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: bindingMessage(err)})
		return
	}

	if err := h.recipes.UpdateRecipe(c.Request.Context(), id, toUpdateInput(&req)); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	h.mutate(c, h.recipes.DeleteRecipe)
}

func (h *RecipeHandler) MarkTried(c *gin.Context) {
	h.mutate(c, h.recipes.MarkTried)
}

func (h *RecipeHandler) MarkNotTried(c *gin.Context) {
	h.mutate(c, h.recipes.MarkNotTried)
}

func (h *RecipeHandler) SearchTags(c *gin.Context) {
	tags, err := h.tags.SearchTags(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]types.TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, types.TagResponse{ID: tag.ID, Name: tag.Name, TagType: tag.TagType})
	}
	c.JSON(http.StatusOK, out)
}

func (h *RecipeHandler) SearchEquipment(c *gin.Context) {
	equipment, err := h.equipment.SearchEquipment(c.Request.Context(), c.Query("searchTerm"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	out := make([]types.EquipmentResponse, 0, len(equipment))
	for _, item := range equipment {
		out = append(out, types.EquipmentResponse{ID: item.ID, Name: item.Name})
	}
	c.JSON(http.StatusOK, out)
}

// mutate runs a by-id operation that answers 204 on success.
func (h *RecipeHandler) mutate(c *gin.Context, op func(context.Context, uuid.UUID) error) {
	id, ok := recipeID(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorResponse{Error: recipeNotFoundMessage})
	case errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, pagination.ErrInvalidPageNumber),
		errors.Is(err, pagination.ErrInvalidPageSize),
		errors.Is(err, pagination.ErrPageSizeTooLarge),
		errors.Is(err, pagination.ErrPageNumberTooLarge):
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
	}
}

func recipeID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}
