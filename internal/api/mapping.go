package api

import (
	"github.com/pageza/recipe-tracker/backend/internal/service"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

func toTagInputs(tags []types.TagRequest) []service.TagInput {
	out := make([]service.TagInput, 0, len(tags))
	for _, tag := range tags {
		in := service.TagInput{Name: tag.Name}
		if tag.TagType != nil {
			in.TagType = *tag.TagType
		}
		out = append(out, in)
	}
	return out
}

func toCreateInput(req *types.CreateRecipeRequest) service.CreateRecipeInput {
	return service.CreateRecipeInput{
		Title:           req.Title,
		Instructions:    req.Instructions,
		Description:     req.Description,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		ProteinGrams:    req.ProteinGrams,
		IsTried:         req.IsTried,
		SourceURL:       req.SourceURL,
		ImageURL:        req.ImageURL,
		Notes:           req.Notes,
		WorkspaceNeeded: req.WorkspaceNeeded,
		TimeCategory:    req.TimeCategory,
		Messiness:       req.Messiness,
		Tags:            toTagInputs(req.Tags),
		EquipmentNames:  req.EquipmentNames,
	}
}

func toUpdateInput(req *types.UpdateRecipeRequest) service.UpdateRecipeInput {
	in := service.UpdateRecipeInput{
		Title:           req.Title,
		Instructions:    req.Instructions,
		Description:     req.Description,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		ProteinGrams:    req.ProteinGrams,
		IsTried:         req.IsTried,
		SourceURL:       req.SourceURL,
		ImageURL:        req.ImageURL,
		Notes:           req.Notes,
		WorkspaceNeeded: req.WorkspaceNeeded,
		TimeCategory:    req.TimeCategory,
		Messiness:       req.Messiness,
		EquipmentNames:  req.EquipmentNames,
	}
	if req.Tags != nil {
		tags := toTagInputs(*req.Tags)
		in.Tags = &tags
	}
	return in
}

func toRecipeResponse(d *service.RecipeDetails) types.RecipeResponse {
	tags := make([]types.TagResponse, 0, len(d.Tags))
	for _, tag := range d.Tags {
		tags = append(tags, types.TagResponse{ID: tag.ID, Name: tag.Name, TagType: tag.TagType})
	}
	equipment := make([]types.EquipmentResponse, 0, len(d.Equipment))
	for _, item := range d.Equipment {
		equipment = append(equipment, types.EquipmentResponse{ID: item.ID, Name: item.Name})
	}

	return types.RecipeResponse{
		ID:              d.ID,
		Title:           d.Title,
		Description:     d.Description,
		Instructions:    d.Instructions,
		PrepTimeMinutes: d.PrepTimeMinutes,
		CookTimeMinutes: d.CookTimeMinutes,
		Servings:        d.Servings,
		ProteinGrams:    d.ProteinGrams,
		IsTried:         d.IsTried,
		SourceURL:       d.SourceURL,
		ImageURL:        d.ImageURL,
		Notes:           d.Notes,
		WorkspaceNeeded: d.WorkspaceNeeded,
		TimeCategory:    d.TimeCategory,
		Messiness:       d.Messiness,
		Tags:            tags,
		Equipment:       equipment,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
