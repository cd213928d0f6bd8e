package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-tracker/backend/internal/middleware"
	"github.com/pageza/recipe-tracker/backend/internal/storage"
	"github.com/pageza/recipe-tracker/backend/internal/types"
)

// ImageHandler hands out presigned upload URLs for recipe images
type ImageHandler struct {
	images          storage.ImagePresigner
	writeMiddleware []gin.HandlerFunc
}

// NewImageHandler creates a new image handler
func NewImageHandler(images storage.ImagePresigner, writeMiddleware ...gin.HandlerFunc) *ImageHandler {
	useJSONFieldNames()
	return &ImageHandler{
		images:          images,
		writeMiddleware: writeMiddleware,
	}
}

func (h *ImageHandler) RegisterRoutes(router *gin.RouterGroup) {
	images := router.Group("/recipes/images", h.writeMiddleware...)
	images.POST("", h.PresignUpload)
}

// PresignUpload returns a URL the client can PUT the image to, and the URL
// to store in the recipe's imageUrl once the upload is done.
func (h *ImageHandler) PresignUpload(c *gin.Context) {
	var req types.ImageUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: bindingMessage(err)})
		return
	}

	upload, err := h.images.PresignUpload(c.Request.Context(), req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			c.JSON(http.StatusBadRequest, middleware.ErrorResponse{Error: "contentType must be one of image/jpeg, image/png, image/webp"})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, middleware.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, types.ImageUploadResponse{
		UploadURL: upload.UploadURL,
		ImageURL:  upload.ImageURL,
		Key:       upload.Key,
		ExpiresAt: upload.ExpiresAt,
	})
}
