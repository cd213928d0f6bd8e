package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-tracker/backend/internal/mocks"
	"github.com/pageza/recipe-tracker/backend/internal/storage"
)

func setupImageRouter(images *mocks.MockImagePresigner) *gin.Engine {
	router := gin.New()
	NewImageHandler(images).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postImage(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/images", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPresignUpload(t *testing.T) {
	images := &mocks.MockImagePresigner{}
	expires := time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)
	images.On("PresignUpload", mock.Anything, "image/png").Return(&storage.PresignedUpload{
		UploadURL: "https://bucket.s3.amazonaws.com/recipes/a.png?X-Amz-Signature=abc",
		ImageURL:  "https://cdn.example.com/recipes/a.png",
		Key:       "recipes/a.png",
		ExpiresAt: expires,
	}, nil)

	w := postImage(setupImageRouter(images), `{"contentType":"image/png"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "https://cdn.example.com/recipes/a.png", body["imageUrl"])
	assert.Equal(t, "recipes/a.png", body["key"])
	assert.Equal(t, "2024-03-01T10:15:00Z", body["expiresAt"])
	images.AssertExpectations(t)
}

func TestPresignUploadErrors(t *testing.T) {
	images := &mocks.MockImagePresigner{}
	images.On("PresignUpload", mock.Anything, "image/gif").
		Return(nil, fmt.Errorf("%w: %q", storage.ErrUnsupportedContentType, "image/gif"))
	images.On("PresignUpload", mock.Anything, "image/jpeg").
		Return(nil, errors.New("credentials expired"))
	router := setupImageRouter(images)

	assert.Equal(t, http.StatusBadRequest, postImage(router, `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, postImage(router, `{"contentType":"image/gif"}`).Code)
	assert.Equal(t, http.StatusInternalServerError, postImage(router, `{"contentType":"image/jpeg"}`).Code)
}
