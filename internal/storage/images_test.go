package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(cfg ImageStoreConfig) *S3ImageStore {
	client := s3.New(s3.Options{
		Region:       "us-east-1",
		Credentials:  credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
		BaseEndpoint: aws.String("http://localhost:9000"),
		UsePathStyle: true,
	})
	store := NewS3ImageStore(client, cfg)
	store.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return store
}

func TestPresignUpload(t *testing.T) {
	store := newTestStore(ImageStoreConfig{Bucket: "recipes-bucket", Region: "us-east-1", Expiry: 5 * time.Minute})

	upload, err := store.PresignUpload(context.Background(), "Image/PNG")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(upload.Key, "recipes/"))
	assert.True(t, strings.HasSuffix(upload.Key, ".png"))
	assert.Contains(t, upload.UploadURL, "http://localhost:9000/recipes-bucket/"+upload.Key)
	assert.Contains(t, upload.UploadURL, "X-Amz-Signature=")
	assert.Contains(t, upload.UploadURL, "X-Amz-Expires=300")
	assert.Equal(t, "https://recipes-bucket.s3.us-east-1.amazonaws.com/"+upload.Key, upload.ImageURL)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 5, 0, 0, time.UTC), upload.ExpiresAt)
}

func TestPresignUploadPublicBaseURL(t *testing.T) {
	store := newTestStore(ImageStoreConfig{Bucket: "b", Region: "us-east-1", PublicBaseURL: "https://cdn.example.com/"})

	upload, err := store.PresignUpload(context.Background(), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/"+upload.Key, upload.ImageURL)
	assert.True(t, strings.HasSuffix(upload.Key, ".jpg"))
	assert.Equal(t, store.now().Add(DefaultPresignExpiry), upload.ExpiresAt)
}

func TestPresignUploadRejectsOtherTypes(t *testing.T) {
	store := newTestStore(ImageStoreConfig{Bucket: "b", Region: "us-east-1"})

	for _, contentType := range []string{"image/gif", "application/pdf", ""} {
		_, err := store.PresignUpload(context.Background(), contentType)
		assert.ErrorIs(t, err, ErrUnsupportedContentType, contentType)
	}
}
