// Package storage hands out presigned S3 upload URLs for recipe images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const DefaultPresignExpiry = 15 * time.Minute

var ErrUnsupportedContentType = errors.New("unsupported image content type")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PresignedUpload tells the client where to PUT the image and which URL to
// store in the recipe afterwards.
type PresignedUpload struct {
	UploadURL string
	ImageURL  string
	Key       string
	ExpiresAt time.Time
}

type ImagePresigner interface {
	PresignUpload(ctx context.Context, contentType string) (*PresignedUpload, error)
}

type ImageStoreConfig struct {
	Bucket string
	Region string
	// PublicBaseURL replaces the virtual-hosted bucket URL in ImageURL,
	// e.g. a CDN in front of the bucket.
	PublicBaseURL string
	Expiry        time.Duration
}

// S3ImageStore presigns PutObject requests against a single bucket.
type S3ImageStore struct {
	presigner *s3.PresignClient
	cfg       ImageStoreConfig
	now       func() time.Time
}

func NewS3ImageStore(client *s3.Client, cfg ImageStoreConfig) *S3ImageStore {
	if cfg.Expiry <= 0 {
		cfg.Expiry = DefaultPresignExpiry
	}
	return &S3ImageStore{
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *S3ImageStore) PresignUpload(ctx context.Context, contentType string) (*PresignedUpload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
	}

	key := "recipes/" + uuid.NewString() + ext
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(s.cfg.Expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to presign image upload: %w", err)
	}

	return &PresignedUpload{
		UploadURL: req.URL,
		ImageURL:  s.objectURL(key),
		Key:       key,
		ExpiresAt: s.now().UTC().Add(s.cfg.Expiry),
	}, nil
}

func (s *S3ImageStore) objectURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
