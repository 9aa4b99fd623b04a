package service

import (
	"context"
	"io"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/pkg/imagehost"
	"github.com/donghaechoir/choir-backend/pkg/storage"
)

// maxUploadSize caps score and attachment images at 10MB
const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadService stores uploaded images, preferring the self-hosted
// bucket when configured and falling back to the external image host.
type UploadService struct {
	imageHost *imagehost.Client
	bucket    *storage.S3Client
}

// NewUploadService creates an UploadService. bucket may be nil.
func NewUploadService(imageHost *imagehost.Client, bucket *storage.S3Client) *UploadService {
	return &UploadService{imageHost: imageHost, bucket: bucket}
}

// Upload stores one image and returns its public URL
func (s *UploadService) Upload(ctx context.Context, filename, contentType string, size int64, file io.Reader) (string, error) {
	if size <= 0 || size > maxUploadSize {
		return "", common.ErrInvalidInput
	}
	if !allowedImageTypes[strings.ToLower(contentType)] {
		return "", common.ErrInvalidInput
	}

	if s.bucket != nil {
		key := storage.GenerateKey("images", filename)
		return s.bucket.Upload(ctx, key, file, contentType)
	}
	return s.imageHost.Upload(ctx, filename, file)
}
