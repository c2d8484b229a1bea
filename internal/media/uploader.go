// Package media stores complaint images in an object store and hands back
// stable references. The engine never sees the bytes; it only records the
// returned URL and key.
package media

import (
	"context"
	"errors"
)

// UploadResult is the stable reference returned for a stored image.
type UploadResult struct {
	URL      string
	PublicID string
}

// Uploader is the narrow capability the complaint handlers depend on.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error)
}

// Disabled is the Uploader used when no object store is configured. Uploads
// fail and the caller proceeds without an image, the same degraded path as a
// store outage.
type Disabled struct{}

func (Disabled) Upload(ctx context.Context, data []byte, folder string) (*UploadResult, error) {
	return nil, errors.New("media store not configured")
}
