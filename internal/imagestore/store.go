// Package imagestore keeps report photos outside the database and hands out
// opaque keys that reports reference.
package imagestore

import (
	"context"
	"fmt"

	"participium/internal/entities"
)

// Image is a stored photo.
type Image struct {
	Data        []byte
	ContentType string
}

// Store persists photos by key.
type Store interface {
	Put(ctx context.Context, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) (Image, error)
	Delete(ctx context.Context, key string) error
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ExtensionFor returns the file extension used for contentType.
func ExtensionFor(contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %q", entities.ErrInvalidArgument, contentType)
	}
	return ext, nil
}

// ContentTypeFor is the inverse of ExtensionFor.
func ContentTypeFor(ext string) (string, bool) {
	for ct, e := range extensions {
		if e == ext {
			return ct, true
		}
	}
	return "", false
}
