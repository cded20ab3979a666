package domain

import (
	"context"
	"fmt"
	"strings"

	"participium/internal/entities"
	"participium/internal/imagestore"
)

// UploadPhoto stores a photo and returns the key a report can reference.
func (u *Usecase) UploadPhoto(ctx context.Context, data []byte, contentType string) (string, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	key, err := u.images.Put(ctx, data, contentType)
	if err != nil {
		return "", err
	}
	u.log.Debugw("photo upload", "key", key, "bytes", len(data))
	return key, nil
}

// Photo returns the photo stored under key.
func (u *Usecase) Photo(ctx context.Context, key string) (imagestore.Image, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if strings.TrimSpace(key) == "" {
		return imagestore.Image{}, fmt.Errorf("%w: key is required", entities.ErrInvalidArgument)
	}
	return u.images.Get(ctx, key)
}
