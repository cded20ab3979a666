package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"participium/internal/entities"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FS stores photos as files in a single directory.
type FS struct {
	log      *zap.SugaredLogger
	dir      string
	maxBytes int64
}

// NewFS creates dir if needed. maxBytes <= 0 disables the size check.
func NewFS(log *zap.SugaredLogger, dir string, maxBytes int64) (*FS, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create image dir: %w", err)
	}
	return &FS{log: log.Named("imagestore.fs"), dir: dir, maxBytes: maxBytes}, nil
}

// Put writes data under a fresh random key.
func (s *FS) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", entities.ErrInvalidArgument)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", entities.ErrInvalidArgument, s.maxBytes)
	}
	ext, err := ExtensionFor(contentType)
	if err != nil {
		return "", err
	}

	key := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o640); err != nil {
		s.log.Errorw("write image failed", "key", key, "err", err)
		return "", fmt.Errorf("write image: %w", err)
	}
	return key, nil
}

// Get reads the photo stored under key.
func (s *FS) Get(ctx context.Context, key string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	path, ct, err := s.resolve(key)
	if err != nil {
		return Image{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Image{}, entities.ErrImageNotFound
	}
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	return Image{Data: data, ContentType: ct}, nil
}

// Delete removes key. Missing keys are not an error.
func (s *FS) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, _, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete image: %w", err)
	}
	return nil
}

// resolve accepts only keys produced by Put.
func (s *FS) resolve(key string) (string, string, error) {
	ext := filepath.Ext(key)
	id := strings.TrimSuffix(key, ext)
	if _, err := uuid.Parse(id); err != nil {
		return "", "", entities.ErrImageNotFound
	}
	ct, ok := ContentTypeFor(ext)
	if !ok {
		return "", "", entities.ErrImageNotFound
	}
	return filepath.Join(s.dir, key), ct, nil
}
