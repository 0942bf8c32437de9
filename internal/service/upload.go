package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"restoapi/internal/storage"
)

const imagePrefix = "menu"

// UploadedImage is returned to clients after an upload.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ImageService stores menu and restaurant images in object storage.
type ImageService interface {
	// Upload stores r under menu/<uuid><ext>. Only image/* content up to the
	// configured size is accepted.
	Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*UploadedImage, error)
	Delete(ctx context.Context, publicID string) error
}

type imageService struct {
	store    storage.Storage
	maxBytes int64
}

func NewImageService(store storage.Storage, maxBytes int64) ImageService {
	return &imageService{store: store, maxBytes: maxBytes}
}

func (s *imageService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64) (*UploadedImage, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, ErrImageTooLarge
	}

	publicID := uuid.New().String() + strings.ToLower(filepath.Ext(originalFilename))
	key := path.Join(imagePrefix, publicID)

	if _, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	}); err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	url, err := s.store.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("image url: %w", err)
	}
	return &UploadedImage{URL: url, PublicID: publicID}, nil
}

// validPublicID accepts <uuid><ext> as produced by Upload.
func validPublicID(id string) bool {
	ext := filepath.Ext(id)
	if strings.ContainsAny(ext, `/\`) {
		return false
	}
	_, err := uuid.Parse(strings.TrimSuffix(id, ext))
	return err == nil
}

func (s *imageService) Delete(ctx context.Context, publicID string) error {
	if !validPublicID(publicID) {
		return ErrInvalidPublicID
	}
	key := path.Join(imagePrefix, publicID)

	if _, err := s.store.Stat(ctx, key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return ErrImageNotFound
		}
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}
