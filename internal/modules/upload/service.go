package upload

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/foxbeep/site-core/internal/config"
	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotAnImage rejects non-image content types.
	ErrNotAnImage = errors.New("only image uploads are allowed")
	// ErrTooLarge rejects files over the configured limit.
	ErrTooLarge = errors.New("image exceeds the size limit")
	// ErrStorageDisabled is returned when no object store is configured.
	ErrStorageDisabled = errors.New("image storage is not configured")
)

// Result describes a stored image.
type Result struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Format   string `json:"format"`
	Size     int64  `json:"size"`
}

type Service struct {
	db     *gorm.DB
	store  *storage.Client
	prefix string
}

func NewService(db *gorm.DB, store *storage.Client, cfg config.UploadConfig) *Service {
	return &Service{db: db, store: store, prefix: cfg.KeyPrefix}
}

// Upload validates and stores one multipart image under folder, returning
// the CDN reference. The object key is the public id.
func (s *Service) Upload(ctx context.Context, file *multipart.FileHeader, folder, uploadedBy string, limit int64) (*Result, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if limit > 0 && file.Size > limit {
		return nil, ErrTooLarge
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = extensionForType(contentType)
	}
	format := strings.TrimPrefix(ext, ".")

	key := s.objectKey(folder, ext)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	url, err := s.store.PutObject(ctx, key, contentType, src, file.Size)
	if err != nil {
		return nil, err
	}

	row := models.UploadedImageModel{
		URL:        url,
		PublicID:   key,
		Folder:     folder,
		Format:     format,
		Bytes:      file.Size,
		UploadedBy: uploadedBy,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}

	return &Result{URL: url, PublicID: key, Format: format, Size: file.Size}, nil
}

// DeleteObject removes a stored image by public id: one remote delete, then
// the tracking row. Implements the ImageCleaner contract used by the
// settings and ads services.
func (s *Service) DeleteObject(ctx context.Context, publicID string) error {
	if s.store == nil {
		return ErrStorageDisabled
	}
	if err := s.store.DeleteObject(ctx, publicID); err != nil {
		return err
	}
	return s.db.Unscoped().
		Where("public_id = ?", publicID).
		Delete(&models.UploadedImageModel{}).Error
}

func (s *Service) objectKey(folder, ext string) string {
	parts := []string{}
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	folder = strings.Trim(folder, "/")
	if folder != "" {
		parts = append(parts, folder)
	}
	parts = append(parts, uuid.New().String()+ext)
	return strings.Join(parts, "/")
}

func extensionForType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".bin"
	}
}
