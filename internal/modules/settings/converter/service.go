package converter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/versioning"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrUnknownConverter is returned for ids outside the fixed registry.
var ErrUnknownConverter = errors.New("unknown converter type")

// ImageCleaner removes CDN objects by public id.
type ImageCleaner interface {
	DeleteObject(ctx context.Context, publicID string) error
}

type Service struct {
	db     *gorm.DB
	images ImageCleaner
	log    *zap.Logger
	seedMu sync.Mutex
}

func NewService(db *gorm.DB, images ImageCleaner, log *zap.Logger) *Service {
	return &Service{db: db, images: images, log: log}
}

// Get returns the active document for one converter, seeding the default on
// first use.
func (s *Service) Get(converterID string) (*models.ConverterSettingsModel, error) {
	if !IsValid(converterID) {
		return nil, ErrUnknownConverter
	}

	cond := map[string]interface{}{"converter_id": converterID}
	doc, err := versioning.Active[models.ConverterSettingsModel](s.db, cond)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	return s.seedDefault(converterID, cond)
}

func (s *Service) seedDefault(converterID string, cond map[string]interface{}) (*models.ConverterSettingsModel, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	doc, err := versioning.Active[models.ConverterSettingsModel](s.db, cond)
	if err != nil || doc != nil {
		return doc, err
	}

	def := DefaultSettings(converterID)
	if err := s.db.Create(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

// DefaultSettings builds the seed document for a converter landing page.
func DefaultSettings(converterID string) models.ConverterSettingsModel {
	info := converters[converterID]
	doc := models.ConverterSettingsModel{
		ConverterID: converterID,
		Hero: models.HeroSection{
			Title:       fmt.Sprintf("Convert %s to %s Online", info.From, info.To),
			Description: fmt.Sprintf("Convert your %s files to %s format quickly and easily. High quality conversion with fast processing.", info.From, info.To),
			ImageAlt:    fmt.Sprintf("%s to %s converter", info.From, info.To),
		},
		Ways: models.WaysSection{
			Title:       "How to Convert",
			Description: fmt.Sprintf("Follow these simple steps to convert your %s files to %s", info.From, info.To),
			ImageAlt:    "Conversion process",
			Steps: []string{
				fmt.Sprintf("Upload your %s file", info.From),
				"Choose conversion settings",
				fmt.Sprintf("Download your %s file", info.To),
			},
		},
		Features: models.FeatureListSection{
			Title: "Why Choose Our Converter",
			Items: []string{
				"Fast conversion speed",
				"High quality output",
				"Secure file processing",
				"No registration required",
			},
		},
	}
	doc.Active = true
	doc.Version = "1.0"
	return doc
}

// GetAll returns the active document for every supported converter, keyed by
// converter id. Converters whose fetch fails are logged and left out of the
// map rather than reported as null entries.
func (s *Service) GetAll() (map[string]*models.ConverterSettingsModel, error) {
	out := make(map[string]*models.ConverterSettingsModel, len(converterOrder))
	for _, id := range converterOrder {
		doc, err := s.Get(id)
		if err != nil {
			s.log.Error("fetch converter settings failed",
				zap.String("converterId", id), zap.Error(err))
			continue
		}
		out[id] = doc
	}
	return out, nil
}

// Update supersedes the active document for one converter.
func (s *Service) Update(ctx context.Context, converterID string, dto *UpdateDTO, author string) (*models.ConverterSettingsModel, error) {
	current, err := s.Get(converterID)
	if err != nil {
		return nil, err
	}

	next := models.ConverterSettingsModel{
		ConverterID: converterID,
		Hero:        sanitizeHero(dto.Hero),
		Ways:        sanitizeWays(dto.Ways),
		Features:    sanitizeFeatures(dto.Features),
	}
	next.Active = true
	next.UpdatedBy = author
	next.Version = versioning.NextVersion(current.Version)

	cond := map[string]interface{}{"converter_id": converterID}
	if err := versioning.Replace(s.db, cond, &next); err != nil {
		return nil, err
	}

	s.cleanupReplacedImage(ctx, current.Hero.ImagePublicID, next.Hero.ImagePublicID)
	s.cleanupReplacedImage(ctx, current.Ways.ImagePublicID, next.Ways.ImagePublicID)
	return &next, nil
}

// History lists all versions for one converter newest-first.
func (s *Service) History(converterID string) ([]models.ConverterSettingsModel, error) {
	if !IsValid(converterID) {
		return nil, ErrUnknownConverter
	}
	cond := map[string]interface{}{"converter_id": converterID}
	return versioning.History[models.ConverterSettingsModel](s.db, cond, 0)
}

// DeleteImage clears matching hero/ways image references from the active
// document, writing a new version authored "system", and removes the remote
// object.
func (s *Service) DeleteImage(ctx context.Context, converterID, publicID string) (*models.ConverterSettingsModel, error) {
	current, err := s.Get(converterID)
	if err != nil {
		return nil, err
	}

	next := *current
	next.VersionedBase = models.VersionedBase{}
	next.Active = true
	next.UpdatedBy = "system"
	next.Version = versioning.NextVersion(current.Version)

	if next.Hero.ImagePublicID == publicID {
		next.Hero.Image = ""
		next.Hero.ImagePublicID = ""
	}
	if next.Ways.ImagePublicID == publicID {
		next.Ways.Image = ""
		next.Ways.ImagePublicID = ""
	}

	cond := map[string]interface{}{"converter_id": converterID}
	if err := versioning.Replace(s.db, cond, &next); err != nil {
		return nil, err
	}

	s.deleteRemote(ctx, publicID)
	return &next, nil
}

func (s *Service) cleanupReplacedImage(ctx context.Context, oldID, newID string) {
	if oldID == "" || oldID == newID {
		return
	}
	s.deleteRemote(ctx, oldID)
}

func (s *Service) deleteRemote(ctx context.Context, publicID string) {
	if s.images == nil || publicID == "" {
		return
	}
	if err := s.images.DeleteObject(ctx, publicID); err != nil {
		s.log.Warn("converter image cleanup failed",
			zap.String("publicId", publicID), zap.Error(err))
	}
}

func sanitizeHero(h models.HeroSection) models.HeroSection {
	h.Title = strings.TrimSpace(h.Title)
	h.Description = strings.TrimSpace(h.Description)
	h.ImageAlt = strings.TrimSpace(h.ImageAlt)
	h.Features = filterNonEmpty(h.Features)
	return h
}

func sanitizeWays(w models.WaysSection) models.WaysSection {
	w.Title = strings.TrimSpace(w.Title)
	w.Description = strings.TrimSpace(w.Description)
	w.ImageAlt = strings.TrimSpace(w.ImageAlt)
	w.Steps = filterNonEmpty(w.Steps)
	return w
}

func sanitizeFeatures(f models.FeatureListSection) models.FeatureListSection {
	f.Title = strings.TrimSpace(f.Title)
	f.Items = filterNonEmpty(f.Items)
	return f
}

func filterNonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
