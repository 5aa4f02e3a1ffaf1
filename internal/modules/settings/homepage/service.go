package homepage

import (
	"context"
	"strings"
	"sync"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/versioning"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ImageCleaner removes CDN objects by public id.
type ImageCleaner interface {
	DeleteObject(ctx context.Context, publicID string) error
}

type Service struct {
	db      *gorm.DB
	images  ImageCleaner
	log     *zap.Logger
	seedMu  sync.Mutex
}

func NewService(db *gorm.DB, images ImageCleaner, log *zap.Logger) *Service {
	return &Service{db: db, images: images, log: log}
}

// Get returns the active homepage document, seeding the default on first use.
func (s *Service) Get() (*models.HomepageSettingsModel, error) {
	doc, err := versioning.Active[models.HomepageSettingsModel](s.db, nil)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	return s.seedDefault()
}

func (s *Service) seedDefault() (*models.HomepageSettingsModel, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	// Re-check under the lock so concurrent first reads seed once.
	doc, err := versioning.Active[models.HomepageSettingsModel](s.db, nil)
	if err != nil || doc != nil {
		return doc, err
	}

	def := defaultSettings()
	if err := s.db.Create(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

func defaultSettings() models.HomepageSettingsModel {
	doc := models.HomepageSettingsModel{
		Hero: models.HeroSection{
			Title:       "Welcome to Our Platform",
			Description: "Discover amazing features and services that will transform your experience.",
			Features: []string{
				"Fast and Reliable",
				"User-Friendly Interface",
				"24/7 Support",
			},
		},
		About: models.AboutSection{
			Title:       "About Us",
			Description: "We are dedicated to providing exceptional services and creating meaningful connections with our users.",
		},
		Newsletter: models.NewsletterSection{
			Enabled:     true,
			Title:       "Stay Updated",
			Description: "Subscribe to our newsletter for the latest updates and news.",
		},
	}
	doc.Active = true
	doc.Version = "1.0"
	return doc
}

// Update supersedes the active document with a new version. When the hero
// image reference changed, the replaced CDN object is deleted best-effort.
func (s *Service) Update(ctx context.Context, dto *UpdateDTO, author string) (*models.HomepageSettingsModel, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	next := models.HomepageSettingsModel{
		Hero:       sanitizeHero(dto.Hero),
		About:      sanitizeAbout(dto.About),
		Newsletter: sanitizeNewsletter(dto.Newsletter),
	}
	next.Active = true
	next.UpdatedBy = author
	next.Version = versioning.NextVersion(current.Version)

	if err := versioning.Replace(s.db, nil, &next); err != nil {
		return nil, err
	}

	s.cleanupReplacedImage(ctx, current.Hero.ImagePublicID, next.Hero.ImagePublicID)
	return &next, nil
}

// History lists all versions newest-first.
func (s *Service) History() ([]models.HomepageSettingsModel, error) {
	return versioning.History[models.HomepageSettingsModel](s.db, nil, 0)
}

// DeleteImage clears a CDN image reference from the active document, writing
// a new version authored "system", and removes the remote object.
func (s *Service) DeleteImage(ctx context.Context, publicID string) (*models.HomepageSettingsModel, error) {
	current, err := s.Get()
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

	if err := versioning.Replace(s.db, nil, &next); err != nil {
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
		s.log.Warn("homepage image cleanup failed",
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

func sanitizeAbout(a models.AboutSection) models.AboutSection {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	return a
}

func sanitizeNewsletter(n models.NewsletterSection) models.NewsletterSection {
	n.Title = strings.TrimSpace(n.Title)
	n.Description = strings.TrimSpace(n.Description)
	return n
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
