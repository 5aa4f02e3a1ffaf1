package company

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/versioning"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrCompanyNameRequired rejects updates that blank out the company name.
var ErrCompanyNameRequired = errors.New("companyName is required")

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

// Get returns the active company document, seeding the default on first use.
func (s *Service) Get() (*models.CompanyDetailsModel, error) {
	doc, err := versioning.Active[models.CompanyDetailsModel](s.db, nil)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	return s.seedDefault()
}

func (s *Service) seedDefault() (*models.CompanyDetailsModel, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	doc, err := versioning.Active[models.CompanyDetailsModel](s.db, nil)
	if err != nil || doc != nil {
		return doc, err
	}

	def := defaultDetails()
	if err := s.db.Create(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

func defaultDetails() models.CompanyDetailsModel {
	doc := models.CompanyDetailsModel{
		CompanyName: "Your Company Name",
	}
	doc.Active = true
	doc.Version = "1.0"
	return doc
}

// Update supersedes the active document. Replaced logo/favicon CDN objects
// are deleted best-effort.
func (s *Service) Update(ctx context.Context, dto *UpdateDTO, author string) (*models.CompanyDetailsModel, error) {
	name := strings.TrimSpace(dto.CompanyName)
	if name == "" {
		return nil, ErrCompanyNameRequired
	}

	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	next := models.CompanyDetailsModel{
		CompanyName:     name,
		Logo:            strings.TrimSpace(dto.Logo),
		LogoPublicID:    strings.TrimSpace(dto.LogoPublicID),
		Favicon:         strings.TrimSpace(dto.Favicon),
		FaviconPublicID: strings.TrimSpace(dto.FaviconPublicID),
		SocialLinks:     sanitizeSocialLinks(dto.SocialLinks),
	}
	next.Active = true
	next.UpdatedBy = author
	next.Version = versioning.NextVersion(current.Version)

	if err := versioning.Replace(s.db, nil, &next); err != nil {
		return nil, err
	}

	s.cleanupReplacedImage(ctx, current.LogoPublicID, next.LogoPublicID)
	s.cleanupReplacedImage(ctx, current.FaviconPublicID, next.FaviconPublicID)
	return &next, nil
}

// History lists all versions newest-first.
func (s *Service) History() ([]models.CompanyDetailsModel, error) {
	return versioning.History[models.CompanyDetailsModel](s.db, nil, 0)
}

func (s *Service) cleanupReplacedImage(ctx context.Context, oldID, newID string) {
	if s.images == nil || oldID == "" || oldID == newID {
		return
	}
	if err := s.images.DeleteObject(ctx, oldID); err != nil {
		s.log.Warn("company image cleanup failed",
			zap.String("publicId", oldID), zap.Error(err))
	}
}

func sanitizeSocialLinks(links models.SocialLinks) models.SocialLinks {
	links.Facebook = strings.TrimSpace(links.Facebook)
	links.Instagram = strings.TrimSpace(links.Instagram)
	links.Twitter = strings.TrimSpace(links.Twitter)
	links.LinkedIn = strings.TrimSpace(links.LinkedIn)
	return links
}
