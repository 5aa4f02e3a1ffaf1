package adsense

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/versioning"
	"gorm.io/gorm"
)

var (
	// ErrInvalidStatus rejects workflow statuses outside draft/published/unpublished.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidPlacement rejects placement keys outside the fixed set.
	ErrInvalidPlacement = errors.New("invalid placement key")
	// ErrUnitNotFound is returned when a custom ad unit id does not exist.
	ErrUnitNotFound = errors.New("custom ad unit not found")
)

var validFormats = map[string]bool{
	"auto":          true,
	"rectangle":     true,
	"horizontal":    true,
	"vertical":      true,
	"mobile-banner": true,
	"leaderboard":   true,
}

type Service struct {
	db     *gorm.DB
	seedMu sync.Mutex
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Get returns the active AdSense document, seeding the default on first use.
func (s *Service) Get() (*models.AdSenseSettingsModel, error) {
	doc, err := versioning.Active[models.AdSenseSettingsModel](s.db, nil)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}
	return s.seedDefault()
}

func (s *Service) seedDefault() (*models.AdSenseSettingsModel, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	doc, err := versioning.Active[models.AdSenseSettingsModel](s.db, nil)
	if err != nil || doc != nil {
		return doc, err
	}

	def := DefaultSettings()
	if err := s.db.Create(&def).Error; err != nil {
		return nil, err
	}
	return &def, nil
}

// DefaultSettings builds the seed document: everything disabled, all
// placements draft with per-slot default formats.
func DefaultSettings() models.AdSenseSettingsModel {
	doc := models.AdSenseSettingsModel{
		GlobalSettings: models.AdSenseGlobalSettings{
			RespectDoNotTrack: true,
			LazyLoading:       true,
		},
		AdPlacements: models.AdPlacements{
			Header:    models.AdPlacement{AdFormat: "auto", Status: StatusDraft},
			Sidebar:   models.AdPlacement{AdFormat: "rectangle", Status: StatusDraft},
			Footer:    models.AdPlacement{AdFormat: "horizontal", Status: StatusDraft},
			InContent: models.AdPlacement{AdFormat: "auto", Position: "middle", Status: StatusDraft},
			Mobile:    models.AdPlacement{AdFormat: "mobile-banner", Status: StatusDraft},
		},
		CustomAdUnits: []models.CustomAdUnit{},
		Performance: models.AdSensePerformanceSettings{
			TrackClicks:      true,
			TrackImpressions: true,
			ReportingEnabled: true,
		},
	}
	doc.Active = true
	doc.Version = "1.0"
	return doc
}

// Update sanitizes the payload and supersedes the active document.
func (s *Service) Update(dto *UpdateDTO, author string) (*models.AdSenseSettingsModel, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	next := models.AdSenseSettingsModel{
		PublisherID:    strings.TrimSpace(dto.PublisherID),
		AdClientID:     strings.TrimSpace(dto.AdClientID),
		GlobalSettings: dto.GlobalSettings,
		AdPlacements:   sanitizePlacements(dto.AdPlacements),
		CustomAdUnits:  sanitizeCustomUnits(dto.CustomAdUnits),
		Performance:    dto.Performance,
	}
	return s.replace(current, next, author)
}

func (s *Service) replace(current *models.AdSenseSettingsModel, next models.AdSenseSettingsModel, author string) (*models.AdSenseSettingsModel, error) {
	next.VersionedBase = models.VersionedBase{}
	next.Active = true
	next.UpdatedBy = author
	next.Version = versioning.NextVersion(current.Version)

	if err := versioning.Replace(s.db, nil, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// sanitizePlacements coerces unknown statuses, formats, and positions to the
// per-slot defaults instead of rejecting the payload.
func sanitizePlacements(p models.AdPlacements) models.AdPlacements {
	p.Header = sanitizePlacement(p.Header, "auto", "")
	p.Sidebar = sanitizePlacement(p.Sidebar, "rectangle", "")
	p.Footer = sanitizePlacement(p.Footer, "horizontal", "")
	p.InContent = sanitizePlacement(p.InContent, "auto", "middle")
	p.Mobile = sanitizePlacement(p.Mobile, "mobile-banner", "")
	return p
}

func sanitizePlacement(pl models.AdPlacement, defaultFormat, defaultPosition string) models.AdPlacement {
	pl.AdSlot = strings.TrimSpace(pl.AdSlot)
	if !isValidStatus(pl.Status) {
		pl.Status = StatusDraft
	}
	if !validFormats[pl.AdFormat] {
		pl.AdFormat = defaultFormat
	}
	if defaultPosition == "" {
		pl.Position = ""
	} else if pl.Position != "top" && pl.Position != "middle" && pl.Position != "bottom" {
		pl.Position = defaultPosition
	}
	return pl
}

func sanitizeCustomUnits(units []models.CustomAdUnit) []models.CustomAdUnit {
	now := time.Now()
	out := make([]models.CustomAdUnit, 0, len(units))
	for _, unit := range units {
		if unit.ID == "" {
			unit.ID = newUnitID()
		}
		unit.Name = strings.TrimSpace(unit.Name)
		if unit.Name == "" {
			unit.Name = "Custom Ad Unit"
		}
		unit.AdSlot = strings.TrimSpace(unit.AdSlot)
		if unit.AdFormat == "" {
			unit.AdFormat = "auto"
		}
		unit.Placement = strings.TrimSpace(unit.Placement)
		if !isValidStatus(unit.Status) {
			unit.Status = StatusDraft
		}
		if unit.CreatedAt.IsZero() {
			unit.CreatedAt = now
		}
		unit.UpdatedAt = now
		out = append(out, unit)
	}
	return out
}

func isValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished || status == StatusUnpublished
}

// newUnitID builds a "custom_<millis>_<suffix>" identifier.
func newUnitID() string {
	return fmt.Sprintf("custom_%d_%s", time.Now().UnixMilli(), randomSuffix(9))
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// GetPublicSettings projects the active document for the frontend: only
// enabled+published placements with a slot assigned, and enabled+published
// custom units.
func (s *Service) GetPublicSettings() (*PublicSettings, error) {
	doc, err := s.Get()
	if err != nil {
		return nil, err
	}
	return ProjectPublic(doc), nil
}

// ProjectPublic builds the public projection of one settings document.
func ProjectPublic(doc *models.AdSenseSettingsModel) *PublicSettings {
	out := &PublicSettings{
		PublisherID:    doc.PublisherID,
		AdClientID:     doc.AdClientID,
		GlobalSettings: doc.GlobalSettings,
		AdPlacements:   map[string]PublicPlacement{},
		CustomAdUnits:  []models.CustomAdUnit{},
	}

	for key, pl := range map[string]models.AdPlacement{
		"header":    doc.AdPlacements.Header,
		"sidebar":   doc.AdPlacements.Sidebar,
		"footer":    doc.AdPlacements.Footer,
		"inContent": doc.AdPlacements.InContent,
		"mobile":    doc.AdPlacements.Mobile,
	} {
		if pl.Enabled && pl.Status == StatusPublished && pl.AdSlot != "" {
			out.AdPlacements[key] = PublicPlacement{
				AdSlot:   pl.AdSlot,
				AdFormat: pl.AdFormat,
				Position: pl.Position,
			}
		}
	}

	for _, unit := range doc.CustomAdUnits {
		if unit.Enabled && unit.Status == StatusPublished {
			out.CustomAdUnits = append(out.CustomAdUnits, unit)
		}
	}
	return out
}

// UpdatePlacementStatus changes one fixed placement's workflow status,
// writing a new version.
func (s *Service) UpdatePlacementStatus(placement, status, author string) (*models.AdSenseSettingsModel, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	next := *current
	switch placement {
	case "header":
		next.AdPlacements.Header.Status = status
	case "sidebar":
		next.AdPlacements.Sidebar.Status = status
	case "footer":
		next.AdPlacements.Footer.Status = status
	case "inContent":
		next.AdPlacements.InContent.Status = status
	case "mobile":
		next.AdPlacements.Mobile.Status = status
	default:
		return nil, ErrInvalidPlacement
	}
	return s.replace(current, next, author)
}

// AddCustomAdUnit appends a new unit in draft status and writes a new
// version. Returns the updated document and the created unit.
func (s *Service) AddCustomAdUnit(dto *CustomUnitDTO, author string) (*models.AdSenseSettingsModel, *models.CustomAdUnit, error) {
	current, err := s.Get()
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	unit := models.CustomAdUnit{
		ID:        newUnitID(),
		Name:      strings.TrimSpace(dto.Name),
		AdSlot:    strings.TrimSpace(dto.AdSlot),
		AdFormat:  dto.AdFormat,
		Placement: strings.TrimSpace(dto.Placement),
		Enabled:   dto.Enabled,
		Status:    StatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if unit.Name == "" {
		unit.Name = "Custom Ad Unit"
	}
	if unit.AdFormat == "" {
		unit.AdFormat = "auto"
	}

	next := *current
	next.CustomAdUnits = append(append([]models.CustomAdUnit{}, current.CustomAdUnits...), unit)

	doc, err := s.replace(current, next, author)
	if err != nil {
		return nil, nil, err
	}
	return doc, &unit, nil
}

// UpdateCustomAdUnitStatus changes one unit's workflow status.
func (s *Service) UpdateCustomAdUnitStatus(unitID, status, author string) (*models.AdSenseSettingsModel, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	units := append([]models.CustomAdUnit{}, current.CustomAdUnits...)
	found := false
	for i := range units {
		if units[i].ID == unitID {
			units[i].Status = status
			units[i].UpdatedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		return nil, ErrUnitNotFound
	}

	next := *current
	next.CustomAdUnits = units
	return s.replace(current, next, author)
}

// RemoveCustomAdUnit drops one unit and writes a new version.
func (s *Service) RemoveCustomAdUnit(unitID, author string) (*models.AdSenseSettingsModel, error) {
	current, err := s.Get()
	if err != nil {
		return nil, err
	}

	units := make([]models.CustomAdUnit, 0, len(current.CustomAdUnits))
	found := false
	for _, unit := range current.CustomAdUnits {
		if unit.ID == unitID {
			found = true
			continue
		}
		units = append(units, unit)
	}
	if !found {
		return nil, ErrUnitNotFound
	}

	next := *current
	next.CustomAdUnits = units
	return s.replace(current, next, author)
}

// History lists versions newest-first, up to limit.
func (s *Service) History(limit int) ([]models.AdSenseSettingsModel, error) {
	return versioning.History[models.AdSenseSettingsModel](s.db, nil, limit)
}

// PerformanceStats returns the zeroed reporting structure for the given
// trailing window in days.
func (s *Service) PerformanceStats(days int) *PerformanceStats {
	if days <= 0 {
		days = 30
	}
	stats := &PerformanceStats{
		DailyStats:         []interface{}{},
		TopPerformingUnits: []interface{}{},
	}
	end := time.Now()
	stats.DateRange.Start = end.AddDate(0, 0, -days).Format(time.RFC3339)
	stats.DateRange.End = end.Format(time.RFC3339)
	return stats
}
