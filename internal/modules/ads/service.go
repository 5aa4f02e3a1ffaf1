package ads

import (
	"context"
	"errors"
	"time"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/foxbeep/site-core/internal/pkg/pagination"
	"github.com/foxbeep/site-core/internal/pkg/response"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrAdNotFound is returned for unknown ad ids.
var ErrAdNotFound = errors.New("advertisement not found")

// analyticsRetention bounds how long raw events are kept.
const analyticsRetention = 90 * 24 * time.Hour

// ImageCleaner removes CDN objects by public id.
type ImageCleaner interface {
	DeleteObject(ctx context.Context, publicID string) error
}

type Service struct {
	db     *gorm.DB
	images ImageCleaner
	log    *zap.Logger
}

func NewService(db *gorm.DB, images ImageCleaner, log *zap.Logger) *Service {
	return &Service{db: db, images: images, log: log}
}

// Create validates and stores a new ad with zeroed counters.
func (s *Service) Create(dto *AdDTO, author string) (*models.AdvertisementModel, error) {
	ad, err := Sanitize(dto)
	if err != nil {
		return nil, err
	}
	ad.CreatedBy = author
	ad.Version = "1.0"

	if err := s.db.Create(ad).Error; err != nil {
		return nil, err
	}
	return ad, nil
}

// Update replaces an ad's content in place, preserving its counters.
func (s *Service) Update(id string, dto *AdDTO, author string) (*models.AdvertisementModel, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	next, err := Sanitize(dto)
	if err != nil {
		return nil, err
	}
	next.Base = current.Base
	next.Impressions = current.Impressions
	next.Clicks = current.Clicks
	next.LastImpression = current.LastImpression
	next.LastClick = current.LastClick
	next.CreatedBy = current.CreatedBy
	next.UpdatedBy = author
	next.Version = current.Version

	if err := s.db.Save(next).Error; err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes an ad and best-effort cleans up its CDN objects.
func (s *Service) Delete(ctx context.Context, id string) error {
	ad, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Unscoped().Delete(&models.AdvertisementModel{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.deleteRemote(ctx, ad.SrcPublicID)
	s.deleteRemote(ctx, ad.ThumbnailPublicID)
	return nil
}

// Toggle flips an ad's active flag.
func (s *Service) Toggle(id string, active bool) error {
	res := s.db.Model(&models.AdvertisementModel{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAdNotFound
	}
	return nil
}

// GetByID fetches a single ad.
func (s *Service) GetByID(id string) (*models.AdvertisementModel, error) {
	var ad models.AdvertisementModel
	err := s.db.First(&ad, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ad, nil
}

// List pages all ads newest-first with optional filters.
func (s *Service) List(q pagination.Query, filters ListFilters) ([]models.AdvertisementModel, response.Pagination, error) {
	tx := s.db.Model(&models.AdvertisementModel{}).Order("created_at DESC")
	if filters.Status != "" {
		tx = tx.Where("status = ?", filters.Status)
	}
	if filters.Active != nil {
		tx = tx.Where("active = ?", *filters.Active)
	}
	if filters.Type != "" {
		tx = tx.Where("type = ?", filters.Type)
	}

	var items []models.AdvertisementModel
	pag, err := pagination.Paginate(tx, q, &items)
	return items, pag, err
}

// GetActiveAds returns the currently servable campaigns: active, published,
// not yet expired; higher priority first, ties broken by recency.
func (s *Service) GetActiveAds() ([]models.AdvertisementModel, error) {
	var items []models.AdvertisementModel
	err := s.db.
		Where("active = ? AND status = ?", true, models.AdStatusPublished).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("priority DESC, created_at DESC").
		Find(&items).Error
	return items, err
}

// RecordImpression bumps the impression counter and appends an analytics
// event. Failures are logged and swallowed.
func (s *Service) RecordImpression(id string, metadata map[string]interface{}) {
	s.recordCounter(id, "impressions", "last_impression")
	s.RecordEvent(id, models.AdEventImpression, metadata)
}

// RecordClick bumps the click counter and appends an analytics event.
func (s *Service) RecordClick(id string, metadata map[string]interface{}) {
	s.recordCounter(id, "clicks", "last_click")
	s.RecordEvent(id, models.AdEventClick, metadata)
}

func (s *Service) recordCounter(id, counterCol, stampCol string) {
	err := s.db.Model(&models.AdvertisementModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			counterCol: gorm.Expr(counterCol+" + 1"),
			stampCol:   time.Now(),
		}).Error
	if err != nil {
		s.log.Warn("ad counter update failed", zap.String("adId", id), zap.Error(err))
	}
}

// RecordEvent appends a raw analytics event; best-effort.
func (s *Service) RecordEvent(id, eventType string, metadata map[string]interface{}) {
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	event := models.AdAnalyticsModel{
		AdID:      id,
		EventType: eventType,
		Timestamp: time.Now(),
		Metadata:  metadata,
	}
	if err := s.db.Create(&event).Error; err != nil {
		s.log.Warn("ad analytics insert failed",
			zap.String("adId", id), zap.String("event", eventType), zap.Error(err))
	}
}

// GetAdAnalytics summarizes one ad's events over the trailing window.
func (s *Service) GetAdAnalytics(id string, days int) (*AdAnalytics, error) {
	if days <= 0 {
		days = 30
	}

	ad, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -days)
	var rows []struct {
		EventType string
		Count     int64
	}
	err = s.db.Model(&models.AdAnalyticsModel{}).
		Select("event_type, COUNT(*) as count").
		Where("ad_id = ? AND timestamp >= ?", id, since).
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &AdAnalytics{
		AdID:             ad.ID,
		AdTitle:          ad.Title,
		TotalImpressions: ad.Impressions,
		TotalClicks:      ad.Clicks,
		Events:           map[string]EventTypeStats{},
	}
	if ad.Impressions > 0 {
		out.CTR = float64(ad.Clicks) / float64(ad.Impressions) * 100
	}
	for _, row := range rows {
		out.Events[row.EventType] = EventTypeStats{Count: row.Count}
	}
	return out, nil
}

// CleanupExpiredAds flips every past-expiry ad to expired/inactive and
// returns the number of rows affected.
func (s *Service) CleanupExpiredAds() (int64, error) {
	res := s.db.Model(&models.AdvertisementModel{}).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Where("status <> ?", models.AdStatusExpired).
		Updates(map[string]interface{}{
			"status": models.AdStatusExpired,
			"active": false,
		})
	return res.RowsAffected, res.Error
}

// CleanupAnalytics deletes raw events past the retention window.
func (s *Service) CleanupAnalytics() (int64, error) {
	cutoff := time.Now().Add(-analyticsRetention)
	res := s.db.Unscoped().
		Where("timestamp < ?", cutoff).
		Delete(&models.AdAnalyticsModel{})
	return res.RowsAffected, res.Error
}

// GetCampaignStats aggregates the dashboard summary in one query.
func (s *Service) GetCampaignStats() (*CampaignStats, error) {
	var stats CampaignStats
	err := s.db.Model(&models.AdvertisementModel{}).
		Select(`COUNT(*) as total_ads,
			COALESCE(SUM(CASE WHEN active THEN 1 ELSE 0 END), 0) as active_ads,
			COALESCE(SUM(impressions), 0) as total_impressions,
			COALESCE(SUM(clicks), 0) as total_clicks,
			COALESCE(AVG(CASE WHEN impressions > 0 THEN clicks / impressions * 100 ELSE 0 END), 0) as avg_ctr`).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *Service) deleteRemote(ctx context.Context, publicID string) {
	if s.images == nil || publicID == "" {
		return
	}
	if err := s.images.DeleteObject(ctx, publicID); err != nil {
		s.log.Warn("ad media cleanup failed",
			zap.String("publicId", publicID), zap.Error(err))
	}
}
