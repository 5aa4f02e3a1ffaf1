package ads

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.AdvertisementModel{}, &models.AdAnalyticsModel{}))
	return NewService(db, nil, zap.NewNop()), db
}

func seedAd(t *testing.T, db *gorm.DB, title, status string, active bool, priority int, createdAt time.Time, expiresAt *time.Time) *models.AdvertisementModel {
	t.Helper()
	ad := &models.AdvertisementModel{
		Title:     title,
		Type:      models.AdTypeImage,
		Src:       "https://cdn.example.com/" + title + ".png",
		Status:    status,
		Active:    active,
		Priority:  priority,
		ExpiresAt: expiresAt,
	}
	ad.CreatedAt = createdAt
	require.NoError(t, db.Create(ad).Error)
	return ad
}

func TestGetActiveAdsPredicateAndOrdering(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	seedAd(t, db, "draft", models.AdStatusDraft, true, 90, now.Add(-time.Minute), nil)
	seedAd(t, db, "paused", models.AdStatusPaused, true, 90, now.Add(-time.Minute), nil)
	seedAd(t, db, "inactive", models.AdStatusPublished, false, 90, now.Add(-time.Minute), nil)
	seedAd(t, db, "lapsed", models.AdStatusPublished, true, 90, now.Add(-time.Minute), &past)

	seedAd(t, db, "low", models.AdStatusPublished, true, 10, now.Add(-3*time.Minute), nil)
	seedAd(t, db, "high-old", models.AdStatusPublished, true, 80, now.Add(-2*time.Minute), &future)
	seedAd(t, db, "high-new", models.AdStatusPublished, true, 80, now.Add(-time.Minute), nil)

	items, err := svc.GetActiveAds()
	require.NoError(t, err)
	require.Len(t, items, 3)

	// Priority descending, ties broken by recency.
	assert.Equal(t, "high-new", items[0].Title)
	assert.Equal(t, "high-old", items[1].Title)
	assert.Equal(t, "low", items[2].Title)

	for _, ad := range items {
		assert.True(t, ad.Active)
		assert.Equal(t, models.AdStatusPublished, ad.Status)
		if ad.ExpiresAt != nil {
			assert.True(t, ad.ExpiresAt.After(now))
		}
	}
}

func TestRecordClickAndImpression(t *testing.T) {
	svc, db := newTestService(t)
	ad := seedAd(t, db, "banner", models.AdStatusPublished, true, 50, time.Now(), nil)

	svc.RecordClick(ad.ID, nil)
	svc.RecordImpression(ad.ID, map[string]interface{}{"page": "/home"})

	got, err := svc.GetByID(ad.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Clicks)
	assert.Equal(t, int64(1), got.Impressions)
	assert.NotNil(t, got.LastClick)
	assert.NotNil(t, got.LastImpression)

	var events []models.AdAnalyticsModel
	require.NoError(t, db.Where("ad_id = ?", ad.ID).Order("timestamp").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.AdEventClick, events[0].EventType)
	assert.Equal(t, models.AdEventImpression, events[1].EventType)
}

func TestRecordCounterUnknownAdIsSwallowed(t *testing.T) {
	svc, db := newTestService(t)

	// Must not panic or surface an error to the caller.
	svc.RecordImpression("no-such-ad", nil)

	var n int64
	require.NoError(t, db.Model(&models.AdvertisementModel{}).Count(&n).Error)
	assert.Equal(t, int64(0), n)
}

func TestCleanupExpiredAds(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	lapsed := seedAd(t, db, "lapsed", models.AdStatusPublished, true, 50, now, &past)
	current := seedAd(t, db, "current", models.AdStatusPublished, true, 50, now, &future)
	evergreen := seedAd(t, db, "evergreen", models.AdStatusPublished, true, 50, now, nil)

	n, err := svc.CleanupExpiredAds()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := svc.GetByID(lapsed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AdStatusExpired, got.Status)
	assert.False(t, got.Active)

	for _, id := range []string{current.ID, evergreen.ID} {
		got, err := svc.GetByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.AdStatusPublished, got.Status)
		assert.True(t, got.Active)
	}

	// A second sweep finds nothing left to flip.
	n, err = svc.CleanupExpiredAds()
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestGetCampaignStats(t *testing.T) {
	svc, db := newTestService(t)
	now := time.Now()

	a := seedAd(t, db, "a", models.AdStatusPublished, true, 50, now, nil)
	b := seedAd(t, db, "b", models.AdStatusPaused, false, 50, now, nil)
	require.NoError(t, db.Model(a).Updates(map[string]interface{}{"impressions": 100, "clicks": 10}).Error)
	require.NoError(t, db.Model(b).Updates(map[string]interface{}{"impressions": 50, "clicks": 5}).Error)

	stats, err := svc.GetCampaignStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalAds)
	assert.Equal(t, int64(1), stats.ActiveAds)
	assert.Equal(t, int64(150), stats.TotalImpressions)
	assert.Equal(t, int64(15), stats.TotalClicks)
}
