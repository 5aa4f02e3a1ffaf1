package adsense

import (
	"regexp"
	"testing"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	doc := DefaultSettings()

	assert.True(t, doc.Active)
	assert.Equal(t, "1.0", doc.Version)
	assert.False(t, doc.GlobalSettings.Enabled)
	assert.True(t, doc.GlobalSettings.RespectDoNotTrack)
	assert.True(t, doc.GlobalSettings.LazyLoading)

	assert.Equal(t, "auto", doc.AdPlacements.Header.AdFormat)
	assert.Equal(t, "rectangle", doc.AdPlacements.Sidebar.AdFormat)
	assert.Equal(t, "horizontal", doc.AdPlacements.Footer.AdFormat)
	assert.Equal(t, "auto", doc.AdPlacements.InContent.AdFormat)
	assert.Equal(t, "middle", doc.AdPlacements.InContent.Position)
	assert.Equal(t, "mobile-banner", doc.AdPlacements.Mobile.AdFormat)
	assert.Equal(t, StatusDraft, doc.AdPlacements.Header.Status)

	assert.Empty(t, doc.CustomAdUnits)
	assert.True(t, doc.Performance.TrackClicks)
	assert.True(t, doc.Performance.ReportingEnabled)
}

func TestSanitizePlacementCoercion(t *testing.T) {
	pl := sanitizePlacement(models.AdPlacement{
		AdSlot:   "  123456  ",
		AdFormat: "popup",
		Status:   "live",
	}, "rectangle", "")
	assert.Equal(t, "123456", pl.AdSlot)
	assert.Equal(t, "rectangle", pl.AdFormat)
	assert.Equal(t, StatusDraft, pl.Status)
	assert.Equal(t, "", pl.Position)

	pl = sanitizePlacement(models.AdPlacement{
		AdFormat: "leaderboard",
		Status:   StatusPublished,
		Position: "sideways",
	}, "auto", "middle")
	assert.Equal(t, "leaderboard", pl.AdFormat)
	assert.Equal(t, StatusPublished, pl.Status)
	assert.Equal(t, "middle", pl.Position)

	// Position survives on the inContent slot when valid.
	pl = sanitizePlacement(models.AdPlacement{Position: "top"}, "auto", "middle")
	assert.Equal(t, "top", pl.Position)
}

func TestSanitizeCustomUnitsFillsDefaults(t *testing.T) {
	units := sanitizeCustomUnits([]models.CustomAdUnit{
		{Name: "  Sidebar Promo  ", Status: "published"},
		{},
	})
	require.Len(t, units, 2)

	assert.Equal(t, "Sidebar Promo", units[0].Name)
	assert.Equal(t, StatusPublished, units[0].Status)
	assert.NotEmpty(t, units[0].ID)

	assert.Equal(t, "Custom Ad Unit", units[1].Name)
	assert.Equal(t, "auto", units[1].AdFormat)
	assert.Equal(t, StatusDraft, units[1].Status)
	assert.False(t, units[1].CreatedAt.IsZero())
}

func TestNewUnitIDFormat(t *testing.T) {
	re := regexp.MustCompile(`^custom_\d+_[0-9a-z]{9}$`)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id := newUnitID()
		assert.Regexp(t, re, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestProjectPublicFiltersUnpublished(t *testing.T) {
	doc := DefaultSettings()
	doc.PublisherID = "pub-123"
	doc.AdPlacements.Header = models.AdPlacement{
		Enabled: true, AdSlot: "111", AdFormat: "auto", Status: StatusPublished,
	}
	// Enabled but still draft: excluded.
	doc.AdPlacements.Sidebar = models.AdPlacement{
		Enabled: true, AdSlot: "222", AdFormat: "rectangle", Status: StatusDraft,
	}
	// Published but no slot assigned: excluded.
	doc.AdPlacements.Footer = models.AdPlacement{
		Enabled: true, AdFormat: "horizontal", Status: StatusPublished,
	}
	doc.CustomAdUnits = []models.CustomAdUnit{
		{ID: "custom_1_aaaaaaaaa", Enabled: true, Status: StatusPublished},
		{ID: "custom_2_bbbbbbbbb", Enabled: true, Status: StatusDraft},
		{ID: "custom_3_ccccccccc", Enabled: false, Status: StatusPublished},
	}

	pub := ProjectPublic(&doc)
	assert.Equal(t, "pub-123", pub.PublisherID)
	require.Len(t, pub.AdPlacements, 1)
	assert.Equal(t, "111", pub.AdPlacements["header"].AdSlot)
	require.Len(t, pub.CustomAdUnits, 1)
	assert.Equal(t, "custom_1_aaaaaaaaa", pub.CustomAdUnits[0].ID)
}

func TestPerformanceStatsWindow(t *testing.T) {
	svc := &Service{}

	stats := svc.PerformanceStats(7)
	assert.NotEmpty(t, stats.DateRange.Start)
	assert.NotEmpty(t, stats.DateRange.End)
	assert.Empty(t, stats.DailyStats)
	assert.Empty(t, stats.TopPerformingUnits)

	// Non-positive windows fall back to 30 days.
	stats = svc.PerformanceStats(0)
	assert.NotEmpty(t, stats.DateRange.Start)
}
