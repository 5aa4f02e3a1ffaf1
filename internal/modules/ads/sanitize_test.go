package ads

import (
	"testing"
	"time"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRequiresSrc(t *testing.T) {
	_, err := Sanitize(&AdDTO{})
	assert.ErrorIs(t, err, ErrMissingSrc)

	_, err = Sanitize(&AdDTO{Src: "   "})
	assert.ErrorIs(t, err, ErrMissingSrc)
}

func TestSanitizeDefaults(t *testing.T) {
	ad, err := Sanitize(&AdDTO{Src: "https://cdn.example.com/ad.mp4"})
	require.NoError(t, err)

	assert.Equal(t, "Untitled Ad", ad.Title)
	assert.Equal(t, models.AdTypeImage, ad.Type)
	assert.Equal(t, models.AdStatusDraft, ad.Status)
	assert.Equal(t, "Learn More", ad.ButtonText)
	assert.Equal(t, "general", ad.TargetAudience)
	assert.True(t, ad.Active)
	assert.True(t, ad.TrackClicks)
	assert.True(t, ad.TrackImpressions)
	assert.Equal(t, 0, ad.Priority)
	assert.Equal(t, 5, ad.DisplayDuration)
	assert.Equal(t, 5, ad.SkipDelay)
	assert.Nil(t, ad.ExpiresAt)
	assert.WithinDuration(t, time.Now(), ad.StartDate, time.Minute)
}

func TestSanitizeCoercesEnums(t *testing.T) {
	ad, err := Sanitize(&AdDTO{Src: "x.mp4", Type: "banner", Status: "live"})
	require.NoError(t, err)
	assert.Equal(t, models.AdTypeImage, ad.Type)
	assert.Equal(t, models.AdStatusDraft, ad.Status)

	ad, err = Sanitize(&AdDTO{Src: "x.mp4", Type: models.AdTypeVideo, Status: models.AdStatusPublished})
	require.NoError(t, err)
	assert.Equal(t, models.AdTypeVideo, ad.Type)
	assert.Equal(t, models.AdStatusPublished, ad.Status)
}

func TestSanitizeClampsRanges(t *testing.T) {
	ad, err := Sanitize(&AdDTO{Src: "x.mp4", Priority: 500, DisplayDuration: 1, SkipDelay: 99})
	require.NoError(t, err)
	assert.Equal(t, 100, ad.Priority)
	assert.Equal(t, 3, ad.DisplayDuration)
	assert.Equal(t, 15, ad.SkipDelay)

	ad, err = Sanitize(&AdDTO{Src: "x.mp4", Priority: -5, DisplayDuration: 30, SkipDelay: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, ad.Priority)
	assert.Equal(t, 30, ad.DisplayDuration)
	assert.Equal(t, 1, ad.SkipDelay)
}

func TestSanitizeParsesDates(t *testing.T) {
	ad, err := Sanitize(&AdDTO{Src: "x.mp4", StartDate: "2026-01-15", ExpiresAt: "2026-03-01T12:00:00Z"})
	require.NoError(t, err)
	assert.Equal(t, 2026, ad.StartDate.Year())
	require.NotNil(t, ad.ExpiresAt)
	assert.Equal(t, time.March, ad.ExpiresAt.Month())

	ad, err = Sanitize(&AdDTO{Src: "x.mp4", ExpiresAt: "soon"})
	require.NoError(t, err)
	assert.Nil(t, ad.ExpiresAt)
}

func TestSanitizeFiltersTags(t *testing.T) {
	ad, err := Sanitize(&AdDTO{Src: "x.mp4", Tags: []string{" promo ", "", "  ", "video"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"promo", "video"}, []string(ad.Tags))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "", NormalizeURL(""))
	assert.Equal(t, "", NormalizeURL("   "))
	assert.Equal(t, "https://example.com", NormalizeURL("example.com"))
	assert.Equal(t, "https://example.com/offer", NormalizeURL("https://example.com/offer"))
	assert.Equal(t, "http://example.com", NormalizeURL("http://example.com"))
	assert.Equal(t, "HTTPS://example.com", NormalizeURL("HTTPS://example.com"))
}

func TestToPublicOmitsInternalFields(t *testing.T) {
	ad := &models.AdvertisementModel{
		Title:           "Spring Sale",
		Type:            models.AdTypeImage,
		Src:             "https://cdn.example.com/spring.png",
		ButtonText:      "Shop Now",
		DisplayDuration: 10,
		SkipDelay:       3,
		SrcPublicID:     "website-images/ads/abc",
		Impressions:     1234,
		Clicks:          56,
		CreatedBy:       "admin@example.com",
	}
	ad.ID = "ad-1"

	pub := ToPublic(ad)
	assert.Equal(t, "ad-1", pub.ID)
	assert.Equal(t, "Spring Sale", pub.Title)
	assert.Equal(t, "Shop Now", pub.ButtonText)
	assert.Equal(t, 10, pub.DisplayDuration)
	assert.Equal(t, 3, pub.SkipDelay)
}
