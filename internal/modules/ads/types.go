package ads

import "github.com/foxbeep/site-core/internal/models"

// AdDTO is the admin create/update payload. Enum and range fields are
// coerced; only the media source is strictly required.
type AdDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`

	Src               string `json:"src"`
	ThumbnailSrc      string `json:"thumbnailSrc"`
	SrcPublicID       string `json:"srcPublicId"`
	ThumbnailPublicID string `json:"thumbnailPublicId"`

	Active   *bool  `json:"active"`
	Status   string `json:"status"`
	Priority int    `json:"priority"`

	LearnMoreLink  string `json:"learnMoreLink"`
	ButtonText     string `json:"buttonText"`
	TargetAudience string `json:"targetAudience"`

	StartDate string `json:"startDate"`
	ExpiresAt string `json:"expiresAt"`

	DisplayDuration int `json:"displayDuration"`
	SkipDelay       int `json:"skipDelay"`

	CampaignName string   `json:"campaignName"`
	Tags         []string `json:"tags"`

	TrackClicks      *bool `json:"trackClicks"`
	TrackImpressions *bool `json:"trackImpressions"`
}

// ToggleDTO flips an ad's active flag.
type ToggleDTO struct {
	Active bool `json:"active"`
}

// TrackEventDTO is the public event-tracking payload.
type TrackEventDTO struct {
	Action   string                 `json:"action" binding:"required"`
	AdID     string                 `json:"adId" binding:"required"`
	Metadata map[string]interface{} `json:"metadata"`
}

// PublicAd is the projection served to the website: no audit fields,
// storage ids, or counters.
type PublicAd struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Type            string   `json:"type"`
	Src             string   `json:"src"`
	ThumbnailSrc    string   `json:"thumbnailSrc,omitempty"`
	LearnMoreLink   string   `json:"learnMoreLink,omitempty"`
	ButtonText      string   `json:"buttonText"`
	DisplayDuration int      `json:"displayDuration"`
	SkipDelay       int      `json:"skipDelay"`
	Tags            []string `json:"tags,omitempty"`
}

// AdAnalytics summarizes one ad's event history over a trailing window.
type AdAnalytics struct {
	AdID             string                    `json:"adId"`
	AdTitle          string                    `json:"adTitle"`
	TotalImpressions int64                     `json:"totalImpressions"`
	TotalClicks      int64                     `json:"totalClicks"`
	CTR              float64                   `json:"ctr"`
	Events           map[string]EventTypeStats `json:"events"`
}

// EventTypeStats is the per-event-type slice of an analytics window.
type EventTypeStats struct {
	Count int64 `json:"count"`
}

// CampaignStats is the aggregate dashboard summary.
type CampaignStats struct {
	TotalAds         int64   `json:"totalAds"`
	ActiveAds        int64   `json:"activeAds"`
	TotalImpressions int64   `json:"totalImpressions"`
	TotalClicks      int64   `json:"totalClicks"`
	AvgCTR           float64 `json:"avgCtr"`
}

// ListFilters narrows the admin ad listing.
type ListFilters struct {
	Status string
	Active *bool
	Type   string
}

// ToPublic projects an ad for the public endpoint.
func ToPublic(ad *models.AdvertisementModel) PublicAd {
	return PublicAd{
		ID:              ad.ID,
		Title:           ad.Title,
		Description:     ad.Description,
		Type:            ad.Type,
		Src:             ad.Src,
		ThumbnailSrc:    ad.ThumbnailSrc,
		LearnMoreLink:   ad.LearnMoreLink,
		ButtonText:      ad.ButtonText,
		DisplayDuration: ad.DisplayDuration,
		SkipDelay:       ad.SkipDelay,
		Tags:            ad.Tags,
	}
}
