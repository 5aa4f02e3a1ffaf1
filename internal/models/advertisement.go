package models

import "time"

// Advertisement lifecycle status values.
const (
	AdStatusDraft     = "draft"
	AdStatusPublished = "published"
	AdStatusPaused    = "paused"
	AdStatusExpired   = "expired"
)

// Advertisement media types.
const (
	AdTypeImage = "image"
	AdTypeVideo = "video"
)

// AdvertisementModel is a single ad campaign. Expiry is computed lazily by
// filtering on expires_at; the cleanup job flips long-expired rows.
type AdvertisementModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Type        string `json:"type"        gorm:"default:'image'"` // image | video

	Src               string `json:"src"               gorm:"not null"`
	ThumbnailSrc      string `json:"thumbnailSrc"`
	SrcPublicID       string `json:"srcPublicId"`
	ThumbnailPublicID string `json:"thumbnailPublicId"`

	Active   bool   `json:"active"   gorm:"index;default:true"`
	Status   string `json:"status"   gorm:"index;default:'draft'"` // draft | published | paused | expired
	Priority int    `json:"priority" gorm:"index;default:0"`       // 0-100, higher first

	LearnMoreLink  string `json:"learnMoreLink"`
	ButtonText     string `json:"buttonText"`
	TargetAudience string `json:"targetAudience"`

	StartDate time.Time  `json:"startDate"`
	ExpiresAt *time.Time `json:"expiresAt" gorm:"index"`

	DisplayDuration int `json:"displayDuration"` // seconds, 3-30
	SkipDelay       int `json:"skipDelay"`       // seconds, 0-15

	CampaignName string   `json:"campaignName"`
	Tags         []string `json:"tags" gorm:"type:longtext;serializer:json"`

	TrackClicks      bool `json:"trackClicks"      gorm:"default:true"`
	TrackImpressions bool `json:"trackImpressions" gorm:"default:true"`

	Impressions    int64      `json:"impressions" gorm:"default:0"`
	Clicks         int64      `json:"clicks"      gorm:"default:0"`
	LastImpression *time.Time `json:"lastImpression,omitempty"`
	LastClick      *time.Time `json:"lastClick,omitempty"`

	CreatedBy string `json:"createdBy"`
	UpdatedBy string `json:"updatedBy"`
	Version   string `json:"version" gorm:"default:'1.0'"`
}

func (AdvertisementModel) TableName() string { return "advertisements" }

// Ad analytics event types.
const (
	AdEventImpression = "impression"
	AdEventClick      = "click"
	AdEventSkip       = "skip"
	AdEventComplete   = "complete"
)

// AdAnalyticsModel is an append-only ad event record; rows are never updated.
type AdAnalyticsModel struct {
	Base
	AdID      string                 `json:"adId"      gorm:"index;not null"`
	EventType string                 `json:"eventType" gorm:"index;not null"` // impression | click | skip | complete
	Timestamp time.Time              `json:"timestamp" gorm:"index"`
	Metadata  map[string]interface{} `json:"metadata"  gorm:"type:longtext;serializer:json"`
}

func (AdAnalyticsModel) TableName() string { return "ad_analytics" }
