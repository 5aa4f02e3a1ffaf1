package models

import "time"

// HeroSection is the hero block shared by homepage and converter pages.
type HeroSection struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Image         string   `json:"image,omitempty"`
	ImageAlt      string   `json:"imageAlt,omitempty"`
	ImagePublicID string   `json:"imagePublicId,omitempty"`
	Features      []string `json:"features,omitempty"`
}

// AboutSection is the homepage about block.
type AboutSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NewsletterSection is the homepage newsletter call-to-action block.
type NewsletterSection struct {
	Enabled     bool   `json:"enabled"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// HomepageSettingsModel is one version of the homepage content document.
type HomepageSettingsModel struct {
	VersionedBase
	Hero       HeroSection       `json:"hero"       gorm:"type:longtext;serializer:json"`
	About      AboutSection      `json:"about"      gorm:"type:longtext;serializer:json"`
	Newsletter NewsletterSection `json:"newsletter" gorm:"type:longtext;serializer:json"`
}

func (HomepageSettingsModel) TableName() string { return "homepage_settings" }

// WaysSection is the "how to convert" block of a converter landing page.
type WaysSection struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Image         string   `json:"image,omitempty"`
	ImageAlt      string   `json:"imageAlt,omitempty"`
	ImagePublicID string   `json:"imagePublicId,omitempty"`
	Steps         []string `json:"steps"`
}

// FeatureListSection is the converter feature highlights block.
type FeatureListSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// ConverterSettingsModel is one version of a converter landing page document,
// keyed by converter id (e.g. "mp4-to-mkv").
type ConverterSettingsModel struct {
	VersionedBase
	ConverterID string             `json:"converterId" gorm:"index;not null"`
	Hero        HeroSection        `json:"hero"        gorm:"type:longtext;serializer:json"`
	Ways        WaysSection        `json:"ways"        gorm:"type:longtext;serializer:json"`
	Features    FeatureListSection `json:"features"    gorm:"type:longtext;serializer:json"`
}

func (ConverterSettingsModel) TableName() string { return "converter_settings" }

// SocialLinks holds the company's social profile URLs.
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	LinkedIn  string `json:"linkedin"`
}

// CompanyDetailsModel is one version of the company branding document.
type CompanyDetailsModel struct {
	VersionedBase
	CompanyName     string      `json:"companyName" gorm:"not null"`
	Logo            string      `json:"logo"`
	LogoPublicID    string      `json:"logoPublicId"`
	Favicon         string      `json:"favicon"`
	FaviconPublicID string      `json:"faviconPublicId"`
	SocialLinks     SocialLinks `json:"socialLinks" gorm:"type:longtext;serializer:json"`
}

func (CompanyDetailsModel) TableName() string { return "company_details" }

// AdPlacement configures a single named AdSense slot.
type AdPlacement struct {
	Enabled  bool   `json:"enabled"`
	AdSlot   string `json:"adSlot"`
	AdFormat string `json:"adFormat"`
	Position string `json:"position,omitempty"` // inContent only: top | middle | bottom
	Status   string `json:"status"`             // draft | published | unpublished
}

// AdPlacements is the fixed set of named placements.
type AdPlacements struct {
	Header    AdPlacement `json:"header"`
	Sidebar   AdPlacement `json:"sidebar"`
	Footer    AdPlacement `json:"footer"`
	InContent AdPlacement `json:"inContent"`
	Mobile    AdPlacement `json:"mobile"`
}

// CustomAdUnit is an admin-defined ad unit outside the fixed placements.
type CustomAdUnit struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdSlot    string    `json:"adSlot"`
	AdFormat  string    `json:"adFormat"`
	Placement string    `json:"placement"`
	Enabled   bool      `json:"enabled"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AdSenseGlobalSettings are the master switches for the AdSense integration.
type AdSenseGlobalSettings struct {
	Enabled           bool `json:"enabled"`
	AutoAds           bool `json:"autoAds"`
	AdBlockDetection  bool `json:"adBlockDetection"`
	RespectDoNotTrack bool `json:"respectDoNotTrack"`
	LazyLoading       bool `json:"lazyLoading"`
	TestMode          bool `json:"testMode"`
}

// AdSensePerformanceSettings toggles client-side reporting hooks.
type AdSensePerformanceSettings struct {
	TrackClicks      bool `json:"trackClicks"`
	TrackImpressions bool `json:"trackImpressions"`
	ReportingEnabled bool `json:"reportingEnabled"`
}

// AdSenseSettingsModel is one version of the AdSense configuration document.
type AdSenseSettingsModel struct {
	VersionedBase
	PublisherID    string                     `json:"publisherId"`
	AdClientID     string                     `json:"adClientId"`
	GlobalSettings AdSenseGlobalSettings      `json:"globalSettings" gorm:"type:longtext;serializer:json"`
	AdPlacements   AdPlacements               `json:"adPlacements"   gorm:"type:longtext;serializer:json"`
	CustomAdUnits  []CustomAdUnit             `json:"customAdUnits"  gorm:"type:longtext;serializer:json"`
	Performance    AdSensePerformanceSettings `json:"performance"    gorm:"type:longtext;serializer:json"`
}

func (AdSenseSettingsModel) TableName() string { return "adsense_settings" }
