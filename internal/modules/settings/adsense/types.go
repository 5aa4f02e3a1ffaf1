package adsense

import "github.com/foxbeep/site-core/internal/models"

// Placement and custom unit status values.
const (
	StatusDraft       = "draft"
	StatusPublished   = "published"
	StatusUnpublished = "unpublished"
)

// UpdateDTO is the full admin AdSense settings payload. Unknown enum values
// are coerced to per-slot defaults rather than rejected.
type UpdateDTO struct {
	PublisherID    string                            `json:"publisherId"`
	AdClientID     string                            `json:"adClientId"`
	GlobalSettings models.AdSenseGlobalSettings      `json:"globalSettings"`
	AdPlacements   models.AdPlacements               `json:"adPlacements"`
	CustomAdUnits  []models.CustomAdUnit             `json:"customAdUnits"`
	Performance    models.AdSensePerformanceSettings `json:"performance"`
}

// CustomUnitDTO creates a new custom ad unit. Status always starts as draft.
type CustomUnitDTO struct {
	Name      string `json:"name"`
	AdSlot    string `json:"adSlot"`
	AdFormat  string `json:"adFormat"`
	Placement string `json:"placement"`
	Enabled   bool   `json:"enabled"`
}

// UnitStatusDTO updates one custom ad unit's workflow status.
type UnitStatusDTO struct {
	UnitID string `json:"unitId" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// PlacementStatusDTO updates one fixed placement's workflow status.
type PlacementStatusDTO struct {
	Placement string `json:"placement" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

// PublicPlacement is the projection of a published placement exposed to the
// frontend.
type PublicPlacement struct {
	AdSlot   string `json:"adSlot"`
	AdFormat string `json:"adFormat"`
	Position string `json:"position,omitempty"`
}

// PublicSettings is the unauthenticated settings projection: published and
// enabled slots only, no audit fields.
type PublicSettings struct {
	PublisherID    string                       `json:"publisherId"`
	AdClientID     string                       `json:"adClientId"`
	GlobalSettings models.AdSenseGlobalSettings `json:"globalSettings"`
	AdPlacements   map[string]PublicPlacement   `json:"adPlacements"`
	CustomAdUnits  []models.CustomAdUnit        `json:"customAdUnits"`
}

// PerformanceStats is the reporting skeleton returned to the dashboard until
// a real AdSense reporting integration exists.
type PerformanceStats struct {
	Summary struct {
		Impressions int64   `json:"impressions"`
		Clicks      int64   `json:"clicks"`
		CTR         float64 `json:"ctr"`
		Revenue     float64 `json:"revenue"`
		RPM         float64 `json:"rpm"`
	} `json:"summary"`
	DailyStats         []interface{} `json:"dailyStats"`
	TopPerformingUnits []interface{} `json:"topPerformingUnits"`
	DateRange          struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"dateRange"`
}
