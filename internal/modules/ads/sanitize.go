package ads

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/foxbeep/site-core/internal/models"
)

// ErrMissingSrc rejects ads without a media source.
var ErrMissingSrc = errors.New("advertisement media source is required")

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// Sanitize validates and coerces an ad payload into a model. Only Src is
// strictly required; enum and range fields fall back to defaults.
func Sanitize(dto *AdDTO) (*models.AdvertisementModel, error) {
	src := strings.TrimSpace(dto.Src)
	if src == "" {
		return nil, ErrMissingSrc
	}

	adType := dto.Type
	if adType != models.AdTypeImage && adType != models.AdTypeVideo {
		adType = models.AdTypeImage
	}

	status := dto.Status
	switch status {
	case models.AdStatusDraft, models.AdStatusPublished, models.AdStatusPaused, models.AdStatusExpired:
	default:
		status = models.AdStatusDraft
	}

	title := strings.TrimSpace(dto.Title)
	if title == "" {
		title = "Untitled Ad"
	}
	buttonText := strings.TrimSpace(dto.ButtonText)
	if buttonText == "" {
		buttonText = "Learn More"
	}
	targetAudience := strings.TrimSpace(dto.TargetAudience)
	if targetAudience == "" {
		targetAudience = "general"
	}

	ad := &models.AdvertisementModel{
		Title:       title,
		Description: strings.TrimSpace(dto.Description),
		Type:        adType,

		Src:               src,
		ThumbnailSrc:      strings.TrimSpace(dto.ThumbnailSrc),
		SrcPublicID:       strings.TrimSpace(dto.SrcPublicID),
		ThumbnailPublicID: strings.TrimSpace(dto.ThumbnailPublicID),

		Active:   boolOr(dto.Active, true),
		Status:   status,
		Priority: clamp(dto.Priority, 0, 100, 0),

		LearnMoreLink:  NormalizeURL(dto.LearnMoreLink),
		ButtonText:     buttonText,
		TargetAudience: targetAudience,

		StartDate: parseTimeOr(dto.StartDate, time.Now()),
		ExpiresAt: parseTimePtr(dto.ExpiresAt),

		DisplayDuration: clamp(dto.DisplayDuration, 3, 30, 5),
		SkipDelay:       clamp(dto.SkipDelay, 0, 15, 5),

		CampaignName: strings.TrimSpace(dto.CampaignName),
		Tags:         filterTags(dto.Tags),

		TrackClicks:      boolOr(dto.TrackClicks, true),
		TrackImpressions: boolOr(dto.TrackImpressions, true),
	}
	return ad, nil
}

// NormalizeURL prepends https:// when the scheme is missing and returns ""
// for anything that still fails to parse as an absolute URL.
func NormalizeURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if !schemeRe.MatchString(trimmed) {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		return ""
	}
	return trimmed
}

// clamp bounds v to [min, max]; zero falls back to def.
func clamp(v, min, max, def int) int {
	if v == 0 {
		v = def
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func filterTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseTimeOr(raw string, def time.Time) time.Time {
	if t := parseTimePtr(raw); t != nil {
		return *t
	}
	return def
}

func parseTimePtr(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return &t
		}
	}
	return nil
}
