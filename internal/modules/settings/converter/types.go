package converter

import "github.com/foxbeep/site-core/internal/models"

// Info describes one supported conversion pair.
type Info struct {
	From string
	To   string
	Name string
}

// converters is the fixed registry of supported landing pages.
var converters = map[string]Info{
	"mp4-to-mkv":  {From: "MP4", To: "MKV", Name: "MP4 to MKV"},
	"mkv-to-mp4":  {From: "MKV", To: "MP4", Name: "MKV to MP4"},
	"avi-to-mp4":  {From: "AVI", To: "MP4", Name: "AVI to MP4"},
	"webm-to-mp4": {From: "WEBM", To: "MP4", Name: "WEBM to MP4"},
	"mov-to-mp4":  {From: "MOV", To: "MP4", Name: "MOV to MP4"},
	"mp4-to-webm": {From: "MP4", To: "WEBM", Name: "MP4 to WEBM"},
}

// converterOrder keeps GetAll output stable.
var converterOrder = []string{
	"mp4-to-mkv",
	"mkv-to-mp4",
	"avi-to-mp4",
	"webm-to-mp4",
	"mov-to-mp4",
	"mp4-to-webm",
}

// IsValid reports whether id names a supported converter.
func IsValid(id string) bool {
	_, ok := converters[id]
	return ok
}

// Lookup returns the conversion pair for id.
func Lookup(id string) (Info, bool) {
	info, ok := converters[id]
	return info, ok
}

// IDs returns the supported converter ids in display order.
func IDs() []string {
	out := make([]string, len(converterOrder))
	copy(out, converterOrder)
	return out
}

// UpdateDTO is the admin converter settings payload.
type UpdateDTO struct {
	Hero     models.HeroSection        `json:"hero"`
	Ways     models.WaysSection        `json:"ways"`
	Features models.FeatureListSection `json:"features"`
}

// DeleteImageDTO removes a CDN image reference from the active document.
type DeleteImageDTO struct {
	PublicID string `json:"publicId" binding:"required"`
}
