package converter

import (
	"testing"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	for _, id := range IDs() {
		assert.True(t, IsValid(id), id)
	}
	assert.False(t, IsValid("mp3-to-wav"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("MP4-TO-MKV"))
}

func TestIDsStableOrder(t *testing.T) {
	ids := IDs()
	assert.Equal(t, []string{
		"mp4-to-mkv", "mkv-to-mp4", "avi-to-mp4",
		"webm-to-mp4", "mov-to-mp4", "mp4-to-webm",
	}, ids)

	// Callers must not be able to mutate the registry order.
	ids[0] = "tampered"
	assert.Equal(t, "mp4-to-mkv", IDs()[0])
}

func TestLookup(t *testing.T) {
	info, ok := Lookup("webm-to-mp4")
	assert.True(t, ok)
	assert.Equal(t, "WEBM", info.From)
	assert.Equal(t, "MP4", info.To)

	_, ok = Lookup("nope")
	assert.False(t, ok)
}

func TestDefaultSettings(t *testing.T) {
	doc := DefaultSettings("mp4-to-mkv")

	assert.Equal(t, "mp4-to-mkv", doc.ConverterID)
	assert.Equal(t, "Convert MP4 to MKV Online", doc.Hero.Title)
	assert.Equal(t, "MP4 to MKV converter", doc.Hero.ImageAlt)
	assert.Equal(t, "How to Convert", doc.Ways.Title)
	assert.Equal(t, []string{
		"Upload your MP4 file",
		"Choose conversion settings",
		"Download your MKV file",
	}, doc.Ways.Steps)
	assert.Equal(t, "Why Choose Our Converter", doc.Features.Title)
	assert.Len(t, doc.Features.Items, 4)
	assert.True(t, doc.Active)
	assert.Equal(t, "1.0", doc.Version)
}

func TestSanitizeSectionsTrimAndFilter(t *testing.T) {
	hero := sanitizeHero(models.HeroSection{
		Title:    "  Convert Fast  ",
		Features: []string{" quick ", "", "free"},
	})
	assert.Equal(t, "Convert Fast", hero.Title)
	assert.Equal(t, []string{"quick", "free"}, hero.Features)

	ways := sanitizeWays(models.WaysSection{Steps: []string{"  upload  ", " "}})
	assert.Equal(t, []string{"upload"}, ways.Steps)
}
