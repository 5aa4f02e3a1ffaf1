package converter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDBService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ConverterSettingsModel{}))
	return NewService(db, nil, zap.NewNop()), db
}

func countRows(t *testing.T, db *gorm.DB, converterID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.ConverterSettingsModel{}).
		Where("converter_id = ?", converterID).Count(&n).Error)
	return n
}

func TestGetSeedsDefaultExactlyOnce(t *testing.T) {
	svc, db := newDBService(t)

	first, err := svc.Get("mp4-to-mkv")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Convert MP4 to MKV Online", first.Hero.Title)
	assert.True(t, first.Active)
	assert.Equal(t, "1.0", first.Version)
	assert.Equal(t, int64(1), countRows(t, db, "mp4-to-mkv"))

	second, err := svc.Get("mp4-to-mkv")
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), countRows(t, db, "mp4-to-mkv"))
}

func TestUpdateSupersedesActiveDocument(t *testing.T) {
	svc, db := newDBService(t)

	dto := &UpdateDTO{
		Hero: models.HeroSection{
			Title:       "  Convert faster  ",
			Description: "New copy",
		},
		Ways: models.WaysSection{
			Title: "How to",
			Steps: []string{" Upload ", "", "Download"},
		},
	}

	updated, err := svc.Update(context.Background(), "mp4-to-mkv", dto, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Convert faster", updated.Hero.Title)
	assert.Equal(t, []string{"Upload", "Download"}, updated.Ways.Steps)
	assert.Equal(t, "admin@example.com", updated.UpdatedBy)
	assert.Equal(t, "1.1", updated.Version)

	// The seeded default plus the new version, exactly one active.
	assert.Equal(t, int64(2), countRows(t, db, "mp4-to-mkv"))
	var active int64
	require.NoError(t, db.Model(&models.ConverterSettingsModel{}).
		Where("converter_id = ? AND active = ?", "mp4-to-mkv", true).Count(&active).Error)
	assert.Equal(t, int64(1), active)

	got, err := svc.Get("mp4-to-mkv")
	require.NoError(t, err)
	assert.Equal(t, updated.ID, got.ID)

	history, err := svc.History("mp4-to-mkv")
	require.NoError(t, err)
	require.Len(t, history, 2)
}

func TestUpdateUnknownConverter(t *testing.T) {
	svc, _ := newDBService(t)

	_, err := svc.Update(context.Background(), "gif-to-png", &UpdateDTO{}, "admin@example.com")
	assert.ErrorIs(t, err, ErrUnknownConverter)
}

func TestGetAllSeedsEveryConverter(t *testing.T) {
	svc, _ := newDBService(t)

	out, err := svc.GetAll()
	require.NoError(t, err)
	require.Len(t, out, len(IDs()))
	for _, id := range IDs() {
		require.Contains(t, out, id)
		require.NotNil(t, out[id])
		assert.True(t, out[id].Active)
	}
}

func TestGetAllOmitsFailedConverters(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// No migration: every fetch fails, none may surface as a null entry.
	svc := NewService(db, nil, zap.NewNop())

	out, err := svc.GetAll()
	require.NoError(t, err)
	assert.Empty(t, out)
	for id, doc := range out {
		assert.NotNil(t, doc, id)
	}
}
