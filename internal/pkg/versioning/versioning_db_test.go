package versioning

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/foxbeep/site-core/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ConverterSettingsModel{}))
	return db
}

func newConverterDoc(converterID, title, version string) *models.ConverterSettingsModel {
	doc := &models.ConverterSettingsModel{
		ConverterID: converterID,
		Hero:        models.HeroSection{Title: title},
	}
	doc.Active = true
	doc.Version = version
	return doc
}

func countActive(t *testing.T, db *gorm.DB, converterID string) int64 {
	t.Helper()
	var n int64
	err := db.Model(&models.ConverterSettingsModel{}).
		Where("converter_id = ? AND active = ?", converterID, true).
		Count(&n).Error
	require.NoError(t, err)
	return n
}

func TestActiveReturnsNilWhenEmpty(t *testing.T) {
	db := newTestDB(t)

	doc, err := Active[models.ConverterSettingsModel](db, map[string]interface{}{"converter_id": "mp4-to-mkv"})
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestReplaceKeepsExactlyOneActive(t *testing.T) {
	db := newTestDB(t)
	cond := map[string]interface{}{"converter_id": "mp4-to-mkv"}

	require.NoError(t, Replace(db, cond, newConverterDoc("mp4-to-mkv", "v1", "1.0")))
	require.NoError(t, Replace(db, cond, newConverterDoc("mp4-to-mkv", "v2", "1.1")))
	require.NoError(t, Replace(db, cond, newConverterDoc("mp4-to-mkv", "v3", "1.2")))

	assert.Equal(t, int64(1), countActive(t, db, "mp4-to-mkv"))

	doc, err := Active[models.ConverterSettingsModel](db, cond)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "v3", doc.Hero.Title)
	assert.Equal(t, "1.2", doc.Version)

	var superseded []models.ConverterSettingsModel
	require.NoError(t, db.Where("converter_id = ? AND active = ?", "mp4-to-mkv", false).Find(&superseded).Error)
	require.Len(t, superseded, 2)
	for _, row := range superseded {
		assert.NotNil(t, row.DeactivatedAt)
	}
}

func TestReplaceScopedToKey(t *testing.T) {
	db := newTestDB(t)
	condA := map[string]interface{}{"converter_id": "mp4-to-mkv"}
	condB := map[string]interface{}{"converter_id": "avi-to-mp4"}

	require.NoError(t, Replace(db, condA, newConverterDoc("mp4-to-mkv", "a1", "1.0")))
	require.NoError(t, Replace(db, condB, newConverterDoc("avi-to-mp4", "b1", "1.0")))
	require.NoError(t, Replace(db, condA, newConverterDoc("mp4-to-mkv", "a2", "1.1")))

	assert.Equal(t, int64(1), countActive(t, db, "mp4-to-mkv"))
	assert.Equal(t, int64(1), countActive(t, db, "avi-to-mp4"))

	doc, err := Active[models.ConverterSettingsModel](db, condB)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "b1", doc.Hero.Title)
	assert.Nil(t, doc.DeactivatedAt)
}

func TestHistoryNewestFirst(t *testing.T) {
	db := newTestDB(t)
	cond := map[string]interface{}{"converter_id": "mp4-to-mkv"}

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"v1", "v2", "v3"} {
		doc := newConverterDoc("mp4-to-mkv", title, "1.0")
		// Spread created_at so ordering is deterministic.
		doc.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, Replace(db, cond, doc))
	}

	rows, err := History[models.ConverterSettingsModel](db, cond, 0)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "v3", rows[0].Hero.Title)
	assert.Equal(t, "v1", rows[2].Hero.Title)

	limited, err := History[models.ConverterSettingsModel](db, cond, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "v3", limited[0].Hero.Title)
}
