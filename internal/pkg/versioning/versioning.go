// Package versioning implements the append-only version log used by the
// settings stores: at most one active snapshot per key, superseded versions
// kept inactive with a deactivation stamp.
package versioning

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Active returns the current active snapshot matching cond, or nil when no
// version exists yet.
func Active[T any](db *gorm.DB, cond map[string]interface{}) (*T, error) {
	var row T
	tx := db.Where("active = ?", true)
	if len(cond) > 0 {
		tx = tx.Where(cond)
	}
	err := tx.Order("created_at DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Replace supersedes the active snapshot in a single transaction: every
// active row matching cond is deactivated with a timestamp, then next is
// inserted as the new active version. Readers never observe zero or two
// active snapshots.
func Replace[T any](db *gorm.DB, cond map[string]interface{}, next *T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var zero T
		now := time.Now()
		q := tx.Model(&zero).Where("active = ?", true)
		if len(cond) > 0 {
			q = q.Where(cond)
		}
		if err := q.Updates(map[string]interface{}{
			"active":         false,
			"deactivated_at": now,
		}).Error; err != nil {
			return err
		}
		return tx.Create(next).Error
	})
}

// History lists versions matching cond newest-first, up to limit (0 = all).
func History[T any](db *gorm.DB, cond map[string]interface{}, limit int) ([]T, error) {
	var rows []T
	var zero T
	tx := db.Model(&zero)
	if len(cond) > 0 {
		tx = tx.Where(cond)
	}
	tx = tx.Order("created_at DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	err := tx.Find(&rows).Error
	return rows, err
}

// NextVersion produces the version label for a new snapshot: "1.0" → "1.1".
// Unparseable labels restart the sequence.
func NextVersion(prev string) string {
	v, err := strconv.ParseFloat(prev, 64)
	if err != nil || v <= 0 {
		return "1.0"
	}
	return fmt.Sprintf("%.1f", v+0.1)
}
