package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is the base model for all entities. IDs are UUID strings so clients
// can treat them as opaque document ids.
type Base struct {
	ID        string         `json:"id"       gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"        gorm:"index"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

// VersionedBase adds the append-only version-log columns shared by all
// settings collections: a single active snapshot per key, previous versions
// kept inactive with a deactivation stamp.
type VersionedBase struct {
	Base
	Active        bool       `json:"active"                  gorm:"index;not null"`
	UpdatedBy     string     `json:"updatedBy,omitempty"`
	DeactivatedAt *time.Time `json:"deactivatedAt,omitempty"`
	Version       string     `json:"version"                 gorm:"default:'1.0'"`
}
