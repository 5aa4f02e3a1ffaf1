package models

import "time"

// Admin account status values.
const (
	AdminStatusActive   = "active"
	AdminStatusDisabled = "disabled"
)

// AdminModel represents a dashboard administrator stored in the database.
// Environment-configured admins never have a row here; they are resolved
// from process configuration at verification time.
type AdminModel struct {
	Base
	Email         string     `json:"email"           gorm:"uniqueIndex;not null"`
	Password      string     `json:"-"               gorm:"not null"`
	Name          string     `json:"name"`
	Status        string     `json:"status"          gorm:"index;default:'active'"` // active | disabled
	LastLoginTime *time.Time `json:"lastLoginTime"`
	LastLoginIP   string     `json:"lastLoginIp"`
}

func (AdminModel) TableName() string { return "admins" }
