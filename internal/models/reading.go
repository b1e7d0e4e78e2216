package models

import (
	"time"
)

// EphemeralReading 一次性阅读记录 - one-time-view latch per (page, viewer).
// ViewerKey is the canonical viewer identity ("u:<id>" for authenticated
// users, "ip:<addr>" for anonymous visitors) so the uniqueness constraint
// covers anonymous readers at the storage layer too, not just in application
// lookups.
type EphemeralReading struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	PageID        uint          `gorm:"not null;index;uniqueIndex:idx_page_viewer" json:"page_id"`
	Page          DeparturePage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ViewerID      *uint         `gorm:"index" json:"viewer_id"` // nil for anonymous viewers
	Viewer        *User         `gorm:"foreignKey:ViewerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ViewerIP      string        `gorm:"size:45" json:"viewer_ip"` // best-effort, advisory only
	ViewerKey     string        `gorm:"size:64;not null;uniqueIndex:idx_page_viewer" json:"-"`
	HasBeenViewed bool          `gorm:"not null;default:false" json:"has_been_viewed"`
	ViewDate      *time.Time    `json:"view_date"` // set exactly once, never reset
	CreatedAt     time.Time     `json:"created_at"`
}
