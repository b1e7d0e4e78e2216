package models

import (
	"time"
)

// Vote 投票记录 - the source of truth for DeparturePage.VotesCount.
// The composite unique index guarantees at most one vote per (page, user)
// even under concurrent casts.
type Vote struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	PageID    uint          `gorm:"not null;index;uniqueIndex:idx_page_user" json:"page_id"`
	Page      DeparturePage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint          `gorm:"not null;index;uniqueIndex:idx_page_user" json:"user_id"`
	User      User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}
