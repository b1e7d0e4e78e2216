package models

import (
	"time"

	"gorm.io/datatypes"
)

type EndingType string

const (
	EndingBreakup   EndingType = "breakup"
	EndingWork      EndingType = "work"
	EndingProject   EndingType = "project"
	EndingCommunity EndingType = "community"
	EndingOther     EndingType = "other"
)

func (e EndingType) Valid() bool {
	switch e {
	case EndingBreakup, EndingWork, EndingProject, EndingCommunity, EndingOther:
		return true
	}
	return false
}

type Tone string

const (
	ToneDramatic Tone = "dramatic"
	ToneIronic   Tone = "ironic"
	ToneTouching Tone = "touching"
	ToneAbsurd   Tone = "absurd"
	ToneClassy   Tone = "classy"
	ToneCringe   Tone = "cringe"
	ToneHonest   Tone = "honest"
)

func (t Tone) Valid() bool {
	switch t {
	case ToneDramatic, ToneIronic, ToneTouching, ToneAbsurd, ToneClassy, ToneCringe, ToneHonest:
		return true
	}
	return false
}

// DeparturePage 离场页 - a farewell page composed by a user, optionally
// published publicly and, when ephemeral, viewable once per visitor.
type DeparturePage struct {
	ID          uint              `gorm:"primaryKey" json:"-"`
	Pid         string            `gorm:"uniqueIndex;size:8;not null" json:"id"` // opaque public id, immutable
	UserID      uint              `gorm:"not null;index" json:"user_id"`
	User        User              `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string            `gorm:"size:200;not null" json:"title"`
	Content     string            `gorm:"type:text" json:"content"`
	DesignMeta  datatypes.JSONMap `gorm:"type:jsonb" json:"design_meta"`
	Template    string            `gorm:"size:50" json:"template"`
	EndingType  EndingType        `gorm:"type:varchar(20);not null" json:"ending_type"`
	Tone        Tone              `gorm:"type:varchar(20);not null" json:"tone"`
	IsPublic    bool              `gorm:"default:false" json:"is_public"`
	IsAnonymous bool              `gorm:"default:false" json:"is_anonymous"`
	IsEphemeral bool              `gorm:"default:true" json:"is_ephemeral"`
	// Denormalized cache of the Vote rows referencing this page. Mutated only
	// inside the same transaction as the ledger row itself (services/votes.go).
	VotesCount int       `gorm:"not null;default:0" json:"votes_count"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"creation_date"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 非数据库字段，用于查询时填充
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`
}

// GallerySummary 公共画廊的精简投影
type GallerySummary struct {
	Pid        string `json:"id"`
	Title      string `json:"title"`
	VotesCount int    `json:"votes_count"`
	Tone       Tone   `json:"tone"`
}
