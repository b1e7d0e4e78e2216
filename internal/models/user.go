package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"not null" json:"username"` // Username can be modified
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // Hash
	GoogleID    string    `gorm:"index" json:"-"`    // Google OAuth ID
	GoogleEmail string    `gorm:"index" json:"-"`
	IsActivated bool      `gorm:"default:false" json:"is_activated"`
	VerifyCode  string    `gorm:"size:20" json:"-"` // activation / password reset code
	CreatedAt   time.Time `json:"registration_date"`
	UpdatedAt   time.Time `json:"-"`
	// No DeletedAt for hard delete
}
