package services

import (
	"github.com/LucaZH/webcup2025-backend/internal/models"
)

// CanRead reports whether the caller may read the page: the owner always
// can, everyone (including anonymous callers) can read public pages.
func CanRead(page *models.DeparturePage, user *models.User) bool {
	if user != nil && user.ID == page.UserID {
		return true
	}
	return page.IsPublic
}

// CanWrite reports whether the caller may mutate the page. Only the owner
// can; ownership never transfers.
func CanWrite(page *models.DeparturePage, user *models.User) bool {
	return user != nil && user.ID == page.UserID
}
