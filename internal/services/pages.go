package services

import (
	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"
)

// SavePageContent persists an edited page. The vote counter is excluded from
// the write: the page struct may have been loaded before a concurrent vote
// landed, and the counter moves only inside the vote transactions
// (see votes.go), never as a side effect of an edit.
func SavePageContent(page *models.DeparturePage) error {
	return db.DB.Omit("votes_count").Save(page).Error
}
