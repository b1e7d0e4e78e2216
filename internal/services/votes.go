package services

import (
	"errors"

	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"

	"gorm.io/gorm"
)

// The Vote table is the source of truth; DeparturePage.VotesCount is a
// denormalized cache for cheap list reads. Both mutations below move the
// counter inside the same transaction as the ledger row, so a failure on
// either side rolls back the whole operation and the two can never disagree.

// CastVote records a vote by userID on the page. Casting twice is a no-op
// that returns the existing vote; the counter is incremented exactly once.
func CastVote(pid string, userID uint) (*models.Vote, error) {
	var page models.DeparturePage
	if err := db.DB.Where("pid = ?", pid).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	var vote models.Vote
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("page_id = ? AND user_id = ?", page.ID, userID).First(&vote).Error
		if err == nil {
			return nil // already voted, idempotent
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote = models.Vote{PageID: page.ID, UserID: userID}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return tx.Model(&models.DeparturePage{}).
			Where("id = ?", page.ID).
			UpdateColumn("votes_count", gorm.Expr("votes_count + ?", 1)).Error
	})
	if err != nil {
		// A concurrent cast by the same user may have taken the
		// (page_id, user_id) unique slot first; the transaction rolled back
		// without touching the counter, so return the winner's row.
		var existing models.Vote
		if ferr := db.DB.Where("page_id = ? AND user_id = ?", page.ID, userID).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &vote, nil
}

// RetractVote deletes the vote by userID on the page and decrements the
// counter, atomically with the deletion. Returns ErrNoVote when no such vote
// exists; the counter is left untouched in that case.
func RetractVote(pid string, userID uint) error {
	var page models.DeparturePage
	if err := db.DB.Where("pid = ?", pid).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPageNotFound
		}
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("page_id = ? AND user_id = ?", page.ID, userID).Delete(&models.Vote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoVote
		}
		return tx.Model(&models.DeparturePage{}).
			Where("id = ?", page.ID).
			UpdateColumn("votes_count", gorm.Expr("votes_count - ?", 1)).Error
	})
}
