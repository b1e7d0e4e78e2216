package services

import (
	"errors"
	"time"

	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"

	"gorm.io/gorm"
)

// RecordView consumes the one-time-view latch for (page, viewer) and returns
// the page on a first view. The latch transitions unseen→seen exactly once:
// the reading row is created under the (page_id, viewer_key) unique index, so
// a creation race resolves to a single row, and the flip itself is a guarded
// single-row update so concurrent first views see exactly one winner.
//
// Non-ephemeral pages are returned without touching the latch.
func RecordView(pid string, viewer ViewerIdentity) (*models.DeparturePage, error) {
	var page models.DeparturePage
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if !page.IsEphemeral {
		return &page, nil
	}

	reading, err := getOrCreateReading(page.ID, viewer)
	if err != nil {
		return nil, err
	}

	if reading.HasBeenViewed {
		return nil, ErrAlreadyViewed
	}

	// First-writer-wins: the WHERE clause makes the transition happen at most
	// once even when two requests resolved the same unviewed row.
	now := time.Now()
	res := db.DB.Model(&models.EphemeralReading{}).
		Where("id = ? AND has_been_viewed = ?", reading.ID, false).
		Updates(map[string]interface{}{
			"has_been_viewed": true,
			"view_date":       now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrAlreadyViewed
	}

	return &page, nil
}

// getOrCreateReading resolves the reading row for (pageID, viewer). Losing a
// creation race against a concurrent request is not an error: the unique
// index rejects the duplicate and the winner's row is fetched instead. A
// plain read-then-write without that guard would let both callers report a
// first view.
func getOrCreateReading(pageID uint, viewer ViewerIdentity) (*models.EphemeralReading, error) {
	key := viewer.Key()

	var reading models.EphemeralReading
	err := db.DB.Where("page_id = ? AND viewer_key = ?", pageID, key).First(&reading).Error
	if err == nil {
		return &reading, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reading = models.EphemeralReading{
		PageID:    pageID,
		ViewerID:  viewer.UserID,
		ViewerIP:  viewer.IP,
		ViewerKey: key,
	}
	if cerr := db.DB.Create(&reading).Error; cerr != nil {
		// Lost the race: fall back to the row the winner created.
		if ferr := db.DB.Where("page_id = ? AND viewer_key = ?", pageID, key).First(&reading).Error; ferr != nil {
			return nil, cerr
		}
	}
	return &reading, nil
}
