package services

import (
	"testing"

	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"
)

func TestSavePageContentPreservesCounter(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	voter := createTestUser(t, "voter@example.com")
	page := createTestPage(t, owner, true)

	// Load the page the way an edit request does, before the vote lands.
	var stale models.DeparturePage
	if err := db.DB.Where("pid = ?", page.Pid).First(&stale).Error; err != nil {
		t.Fatalf("failed to load page: %v", err)
	}
	if stale.VotesCount != 0 {
		t.Fatalf("precondition: votes_count = %d", stale.VotesCount)
	}

	if _, err := CastVote(page.Pid, voter.ID); err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	// Persisting the edit from the stale struct must not write the counter
	// value read before the vote.
	stale.Title = "Edited mid-vote"
	if err := SavePageContent(&stale); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var reloaded models.DeparturePage
	if err := db.DB.First(&reloaded, page.ID).Error; err != nil {
		t.Fatalf("failed to reload page: %v", err)
	}
	if reloaded.Title != "Edited mid-vote" {
		t.Errorf("edit not applied: title = %q", reloaded.Title)
	}
	if reloaded.VotesCount != 1 {
		t.Errorf("votes_count = %d, want 1; the edit clobbered the counter", reloaded.VotesCount)
	}
	assertCounterMatchesLedger(t, page.ID)
}
