package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"
)

func TestCastVoteIdempotent(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	voter := createTestUser(t, "voter@example.com")
	page := createTestPage(t, owner, true)

	first, err := CastVote(page.Pid, voter.ID)
	if err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	second, err := CastVote(page.Pid, voter.ID)
	if err != nil {
		t.Fatalf("repeat cast failed: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("repeat cast created a new vote: %d vs %d", first.ID, second.ID)
	}

	var ledger int64
	db.DB.Model(&models.Vote{}).Where("page_id = ?", page.ID).Count(&ledger)
	if ledger != 1 {
		t.Errorf("expected 1 vote row, found %d", ledger)
	}

	var reloaded models.DeparturePage
	db.DB.First(&reloaded, page.ID)
	if reloaded.VotesCount != 1 {
		t.Errorf("votes_count = %d after double cast, want 1", reloaded.VotesCount)
	}
	assertCounterMatchesLedger(t, page.ID)
}

func TestCastVoteUnknownPage(t *testing.T) {
	setupTestDB(t)
	voter := createTestUser(t, "voter@example.com")

	if _, err := CastVote("missing1", voter.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestRetractWithoutVote(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	voter := createTestUser(t, "voter@example.com")
	page := createTestPage(t, owner, true)

	if err := RetractVote(page.Pid, voter.ID); !errors.Is(err, ErrNoVote) {
		t.Fatalf("expected ErrNoVote, got %v", err)
	}

	var reloaded models.DeparturePage
	db.DB.First(&reloaded, page.ID)
	if reloaded.VotesCount != 0 {
		t.Errorf("votes_count changed by failed retract: %d", reloaded.VotesCount)
	}
}

func TestVoteCastRetractScenario(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	userA := createTestUser(t, "a@example.com")
	userB := createTestUser(t, "b@example.com")
	page := createTestPage(t, owner, true)

	expectCount := func(want int) {
		t.Helper()
		var reloaded models.DeparturePage
		db.DB.First(&reloaded, page.ID)
		if reloaded.VotesCount != want {
			t.Fatalf("votes_count = %d, want %d", reloaded.VotesCount, want)
		}
		assertCounterMatchesLedger(t, page.ID)
	}

	expectCount(0)

	if _, err := CastVote(page.Pid, userA.ID); err != nil {
		t.Fatalf("cast A failed: %v", err)
	}
	expectCount(1)

	if _, err := CastVote(page.Pid, userB.ID); err != nil {
		t.Fatalf("cast B failed: %v", err)
	}
	expectCount(2)

	if err := RetractVote(page.Pid, userA.ID); err != nil {
		t.Fatalf("retract A failed: %v", err)
	}
	expectCount(1)

	if err := RetractVote(page.Pid, userA.ID); !errors.Is(err, ErrNoVote) {
		t.Fatalf("second retract: expected ErrNoVote, got %v", err)
	}
	expectCount(1)
}

func TestConcurrentCastsByDifferentUsers(t *testing.T) {
	setupTestDB(t)
	owner := createTestUser(t, "owner@example.com")
	page := createTestPage(t, owner, true)

	const n = 6
	voters := make([]*models.User, n)
	for i := range voters {
		voters[i] = createTestUser(t, fmt.Sprintf("voter%d@example.com", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := CastVote(page.Pid, voters[i].ID); err != nil {
				t.Errorf("concurrent cast %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	var reloaded models.DeparturePage
	db.DB.First(&reloaded, page.ID)
	if reloaded.VotesCount != n {
		t.Errorf("votes_count = %d after %d concurrent casts", reloaded.VotesCount, n)
	}
	assertCounterMatchesLedger(t, page.ID)
}
