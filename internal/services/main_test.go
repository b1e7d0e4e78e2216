package services

import (
	"testing"

	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"
	"github.com/LucaZH/webcup2025-backend/internal/utils"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-level connection at a fresh in-memory
// database. One connection only: every goroutine shares the same database.
func setupTestDB(t *testing.T) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to access test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(conn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = conn
}

func createTestUser(t *testing.T, email string) *models.User {
	t.Helper()
	user := models.User{
		Username:    "tester",
		Email:       email,
		Password:    "x",
		IsActivated: true,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestPage(t *testing.T, owner *models.User, ephemeral bool) *models.DeparturePage {
	t.Helper()
	page := models.DeparturePage{
		Pid:         utils.RandStringBytesMaskImpr(8),
		UserID:      owner.ID,
		Title:       "So long, and thanks",
		Content:     "It was time.",
		EndingType:  models.EndingWork,
		Tone:        models.ToneIronic,
		IsPublic:    true,
		IsEphemeral: ephemeral,
	}
	if err := db.DB.Create(&page).Error; err != nil {
		t.Fatalf("failed to create test page: %v", err)
	}
	return &page
}

// assertCounterMatchesLedger checks the denormalized counter against the
// Vote table, the invariant every cast/retract sequence must preserve.
func assertCounterMatchesLedger(t *testing.T, pageID uint) {
	t.Helper()

	var page models.DeparturePage
	if err := db.DB.First(&page, pageID).Error; err != nil {
		t.Fatalf("failed to reload page: %v", err)
	}
	var ledger int64
	if err := db.DB.Model(&models.Vote{}).Where("page_id = ?", pageID).Count(&ledger).Error; err != nil {
		t.Fatalf("failed to count votes: %v", err)
	}
	if int64(page.VotesCount) != ledger {
		t.Fatalf("votes_count = %d, but ledger has %d rows", page.VotesCount, ledger)
	}
	if page.VotesCount < 0 {
		t.Fatalf("votes_count went negative: %d", page.VotesCount)
	}
}
