package handlers

import (
	"errors"
	"net/http"

	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/middleware"
	"github.com/LucaZH/webcup2025-backend/internal/models"
	"github.com/LucaZH/webcup2025-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// votesCount reads the denormalized counter for the response body.
func votesCount(pid string) int {
	var page models.DeparturePage
	if err := db.DB.Select("votes_count").Where("pid = ?", pid).First(&page).Error; err != nil {
		return 0
	}
	return page.VotesCount
}

// Cast records the caller's vote. Repeating the call is a no-op success.
func (h *VoteHandler) Cast(c *gin.Context) {
	user := middleware.CurrentUser(c)
	pid := c.Param("pid")

	vote, err := services.CastVote(pid, user.ID)
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cast vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vote":        vote,
		"votes_count": votesCount(pid),
	})
}

// Retract removes the caller's vote.
func (h *VoteHandler) Retract(c *gin.Context) {
	user := middleware.CurrentUser(c)
	pid := c.Param("pid")

	if err := services.RetractVote(pid, user.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		case errors.Is(err, services.ErrNoVote):
			c.JSON(http.StatusConflict, gin.H{"error": "no vote to retract"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retract vote"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "vote retracted",
		"votes_count": votesCount(pid),
	})
}
