package handlers

import (
	"strings"

	"github.com/LucaZH/webcup2025-backend/internal/middleware"
	"github.com/LucaZH/webcup2025-backend/internal/models"
	"github.com/LucaZH/webcup2025-backend/internal/services"
	"github.com/LucaZH/webcup2025-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// resolveViewer builds the viewer identity for the reading tracker: the
// authenticated user when present, otherwise the first forwarded-for entry or
// the direct connection address. Best-effort only.
func resolveViewer(c *gin.Context) services.ViewerIdentity {
	if user := middleware.CurrentUser(c); user != nil {
		return services.UserViewer(user.ID)
	}

	addr := c.ClientIP()
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			addr = first
		}
	}
	return services.AnonymousViewer(addr)
}

// pageResponse prepares a page for the wire: rendered content HTML, and the
// author hidden when the page is anonymous and the caller is not the owner.
func pageResponse(page *models.DeparturePage, caller *models.User) *models.DeparturePage {
	out := *page
	out.ContentHTML = utils.RenderContentHTML(out.Content)
	if out.IsAnonymous && (caller == nil || caller.ID != out.UserID) {
		out.UserID = 0
		out.User = models.User{Username: "anonymous"}
	}
	return &out
}
