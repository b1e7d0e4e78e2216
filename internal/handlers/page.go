package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/LucaZH/webcup2025-backend/internal/config"
	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/middleware"
	"github.com/LucaZH/webcup2025-backend/internal/models"
	"github.com/LucaZH/webcup2025-backend/internal/services"
	"github.com/LucaZH/webcup2025-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PageHandler struct {
	cfg          *config.Config
	imageService *services.ImageService
}

func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{
		cfg:          cfg,
		imageService: services.NewImageService(cfg.Imgur),
	}
}

// orderings maps the API's sort keys onto SQL. Anything else falls back to
// newest first.
var orderings = map[string]string{
	"creation_date":  "created_at ASC",
	"-creation_date": "created_at DESC",
	"votes_count":    "votes_count ASC",
	"-votes_count":   "votes_count DESC",
	"title":          "title ASC",
	"-title":         "title DESC",
}

// List returns the caller's own pages plus public pages of other users.
// Anonymous callers only see public pages.
func (h *PageHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	query := db.DB.Preload("User")
	if user != nil {
		query = query.Where("user_id = ? OR (is_public = ? AND user_id != ?)", user.ID, true, user.ID)
	} else {
		query = query.Where("is_public = ?", true)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(ending_type) LIKE ? OR LOWER(tone) LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	order := orderings[c.Query("ordering")]
	if order == "" {
		order = "created_at DESC"
	}

	var pages []models.DeparturePage
	if err := query.Order(order).Find(&pages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch pages"})
		return
	}

	out := make([]*models.DeparturePage, len(pages))
	for i := range pages {
		out[i] = pageResponse(&pages[i], user)
	}
	c.JSON(http.StatusOK, out)
}

// Gallery is the public-only reduced projection for anonymous consumption,
// cached briefly since it backs the landing page.
func (h *PageHandler) Gallery(c *gin.Context) {
	const cacheKey = "pages:gallery"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if summaries, ok := cached.([]models.GallerySummary); ok {
			c.JSON(http.StatusOK, summaries)
			return
		}
	}

	var summaries []models.GallerySummary
	if err := db.DB.Model(&models.DeparturePage{}).
		Select("pid, title, votes_count, tone").
		Where("is_public = ?", true).
		Order("votes_count DESC, created_at DESC").
		Limit(100).
		Scan(&summaries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch gallery"})
		return
	}

	utils.GetCache().Set(cacheKey, summaries, 1*time.Minute)
	c.JSON(http.StatusOK, summaries)
}

type createPageInput struct {
	Title       string                 `json:"title" binding:"required,max=200"`
	Content     string                 `json:"content"`
	DesignMeta  map[string]interface{} `json:"design_meta"`
	Template    string                 `json:"template"`
	EndingType  models.EndingType      `json:"ending_type" binding:"required"`
	Tone        models.Tone            `json:"tone" binding:"required"`
	IsPublic    bool                   `json:"is_public"`
	IsAnonymous bool                   `json:"is_anonymous"`
	IsEphemeral *bool                  `json:"is_ephemeral"`
}

func (h *PageHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input createPageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	if !input.EndingType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ending_type"})
		return
	}
	if !input.Tone.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tone"})
		return
	}

	isEphemeral := true
	if input.IsEphemeral != nil {
		isEphemeral = *input.IsEphemeral
	}

	page := models.DeparturePage{
		Pid:         utils.RandStringBytesMaskImpr(8),
		UserID:      user.ID,
		Title:       input.Title,
		Content:     input.Content,
		DesignMeta:  datatypes.JSONMap(input.DesignMeta),
		Template:    input.Template,
		EndingType:  input.EndingType,
		Tone:        input.Tone,
		IsPublic:    input.IsPublic,
		IsAnonymous: input.IsAnonymous,
		IsEphemeral: isEphemeral,
	}
	if err := db.DB.Create(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create page"})
		return
	}

	page.User = *user
	utils.GetCache().Delete("pages:gallery")
	c.JSON(http.StatusCreated, pageResponse(&page, user))
}

// getPage loads a page by its public id.
func getPage(pid string) (*models.DeparturePage, error) {
	var page models.DeparturePage
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

func (h *PageHandler) Detail(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanRead(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "this page is private"})
		return
	}
	c.JSON(http.StatusOK, pageResponse(page, user))
}

type updatePageInput struct {
	Title       *string                `json:"title"`
	Content     *string                `json:"content"`
	DesignMeta  map[string]interface{} `json:"design_meta"`
	Template    *string                `json:"template"`
	EndingType  *models.EndingType     `json:"ending_type"`
	Tone        *models.Tone           `json:"tone"`
	IsPublic    *bool                  `json:"is_public"`
	IsAnonymous *bool                  `json:"is_anonymous"`
	IsEphemeral *bool                  `json:"is_ephemeral"`
}

// Update applies a partial update. Only the owner may write, and votes_count
// is not reachable from the input type at all.
func (h *PageHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanWrite(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may edit this page"})
		return
	}

	var input updatePageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid title"})
			return
		}
		page.Title = *input.Title
	}
	if input.Content != nil {
		page.Content = *input.Content
	}
	if input.DesignMeta != nil {
		page.DesignMeta = datatypes.JSONMap(input.DesignMeta)
	}
	if input.Template != nil {
		page.Template = *input.Template
	}
	if input.EndingType != nil {
		if !input.EndingType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ending_type"})
			return
		}
		page.EndingType = *input.EndingType
	}
	if input.Tone != nil {
		if !input.Tone.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tone"})
			return
		}
		page.Tone = *input.Tone
	}
	if input.IsPublic != nil {
		page.IsPublic = *input.IsPublic
	}
	if input.IsAnonymous != nil {
		page.IsAnonymous = *input.IsAnonymous
	}
	if input.IsEphemeral != nil {
		page.IsEphemeral = *input.IsEphemeral
	}

	if err := services.SavePageContent(page); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update page"})
		return
	}

	utils.GetCache().Delete("pages:gallery")
	c.JSON(http.StatusOK, pageResponse(page, user))
}

// Delete removes the page; readings and votes go with it via cascade.
func (h *PageHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanWrite(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may delete this page"})
		return
	}

	// Dependent rows go first so the delete behaves the same on databases
	// without enforced FK cascades.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.EphemeralReading{}).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(page).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete page"})
		return
	}

	utils.GetCache().Delete("pages:gallery")
	c.Status(http.StatusNoContent)
}

func (h *PageHandler) Publish(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanWrite(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may publish this page"})
		return
	}

	if err := db.DB.Model(page).Update("is_public", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to publish page"})
		return
	}

	utils.GetCache().Delete("pages:gallery")
	c.JSON(http.StatusOK, gin.H{"status": "page published"})
}

func (h *PageHandler) Share(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanWrite(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may share this page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "page shared",
		"share_url": fmt.Sprintf("%s/api/pages/%s/view", h.cfg.SiteURL, page.Pid),
	})
}

// AttachImage uploads the page's optional image and stores the hosted link.
func (h *PageHandler) AttachImage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanWrite(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the owner may attach an image"})
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image file"})
		return
	}
	defer file.Close()

	result, err := h.imageService.Upload(file)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "image upload failed"})
		return
	}

	if err := db.DB.Model(page).Update("image_url", result.URL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// View is the one-time ephemeral read. Anonymous callers are identified by
// address; the tracker enforces the single-view latch.
func (h *PageHandler) View(c *gin.Context) {
	user := middleware.CurrentUser(c)

	page, err := getPage(c.Param("pid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		return
	}
	if !services.CanRead(page, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "this page is private"})
		return
	}

	viewed, err := services.RecordView(page.Pid, resolveViewer(c))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAlreadyViewed):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "This page has already been viewed and cannot be viewed again",
			})
		case errors.Is(err, services.ErrPageNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		}
		return
	}

	c.JSON(http.StatusOK, pageResponse(viewed, user))
}
