package handlers

import (
	"net/http"
	"strings"

	"github.com/LucaZH/webcup2025-backend/internal/config"
	"github.com/LucaZH/webcup2025-backend/internal/db"
	"github.com/LucaZH/webcup2025-backend/internal/models"
	"github.com/LucaZH/webcup2025-backend/internal/services"
	"github.com/LucaZH/webcup2025-backend/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cfg         *config.Config
	mailService *services.MailService
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:         cfg,
		mailService: services.NewMailService(cfg.SMTP),
	}
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username"`
}

// createUser is shared by password registration and OAuth sign-in.
func (h *AuthHandler) createUser(username, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	username := input.Username
	if username == "" {
		username = strings.Split(input.Email, "@")[0]
	}

	user, err := h.createUser(username, input.Email, input.Password)
	if err != nil {
		// The unique index on email is the usual cause; anything else is a
		// server-side failure, not the caller's.
		var existing models.User
		if db.DB.Where("email = ?", input.Email).First(&existing).Error == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	code := utils.GenerateRandomCode(6)
	user.VerifyCode = code
	db.DB.Save(user)
	h.mailService.SendActivationEmail(user.Email, code)

	c.JSON(http.StatusCreated, gin.H{
		"status": "registered",
		"detail": "an activation code has been sent to your email",
	})
}

type activateInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func (h *AuthHandler) Activate(c *gin.Context) {
	var input activateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}

	if user.IsActivated {
		c.JSON(http.StatusOK, gin.H{"status": "already activated"})
		return
	}
	if user.VerifyCode == "" || user.VerifyCode != input.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid activation code"})
		return
	}

	user.IsActivated = true
	user.VerifyCode = ""
	db.DB.Save(&user)

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"status": "activated"})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	if !user.IsActivated {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account not activated"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.JSON(http.StatusOK, gin.H{"status": "logged in", "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

type forgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input forgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	// Do not reveal whether the account exists.
	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err == nil {
		code := utils.GenerateRandomCode(6)
		user.VerifyCode = code
		db.DB.Save(&user)
		h.mailService.SendPasswordResetEmail(user.Email, code)
	}

	c.JSON(http.StatusOK, gin.H{"status": "if the account exists, a reset code has been sent"})
}

type resetPasswordInput struct {
	Email    string `json:"email" binding:"required,email"`
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input resetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reset code"})
		return
	}
	if user.VerifyCode == "" || user.VerifyCode != input.Code {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reset code"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset password"})
		return
	}
	user.Password = hash
	user.VerifyCode = ""
	db.DB.Save(&user)

	c.JSON(http.StatusOK, gin.H{"status": "password reset"})
}
