package router

import (
	"github.com/LucaZH/webcup2025-backend/internal/config"
	"github.com/LucaZH/webcup2025-backend/internal/handlers"
	"github.com/LucaZH/webcup2025-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RegisterRoutes wires the API surface. LoadUser runs globally so public
// endpoints can still see who is asking.
func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(cfg)
	userHandler := handlers.NewUserHandler()
	pageHandler := handlers.NewPageHandler(cfg)
	voteHandler := handlers.NewVoteHandler()
	chatHandler := handlers.NewChatHandler(cfg)

	// One request every 2 seconds per address on the endpoints anonymous
	// visitors can hit repeatedly.
	limiter := middleware.NewIPRateLimiter(rate.Limit(0.5), 3)

	r.Use(middleware.LoadUser())

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/activate", authHandler.Activate)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/google", authHandler.GoogleLogin)
			auth.GET("/google/callback", authHandler.GoogleCallback)
		}

		// Public surface
		api.GET("/gallery", pageHandler.Gallery)
		api.GET("/pages", pageHandler.List)
		api.GET("/pages/:pid", pageHandler.Detail)
		api.GET("/pages/:pid/view", middleware.RateLimit(limiter), pageHandler.View)
		api.POST("/chat", middleware.RateLimit(limiter), chatHandler.Chat)

		// Authenticated surface
		authorized := api.Group("/")
		authorized.Use(middleware.AuthRequired())
		{
			authorized.GET("/users", userHandler.List)
			authorized.GET("/users/me", userHandler.Me)
			authorized.GET("/users/:id", userHandler.Detail)

			authorized.POST("/pages", pageHandler.Create)
			authorized.PUT("/pages/:pid", pageHandler.Update)
			authorized.PATCH("/pages/:pid", pageHandler.Update)
			authorized.DELETE("/pages/:pid", pageHandler.Delete)
			authorized.POST("/pages/:pid/publish", pageHandler.Publish)
			authorized.POST("/pages/:pid/share", pageHandler.Share)
			authorized.POST("/pages/:pid/image", pageHandler.AttachImage)

			authorized.POST("/pages/:pid/vote", voteHandler.Cast)
			authorized.DELETE("/pages/:pid/vote", voteHandler.Retract)
		}
	}
}
