package handlers

import (
	"errors"
	"net/http"

	"github.com/LucaZH/webcup2025-backend/internal/config"
	"github.com/LucaZH/webcup2025-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		chatService: services.NewChatService(cfg.LLM),
	}
}

type chatInput struct {
	Messages []services.ChatMessage `json:"messages" binding:"required,min=1"`
	Context  string                 `json:"context"`
	Language string                 `json:"language"`
}

// Chat proxies the conversation to the assistant endpoint. Upstream failures
// map to distinct gateway statuses so clients can tell busy from broken.
func (h *ChatHandler) Chat(c *gin.Context) {
	var input chatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	reply, err := h.chatService.Complete(input.Messages, input.Context, input.Language)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChatTimeout):
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "assistant timed out"})
		case errors.Is(err, services.ErrChatBusy):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assistant is busy, try again later"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "assistant unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
