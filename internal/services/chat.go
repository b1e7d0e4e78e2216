package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/LucaZH/webcup2025-backend/internal/config"
)

var (
	// ErrChatTimeout is returned when the upstream endpoint does not answer
	// within the request deadline.
	ErrChatTimeout = errors.New("chat upstream timed out")
	// ErrChatBusy is returned when the upstream endpoint is rate limited or
	// overloaded.
	ErrChatBusy = errors.New("chat upstream busy")
	// ErrChatUpstream is returned for any other upstream failure.
	ErrChatUpstream = errors.New("chat upstream error")
)

// ChatService forwards conversation history to an OpenAI-compatible chat
// completion endpoint, wrapped in a fixed assistant prompt. It is a thin
// collaborator, not part of the page/vote core.
type ChatService struct {
	cfg    config.LLMConfig
	client *http.Client
}

func NewChatService(cfg config.LLMConfig) *ChatService {
	return &ChatService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// systemPrompt is the fixed template every conversation is wrapped in.
const systemPrompt = "You are a compassionate assistant on TheEnd.page, a service where people " +
	"compose farewell pages for endings: breakups, leaving a job, closing a project, " +
	"leaving a community. Help the user put words on their departure with empathy and, " +
	"when they ask for it, the tone they chose. Answer in %s.\nContext about the user's " +
	"page, if any: %s"

// BuildMessages assembles the upstream message list: the templated system
// prompt first, then the caller's history verbatim.
func (s *ChatService) BuildMessages(history []ChatMessage, context, language string) []ChatMessage {
	if language == "" {
		language = "English"
	}
	if context == "" {
		context = "(none)"
	}
	messages := make([]ChatMessage, 0, len(history)+1)
	messages = append(messages, ChatMessage{
		Role:    "system",
		Content: fmt.Sprintf(systemPrompt, language, context),
	})
	messages = append(messages, history...)
	return messages
}

// Complete sends the conversation upstream and returns the assistant reply.
func (s *ChatService) Complete(history []ChatMessage, context, language string) (string, error) {
	if s.cfg.BaseURL == "" || s.cfg.Token == "" {
		return "", fmt.Errorf("%w: LLM endpoint not configured", ErrChatUpstream)
	}

	payload := chatRequest{
		Model:    s.cfg.Model,
		Messages: s.BuildMessages(history, context, language),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.Token)

	resp, err := s.client.Do(req)
	if err != nil {
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", ErrChatTimeout
		}
		return "", fmt.Errorf("%w: %v", ErrChatUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return "", ErrChatBusy
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: status %d", ErrChatUpstream, resp.StatusCode)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrChatUpstream, err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrChatUpstream)
	}
	return chatResp.Choices[0].Message.Content, nil
}
