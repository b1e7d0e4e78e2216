package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LucaZH/webcup2025-backend/internal/config"
)

func newTestChatService(baseURL string) *ChatService {
	return NewChatService(config.LLMConfig{
		BaseURL: baseURL,
		Token:   "test-token",
		Model:   "test-model",
	})
}

func TestChatComplete(t *testing.T) {
	var captured chatRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("failed to decode upstream request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Here is a gentler opening line."}}]}`))
	}))
	defer upstream.Close()

	svc := newTestChatService(upstream.URL)
	history := []ChatMessage{{Role: "user", Content: "Help me quit my job gracefully"}}

	reply, err := svc.Complete(history, "leaving a job after 5 years", "French")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if reply != "Here is a gentler opening line." {
		t.Errorf("unexpected reply %q", reply)
	}

	if captured.Model != "test-model" {
		t.Errorf("model = %q", captured.Model)
	}
	if len(captured.Messages) != 2 {
		t.Fatalf("expected system prompt + 1 message, got %d", len(captured.Messages))
	}
	system := captured.Messages[0]
	if system.Role != "system" {
		t.Errorf("first message role = %q", system.Role)
	}
	if !strings.Contains(system.Content, "French") {
		t.Errorf("system prompt missing language: %q", system.Content)
	}
	if !strings.Contains(system.Content, "leaving a job after 5 years") {
		t.Errorf("system prompt missing context: %q", system.Content)
	}
	if captured.Messages[1] != history[0] {
		t.Errorf("history not forwarded verbatim: %+v", captured.Messages[1])
	}
}

func TestChatCompleteBusy(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusServiceUnavailable} {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		svc := newTestChatService(upstream.URL)
		_, err := svc.Complete([]ChatMessage{{Role: "user", Content: "hi"}}, "", "")
		upstream.Close()
		if !errors.Is(err, ErrChatBusy) {
			t.Errorf("status %d: expected ErrChatBusy, got %v", status, err)
		}
	}
}

func TestChatCompleteUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	svc := newTestChatService(upstream.URL)
	if _, err := svc.Complete([]ChatMessage{{Role: "user", Content: "hi"}}, "", ""); !errors.Is(err, ErrChatUpstream) {
		t.Errorf("expected ErrChatUpstream, got %v", err)
	}
}

func TestChatCompleteUnconfigured(t *testing.T) {
	svc := NewChatService(config.LLMConfig{})
	if _, err := svc.Complete(nil, "", ""); !errors.Is(err, ErrChatUpstream) {
		t.Errorf("expected ErrChatUpstream, got %v", err)
	}
}

func TestBuildMessagesDefaults(t *testing.T) {
	svc := NewChatService(config.LLMConfig{})
	messages := svc.BuildMessages(nil, "", "")
	if len(messages) != 1 {
		t.Fatalf("expected lone system message, got %d", len(messages))
	}
	if !strings.Contains(messages[0].Content, "English") {
		t.Errorf("default language missing: %q", messages[0].Content)
	}
	if !strings.Contains(messages[0].Content, "(none)") {
		t.Errorf("default context missing: %q", messages[0].Content)
	}
}
