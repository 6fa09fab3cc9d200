package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sunbeekim/MainProject/internal/model/persona"
	chatservice "github.com/sunbeekim/MainProject/internal/service/chat"
)

type stubProvider struct {
	reply      string
	err        error
	lastPrompt string
}

func (s *stubProvider) Generate(_ context.Context, promptText string) (string, error) {
	s.lastPrompt = promptText
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func setupRouter(provider *stubProvider) (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService(16, 16)
	p := persona.Seed()[0]
	handler := New(provider, chatSvc, p)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func postChat(t *testing.T, r http.Handler, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestChatEndToEnd(t *testing.T) {
	provider := &stubProvider{reply: "<assistant> Use the Forgot Password link.</assistant>"}
	r, _ := setupRouter(provider)

	resp := postChat(t, r, map[string]any{
		"message":   "How do I reset my password?",
		"history":   []any{},
		"sessionId": "s1",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Response != "Use the Forgot Password link." {
		t.Fatalf("unexpected response: %q", body.Response)
	}

	if !strings.Contains(provider.lastPrompt, "<user>How do I reset my password?</user>") {
		t.Fatalf("prompt missing user message: %q", provider.lastPrompt)
	}
	if !strings.HasSuffix(provider.lastPrompt, "<assistant>") {
		t.Fatalf("prompt must end with an open assistant tag: %q", provider.lastPrompt)
	}
}

func TestChatMissingSessionID(t *testing.T) {
	provider := &stubProvider{reply: "irrelevant"}
	r, _ := setupRouter(provider)

	resp := postChat(t, r, map[string]any{"message": "hello"})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatInvalidHistoryTurn(t *testing.T) {
	provider := &stubProvider{reply: "irrelevant"}
	r, _ := setupRouter(provider)

	resp := postChat(t, r, map[string]any{
		"message":   "hello",
		"history":   []map[string]string{{"assistant": "orphan reply"}},
		"sessionId": "s1",
	})

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestChatProviderFailure(t *testing.T) {
	provider := &stubProvider{err: errors.New("device out of memory")}
	r, chatSvc := setupRouter(provider)

	resp := postChat(t, r, map[string]any{
		"message":   "hello",
		"sessionId": "s-fail",
	})

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if !strings.Contains(body.Detail, "s-fail") {
		t.Fatalf("detail must include the session id: %q", body.Detail)
	}
	if !strings.Contains(body.Detail, "device out of memory") {
		t.Fatalf("detail must include the failure: %q", body.Detail)
	}

	// The store stays consistent: the session exists, nothing recorded.
	if got := chatSvc.SessionCount(); got != 1 {
		t.Fatalf("expected 1 session, got %d", got)
	}
	messages, err := chatSvc.LoadTranscript(context.Background(), "s-fail")
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript after failure, got %d", len(messages))
	}
}

func TestChatRecordsTurn(t *testing.T) {
	provider := &stubProvider{reply: "<assistant>Sure, tap My Page.</assistant>"}
	r, chatSvc := setupRouter(provider)

	resp := postChat(t, r, map[string]any{
		"message":   "Where are my settings?",
		"sessionId": "s2",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	messages, err := chatSvc.LoadTranscript(context.Background(), "s2")
	if err != nil {
		t.Fatalf("LoadTranscript err: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected recorded turn, got %d messages", len(messages))
	}
	if messages[1].Content != "Sure, tap My Page." {
		t.Fatalf("unexpected recorded reply: %q", messages[1].Content)
	}
}

func TestTranscriptUnknownSession(t *testing.T) {
	provider := &stubProvider{}
	r, _ := setupRouter(provider)

	req := httptest.NewRequest(http.MethodGet, "/sessions/missing/history", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
