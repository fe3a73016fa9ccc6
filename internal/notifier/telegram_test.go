package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/time/rate"
)

func newTestClient(serverURL string) *Client {
	c := New("test-token", "12345")
	c.apiBase = serverURL
	c.rateLimiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestClient_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if !strings.HasPrefix(r.URL.Path, "/bottest-token/sendMessage") {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var payload sendMessagePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("Failed to decode request body: %v", err)
		}
		if payload.ChatID != "12345" {
			t.Errorf("chat_id = %q, want 12345", payload.ChatID)
		}
		if payload.Text != "🎰 TOTO Update\nNext Jackpot: $2,000,000" {
			t.Errorf("Unexpected text %q", payload.Text)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true, "result": {"message_id": 42}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	if err := c.Send(context.Background(), "🎰 TOTO Update\nNext Jackpot: $2,000,000"); err != nil {
		t.Fatalf("Send() returned error: %v", err)
	}
}

func TestClient_Send_NonSuccessStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok": false, "description": "bot was blocked by the user"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	err := c.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("Send() must fail loudly on a non-success response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("Error should carry the status, got %v", err)
	}
}

func TestClient_Send_APILevelRejectionFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Telegram can report failure in the body with a 200 status.
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": false, "description": "chat not found"}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	err := c.Send(context.Background(), "hello")
	if err == nil {
		t.Fatal("Send() must fail when the API rejects the message")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("Error should carry the API description, got %v", err)
	}
}
