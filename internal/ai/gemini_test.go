package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func fakeClient(fn generateFunc) *Client {
	return &Client{generate: fn}
}

func TestGenerateCaption_BelowThresholdMakesNoCall(t *testing.T) {
	calls := 0
	c := fakeClient(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "should not be called", nil
	})

	got := c.GenerateCaption(context.Background(), 2_999_999)
	if got.Outcome != CaptionDisabled || got.Text != "" {
		t.Errorf("Expected disabled caption below threshold, got %+v", got)
	}
	if calls != 0 {
		t.Errorf("Expected no generation call below threshold, got %d", calls)
	}
}

func TestGenerateCaption_ThresholdIsInclusive(t *testing.T) {
	var gotPrompt string
	c := fakeClient(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "Wah, three million liao, quick go buy before draw tonight ah!", nil
	})

	got := c.GenerateCaption(context.Background(), 3_000_000)
	if got.Outcome != CaptionGenerated {
		t.Fatalf("Expected generation at exactly 3,000,000, got %+v", got)
	}
	if got.Text == "" {
		t.Error("Generated caption should be non-empty")
	}
	if !strings.Contains(gotPrompt, "$3,000,000") {
		t.Errorf("Prompt should carry the formatted jackpot, got %q", gotPrompt)
	}
}

func TestGenerateCaption_NilClientDisabled(t *testing.T) {
	var c *Client
	got := c.GenerateCaption(context.Background(), 10_000_000)
	if got.Outcome != CaptionDisabled {
		t.Errorf("Nil client (no credential) must disable captions, got %+v", got)
	}
}

func TestGenerateCaption_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	c := fakeClient(func(ctx context.Context, prompt string) (string, error) {
		calls++
		if calls == 1 {
			return "", genai.APIError{Code: 503, Message: "overloaded"}
		}
		return "Jackpot so big, confirm must try your luck already lah!", nil
	})

	got := c.GenerateCaption(context.Background(), 5_000_000)
	if got.Outcome != CaptionGenerated {
		t.Fatalf("Expected success after transient retry, got %+v", got)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls (1 transient failure + 1 success), got %d", calls)
	}
}

func TestGenerateCaption_NonRetryableFailsOnce(t *testing.T) {
	calls := 0
	c := fakeClient(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", genai.APIError{Code: 400, Message: "invalid argument"}
	})

	got := c.GenerateCaption(context.Background(), 5_000_000)
	if got.Outcome != CaptionFailed || got.Text != "" {
		t.Errorf("Expected failed empty caption, got %+v", got)
	}
	if calls != 1 {
		t.Errorf("Non-retryable errors must not be retried, got %d calls", calls)
	}
}

func TestGenerateCaption_TransportErrorDegrades(t *testing.T) {
	calls := 0
	c := fakeClient(func(ctx context.Context, prompt string) (string, error) {
		calls++
		return "", errors.New("connection reset")
	})

	got := c.GenerateCaption(context.Background(), 5_000_000)
	if got.Outcome != CaptionFailed || got.Text != "" {
		t.Errorf("Transport errors must degrade to empty, got %+v", got)
	}
	if calls != 1 {
		t.Errorf("Transport errors must not be retried, got %d calls", calls)
	}
}

func TestGenerateCaption_EmptyResponseIsFailure(t *testing.T) {
	c := fakeClient(func(ctx context.Context, prompt string) (string, error) {
		return "   ", nil
	})

	got := c.GenerateCaption(context.Background(), 5_000_000)
	if got.Outcome != CaptionFailed || got.Text != "" {
		t.Errorf("Blank reply must yield a failed empty caption, got %+v", got)
	}
}

func TestRetryable(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{400, false},
		{401, false},
		{404, false},
	}
	for _, tt := range tests {
		err := genai.APIError{Code: tt.code}
		if got := retryable(err); got != tt.want {
			t.Errorf("retryable(code %d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestCaptionText_DefensiveParsing(t *testing.T) {
	if got := captionText(nil); got != "" {
		t.Errorf("nil response should yield empty, got %q", got)
	}
	if got := captionText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("no candidates should yield empty, got %q", got)
	}
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}
	if got := captionText(resp); got != "" {
		t.Errorf("nil content should yield empty, got %q", got)
	}
	resp = &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: " Huat ah! "}}},
		}},
	}
	if got := captionText(resp); got != "Huat ah!" {
		t.Errorf("captionText = %q, want trimmed text", got)
	}
}
