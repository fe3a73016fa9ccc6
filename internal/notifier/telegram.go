// Package notifier delivers the final message to a Telegram chat. Unlike
// caption enrichment, a failed delivery is the whole point of the job:
// transport failures propagate and fail the invocation.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultAPIBase = "https://api.telegram.org"

type Client struct {
	botToken    string
	chatID      string
	apiBase     string
	client      *http.Client
	rateLimiter *rate.Limiter
}

func New(botToken, chatID string) *Client {
	return &Client{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 10 * time.Second},
		// Telegram allows ~1 msg/sec per chat; this job sends one or two.
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

type sendMessagePayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description,omitempty"`
}

// Send posts text to the configured chat. Any non-success response is an
// error; the caller must not swallow it.
func (c *Client) Send(ctx context.Context, text string) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(sendMessagePayload{
		ChatID:                c.chatID,
		Text:                  text,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send failed: status %s, body: %s", resp.Status, string(body))
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err == nil && !apiResp.OK {
		return fmt.Errorf("telegram send rejected: %s", apiResp.Description)
	}
	return nil
}
