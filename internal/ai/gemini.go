// Package ai generates an optional promotional caption for big jackpots.
// Enrichment is cosmetic: every failure mode degrades to an empty caption
// and must never abort the parent pipeline.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/junwei-lim/toto-telegram-bot/internal/util"
)

const (
	captionModel = "gemini-2.5-flash-lite"

	// CaptionThreshold is the minimum jackpot (inclusive) that warrants a
	// caption. Below it no network call is made.
	CaptionThreshold = 3_000_000

	maxOutputTokens = 30
	temperature     = 0.7
	maxAttempts     = 5
)

// Outcome distinguishes the caption degradation modes so callers and tests
// don't have to re-parse log text.
type Outcome int

const (
	// CaptionDisabled: below the jackpot threshold or no credential.
	CaptionDisabled Outcome = iota
	// CaptionFailed: generation was attempted but retries were exhausted
	// or the response was unusable.
	CaptionFailed
	// CaptionGenerated: Text is non-empty.
	CaptionGenerated
)

type Caption struct {
	Text    string
	Outcome Outcome
}

type generateFunc func(ctx context.Context, prompt string) (string, error)

type Client struct {
	generate generateFunc
}

// NewClient returns a nil client when no API key is provided; a nil client
// degrades every caption to CaptionDisabled.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		generate: func(ctx context.Context, prompt string) (string, error) {
			resp, err := gc.Models.GenerateContent(ctx, captionModel, genai.Text(prompt), &genai.GenerateContentConfig{
				MaxOutputTokens:  maxOutputTokens,
				Temperature:      genai.Ptr[float32](temperature),
				ResponseMIMEType: "text/plain",
			})
			if err != nil {
				return "", err
			}
			return captionText(resp), nil
		},
	}, nil
}

// GenerateCaption produces a one-sentence encouragement for the given
// jackpot. It never returns an error: the result carries its outcome.
func (c *Client) GenerateCaption(ctx context.Context, jackpotAmount int64) Caption {
	if jackpotAmount < CaptionThreshold {
		return Caption{Outcome: CaptionDisabled}
	}
	if c == nil || c.generate == nil {
		return Caption{Outcome: CaptionDisabled}
	}

	prompt := fmt.Sprintf(
		"TOTO jackpot $%s. "+
			"Write ONE Singlish sentence (10-14 words) encouraging to buy, with increasing excitement for bigger jackpots. "+
			"No emojis, no profanity.",
		util.FormatWithCommas(jackpotAmount),
	)

	var text string
	err := util.RetryWithBackoff(ctx, maxAttempts-1, func(attempt int) error {
		out, genErr := c.generate(ctx, prompt)
		if genErr != nil {
			if retryable(genErr) {
				slog.Warn("Caption generation failed, will retry", "attempt", attempt+1, "error", genErr)
				return genErr
			}
			return util.Permanent(genErr)
		}
		text = out
		return nil
	})
	if err != nil {
		slog.Warn("Caption generation degraded to empty", "error", err)
		return Caption{Outcome: CaptionFailed}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Caption{Outcome: CaptionFailed}
	}
	return Caption{Text: text, Outcome: CaptionGenerated}
}

// retryable reports whether the error is a rate limit or transient server
// failure. Anything else, including transport-level failures, degrades
// immediately.
func retryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

// captionText digs the reply text out of the nested response structure. Any
// absent level yields an empty string rather than a failure.
func captionText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
