package pipeline

import (
	"context"
	"time"

	"github.com/junwei-lim/toto-telegram-bot/internal/ai"
	"github.com/junwei-lim/toto-telegram-bot/internal/models"
)

// Source reads facts from the results page. Satisfied by scraper.Scraper.
type Source interface {
	FetchAnnouncement() (models.DrawAnnouncement, error)
	FetchLatestResult() (models.DrawResult, error)
	FetchGroup1Outlets() ([]string, error)
}

// Notifier delivers the final message. Satisfied by notifier.Client.
type Notifier interface {
	Send(ctx context.Context, text string) error
}

// Captioner produces the optional jackpot caption. Satisfied by ai.Client.
type Captioner interface {
	GenerateCaption(ctx context.Context, jackpotAmount int64) ai.Caption
}

// Scheduler registers the one-shot results check. Satisfied by scheduler.Client.
type Scheduler interface {
	EnsureOneShot(ctx context.Context, runAtLocal time.Time, payload string) error
}
