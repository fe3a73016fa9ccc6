// Package pipeline is the draw-cycle decision logic: given the facts the
// scraper extracted, it decides which notification to compose, whether the
// outlet drill-down is warranted, whether tonight is a draw night, and when
// to schedule the results check.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/junwei-lim/toto-telegram-bot/internal/models"
	"github.com/junwei-lim/toto-telegram-bot/internal/util"
)

const (
	// Dates are compared as strings formatted identically on both sides,
	// never as parsed dates. The page controls the format.
	announceDateFormat = "02 Jan 2006"
	resultsDateFormat  = "Mon, 02 Jan 2006"

	resultsPayload = `{"mode": "results"}`
)

// Results-check run times per draw slot, venue-local.
var slotCheckTimes = map[models.DrawTimeSlot]struct{ hour, min int }{
	models.SlotEvening630: {19, 0},
	models.SlotEvening930: {23, 5},
}

type Pipeline struct {
	source    Source
	notifier  Notifier
	captioner Captioner
	scheduler Scheduler // nil when self-scheduling is not configured
	loc       *time.Location
	now       func() time.Time
}

func New(source Source, n Notifier, c Captioner, s Scheduler, loc *time.Location) *Pipeline {
	return &Pipeline{
		source:    source,
		notifier:  n,
		captioner: c,
		scheduler: s,
		loc:       loc,
		now:       time.Now,
	}
}

// RunNextDraw announces the upcoming draw and, on draw nights, schedules the
// results check for after the drawing.
func (p *Pipeline) RunNextDraw(ctx context.Context) error {
	ann, err := p.source.FetchAnnouncement()
	if err != nil {
		return err
	}
	if err := models.Validate(ann); err != nil {
		return fmt.Errorf("announcement rejected: %w", err)
	}

	p.scheduleResultsCheck(ctx, ann.DrawTimeSlot)

	caption := p.captioner.GenerateCaption(ctx, ann.JackpotAmount)
	msg := composeNextDraw(ann, caption.Text, p.today(announceDateFormat))

	return p.notifier.Send(ctx, msg)
}

// RunResults reads the latest draw outcome and announces it. When the page
// has not posted today's draw yet, nothing is sent and the returned
// diagnostic says so.
func (p *Pipeline) RunResults(ctx context.Context) (string, error) {
	res, err := p.source.FetchLatestResult()
	if err != nil {
		return "", err
	}

	today := p.today(resultsDateFormat)
	if res.DrawDate != today {
		diag := fmt.Sprintf("no results today: page shows %q, today is %q", res.DrawDate, today)
		slog.Info("Results not posted yet", "pageDate", res.DrawDate, "today", today)
		return diag, nil
	}

	if err := models.Validate(res); err != nil {
		return "", fmt.Errorf("result rejected: %w", err)
	}

	if res.Group1WinnerCount >= 1 {
		outlets, err := p.source.FetchGroup1Outlets()
		if err != nil {
			return "", err
		}
		res.Group1Outlets = outlets
	}

	return "", p.notifier.Send(ctx, composeResults(res))
}

// scheduleResultsCheck registers the post-draw check when the announcement
// carries a recognized draw slot. An unknown slot means tonight is not a
// draw night (or the page changed wording); scheduling is skipped silently.
// Scheduling failures are logged but never block the announcement itself.
func (p *Pipeline) scheduleResultsCheck(ctx context.Context, slot models.DrawTimeSlot) {
	at, ok := slotCheckTimes[slot]
	if !ok {
		slog.Info("No recognized draw slot, skipping results-check schedule")
		return
	}
	if p.scheduler == nil {
		slog.Warn("Scheduler not configured, skipping results-check schedule")
		return
	}

	now := p.now().In(p.loc)
	runAt := time.Date(now.Year(), now.Month(), now.Day(), at.hour, at.min, 0, 0, p.loc)
	if err := p.scheduler.EnsureOneShot(ctx, runAt, resultsPayload); err != nil {
		slog.Error("Failed to schedule results check", "error", err)
	}
}

func (p *Pipeline) today(format string) string {
	return p.now().In(p.loc).Format(format)
}

func composeNextDraw(ann models.DrawAnnouncement, caption, today string) string {
	var b strings.Builder
	b.WriteString("🎰 TOTO Update\n")
	fmt.Fprintf(&b, "Next Jackpot: $%s\n", util.FormatWithCommas(ann.JackpotAmount))

	if ann.DrawDatePart == today {
		fmt.Fprintf(&b, "Next Draw: Tonight, %s", ann.DrawTimePart)
	} else {
		// Keep the scraped wording verbatim so venue-specific phrasing survives.
		fmt.Fprintf(&b, "Next Draw: %s", ann.DrawDateText)
	}

	if caption != "" {
		b.WriteString("\n\n")
		b.WriteString(caption)
	}
	return b.String()
}

func composeResults(res models.DrawResult) string {
	var b strings.Builder
	b.WriteString("🎰 TOTO Results\n")
	fmt.Fprintf(&b, "%s (Draw No. %s)\n", res.DrawDate, res.DrawNumber)
	fmt.Fprintf(&b, "Winning Numbers: %s\n", strings.Join(res.WinningNumbers, ", "))
	fmt.Fprintf(&b, "Additional Number: %s\n", res.AdditionalNumber)

	if res.Group1WinnerCount == 0 {
		b.WriteString("Group 1: No winners this draw")
		return b.String()
	}

	fmt.Fprintf(&b, "Group 1 Prize: %s (%d winner(s))", res.Group1ShareAmount, res.Group1WinnerCount)

	if len(res.Group1Outlets) > 0 {
		b.WriteString("\n\nGroup 1 winning tickets sold at:")
		for _, outlet := range res.Group1Outlets {
			b.WriteString("\n• ")
			b.WriteString(outlet)
		}
	}
	return b.String()
}
