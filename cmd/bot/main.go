package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsscheduler "github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/joho/godotenv"

	"github.com/junwei-lim/toto-telegram-bot/internal/ai"
	"github.com/junwei-lim/toto-telegram-bot/internal/browser"
	"github.com/junwei-lim/toto-telegram-bot/internal/config"
	"github.com/junwei-lim/toto-telegram-bot/internal/notifier"
	"github.com/junwei-lim/toto-telegram-bot/internal/pipeline"
	"github.com/junwei-lim/toto-telegram-bot/internal/scheduler"
	"github.com/junwei-lim/toto-telegram-bot/internal/scraper"
)

// Event is the invocation input, delivered by the cron trigger (next_draw)
// or by the self-registered one-shot schedule (results).
type Event struct {
	Mode string `json:"mode"`
}

// Response mirrors the Lambda proxy status/body convention.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body,omitempty"`
}

type app struct {
	cfg       *config.Config
	notifier  pipeline.Notifier
	captioner pipeline.Captioner
	scheduler pipeline.Scheduler // nil when not configured
	loc       *time.Location
}

func main() {
	// Local runs pick up a .env; in Lambda the file is absent and this is a no-op.
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		slog.Error("Invalid venue timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	captioner, err := ai.NewClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		// Captions are cosmetic; run without them rather than refuse to start.
		slog.Warn("Failed to initialize caption client, captions disabled", "error", err)
		captioner = nil
	}

	a := &app{
		cfg:       cfg,
		notifier:  notifier.New(cfg.TelegramBotToken, cfg.TelegramChatID),
		captioner: captioner,
		loc:       loc,
	}

	if cfg.SchedulingConfigured() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			slog.Error("Failed to load AWS config", "error", err)
			os.Exit(1)
		}
		a.scheduler = scheduler.New(
			awsscheduler.NewFromConfig(awsCfg),
			cfg.ScheduleGroup,
			cfg.SchedulerRoleARN,
			cfg.ResultsFunctionARN,
			cfg.Timezone,
		)
	}

	lambda.Start(a.handle)
}

func (a *app) handle(ctx context.Context, event Event) (Response, error) {
	if a.cfg.BrowserlessToken == "" {
		return Response{StatusCode: 500, Body: "Missing Browserless token"}, nil
	}

	switch event.Mode {
	case "next_draw":
		return a.runNextDraw(ctx)
	case "results":
		return a.runResults(ctx)
	default:
		slog.Warn("Unrecognized mode, nothing to do", "mode", event.Mode)
		return Response{StatusCode: 200}, nil
	}
}

func (a *app) runNextDraw(ctx context.Context) (Response, error) {
	p, session, err := a.newPipeline()
	if err != nil {
		return Response{}, err
	}
	defer session.Close()

	if err := p.RunNextDraw(ctx); err != nil {
		return Response{}, err
	}
	return Response{StatusCode: 200}, nil
}

func (a *app) runResults(ctx context.Context) (Response, error) {
	p, session, err := a.newPipeline()
	if err != nil {
		return Response{}, err
	}
	defer session.Close()

	diag, err := p.RunResults(ctx)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: 200, Body: diag}, nil
}

// newPipeline opens the browser session an invocation needs and wires the
// extraction pipeline around it. The caller owns closing the session.
func (a *app) newPipeline() (*pipeline.Pipeline, *browser.Session, error) {
	ws := fmt.Sprintf("%s?token=%s", a.cfg.RelayEndpoint, a.cfg.BrowserlessToken)
	session, err := browser.Connect(ws)
	if err != nil {
		return nil, nil, err
	}

	src := scraper.New(session, a.cfg.ResultsURL)
	return pipeline.New(src, a.notifier, a.captioner, a.scheduler, a.loc), session, nil
}
