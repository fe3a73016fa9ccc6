package config

import (
	"fmt"
	"log/slog"
	"os"
)

const (
	defaultRelayEndpoint = "wss://chrome.browserless.io"
	defaultResultsURL    = "https://www.singaporepools.com.sg/en/product/pages/toto_results.aspx"
	defaultTimezone      = "Asia/Singapore"
	defaultScheduleGroup = "default"
)

// MissingSecretError identifies which required secret was absent, so callers
// can tell a hard configuration fault apart from other startup failures.
type MissingSecretError struct {
	Name string
}

func (e *MissingSecretError) Error() string {
	return fmt.Sprintf("%s environment variable is required but not set", e.Name)
}

type Config struct {
	// BrowserlessToken authorizes the remote browser relay. It is checked
	// per invocation (a 500 response), not at load time, so a misdeployed
	// function still starts and reports the fault through its status code.
	BrowserlessToken string
	RelayEndpoint    string

	TelegramBotToken string
	TelegramChatID   string

	// GeminiAPIKey is optional; captions are disabled without it.
	GeminiAPIKey string

	// Scheduler identifiers are optional; self-scheduling of the results
	// check is skipped when they are incomplete.
	SchedulerRoleARN   string
	ResultsFunctionARN string
	ScheduleGroup      string

	ResultsURL string
	Timezone   string
}

func Load() (*Config, error) {
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		return nil, &MissingSecretError{Name: "TELEGRAM_BOT_TOKEN"}
	}

	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		return nil, &MissingSecretError{Name: "TELEGRAM_CHAT_ID"}
	}

	browserlessToken := os.Getenv("BROWSERLESS_TOKEN")
	if browserlessToken == "" {
		slog.Warn("BROWSERLESS_TOKEN not set, invocations will fail with status 500")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		slog.Info("GEMINI_API_KEY not set, jackpot captions disabled")
	}

	roleARN := os.Getenv("SCHEDULER_ROLE_ARN")
	targetARN := os.Getenv("RESULTS_FUNCTION_ARN")
	if roleARN == "" || targetARN == "" {
		slog.Warn("SCHEDULER_ROLE_ARN or RESULTS_FUNCTION_ARN not set, results check will not be self-scheduled")
	}

	relayEndpoint := os.Getenv("BROWSERLESS_ENDPOINT")
	if relayEndpoint == "" {
		relayEndpoint = defaultRelayEndpoint
	}

	resultsURL := os.Getenv("TOTO_RESULTS_URL")
	if resultsURL == "" {
		resultsURL = defaultResultsURL
	}

	timezone := os.Getenv("VENUE_TIMEZONE")
	if timezone == "" {
		timezone = defaultTimezone
	}

	scheduleGroup := os.Getenv("SCHEDULE_GROUP")
	if scheduleGroup == "" {
		scheduleGroup = defaultScheduleGroup
	}

	return &Config{
		BrowserlessToken:   browserlessToken,
		RelayEndpoint:      relayEndpoint,
		TelegramBotToken:   botToken,
		TelegramChatID:     chatID,
		GeminiAPIKey:       geminiKey,
		SchedulerRoleARN:   roleARN,
		ResultsFunctionARN: targetARN,
		ScheduleGroup:      scheduleGroup,
		ResultsURL:         resultsURL,
		Timezone:           timezone,
	}, nil
}

// SchedulingConfigured reports whether both scheduler identifiers are present.
func (c *Config) SchedulingConfigured() bool {
	return c.SchedulerRoleARN != "" && c.ResultsFunctionARN != ""
}
