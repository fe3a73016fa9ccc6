// Package scheduler registers the one-shot EventBridge trigger that invokes
// the results job after a draw. Creation is idempotent by schedule name, so
// a retried next_draw invocation never double-books the check.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsscheduler "github.com/aws/aws-sdk-go-v2/service/scheduler"
	"github.com/aws/aws-sdk-go-v2/service/scheduler/types"
)

const namePrefix = "toto-results-"

// API is the slice of the EventBridge Scheduler client we use.
type API interface {
	CreateSchedule(ctx context.Context, params *awsscheduler.CreateScheduleInput, optFns ...func(*awsscheduler.Options)) (*awsscheduler.CreateScheduleOutput, error)
}

type Client struct {
	api       API
	group     string
	roleARN   string
	targetARN string
	timezone  string
}

func New(api API, group, roleARN, targetARN, timezone string) *Client {
	return &Client{
		api:       api,
		group:     group,
		roleARN:   roleARN,
		targetARN: targetARN,
		timezone:  timezone,
	}
}

// ScheduleName derives the idempotency key from the minute-truncated run
// time, so at most one schedule exists per distinct minute.
func ScheduleName(runAtLocal time.Time) string {
	return namePrefix + runAtLocal.Truncate(time.Minute).Format("200601021504")
}

// EnsureOneShot registers a one-shot, timezone-aware trigger that self-deletes
// after firing and invokes the target with payload. If a schedule with the
// same derived name already exists, it does nothing.
func (c *Client) EnsureOneShot(ctx context.Context, runAtLocal time.Time, payload string) error {
	name := ScheduleName(runAtLocal)

	_, err := c.api.CreateSchedule(ctx, &awsscheduler.CreateScheduleInput{
		Name:                       aws.String(name),
		GroupName:                  aws.String(c.group),
		ScheduleExpression:         aws.String("at(" + runAtLocal.Format("2006-01-02T15:04:05") + ")"),
		ScheduleExpressionTimezone: aws.String(c.timezone),
		ActionAfterCompletion:      types.ActionAfterCompletionDelete,
		FlexibleTimeWindow: &types.FlexibleTimeWindow{
			Mode: types.FlexibleTimeWindowModeOff,
		},
		Target: &types.Target{
			Arn:     aws.String(c.targetARN),
			RoleArn: aws.String(c.roleARN),
			Input:   aws.String(payload),
		},
	})
	if err != nil {
		var conflict *types.ConflictException
		if errors.As(err, &conflict) {
			slog.Info("Schedule already exists, skipping", "name", name)
			return nil
		}
		return fmt.Errorf("failed to create schedule %s: %w", name, err)
	}

	slog.Info("Scheduled results check", "name", name, "runAt", runAtLocal)
	return nil
}
