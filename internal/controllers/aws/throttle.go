package aws

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

func wait(ctx context.Context, limiter *rate.Limiter, logger *slog.Logger, op string) error {
	if limiter.Limit() == rate.Inf {
		return nil
	}
	if limiter.Tokens() < 1 {
		helpers.OnceAMinute.Do(func() {
			logger.Warn("AWS calls are being throttled", "operation", op, "limit", float64(limiter.Limit()))
		})
	}
	return errors.Wrapf(limiter.Wait(ctx), "throttled %s", op)
}

type throttledEvents struct {
	api     EventsAPI
	limiter *rate.Limiter
	logger  *slog.Logger
}

func (t *throttledEvents) ListEventBuses(ctx context.Context, params *eventbridge.ListEventBusesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListEventBusesOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "ListEventBuses"); err != nil {
		return nil, err
	}
	return t.api.ListEventBuses(ctx, params, optFns...)
}

func (t *throttledEvents) ListRules(ctx context.Context, params *eventbridge.ListRulesInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "ListRules"); err != nil {
		return nil, err
	}
	return t.api.ListRules(ctx, params, optFns...)
}

func (t *throttledEvents) ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "ListTargetsByRule"); err != nil {
		return nil, err
	}
	return t.api.ListTargetsByRule(ctx, params, optFns...)
}

func (t *throttledEvents) DescribeRule(ctx context.Context, params *eventbridge.DescribeRuleInput, optFns ...func(*eventbridge.Options)) (*eventbridge.DescribeRuleOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "DescribeRule"); err != nil {
		return nil, err
	}
	return t.api.DescribeRule(ctx, params, optFns...)
}

// PutEvents is not throttled.
func (t *throttledEvents) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	return t.api.PutEvents(ctx, params, optFns...)
}

type throttledLogs struct {
	api     LogsAPI
	limiter *rate.Limiter
	logger  *slog.Logger
}

func (t *throttledLogs) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "DescribeLogGroups"); err != nil {
		return nil, err
	}
	return t.api.DescribeLogGroups(ctx, params, optFns...)
}

func (t *throttledLogs) StartQuery(ctx context.Context, params *cloudwatchlogs.StartQueryInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StartQueryOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "StartQuery"); err != nil {
		return nil, err
	}
	return t.api.StartQuery(ctx, params, optFns...)
}

// GetQueryResults is not throttled; polling is already paced by the caller.
func (t *throttledLogs) GetQueryResults(ctx context.Context, params *cloudwatchlogs.GetQueryResultsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetQueryResultsOutput, error) {
	return t.api.GetQueryResults(ctx, params, optFns...)
}

func (t *throttledLogs) DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "DescribeLogStreams"); err != nil {
		return nil, err
	}
	return t.api.DescribeLogStreams(ctx, params, optFns...)
}

func (t *throttledLogs) GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error) {
	if err := wait(ctx, t.limiter, t.logger, "GetLogEvents"); err != nil {
		return nil, err
	}
	return t.api.GetLogEvents(ctx, params, optFns...)
}
