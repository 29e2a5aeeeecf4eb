// Package logs correlates EventBridge targets with their CloudWatch Logs: Logs Insights searches and log stream browsing.
package logs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/benbjohnson/clock"
	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/resource"
	"github.com/pkg/errors"
)

const (
	DefaultPollInterval     = time.Second
	DefaultMaxPollAttempts  = 20
	DefaultWindow           = 30 * 24 * time.Hour
	DefaultLimit            = 10
	DefaultStreamPageSize   = 50
	DefaultMaxStreams       = 100
	DefaultStreamEntryLimit = 100

	unknownStream = "unknown"
)

var errQueryTimedOut = errors.New("query did not complete in time")

// Engine runs log searches and stream reads against CloudWatch Logs.
// It holds no per-request state and may be shared between goroutines.
type Engine struct {
	logger *slog.Logger
	api    awsctl.LogsAPI
	clock  clock.Clock

	pollInterval     time.Duration
	maxPollAttempts  int
	defaultWindow    time.Duration
	defaultLimit     int
	streamPageSize   int
	maxStreams       int
	streamEntryLimit int
}

// NewEngine creates an Engine on top of api.
func NewEngine(api awsctl.LogsAPI, opts ...Option) *Engine {
	_inst := &Engine{
		api:              api,
		pollInterval:     DefaultPollInterval,
		maxPollAttempts:  DefaultMaxPollAttempts,
		defaultWindow:    DefaultWindow,
		defaultLimit:     DefaultLimit,
		streamPageSize:   DefaultStreamPageSize,
		maxStreams:       DefaultMaxStreams,
		streamEntryLimit: DefaultStreamEntryLimit,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.clock == nil {
		_inst.clock = clock.New()
	}
	return _inst
}

// FetchLogs searches the log group of a target. It never returns an error: every
// failure is reported in the returned Result.
func (e *Engine) FetchLogs(ctx context.Context, req Request) Result {
	metadata := map[string]any{"target_arn": req.TargetArn}
	logger := e.logger.With("target", req.TargetArn)

	loc, err := resource.Locate(req.TargetArn)
	if err != nil {
		return failure(resolutionKind(err), err.Error(), metadata)
	}
	metadata["service"] = loc.Service
	metadata["resource_id"] = loc.ResourceID
	if loc.Support != resource.Supported {
		return failure(Kind(loc.Support), loc.Message(), metadata)
	}
	metadata["log_group"] = loc.LogGroup

	exists, err := e.logGroupExists(ctx, loc.LogGroup)
	if err != nil {
		logger.Warn("failed to look up log group", "log_group", loc.LogGroup, slog.Any("error", err))
		metadata["error"] = awsctl.Describe(err)
		return failure(KindUpstreamFailure, fmt.Sprintf(
			"Log group %s not found: %s\n\nThis could mean the resource has never been invoked or logs have been deleted.",
			loc.LogGroup, awsctl.Describe(err)), metadata)
	}
	if !exists {
		return failure(KindNotFound, fmt.Sprintf(
			"Log group %s does not exist. This could mean:\n1. The resource has never been invoked\n2. Logs have been deleted\n3. The resource was recently created",
			loc.LogGroup), metadata)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = e.defaultLimit
	}
	startMs, endMs := bounds(e.clock.Now(), req.Window, e.defaultWindow)
	query := BuildQuery(req.SearchTerm, limit)
	metadata["query"] = query
	metadata["search_term"] = req.SearchTerm
	metadata["start_time"] = formatSeconds(startMs / 1000)
	metadata["end_time"] = formatSeconds(endMs / 1000)

	logger.Debug("starting logs insights query", "log_group", loc.LogGroup, "query", query)
	rows, err := e.runQuery(ctx, loc.LogGroup, startMs/1000, endMs/1000, query)
	switch {
	case errors.Is(err, errQueryTimedOut):
		return failure(KindQueryTimedOut, fmt.Sprintf(
			"Query timed out for %s. Please try again later or with a narrower time range.", loc.LogGroup), metadata)
	case err != nil:
		logger.Warn("logs insights query failed", slog.Any("error", err))
		metadata["error"] = awsctl.Describe(err)
		return failure(KindUpstreamFailure, "Error querying logs: "+awsctl.Describe(err), metadata)
	}

	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		var message, timestamp string
		for _, field := range row {
			switch helpers.String(field.Field) {
			case "@message":
				message = helpers.String(field.Value)
			case "@timestamp":
				timestamp = helpers.String(field.Value)
			}
		}
		if message == "" || timestamp == "" {
			continue
		}
		entries = append(entries, Entry{
			Timestamp:     ParseTimestamp(timestamp),
			FormattedTime: timestamp,
			Message:       message,
			Stream:        unknownStream,
			Matches:       FindMatches(message, req.SearchTerm),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	metadata["total_logs"] = len(entries)

	if len(entries) == 0 {
		return Result{
			Success: true,
			Message: fmt.Sprintf("No logs found for %s between %s and %s.",
				loc.ResourceID, metadata["start_time"], metadata["end_time"]),
			Logs:     entries,
			Metadata: metadata,
		}
	}
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("Found %d log entries", len(entries)),
		Logs:     entries,
		Metadata: metadata,
	}
}

// runQuery starts a Logs Insights query and polls it until it completes, fails or the attempts run out.
func (e *Engine) runQuery(ctx context.Context, group string, start, end int64, query string) ([][]types.ResultField, error) {
	started, err := e.api.StartQuery(ctx, &cloudwatchlogs.StartQueryInput{
		LogGroupName: aws.String(group),
		StartTime:    aws.Int64(start),
		EndTime:      aws.Int64(end),
		QueryString:  aws.String(query),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to start query")
	}

	for attempt := 1; attempt <= e.maxPollAttempts; attempt++ {
		if err := e.sleep(ctx); err != nil {
			return nil, errors.Wrap(err, "query polling interrupted")
		}
		out, err := e.api.GetQueryResults(ctx, &cloudwatchlogs.GetQueryResultsInput{QueryId: started.QueryId})
		if err != nil {
			return nil, errors.Wrap(err, "failed to get query results")
		}
		switch out.Status {
		case types.QueryStatusComplete:
			return out.Results, nil
		case types.QueryStatusFailed, types.QueryStatusCancelled, types.QueryStatusTimeout:
			return nil, errors.Errorf("query %s ended with status %s", helpers.String(started.QueryId), out.Status)
		}
		e.logger.Debug("query still running", "query_id", helpers.String(started.QueryId), "status", out.Status, "attempt", attempt)
	}
	return nil, errQueryTimedOut
}

func (e *Engine) sleep(ctx context.Context) error {
	timer := e.clock.Timer(e.pollInterval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// logGroupExists reports whether a log group with exactly this name exists.
func (e *Engine) logGroupExists(ctx context.Context, group string) (bool, error) {
	var token *string
	for {
		out, err := e.api.DescribeLogGroups(ctx, &cloudwatchlogs.DescribeLogGroupsInput{
			LogGroupNamePrefix: aws.String(group),
			NextToken:          token,
		})
		if awsctl.IsNotFound(err) {
			return false, nil
		}
		if err != nil {
			return false, errors.Wrapf(err, "failed to describe log groups with prefix %s", group)
		}
		for _, lg := range out.LogGroups {
			if helpers.String(lg.LogGroupName) == group {
				return true, nil
			}
		}
		if helpers.String(out.NextToken) == "" {
			return false, nil
		}
		token = out.NextToken
	}
}

func failure(kind Kind, message string, metadata map[string]any) Result {
	return Result{
		Success:  false,
		Message:  message,
		Kind:     kind,
		Logs:     []Entry{},
		Metadata: metadata,
	}
}

func resolutionKind(err error) Kind {
	var resErr *resource.ResolutionError
	if errors.As(err, &resErr) && resErr.Kind == resource.UnresolvableResource {
		return KindUnresolvableResource
	}
	return KindMalformedIdentifier
}
