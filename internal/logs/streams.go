package logs

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/resource"
)

// ListStreams returns the most recently active log streams of a target's log group.
// Any resolution or lookup failure yields an empty list. When w is set, streams whose
// event range does not intersect it are skipped.
func (e *Engine) ListStreams(ctx context.Context, targetArn string, w *Window) []StreamInfo {
	streams := []StreamInfo{}
	logger := e.logger.With("target", targetArn)

	loc, err := resource.Locate(targetArn)
	if err != nil {
		logger.Debug("cannot resolve target", slog.Any("error", err))
		return streams
	}
	if loc.Support != resource.Supported {
		logger.Debug("target has no log group", "support", loc.Support)
		return streams
	}
	exists, err := e.logGroupExists(ctx, loc.LogGroup)
	if err != nil {
		logger.Warn("failed to look up log group", "log_group", loc.LogGroup, slog.Any("error", err))
		return streams
	}
	if !exists {
		return streams
	}

	var token *string
	for {
		out, err := e.api.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
			LogGroupName: aws.String(loc.LogGroup),
			OrderBy:      types.OrderByLastEventTime,
			Descending:   aws.Bool(true),
			Limit:        aws.Int32(int32(e.streamPageSize)),
			NextToken:    token,
		})
		if err != nil {
			logger.Warn("failed to describe log streams", "log_group", loc.LogGroup, slog.Any("error", err))
			return []StreamInfo{}
		}
		for _, s := range out.LogStreams {
			info := streamInfo(loc.LogGroup, s)
			if w != nil && !overlaps(info, w) {
				continue
			}
			streams = append(streams, info)
		}
		if helpers.String(out.NextToken) == "" || len(streams) >= e.maxStreams {
			break
		}
		token = out.NextToken
	}
	sort.SliceStable(streams, func(i, j int) bool {
		return streams[i].LastEventTimestamp > streams[j].LastEventTimestamp
	})
	if len(streams) > e.maxStreams {
		streams = streams[:e.maxStreams]
	}
	return streams
}

// FetchStreamEntries reads the latest entries of a stream, widening the read in three tiers:
// the stream's own event range, the forward token of that read, then an unrestricted read.
func (e *Engine) FetchStreamEntries(ctx context.Context, group, stream string, limit int) RenderedLog {
	if limit <= 0 {
		limit = e.streamEntryLimit
	}
	logger := e.logger.With("log_group", group, "stream", stream)

	info, found, err := e.findStream(ctx, group, stream)
	if err != nil {
		logger.Warn("failed to get stream info", slog.Any("error", err))
		return rendered(StatusError, "Error getting stream info: "+awsctl.Describe(err))
	}
	if !found {
		return rendered(StatusEmpty, fmt.Sprintf("Log stream '%s' not found in log group '%s'.", stream, group))
	}
	if info.FirstEventTimestamp == 0 || info.LastEventTimestamp == 0 {
		return rendered(StatusEmpty, fmt.Sprintf("No events found in stream '%s'.", stream))
	}

	out, err := e.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
		StartTime:     aws.Int64(info.FirstEventTimestamp),
		EndTime:       aws.Int64(info.LastEventTimestamp),
		Limit:         aws.Int32(int32(limit)),
		StartFromHead: aws.Bool(false),
	})
	if err != nil {
		logger.Warn("failed to get log events", slog.Any("error", err))
		return rendered(StatusError, "Error getting log events: "+awsctl.Describe(err))
	}
	if entries := streamEntries(stream, out.Events, true); len(entries) > 0 {
		return RenderedLog{Status: StatusOK, Tier: TierWindow, Entries: entries}
	}

	if token := helpers.String(out.NextForwardToken); token != "" {
		logger.Debug("no events in stream range, retrying with forward token")
		next, err := e.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
			LogGroupName:  aws.String(group),
			LogStreamName: aws.String(stream),
			NextToken:     aws.String(token),
			Limit:         aws.Int32(int32(limit)),
		})
		if err != nil {
			logger.Warn("failed to get log events", "tier", TierToken, slog.Any("error", err))
			return rendered(StatusError, "Error getting log events: "+awsctl.Describe(err))
		}
		if entries := streamEntries(stream, next.Events, true); len(entries) > 0 {
			return RenderedLog{Status: StatusOK, Tier: TierToken, Entries: entries}
		}
	}

	logger.Debug("retrying without time range")
	all, err := e.api.GetLogEvents(ctx, &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
		Limit:         aws.Int32(int32(limit)),
	})
	if err != nil {
		logger.Warn("failed to get log events", "tier", TierUnrestricted, slog.Any("error", err))
		return rendered(StatusError, "Error getting log events: "+awsctl.Describe(err))
	}
	if entries := streamEntries(stream, all.Events, true); len(entries) > 0 {
		return RenderedLog{Status: StatusOK, Tier: TierUnrestricted, Entries: entries}
	}
	return rendered(StatusEmpty, fmt.Sprintf("No log events found in stream '%s'.", stream))
}

// FetchRawStream reads a stream from its head, optionally bounded by w.
func (e *Engine) FetchRawStream(ctx context.Context, group, stream string, w *Window, limit int) RenderedLog {
	if limit <= 0 {
		limit = e.streamEntryLimit
	}
	in := &cloudwatchlogs.GetLogEventsInput{
		LogGroupName:  aws.String(group),
		LogStreamName: aws.String(stream),
		Limit:         aws.Int32(int32(limit)),
		StartFromHead: aws.Bool(true),
	}
	tier := TierUnrestricted
	if w != nil {
		if w.Start > 0 {
			in.StartTime = aws.Int64(w.Start * 1000)
			tier = TierWindow
		}
		if w.End > 0 {
			in.EndTime = aws.Int64(w.End * 1000)
			tier = TierWindow
		}
	}

	out, err := e.api.GetLogEvents(ctx, in)
	if err != nil {
		e.logger.Warn("failed to get log events", "log_group", group, "stream", stream, slog.Any("error", err))
		return rendered(StatusError, "Error fetching log events: "+awsctl.Describe(err))
	}
	entries := streamEntries(stream, out.Events, false)
	if len(entries) == 0 {
		return rendered(StatusEmpty, fmt.Sprintf("No log events found in stream '%s'.", stream))
	}
	return RenderedLog{Status: StatusOK, Tier: tier, Entries: entries}
}

// findStream looks a stream up by name prefix and returns the exact match.
// A missing log group reports the stream as not found.
func (e *Engine) findStream(ctx context.Context, group, stream string) (StreamInfo, bool, error) {
	var token *string
	scanned := 0
	for {
		out, err := e.api.DescribeLogStreams(ctx, &cloudwatchlogs.DescribeLogStreamsInput{
			LogGroupName:        aws.String(group),
			LogStreamNamePrefix: aws.String(stream),
			Limit:               aws.Int32(int32(e.streamPageSize)),
			NextToken:           token,
		})
		if awsctl.IsNotFound(err) {
			return StreamInfo{}, false, nil
		}
		if err != nil {
			return StreamInfo{}, false, err
		}
		for _, s := range out.LogStreams {
			if helpers.String(s.LogStreamName) == stream {
				return streamInfo(group, s), true, nil
			}
		}
		scanned += len(out.LogStreams)
		if helpers.String(out.NextToken) == "" || scanned >= e.maxStreams {
			return StreamInfo{}, false, nil
		}
		token = out.NextToken
	}
}

func streamInfo(group string, s types.LogStream) StreamInfo {
	info := StreamInfo{
		LogStreamName:       helpers.String(s.LogStreamName),
		LogGroupName:        group,
		FirstEventTimestamp: aws.ToInt64(s.FirstEventTimestamp),
		LastEventTimestamp:  aws.ToInt64(s.LastEventTimestamp),
		LastIngestionTime:   aws.ToInt64(s.LastIngestionTime),
	}
	info.FirstEventTime = FormatMillis(info.FirstEventTimestamp)
	info.LastEventTime = FormatMillis(info.LastEventTimestamp)
	return info
}

func overlaps(info StreamInfo, w *Window) bool {
	if info.FirstEventTimestamp == 0 || info.LastEventTimestamp == 0 {
		return false
	}
	start, end := int64(math.MinInt64), int64(math.MaxInt64)
	if w.Start > 0 {
		start = w.Start * 1000
	}
	if w.End > 0 {
		end = w.End * 1000
	}
	return info.FirstEventTimestamp <= end && info.LastEventTimestamp >= start
}

// streamEntries converts log events. When strict is set, events without a message or timestamp are dropped.
func streamEntries(stream string, events []types.OutputLogEvent, strict bool) []Entry {
	entries := make([]Entry, 0, len(events))
	for _, ev := range events {
		message := helpers.String(ev.Message)
		ts := aws.ToInt64(ev.Timestamp)
		if strict && (message == "" || ts == 0) {
			continue
		}
		entries = append(entries, Entry{
			Timestamp:     ts,
			FormattedTime: FormatMillis(ts),
			Message:       message,
			Stream:        stream,
			Matches:       []Span{},
		})
	}
	return entries
}

func rendered(status Status, message string) RenderedLog {
	return RenderedLog{Status: status, Message: message, Entries: []Entry{}}
}
