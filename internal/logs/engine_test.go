package logs_test

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	"github.com/benbjohnson/clock"
	"github.com/isometry/eventbridge-explorer/internal/logs"
	"github.com/isometry/eventbridge-explorer/internal/testutil/awsmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const fnArn = "arn:aws:lambda:us-east-1:123456789012:function:myFn"

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func row(timestamp, message string) []types.ResultField {
	var fields []types.ResultField
	if timestamp != "" {
		fields = append(fields, types.ResultField{Field: aws.String("@timestamp"), Value: aws.String(timestamp)})
	}
	if message != "" {
		fields = append(fields, types.ResultField{Field: aws.String("@message"), Value: aws.String(message)})
	}
	return fields
}

func newEngine(api *awsmock.Logs, opts ...logs.Option) (*logs.Engine, *clock.Mock) {
	mc := clock.NewMock()
	mc.Set(now)
	opts = append([]logs.Option{logs.WithClock(mc), logs.WithPollInterval(0)}, opts...)
	return logs.NewEngine(api, opts...), mc
}

func withLogGroup(api *awsmock.Logs, names ...string) {
	groups := make([]types.LogGroup, 0, len(names))
	for _, n := range names {
		groups = append(groups, types.LogGroup{LogGroupName: aws.String(n)})
	}
	api.On("DescribeLogGroups", mock.Anything, mock.Anything).Return(&cloudwatchlogs.DescribeLogGroupsOutput{LogGroups: groups}, nil)
}

func TestFetchLogs(t *testing.T) {
	api := &awsmock.Logs{}
	withLogGroup(api, "/aws/lambda/myFn-canary", "/aws/lambda/myFn")

	window := &logs.Window{Start: now.Add(-time.Hour).Unix(), End: now.Unix()}
	api.On("StartQuery", mock.Anything, mock.MatchedBy(func(in *cloudwatchlogs.StartQueryInput) bool {
		return aws.ToString(in.LogGroupName) == "/aws/lambda/myFn" &&
			aws.ToInt64(in.StartTime) == window.Start &&
			aws.ToInt64(in.EndTime) == window.End
	})).Return(&cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")}, nil)
	api.On("GetQueryResults", mock.Anything, mock.Anything).Return(&cloudwatchlogs.GetQueryResultsOutput{
		Status: types.QueryStatusRunning,
	}, nil).Twice()
	api.On("GetQueryResults", mock.Anything, mock.Anything).Return(&cloudwatchlogs.GetQueryResultsOutput{
		Status: types.QueryStatusComplete,
		Results: [][]types.ResultField{
			row("2024-06-01 10:00:00.000", "older Error"),
			row("garbage", "unparsable timestamp error"),
			row("2024-06-01 11:00:00.500", "newer ERROR and error"),
			row("2024-06-01 11:30:00.000", ""),
		},
	}, nil).Once()

	engine, _ := newEngine(api)
	result := engine.FetchLogs(context.Background(), logs.Request{
		TargetArn:  fnArn + ":live",
		Window:     window,
		SearchTerm: "error",
	})

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Found 3 log entries", result.Message)
	require.Len(t, result.Logs, 3)
	assert.Equal(t, "newer ERROR and error", result.Logs[0].Message)
	assert.Equal(t, "older Error", result.Logs[1].Message)
	assert.Equal(t, int64(0), result.Logs[2].Timestamp)
	assert.Equal(t, "unknown", result.Logs[0].Stream)
	assert.Equal(t, []logs.Span{{Start: 6, End: 11}, {Start: 16, End: 21}}, result.Logs[0].Matches)
	assert.Equal(t, "2024-06-01 11:00:00.500", result.Logs[0].FormattedTime)

	md := result.Metadata
	assert.Equal(t, fnArn+":live", md["target_arn"])
	assert.Equal(t, "/aws/lambda/myFn", md["log_group"])
	assert.Equal(t, "myFn", md["resource_id"])
	assert.Equal(t, "lambda", md["service"])
	assert.Equal(t, "error", md["search_term"])
	assert.Equal(t, "2024-06-01 11:00:00", md["start_time"])
	assert.Equal(t, "2024-06-01 12:00:00", md["end_time"])
	assert.Equal(t, 3, md["total_logs"])
	assert.Contains(t, md["query"], "limit 10")
	api.AssertNumberOfCalls(t, "GetQueryResults", 3)
}

func TestFetchLogsDefaultWindow(t *testing.T) {
	api := &awsmock.Logs{}
	withLogGroup(api, "/aws/states/Orders")
	api.On("StartQuery", mock.Anything, mock.MatchedBy(func(in *cloudwatchlogs.StartQueryInput) bool {
		return aws.ToInt64(in.StartTime) == now.Add(-30*24*time.Hour).Unix() &&
			aws.ToInt64(in.EndTime) == now.Unix() &&
			aws.ToString(in.QueryString) == "fields @timestamp, @message | sort @timestamp desc | limit 5"
	})).Return(&cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")}, nil)
	api.On("GetQueryResults", mock.Anything, mock.Anything).Return(&cloudwatchlogs.GetQueryResultsOutput{
		Status: types.QueryStatusComplete,
	}, nil)

	engine, _ := newEngine(api)
	result := engine.FetchLogs(context.Background(), logs.Request{
		TargetArn: "arn:aws:states:us-east-1:123456789012:stateMachine:Orders",
		Limit:     5,
	})

	require.True(t, result.Success)
	assert.Empty(t, result.Logs)
	assert.NotNil(t, result.Logs)
	assert.Equal(t, "No logs found for Orders between 2024-05-02 12:00:00 and 2024-06-01 12:00:00.", result.Message)
	api.AssertExpectations(t)
}

func TestFetchLogsFailures(t *testing.T) {
	testCases := []struct {
		Name      string
		TargetArn string
		Setup     func(api *awsmock.Logs)
		Kind      logs.Kind
		Message   string
	}{
		{
			Name:      "malformed_arn",
			TargetArn: "arn:aws:lambda:us-east-1",
			Setup:     func(*awsmock.Logs) {},
			Kind:      logs.KindMalformedIdentifier,
			Message:   "invalid ARN format",
		},
		{
			Name:      "unresolvable_resource",
			TargetArn: "arn:aws:lambda:us-east-1:123456789012:function:",
			Setup:     func(*awsmock.Logs) {},
			Kind:      logs.KindUnresolvableResource,
			Message:   "could not extract resource ID",
		},
		{
			Name:      "sqs_not_supported",
			TargetArn: "arn:aws:sqs:us-east-1:123456789012:orders",
			Setup:     func(*awsmock.Logs) {},
			Kind:      logs.KindNotSupported,
			Message:   "not directly available for SQS",
		},
		{
			Name:      "kinesis_not_implemented",
			TargetArn: "arn:aws:kinesis:us-east-1:123456789012:stream/clicks",
			Setup:     func(*awsmock.Logs) {},
			Kind:      logs.KindNotImplemented,
			Message:   "not implemented for service: kinesis",
		},
		{
			Name:      "log_group_missing",
			TargetArn: fnArn,
			Setup: func(api *awsmock.Logs) {
				withLogGroup(api, "/aws/lambda/myFn-canary")
			},
			Kind:    logs.KindNotFound,
			Message: "Log group /aws/lambda/myFn does not exist",
		},
		{
			Name:      "log_group_lookup_not_found",
			TargetArn: fnArn,
			Setup: func(api *awsmock.Logs) {
				api.On("DescribeLogGroups", mock.Anything, mock.Anything).Return(nil, awsmock.APIError("ResourceNotFoundException", "missing"))
			},
			Kind:    logs.KindNotFound,
			Message: "Log group /aws/lambda/myFn does not exist",
		},
		{
			Name:      "log_group_lookup_failure",
			TargetArn: fnArn,
			Setup: func(api *awsmock.Logs) {
				api.On("DescribeLogGroups", mock.Anything, mock.Anything).Return(nil, awsmock.APIError("AccessDeniedException", "nope"))
			},
			Kind:    logs.KindUpstreamFailure,
			Message: "AccessDeniedException: nope",
		},
		{
			Name:      "start_query_failure",
			TargetArn: fnArn,
			Setup: func(api *awsmock.Logs) {
				withLogGroup(api, "/aws/lambda/myFn")
				api.On("StartQuery", mock.Anything, mock.Anything).Return(nil, awsmock.APIError("MalformedQueryException", "bad query"))
			},
			Kind:    logs.KindUpstreamFailure,
			Message: "Error querying logs: MalformedQueryException: bad query",
		},
		{
			Name:      "query_failed_status",
			TargetArn: fnArn,
			Setup: func(api *awsmock.Logs) {
				withLogGroup(api, "/aws/lambda/myFn")
				api.On("StartQuery", mock.Anything, mock.Anything).Return(&cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")}, nil)
				api.On("GetQueryResults", mock.Anything, mock.Anything).Return(&cloudwatchlogs.GetQueryResultsOutput{Status: types.QueryStatusFailed}, nil)
			},
			Kind:    logs.KindUpstreamFailure,
			Message: "ended with status Failed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			api := &awsmock.Logs{}
			tc.Setup(api)
			engine, _ := newEngine(api)

			result := engine.FetchLogs(context.Background(), logs.Request{TargetArn: tc.TargetArn})
			assert.False(t, result.Success)
			assert.Equal(t, tc.Kind, result.Kind)
			assert.Contains(t, result.Message, tc.Message)
			assert.Empty(t, result.Logs)
			assert.Equal(t, tc.TargetArn, result.Metadata["target_arn"])
		})
	}
}

func TestFetchLogsTimeout(t *testing.T) {
	api := &awsmock.Logs{}
	withLogGroup(api, "/aws/lambda/myFn")
	api.On("StartQuery", mock.Anything, mock.Anything).Return(&cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")}, nil)
	api.On("GetQueryResults", mock.Anything, mock.Anything).Return(&cloudwatchlogs.GetQueryResultsOutput{
		Status:  types.QueryStatusRunning,
		Results: [][]types.ResultField{row("2024-06-01 10:00:00", "partial")},
	}, nil)

	engine, _ := newEngine(api)
	result := engine.FetchLogs(context.Background(), logs.Request{TargetArn: fnArn})

	assert.False(t, result.Success)
	assert.Equal(t, logs.KindQueryTimedOut, result.Kind)
	assert.Contains(t, result.Message, "narrower time range")
	assert.Empty(t, result.Logs)
	api.AssertNumberOfCalls(t, "GetQueryResults", logs.DefaultMaxPollAttempts)
}

func TestFetchLogsPollInterval(t *testing.T) {
	api := &awsmock.Logs{}
	withLogGroup(api, "/aws/lambda/myFn")
	api.On("StartQuery", mock.Anything, mock.Anything).Return(&cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")}, nil)
	api.On("GetQueryResults", mock.Anything, mock.Anything).Return(&cloudwatchlogs.GetQueryResultsOutput{
		Status: types.QueryStatusRunning,
	}, nil)

	engine, mc := newEngine(api, logs.WithPollInterval(time.Second), logs.WithMaxPollAttempts(3))

	done := make(chan logs.Result, 1)
	go func() {
		done <- engine.FetchLogs(context.Background(), logs.Request{TargetArn: fnArn})
	}()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case result := <-done:
			assert.Equal(t, logs.KindQueryTimedOut, result.Kind)
			api.AssertNumberOfCalls(t, "GetQueryResults", 3)
			assert.False(t, mc.Now().Before(now.Add(3*time.Second)))
			return
		case <-deadline:
			t.Fatal("query polling did not finish")
		default:
			mc.Add(time.Second)
		}
	}
}

func TestFetchLogsCancelled(t *testing.T) {
	api := &awsmock.Logs{}
	withLogGroup(api, "/aws/lambda/myFn")
	api.On("StartQuery", mock.Anything, mock.Anything).Return(&cloudwatchlogs.StartQueryOutput{QueryId: aws.String("q-1")}, nil)

	engine, _ := newEngine(api, logs.WithPollInterval(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := engine.FetchLogs(ctx, logs.Request{TargetArn: fnArn})
	assert.False(t, result.Success)
	assert.Equal(t, logs.KindUpstreamFailure, result.Kind)
	api.AssertNotCalled(t, "GetQueryResults", mock.Anything, mock.Anything)
}
