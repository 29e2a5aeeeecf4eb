package awsmock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/stretchr/testify/mock"
)

// Logs mocks aws.LogsAPI.
type Logs struct {
	mock.Mock
}

func (m *Logs) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatchlogs.DescribeLogGroupsOutput)
	return out, args.Error(1)
}

func (m *Logs) StartQuery(ctx context.Context, params *cloudwatchlogs.StartQueryInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.StartQueryOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatchlogs.StartQueryOutput)
	return out, args.Error(1)
}

func (m *Logs) GetQueryResults(ctx context.Context, params *cloudwatchlogs.GetQueryResultsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetQueryResultsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatchlogs.GetQueryResultsOutput)
	return out, args.Error(1)
}

func (m *Logs) DescribeLogStreams(ctx context.Context, params *cloudwatchlogs.DescribeLogStreamsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatchlogs.DescribeLogStreamsOutput)
	return out, args.Error(1)
}

func (m *Logs) GetLogEvents(ctx context.Context, params *cloudwatchlogs.GetLogEventsInput, _ ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.GetLogEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*cloudwatchlogs.GetLogEventsOutput)
	return out, args.Error(1)
}
