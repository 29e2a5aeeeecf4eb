// Package awsmock provides testify mocks of the narrow AWS API interfaces used by the explorer.
package awsmock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/stretchr/testify/mock"
)

// Events mocks aws.EventsAPI.
type Events struct {
	mock.Mock
}

func (m *Events) ListEventBuses(ctx context.Context, params *eventbridge.ListEventBusesInput, _ ...func(*eventbridge.Options)) (*eventbridge.ListEventBusesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.ListEventBusesOutput)
	return out, args.Error(1)
}

func (m *Events) ListRules(ctx context.Context, params *eventbridge.ListRulesInput, _ ...func(*eventbridge.Options)) (*eventbridge.ListRulesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.ListRulesOutput)
	return out, args.Error(1)
}

func (m *Events) ListTargetsByRule(ctx context.Context, params *eventbridge.ListTargetsByRuleInput, _ ...func(*eventbridge.Options)) (*eventbridge.ListTargetsByRuleOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.ListTargetsByRuleOutput)
	return out, args.Error(1)
}

func (m *Events) DescribeRule(ctx context.Context, params *eventbridge.DescribeRuleInput, _ ...func(*eventbridge.Options)) (*eventbridge.DescribeRuleOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.DescribeRuleOutput)
	return out, args.Error(1)
}

func (m *Events) PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, _ ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*eventbridge.PutEventsOutput)
	return out, args.Error(1)
}
