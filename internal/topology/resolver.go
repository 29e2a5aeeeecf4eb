// Package topology discovers the rules and targets attached to an EventBridge bus and renders them as a graph.
package topology

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
)

// Resolver discovers buses, rules and targets through the EventBridge API.
type Resolver struct {
	logger *slog.Logger
	api    awsctl.EventsAPI
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used by the Resolver.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver on top of api.
func NewResolver(api awsctl.EventsAPI, opts ...Option) *Resolver {
	_inst := &Resolver{api: api}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// ListBuses returns every event bus visible to the caller.
func (r *Resolver) ListBuses(ctx context.Context) ([]EventBus, error) {
	buses := []EventBus{}
	var token *string
	for {
		out, err := r.api.ListEventBuses(ctx, &eventbridge.ListEventBusesInput{NextToken: token})
		if err != nil {
			r.logger.Error("failed to list event buses", slog.Any("error", err))
			return nil, newUpstreamError("ListEventBuses", "", err)
		}
		for _, b := range out.EventBuses {
			buses = append(buses, EventBus{
				Name:        helpers.String(b.Name),
				Arn:         helpers.String(b.Arn),
				Description: helpers.String(b.Description),
			})
		}
		if helpers.String(out.NextToken) == "" {
			break
		}
		token = out.NextToken
	}
	r.logger.Debug("listed event buses", "count", len(buses))
	return buses, nil
}

// FetchRules returns every rule on bus with its targets.
// All rule pages are accumulated before targets are fetched; a failed target listing
// leaves that rule with no targets and does not abort the remaining rules.
func (r *Resolver) FetchRules(ctx context.Context, bus string) ([]Rule, error) {
	if bus == "" {
		return nil, ErrNoBusSelected
	}
	logger := r.logger.With("bus", bus)

	rules := []Rule{}
	var token *string
	for {
		out, err := r.api.ListRules(ctx, &eventbridge.ListRulesInput{
			EventBusName: aws.String(bus),
			NextToken:    token,
		})
		if err != nil {
			logger.Error("failed to list rules", slog.Any("error", err))
			return nil, newUpstreamError("ListRules", bus, err)
		}
		for _, rule := range out.Rules {
			rules = append(rules, ruleFromSummary(rule, bus))
		}
		if helpers.String(out.NextToken) == "" {
			break
		}
		token = out.NextToken
	}

	for i := range rules {
		targets, err := r.listTargets(ctx, bus, rules[i].Name)
		if err != nil {
			logger.Warn("failed to list targets", "rule", rules[i].Name, slog.Any("error", err))
			rules[i].Targets = []Target{}
			continue
		}
		rules[i].Targets = targets
	}
	logger.Debug("fetched rules", "count", len(rules))
	return rules, nil
}

// RuleDetail describes a single rule and makes sure its targets are populated.
//
// known is the rule summary already obtained from a listing. When the describe call
// fails, a copy of known without targets is returned; when known is nil the result is
// nil. Both cases are logged rather than returned as errors.
func (r *Resolver) RuleDetail(ctx context.Context, bus, name string, known *Rule) (*Rule, error) {
	if bus == "" {
		return nil, ErrNoBusSelected
	}
	logger := r.logger.With("bus", bus, "rule", name)

	out, err := r.api.DescribeRule(ctx, &eventbridge.DescribeRuleInput{
		Name:         aws.String(name),
		EventBusName: aws.String(bus),
	})
	if err != nil {
		logger.Warn("failed to describe rule", slog.Any("error", err))
		if known == nil {
			return nil, nil //nolint:nilnil
		}
		fallback := *known
		fallback.Targets = []Target{}
		return &fallback, nil
	}

	rule := &Rule{
		Name:               helpers.String(out.Name),
		Arn:                helpers.String(out.Arn),
		EventBusName:       helpers.String(out.EventBusName),
		EventPattern:       helpers.String(out.EventPattern),
		ScheduleExpression: helpers.String(out.ScheduleExpression),
		State:              string(out.State),
		Description:        helpers.String(out.Description),
		Targets:            []Target{},
	}
	if rule.Name == "" {
		rule.Name = name
	}
	if rule.EventBusName == "" {
		rule.EventBusName = bus
	}

	// DescribeRule never reports targets.
	targets, err := r.listTargets(ctx, bus, name)
	if err != nil {
		logger.Warn("failed to list targets", slog.Any("error", err))
		return rule, nil
	}
	rule.Targets = targets
	return rule, nil
}

func (r *Resolver) listTargets(ctx context.Context, bus, rule string) ([]Target, error) {
	targets := []Target{}
	var token *string
	for {
		out, err := r.api.ListTargetsByRule(ctx, &eventbridge.ListTargetsByRuleInput{
			Rule:         aws.String(rule),
			EventBusName: aws.String(bus),
			NextToken:    token,
		})
		if err != nil {
			return nil, newUpstreamError("ListTargetsByRule", bus, err)
		}
		for _, t := range out.Targets {
			targets = append(targets, Target{
				ID:               helpers.String(t.Id),
				Arn:              helpers.String(t.Arn),
				Input:            helpers.String(t.Input),
				InputPath:        helpers.String(t.InputPath),
				InputTransformer: t.InputTransformer,
			})
		}
		if helpers.String(out.NextToken) == "" {
			return targets, nil
		}
		token = out.NextToken
	}
}

func ruleFromSummary(rule types.Rule, bus string) Rule {
	r := Rule{
		Name:               helpers.String(rule.Name),
		Arn:                helpers.String(rule.Arn),
		EventBusName:       helpers.String(rule.EventBusName),
		EventPattern:       helpers.String(rule.EventPattern),
		ScheduleExpression: helpers.String(rule.ScheduleExpression),
		State:              string(rule.State),
		Description:        helpers.String(rule.Description),
	}
	if r.EventBusName == "" {
		r.EventBusName = bus
	}
	return r
}
