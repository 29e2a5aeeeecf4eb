// Package explorer exposes the operations of the EventBridge explorer: bus and rule discovery,
// topology graphs, target log search and browsing, test publishing and snapshot export.
package explorer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/benbjohnson/clock"
	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/logs"
	"github.com/isometry/eventbridge-explorer/internal/topology"
)

const (
	DefaultBus        = "default"
	DefaultSource     = "test.event"
	DefaultDetailType = "Test Event"

	busPrefix = "Event Bus:"
)

// Backend is the set of AWS capabilities the explorer depends on.
type Backend interface {
	Events() awsctl.EventsAPI
	Logs() awsctl.LogsAPI
	Region() string
	Identity(ctx context.Context) (*awsctl.Identity, error)
	PutS3Object(ctx context.Context, bucket, key string, body []byte) error
}

// Explorer ties the topology resolver and the log engine to a Backend.
// It holds no per-caller state: selections live in the session passed to each call.
type Explorer struct {
	logger  *slog.Logger
	clock   clock.Clock
	backend Backend

	resolver *topology.Resolver
	engine   *logs.Engine
	logsOpts []logs.Option

	publish struct {
		bus, source, detailType string
	}
	export struct {
		bucket, prefix string
	}
}

// Option configures an Explorer.
type Option func(*Explorer)

// NewExplorer returns an Explorer backed by b.
func NewExplorer(b Backend, opts ...Option) *Explorer {
	_inst := &Explorer{backend: b}
	_inst.publish.bus = DefaultBus
	_inst.publish.source = DefaultSource
	_inst.publish.detailType = DefaultDetailType
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.clock == nil {
		_inst.clock = clock.New()
	}

	_inst.resolver = topology.NewResolver(b.Events(),
		topology.WithLogger(_inst.logger.With("component", "topology")))
	engineOpts := append([]logs.Option{
		logs.WithLogger(_inst.logger.With("component", "logs")),
		logs.WithClock(_inst.clock),
	}, _inst.logsOpts...)
	_inst.engine = logs.NewEngine(b.Logs(), engineOpts...)
	return _inst
}

// NormalizeBusName trims whitespace and the legacy "Event Bus:" display prefix from a bus name.
func NormalizeBusName(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, busPrefix) {
		name = strings.TrimSpace(strings.ReplaceAll(name, busPrefix, ""))
	}
	return name
}
