package explorer

import (
	"log/slog"
	"strings"

	"github.com/benbjohnson/clock"
	"github.com/isometry/eventbridge-explorer/internal/logs"
)

// WithLogger sets the logger instance for the explorer.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explorer) {
		e.logger = logger
	}
}

// WithClock replaces the clock shared by the explorer and its log engine.
func WithClock(c clock.Clock) Option {
	return func(e *Explorer) {
		e.clock = c
	}
}

// WithLogsOptions forwards options to the log engine.
func WithLogsOptions(opts ...logs.Option) Option {
	return func(e *Explorer) {
		e.logsOpts = append(e.logsOpts, opts...)
	}
}

// WithPublishDefaults overrides the bus, source and detail-type used for test messages that omit them.
func WithPublishDefaults(bus, source, detailType string) Option {
	return func(e *Explorer) {
		if bus != "" {
			e.publish.bus = bus
		}
		if source != "" {
			e.publish.source = source
		}
		if detailType != "" {
			e.publish.detailType = detailType
		}
	}
}

// WithExport enables snapshot export to the given S3 bucket under prefix.
func WithExport(bucket, prefix string) Option {
	return func(e *Explorer) {
		e.export.bucket = bucket
		e.export.prefix = strings.Trim(prefix, "/")
	}
}
