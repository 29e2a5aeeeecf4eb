package logs

import (
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the Engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithClock replaces the wall clock used for query polling and default windows.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithPollInterval sets the delay before each query status poll.
func WithPollInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.pollInterval = d
		}
	}
}

// WithMaxPollAttempts bounds the number of query status polls.
func WithMaxPollAttempts(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxPollAttempts = n
		}
	}
}

// WithDefaultWindow sets how far back searches look when no start bound is given.
func WithDefaultWindow(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.defaultWindow = d
		}
	}
}

// WithDefaultLimit sets the search result limit used when a request has none.
func WithDefaultLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultLimit = n
		}
	}
}

// WithStreamPaging sets the stream listing page size and the maximum number of streams returned.
func WithStreamPaging(pageSize, maxStreams int) Option {
	return func(e *Engine) {
		if pageSize > 0 {
			e.streamPageSize = pageSize
		}
		if maxStreams > 0 {
			e.maxStreams = maxStreams
		}
	}
}

// WithStreamEntryLimit sets the number of entries read from a stream when a request has no limit.
func WithStreamEntryLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.streamEntryLimit = n
		}
	}
}
