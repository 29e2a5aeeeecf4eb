package aws

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"golang.org/x/time/rate"
)

// WithLogger sets a custom slog.Logger instance for the Controller struct to use for logging operations.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Controller) {
		a.logger = logger
	}
}

// WithContext sets the context used while loading the AWS configuration.
func WithContext(ctx context.Context) Option {
	return func(a *Controller) {
		a.ctx = ctx
	}
}

// WithConfig uses an already loaded AWS configuration instead of the default credential chain.
func WithConfig(cfg aws.Config) Option {
	return func(a *Controller) {
		a.config = &cfg
	}
}

// WithRegion overrides the region of the default configuration.
func WithRegion(region string) Option {
	return func(a *Controller) {
		a.region = region
	}
}

// WithProfile selects a shared configuration profile.
func WithProfile(profile string) Option {
	return func(a *Controller) {
		a.profile = profile
	}
}

// WithRateLimit throttles discovery and log calls to perSecond requests with the given burst.
// A non-positive perSecond disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(a *Controller) {
		a.limiter = newLimiter(perSecond, burst)
	}
}

// WithEventsAPI injects the EventBridge API implementation.
func WithEventsAPI(api EventsAPI) Option {
	return func(a *Controller) {
		a.events = api
	}
}

// WithLogsAPI injects the CloudWatch Logs API implementation.
func WithLogsAPI(api LogsAPI) Option {
	return func(a *Controller) {
		a.logs = api
	}
}

// WithIdentityAPI injects the STS API implementation.
func WithIdentityAPI(api IdentityAPI) Option {
	return func(a *Controller) {
		a.identity = api
	}
}

// WithObjectAPI injects the S3 API implementation.
func WithObjectAPI(api ObjectAPI) Option {
	return func(a *Controller) {
		a.objects = api
	}
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}
