// Package aws provides the Controller struct that wraps the EventBridge, CloudWatch Logs, STS and S3 clients with throttling and logging support.
package aws

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go/logging"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// Controller holds the AWS service clients used by the explorer.
// Discovery and log calls issued through Events and Logs share a single rate limiter.
type Controller struct {
	ctx    context.Context
	logger *slog.Logger

	config  *aws.Config
	region  string
	profile string
	limiter *rate.Limiter

	events   EventsAPI
	logs     LogsAPI
	identity IdentityAPI
	objects  ObjectAPI
}

// Option defines a function type used to configure an instance of the Controller struct.
type Option func(*Controller)

// Identity is the account and principal behind the active credentials.
type Identity struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserID  string `json:"user_id"`
	Region  string `json:"region,omitempty"`
}

// NewController initializes a Controller with customizable options and default configurations if unspecified.
// The default AWS configuration is only loaded when at least one client has not been injected.
func NewController(opts ...Option) (*Controller, error) {
	_inst := &Controller{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	_inst.logger = _inst.logger.With("controller", "aws")
	if _inst.ctx == nil {
		_inst.ctx = context.Background()
	}
	if _inst.limiter == nil {
		_inst.limiter = rate.NewLimiter(rate.Inf, 0)
	}

	needsConfig := _inst.events == nil || _inst.logs == nil || _inst.identity == nil || _inst.objects == nil
	if _inst.config == nil && needsConfig {
		_inst.logger.Debug("loading default AWS configuration...", "region", _inst.region, "profile", _inst.profile)
		var loadOpts []func(*config.LoadOptions) error
		if _inst.region != "" {
			loadOpts = append(loadOpts, config.WithRegion(_inst.region))
		}
		if _inst.profile != "" {
			loadOpts = append(loadOpts, config.WithSharedConfigProfile(_inst.profile))
		}
		cfg, err := config.LoadDefaultConfig(_inst.ctx, loadOpts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load AWS configuration")
		}
		cfg.Logger = newAWSLogger(_inst.logger)
		_inst.config = &cfg
	}

	if _inst.events == nil {
		_inst.events = eventbridge.NewFromConfig(*_inst.config)
	}
	if _inst.logs == nil {
		_inst.logs = cloudwatchlogs.NewFromConfig(*_inst.config)
	}
	if _inst.identity == nil {
		_inst.identity = sts.NewFromConfig(*_inst.config)
	}
	if _inst.objects == nil {
		_inst.objects = s3.NewFromConfig(*_inst.config)
	}

	_inst.events = &throttledEvents{api: _inst.events, limiter: _inst.limiter, logger: _inst.logger}
	_inst.logs = &throttledLogs{api: _inst.logs, limiter: _inst.limiter, logger: _inst.logger}
	return _inst, nil
}

// Events returns the throttled EventBridge API.
func (a *Controller) Events() EventsAPI {
	return a.events
}

// Logs returns the throttled CloudWatch Logs API.
func (a *Controller) Logs() LogsAPI {
	return a.logs
}

// Region returns the configured region, if any.
func (a *Controller) Region() string {
	if a.config != nil && a.config.Region != "" {
		return a.config.Region
	}
	return a.region
}

// Identity returns the caller identity of the active credentials.
func (a *Controller) Identity(ctx context.Context) (*Identity, error) {
	a.logger.Debug("fetching caller identity...")
	out, err := a.identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get caller identity")
	}
	return &Identity{
		Account: helpers.String(out.Account),
		Arn:     helpers.String(out.Arn),
		UserID:  helpers.String(out.UserId),
		Region:  a.Region(),
	}, nil
}

// PutS3Object uploads a JSON document to the specified S3 bucket under key.
// Returns an error if the S3 upload fails or if the bucket name is empty.
func (a *Controller) PutS3Object(ctx context.Context, bucket, key string, body []byte) error {
	if bucket == "" {
		return errors.New("no S3 bucket configured")
	}
	a.logger.Debug("uploading object to S3...", "bucket", bucket, "key", key, "size", len(body))
	_, err := a.objects.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Wrapf(err, "failed to put object %s to S3 bucket %s", key, bucket)
	}
	return nil
}

type awsLogger struct {
	logger *slog.Logger
}

func newAWSLogger(logger *slog.Logger) *awsLogger {
	return &awsLogger{logger}
}

func (a *awsLogger) Logf(classification logging.Classification, format string, args ...any) {
	msg := fmt.Sprintf("[%v] %s", classification, fmt.Sprintf(format, args...))
	if classification == logging.Warn {
		a.logger.Warn(msg)
		return
	}
	a.logger.Debug(msg)
}
