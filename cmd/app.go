package cmd

import (
	"github.com/isometry/eventbridge-explorer/internal/capabilities"
	"github.com/isometry/eventbridge-explorer/internal/config"
	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/isometry/eventbridge-explorer/internal/explorer"
	"github.com/isometry/eventbridge-explorer/internal/logs"
	"github.com/isometry/eventbridge-explorer/internal/runtime"
	"github.com/isometry/eventbridge-explorer/internal/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newExplorer(cmd *cobra.Command) (*explorer.Explorer, error) {
	logger.Debug("creating AWS controller...", "region", config.AWS.Region, "profile", config.AWS.Profile)
	ctl, err := awsctl.NewController(
		awsctl.WithContext(cmd.Context()),
		awsctl.WithRegion(config.AWS.Region),
		awsctl.WithProfile(config.AWS.Profile),
		awsctl.WithRateLimit(config.Discovery.RateLimit, config.Discovery.Burst),
		awsctl.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS controller")
	}

	opts := []explorer.Option{
		explorer.WithLogger(logger.With("component", "explorer")),
		explorer.WithLogsOptions(
			logs.WithDefaultWindow(config.Logs.DefaultWindow),
			logs.WithDefaultLimit(config.Logs.DefaultLimit),
			logs.WithPollInterval(config.Logs.PollInterval),
			logs.WithMaxPollAttempts(config.Logs.MaxPollAttempts),
			logs.WithStreamPaging(config.Logs.StreamPageSize, config.Logs.MaxStreams),
			logs.WithStreamEntryLimit(config.Logs.StreamEntryLimit)),
		explorer.WithPublishDefaults(capabilities.Publish.Bus, capabilities.Publish.Source, capabilities.Publish.DetailType),
	}
	if capabilities.Global.S3.Export.Enabled {
		opts = append(opts, explorer.WithExport(capabilities.Global.S3.Export.BucketName, capabilities.Global.S3.Export.Prefix))
	}
	return explorer.NewExplorer(ctl, opts...), nil
}

func newRuntime(cmd *cobra.Command) (*runtime.Runtime, error) {
	exp, err := newExplorer(cmd)
	if err != nil {
		return nil, err
	}
	logger.Debug("creating runtime...")
	store := session.NewStore(
		session.WithTTL(config.Service.SessionTTL),
		session.WithLogger(logger.With("component", "sessions")))
	return runtime.NewRuntime(exp,
		runtime.WithSessionStore(store),
		runtime.WithLambdaPayloadType(config.Lambda.PayloadType),
		runtime.WithPublishEnabled(capabilities.Publish.Enabled),
		runtime.WithLogger(logger.With("component", "runtime"))), nil
}
