package cmd

import (
	"time"

	"github.com/isometry/eventbridge-explorer/internal/config"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Global.Mode: {
		Name:        "mode",
		Description: "The application runtime mode. Possible values are 'lambda' and 'service'",
		Short:       helpers.Ptr("m"),
	},
	&config.AWS.Region: {
		Name:        "aws-region",
		Description: "The AWS region to explore. Defaults to the region resolved from the environment",
		Env:         helpers.Ptr("AWS_REGION"),
		Short:       helpers.Ptr("r"),
	},
	&config.AWS.Profile: {
		Name:        "aws-profile",
		Description: "The shared configuration profile to use",
		Env:         helpers.Ptr("AWS_PROFILE"),
	},
	&config.Export.S3.BucketName: {
		Name:        "export-s3-bucket",
		Description: "The S3 bucket that graph and log snapshots are exported to",
		Env:         helpers.Ptr("EXPLORER_EXPORT_S3_BUCKET"),
	},
	&config.Export.S3.Prefix: {
		Name:        "export-s3-prefix",
		Description: "The key prefix of exported snapshots",
	},
	&config.Publish.Bus: {
		Name:        "publish-bus",
		Description: "The default event bus of published test messages",
	},
	&config.Publish.Source: {
		Name:        "publish-source",
		Description: "The default source of published test messages",
	},
	&config.Publish.DetailType: {
		Name:        "publish-detail-type",
		Description: "The default detail-type of published test messages",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Export.S3.Enabled: {
		Name:        "export-s3",
		Description: "Enable S3 export of graph and log snapshots",
		Env:         helpers.Ptr("EXPLORER_EXPORT_S3"),
	},
	&config.Publish.Disabled: {
		Name:        "publish-disabled",
		Description: "Reject test message publishing",
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
		Count:       true,
	},
}

var envMapInt = map[*int]boundEnvVar[int]{
	&config.Discovery.Burst: {
		Name:        "discovery-burst",
		Description: "The number of AWS calls allowed above the sustained rate",
	},
	&config.Logs.DefaultLimit: {
		Name:        "logs-default-limit",
		Description: "The number of log entries returned when a search sets no limit",
	},
	&config.Logs.MaxPollAttempts: {
		Name:        "logs-max-poll-attempts",
		Description: "The number of times a Logs Insights query is polled before it is reported as timed out",
	},
	&config.Logs.StreamPageSize: {
		Name:        "logs-stream-page-size",
		Description: "The page size used when listing log streams",
		Hidden:      true,
	},
	&config.Logs.MaxStreams: {
		Name:        "logs-max-streams",
		Description: "The maximum number of log streams listed for a target",
	},
	&config.Logs.StreamEntryLimit: {
		Name:        "logs-stream-entry-limit",
		Description: "The number of entries read from a log stream when no limit is set",
	},
}

var envMapFloat = map[*float64]boundEnvVar[float64]{
	&config.Discovery.RateLimit: {
		Name:        "discovery-rate-limit",
		Description: "The sustained number of AWS calls per second. Zero disables throttling",
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Logs.DefaultWindow: {
		Name:        "logs-default-window",
		Description: "How far back a log search looks when no time window is given",
	},
	&config.Logs.PollInterval: {
		Name:        "logs-poll-interval",
		Description: "The delay between two polls of a Logs Insights query",
	},
}
