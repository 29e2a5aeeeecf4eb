// Package capabilities holds the feature switches resolved from configuration at startup.
package capabilities

import "github.com/isometry/eventbridge-explorer/internal/config"

// Global is a struct that contains the global capabilities.
var Global = struct {
	// S3 is a struct that contains the capabilities available when interacting with S3.
	S3 struct {
		Export struct {
			BucketName string
			Prefix     string
			Enabled    bool
		}
	}
}{}

// Publish is a struct that contains the capabilities of the test message publisher.
var Publish = struct {
	Enabled                 bool
	Bus, Source, DetailType string
}{}

// Load resolves the capabilities from the current configuration.
func Load() {
	Global.S3.Export.Enabled = config.Export.S3.Enabled && config.Export.S3.BucketName != ""
	Global.S3.Export.BucketName = config.Export.S3.BucketName
	Global.S3.Export.Prefix = config.Export.S3.Prefix

	Publish.Enabled = !config.Publish.Disabled
	Publish.Bus = config.Publish.Bus
	Publish.Source = config.Publish.Source
	Publish.DetailType = config.Publish.DetailType
}
