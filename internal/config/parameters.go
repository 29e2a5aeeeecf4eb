// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

// Runtime modes.
const (
	ModeService = "service"
	ModeLambda  = "lambda"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// AWS is a struct that contains the AWS client configuration.
	AWS awsConfig
	// Discovery is a struct that contains the configuration for bus, rule and target discovery.
	Discovery discovery
	// Logs is a struct that contains the configuration for log search and browsing.
	Logs logs
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
	// Export is a struct that contains the configuration for snapshot export.
	Export export
	// Publish is a struct that contains the configuration for test message publishing.
	Publish publish
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"service"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type awsConfig struct {
	// Region overrides the region resolved from the environment.
	Region string `yaml:"region,omitempty"`
	// Profile selects a shared configuration profile.
	Profile string `yaml:"profile,omitempty"`
}

type discovery struct {
	// RateLimit is the sustained number of AWS calls per second. Zero disables throttling.
	RateLimit float64 `yaml:"rateLimit,omitempty" default:"10"`
	// Burst is the number of calls allowed above the sustained rate.
	Burst int `yaml:"burst,omitempty" default:"20"`
}

type logs struct {
	DefaultWindow    time.Duration `yaml:"defaultWindow,omitempty" default:"720h"`
	DefaultLimit     int           `yaml:"defaultLimit,omitempty" default:"10"`
	PollInterval     time.Duration `yaml:"pollInterval,omitempty" default:"1s"`
	MaxPollAttempts  int           `yaml:"maxPollAttempts,omitempty" default:"20"`
	StreamPageSize   int           `yaml:"streamPageSize,omitempty" default:"50"`
	MaxStreams       int           `yaml:"maxStreams,omitempty" default:"100"`
	StreamEntryLimit int           `yaml:"streamEntryLimit,omitempty" default:"100"`
}

type service struct {
	Addr            string        `yaml:"addr,omitempty"`
	Port            string        `yaml:"port,omitempty" default:"8080"`
	Timeout         time.Duration `yaml:"timeout,omitempty" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout,omitempty" default:"10s"`
	// SessionTTL is the idle time after which a session is discarded.
	SessionTTL time.Duration `yaml:"sessionTTL,omitempty" default:"12h"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

type export struct {
	S3 struct {
		Enabled    bool   `yaml:"enabled,omitempty"`
		BucketName string `yaml:"bucketName,omitempty"`
		Prefix     string `yaml:"prefix,omitempty" default:"eventbridge-explorer"`
	} `yaml:"s3,omitempty"`
}

type publish struct {
	// Disabled rejects test message publishing.
	Disabled   bool   `yaml:"disabled,omitempty"`
	Bus        string `yaml:"bus,omitempty" default:"default"`
	Source     string `yaml:"source,omitempty" default:"test.event"`
	DetailType string `yaml:"detailType,omitempty" default:"Test Event"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&AWS),
		defaults.Set(&Discovery),
		defaults.Set(&Logs),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
		defaults.Set(&Export),
		defaults.Set(&Publish),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global    global    `yaml:"global,omitempty"`
		AWS       awsConfig `yaml:"aws,omitempty"`
		Discovery discovery `yaml:"discovery,omitempty"`
		Logs      logs      `yaml:"logs,omitempty"`
		Service   service   `yaml:"service,omitempty"`
		Lambda    lambda    `yaml:"lambda,omitempty"`
		Export    export    `yaml:"export,omitempty"`
		Publish   publish   `yaml:"publish,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	AWS = a.AWS
	Discovery = a.Discovery
	Logs = a.Logs
	Service = a.Service
	Lambda = a.Lambda
	Export = a.Export
	Publish = a.Publish

	return nil
}
