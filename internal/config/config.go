package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// PayloadTypes are the Lambda event shapes the runtime understands.
var PayloadTypes = []string{"api-gateway-v1", "api-gateway-v2", "lambda-url"}

// Validate reports every inconsistent setting at once.
func Validate() error {
	var errs []error
	switch strings.TrimSpace(Global.Mode) {
	case ModeService, ModeLambda:
	default:
		errs = append(errs, fmt.Errorf("invalid mode %q: expected %q or %q", Global.Mode, ModeService, ModeLambda))
	}
	if !slices.Contains(PayloadTypes, Lambda.PayloadType) {
		errs = append(errs, fmt.Errorf("unsupported lambda payload type %q", Lambda.PayloadType))
	}
	if Discovery.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("discovery rate limit must not be negative, got %v", Discovery.RateLimit))
	}
	if Discovery.Burst < 0 {
		errs = append(errs, fmt.Errorf("discovery burst must not be negative, got %d", Discovery.Burst))
	}
	if Logs.PollInterval < 0 {
		errs = append(errs, fmt.Errorf("logs poll interval must not be negative, got %s", Logs.PollInterval))
	}
	if Export.S3.Enabled && Export.S3.BucketName == "" {
		errs = append(errs, errors.New("snapshot export is enabled but no S3 bucket is configured"))
	}
	return errors.Join(errs...)
}
