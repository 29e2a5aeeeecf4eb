package aws

import (
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
)

// ErrorCode returns the AWS API error code carried by err, or an empty string.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// IsNotFound reports whether err is a ResourceNotFoundException.
func IsNotFound(err error) bool {
	return ErrorCode(err) == "ResourceNotFoundException"
}

// Describe renders err for display, preferring the API error code and message over the SDK's operation chain.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return fmt.Sprintf("%s: %s", apiErr.ErrorCode(), msg)
		}
		return apiErr.ErrorCode()
	}
	return err.Error()
}
