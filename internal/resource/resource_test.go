package resource_test

import (
	"testing"

	"github.com/isometry/eventbridge-explorer/internal/resource"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		Name        string
		Input       string
		Service     string
		ResourceID  string
		ErrKind     resource.ErrorKind
		ExpectError bool
	}{
		{
			Name:       "lambda_function",
			Input:      "arn:aws:lambda:us-east-1:123456789012:function:myFn",
			Service:    "lambda",
			ResourceID: "myFn",
		},
		{
			Name:       "lambda_function_with_alias",
			Input:      "arn:aws:lambda:us-east-1:123456789012:function:myFn:prod",
			Service:    "lambda",
			ResourceID: "myFn",
		},
		{
			Name:        "lambda_without_function_name",
			Input:       "arn:aws:lambda:us-east-1:123456789012:function",
			ExpectError: true,
			ErrKind:     resource.MalformedIdentifier,
		},
		{
			Name:        "missing_arn_prefix",
			Input:       "aws:lambda:us-east-1:123456789012:function:myFn",
			ExpectError: true,
			ErrKind:     resource.MalformedIdentifier,
		},
		{
			Name:       "state_machine",
			Input:      "arn:aws:states:eu-west-1:123456789012:stateMachine:Orders",
			Service:    "states",
			ResourceID: "Orders",
		},
		{
			Name:        "state_machine_without_name",
			Input:       "arn:aws:states:eu-west-1:123456789012:stateMachine",
			ExpectError: true,
			ErrKind:     resource.MalformedIdentifier,
		},
		{
			Name:       "sqs_queue",
			Input:      "arn:aws:sqs:us-east-1:123456789012:orders-queue",
			Service:    "sqs",
			ResourceID: "orders-queue",
		},
		{
			Name:       "slash_delimited_resource",
			Input:      "arn:aws:events:us-east-1:123456789012:event-bus/orders",
			Service:    "events",
			ResourceID: "orders",
		},
		{
			Name:        "too_few_segments",
			Input:       "arn:aws:sqs:us-east-1:123456789012",
			ExpectError: true,
			ErrKind:     resource.MalformedIdentifier,
		},
		{
			Name:        "not_an_arn",
			Input:       "myFn",
			ExpectError: true,
			ErrKind:     resource.MalformedIdentifier,
		},
		{
			Name:        "empty_resource",
			Input:       "arn:aws:sqs:us-east-1:123456789012:",
			ExpectError: true,
			ErrKind:     resource.UnresolvableResource,
		},
		{
			Name:        "empty_lambda_name",
			Input:       "arn:aws:lambda:us-east-1:123456789012:function:",
			ExpectError: true,
			ErrKind:     resource.UnresolvableResource,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			id, err := resource.Resolve(tc.Input)
			if tc.ExpectError {
				require.Error(t, err)
				var resErr *resource.ResolutionError
				require.True(t, errors.As(err, &resErr))
				assert.Equal(t, tc.ErrKind, resErr.Kind)
				assert.Equal(t, tc.Input, resErr.ID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Service, id.Service)
			assert.Equal(t, tc.ResourceID, id.ResourceID)
			assert.Equal(t, tc.Input, id.Raw)
		})
	}
}

func TestLogLocation(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		LogGroup string
		Support  resource.Support
	}{
		{
			Name:     "lambda",
			Input:    "arn:aws:lambda:us-east-1:123456789012:function:myFn:prod",
			LogGroup: "/aws/lambda/myFn",
			Support:  resource.Supported,
		},
		{
			Name:     "states",
			Input:    "arn:aws:states:us-east-1:123456789012:stateMachine:Orders",
			LogGroup: "/aws/states/Orders",
			Support:  resource.Supported,
		},
		{
			Name:    "sqs",
			Input:   "arn:aws:sqs:us-east-1:123456789012:orders-queue",
			Support: resource.NotSupported,
		},
		{
			Name:    "sns",
			Input:   "arn:aws:sns:us-east-1:123456789012:topic",
			Support: resource.NotSupported,
		},
		{
			Name:    "kinesis",
			Input:   "arn:aws:kinesis:us-east-1:123456789012:stream/clicks",
			Support: resource.NotImplemented,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			loc, err := resource.Locate(tc.Input)
			require.NoError(t, err)
			assert.Equal(t, tc.Support, loc.Support)
			assert.Equal(t, tc.LogGroup, loc.LogGroup)
			if tc.Support == resource.Supported {
				assert.Empty(t, loc.Message())
			} else {
				assert.NotEmpty(t, loc.Message())
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "myFn", resource.DisplayName("arn:aws:lambda:us-east-1:123456789012:function:myFn", "T1"))
	assert.Equal(t, "T1", resource.DisplayName("arn:aws:sqs:us-east-1:123456789012:orders-queue", "T1"))
	assert.Equal(t, "T1", resource.DisplayName("garbage", "T1"))
}
