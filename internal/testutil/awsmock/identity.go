package awsmock

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/mock"
)

// Identity mocks aws.IdentityAPI.
type Identity struct {
	mock.Mock
}

func (m *Identity) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sts.GetCallerIdentityOutput)
	return out, args.Error(1)
}

// Objects mocks aws.ObjectAPI.
type Objects struct {
	mock.Mock
}

func (m *Objects) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

// APIError returns a smithy API error with the given code and message.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}
