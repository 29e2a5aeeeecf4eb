package topology

import (
	"fmt"

	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/pkg/errors"
)

// ErrNoBusSelected is returned when a discovery call is made without a bus name.
var ErrNoBusSelected = errors.New("no event bus selected or provided")

// UpstreamError carries the rendered message of a failed EventBridge call.
type UpstreamError struct {
	Op      string
	Bus     string
	Message string
	Code    string
}

func newUpstreamError(op, bus string, err error) *UpstreamError {
	return &UpstreamError{
		Op:      op,
		Bus:     bus,
		Message: awsctl.Describe(err),
		Code:    awsctl.ErrorCode(err),
	}
}

func (e *UpstreamError) Error() string {
	if e.Bus == "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s failed for event bus %s: %s", e.Op, e.Bus, e.Message)
}
