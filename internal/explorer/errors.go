package explorer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrExportDisabled is returned by ExportSnapshot when no export destination is configured.
var ErrExportDisabled = errors.New("snapshot export is disabled")

// NotFoundError reports a named resource that does not exist.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Kind, e.Name)
}

// PublishError reports an entry rejected by PutEvents.
type PublishError struct {
	Code    string
	Message string
}

func (e *PublishError) Error() string {
	message := e.Message
	if message == "" {
		message = "No error message"
	}
	return fmt.Sprintf("Error sending event: %s - %s", e.Code, message)
}

// InvalidInputError reports a caller-supplied value the explorer cannot act on.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
