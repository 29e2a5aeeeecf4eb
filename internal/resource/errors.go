package resource

import "fmt"

// ErrorKind classifies a resolution failure.
type ErrorKind string

const (
	MalformedIdentifier  ErrorKind = "MalformedIdentifier"
	UnresolvableResource ErrorKind = "UnresolvableResource"
)

// ResolutionError is returned when a target ARN cannot be turned into a resource identifier.
type ResolutionError struct {
	Kind   ErrorKind
	ID     string
	Reason string
}

func (e *ResolutionError) Error() string {
	switch e.Kind {
	case MalformedIdentifier:
		return fmt.Sprintf("invalid ARN format: %s (%s)", e.ID, e.Reason)
	default:
		return fmt.Sprintf("could not extract resource ID from ARN: %s", e.ID)
	}
}
