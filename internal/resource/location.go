package resource

import "fmt"

// Support describes whether a service's logs can be located.
type Support string

const (
	Supported      Support = "Supported"
	NotSupported   Support = "NotSupported"
	NotImplemented Support = "NotImplemented"
)

// Location is the CloudWatch Logs location of a resolved target.
// LogGroup is only set when Support is Supported.
type Location struct {
	Identifier
	LogGroup string  `json:"log_group,omitempty"`
	Support  Support `json:"support"`
}

// LogLocation maps an identifier onto the log group its service writes to.
func LogLocation(id Identifier) Location {
	loc := Location{Identifier: id, Support: Supported}
	switch id.Service {
	case ServiceLambda:
		loc.LogGroup = "/aws/lambda/" + id.ResourceID
	case ServiceStates:
		loc.LogGroup = "/aws/states/" + id.ResourceID
	case ServiceSQS, ServiceSNS:
		loc.Support = NotSupported
	default:
		loc.Support = NotImplemented
	}
	return loc
}

// Locate resolves a target ARN and returns its log location in one step.
func Locate(targetArn string) (Location, error) {
	id, err := Resolve(targetArn)
	if err != nil {
		return Location{}, err
	}
	return LogLocation(id), nil
}

// Message explains why a location has no log group.
func (l Location) Message() string {
	switch l.Support {
	case Supported:
		return ""
	case NotSupported:
		switch l.Service {
		case ServiceSQS:
			return "CloudWatch logs not directly available for SQS. Check CloudWatch metrics instead."
		case ServiceSNS:
			return "CloudWatch logs not directly available for SNS. Check CloudWatch metrics instead."
		}
		return fmt.Sprintf("CloudWatch logs not directly available for %s", l.Service)
	default:
		return fmt.Sprintf("log retrieval not implemented for service: %s", l.Service)
	}
}
