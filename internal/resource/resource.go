// Package resource resolves target ARNs into the service, resource identifier and CloudWatch Logs location they map to.
package resource

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
)

const (
	ServiceLambda = "lambda"
	ServiceStates = "states"
	ServiceSQS    = "sqs"
	ServiceSNS    = "sns"
)

// Identifier is a parsed target ARN.
type Identifier struct {
	Partition  string `json:"partition"`
	Service    string `json:"service"`
	Region     string `json:"region"`
	Account    string `json:"account"`
	ResourceID string `json:"resource_id"`
	Raw        string `json:"arn"`
}

// Resolve parses a target ARN and extracts the resource identifier logs are keyed by.
//
// Lambda functions and Step Functions state machines carry their name in the seventh
// colon-delimited segment; qualifiers after it are ignored. Any other service uses the
// last slash-delimited component of the sixth segment. The identifier must be a full
// ARN starting with "arn:"; anything else is a MalformedIdentifier.
func Resolve(id string) (Identifier, error) {
	parsed, err := arn.Parse(id)
	if err != nil {
		return Identifier{}, &ResolutionError{Kind: MalformedIdentifier, ID: id, Reason: err.Error()}
	}

	sections := strings.Split(parsed.Resource, ":")
	var resourceID string
	switch parsed.Service {
	case ServiceLambda, ServiceStates:
		if len(sections) < 2 {
			return Identifier{}, &ResolutionError{
				Kind:   MalformedIdentifier,
				ID:     id,
				Reason: fmt.Sprintf("%s ARN has no resource name segment", parsed.Service),
			}
		}
		resourceID = sections[1]
	default:
		resourceID = sections[0]
		if i := strings.LastIndex(resourceID, "/"); i >= 0 {
			resourceID = resourceID[i+1:]
		}
	}

	if resourceID == "" {
		return Identifier{}, &ResolutionError{Kind: UnresolvableResource, ID: id, Reason: "empty resource identifier"}
	}

	return Identifier{
		Partition:  parsed.Partition,
		Service:    parsed.Service,
		Region:     parsed.Region,
		Account:    parsed.AccountID,
		ResourceID: resourceID,
		Raw:        id,
	}, nil
}

// DisplayName returns the Lambda function name for function ARNs and fallback for anything else.
func DisplayName(targetArn, fallback string) string {
	id, err := Resolve(targetArn)
	if err != nil || id.Service != ServiceLambda {
		return fallback
	}
	return id.ResourceID
}
