package runtime

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/eventbridge-explorer/internal/models"
	"github.com/pkg/errors"
)

// Lambda payload types.
const (
	PayloadAPIGatewayV1 = "api-gateway-v1"
	PayloadAPIGatewayV2 = "api-gateway-v2"
	PayloadLambdaURL    = "lambda-url"
)

// Lambda is the Lambda handler for the runtime. The event shape is selected by the configured payload type.
func (r *Runtime) Lambda(ctx context.Context, payload json.RawMessage) (any, error) {
	logger := r.logger.With("payload_type", r.payloadType)
	logger.Debug("received Lambda invocation")

	switch r.payloadType {
	case PayloadAPIGatewayV1:
		var req events.APIGatewayProxyRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v1 request")
		}
		body, err := decodeBody(req.Body, req.IsBase64Encoded)
		if err != nil {
			return nil, err
		}
		resp := r.Handle(ctx, models.Request{
			Method:  req.HTTPMethod,
			Path:    req.Path,
			Query:   req.QueryStringParameters,
			Body:    body,
			Headers: lowerKeys(req.Headers),
		})
		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	case PayloadAPIGatewayV2:
		var req events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode API Gateway v2 request")
		}
		body, err := decodeBody(req.Body, req.IsBase64Encoded)
		if err != nil {
			return nil, err
		}
		resp := r.Handle(ctx, models.Request{
			Method:  req.RequestContext.HTTP.Method,
			Path:    req.RawPath,
			Query:   req.QueryStringParameters,
			Body:    body,
			Headers: lowerKeys(req.Headers),
		})
		return events.APIGatewayV2HTTPResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	case PayloadLambdaURL:
		var req events.LambdaFunctionURLRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, errors.Wrap(err, "failed to decode Lambda function URL request")
		}
		body, err := decodeBody(req.Body, req.IsBase64Encoded)
		if err != nil {
			return nil, err
		}
		resp := r.Handle(ctx, models.Request{
			Method:  req.RequestContext.HTTP.Method,
			Path:    req.RawPath,
			Query:   req.QueryStringParameters,
			Body:    body,
			Headers: lowerKeys(req.Headers),
		})
		return events.LambdaFunctionURLResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	default:
		logger.Error("unsupported lambda payload type")
		return nil, fmt.Errorf("unsupported lambda payload type: %s", r.payloadType)
	}
}

func decodeBody(body string, encoded bool) (string, error) {
	if !encoded {
		return body, nil
	}
	raw, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return "", errors.Wrap(err, "failed to decode base64 request body")
	}
	return string(raw), nil
}

// lowerKeys lower-cases header names; API Gateway v1 preserves the client's casing.
func lowerKeys(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[strings.ToLower(k)] = v
	}
	return out
}
