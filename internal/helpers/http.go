package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/isometry/eventbridge-explorer/internal/models"
)

// Envelope wraps data in the uniform response body. A non-nil err marks the response
// as unsuccessful and, when message is empty, supplies it.
func Envelope(data any, message string, err error) models.Envelope {
	env := models.Envelope{Success: err == nil, Message: message, Data: data}
	if err != nil && message == "" {
		env.Message = err.Error()
	}
	return env
}

// JSONResponse encodes body as the JSON payload of a response with the given status code.
func JSONResponse(statusCode int, body any, headers map[string]string) models.Response {
	payload, err := json.Marshal(body)
	if err != nil {
		statusCode = http.StatusInternalServerError
		payload, _ = json.Marshal(Envelope(nil, "failed to encode response", err))
	}
	h := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		h[k] = v
	}
	return models.Response{Body: string(payload), Headers: h, StatusCode: statusCode}
}

// RespondHTTP writes response to rw. When err is set and the response has no body, an
// error envelope is written instead.
func RespondHTTP(response models.Response, err error, rw http.ResponseWriter) {
	if err != nil && response.Body == "" {
		statusCode := response.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusInternalServerError
		}
		response = JSONResponse(statusCode, Envelope(nil, "", err), response.Headers)
	}

	statusCode := response.StatusCode
	if statusCode == 0 {
		statusCode = http.StatusOK
	}
	for k, v := range response.Headers {
		rw.Header().Set(k, v)
	}
	rw.WriteHeader(statusCode)
	_, _ = rw.Write([]byte(response.Body))
}
