package helpers_test

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/models"
	"github.com/stretchr/testify/assert"
)

type testCase struct {
	Name     string
	Response models.Response
	Error    error
	Expected expectedResponse
}

type expectedResponse struct {
	StatusCode int
	Body       string
	Header     string
}

func TestRespondHTTP(t *testing.T) {
	testCases := []testCase{
		{
			Name:     "with_valid_response_and_no_error",
			Response: helpers.JSONResponse(http.StatusOK, helpers.Envelope([]string{"default"}, "", nil), nil),
			Expected: expectedResponse{
				StatusCode: http.StatusOK,
				Body:       `{"success":true,"data":["default"]}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "with_error_envelope",
			Response: helpers.JSONResponse(http.StatusNotFound, helpers.Envelope(nil, "", errors.New("Event bus 'x' not found")), nil),
			Expected: expectedResponse{
				StatusCode: http.StatusNotFound,
				Body:       `{"success":false,"message":"Event bus 'x' not found"}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "with_empty_response_and_no_error",
			Response: models.Response{},
			Expected: expectedResponse{
				StatusCode: http.StatusOK,
				Body:       "",
				Header:     "",
			},
		},
		{
			Name:     "with_empty_response_and_error",
			Response: models.Response{},
			Error:    errors.New("internal Server Error"),
			Expected: expectedResponse{
				StatusCode: http.StatusInternalServerError,
				Body:       `{"success":false,"message":"internal Server Error"}`,
				Header:     "application/json",
			},
		},
		{
			Name:     "with_status_and_error",
			Response: models.Response{StatusCode: http.StatusMethodNotAllowed},
			Error:    errors.New("method not allowed"),
			Expected: expectedResponse{
				StatusCode: http.StatusMethodNotAllowed,
				Body:       `{"success":false,"message":"method not allowed"}`,
				Header:     "application/json",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			rw := httptest.NewRecorder()

			helpers.RespondHTTP(tc.Response, tc.Error, rw)

			assert.Equal(t, tc.Expected.StatusCode, rw.Code)
			assert.Equal(t, tc.Expected.Header, rw.Header().Get("Content-Type"))
			assert.Equal(t, tc.Expected.Body, rw.Body.String())
		})
	}
}

func TestJSONResponseHeaders(t *testing.T) {
	resp := helpers.JSONResponse(http.StatusCreated, map[string]int{"n": 1}, map[string]string{"X-Session-Id": "abc"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "abc", resp.Headers["X-Session-Id"])
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.JSONEq(t, `{"n":1}`, resp.Body)
}

func TestJSONResponseEncodingFailure(t *testing.T) {
	resp := helpers.JSONResponse(http.StatusOK, math.Inf(1), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, resp.Body, "failed to encode response")
}
