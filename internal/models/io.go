// Package models provides the request, response and event payloads shared by the runtime and the explorer.
package models

// Request represents an incoming client request, independent of the transport it arrived on.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Body    string
	Headers map[string]string
}

// Response defines the structure for an HTTP response containing a body, headers, and a status code.
type Response struct {
	Body       string
	Headers    map[string]string
	StatusCode int
}

// Envelope is the uniform JSON body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}
