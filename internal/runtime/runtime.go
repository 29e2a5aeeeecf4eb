// Package runtime serves the explorer over HTTP and AWS Lambda.
package runtime

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/isometry/eventbridge-explorer/internal/explorer"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/models"
	"github.com/isometry/eventbridge-explorer/internal/session"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger used by the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithSessionStore sets the store sessions are resolved from.
func WithSessionStore(store *session.Store) Option {
	return func(r *Runtime) {
		r.sessions = store
	}
}

// WithLambdaPayloadType sets the Lambda event shape expected by Lambda.
func WithLambdaPayloadType(payloadType string) Option {
	return func(r *Runtime) {
		r.payloadType = payloadType
	}
}

// WithPublishEnabled toggles the send_event route.
func WithPublishEnabled(enabled bool) Option {
	return func(r *Runtime) {
		r.publishEnabled = enabled
	}
}

// Runtime maps API routes onto the explorer.
type Runtime struct {
	explorer       *explorer.Explorer
	sessions       *session.Store
	logger         *slog.Logger
	payloadType    string
	publishEnabled bool
	routes         map[string]map[string]handlerFunc
}

// NewRuntime creates a new runtime instance
func NewRuntime(exp *explorer.Explorer, opts ...Option) *Runtime {
	_inst := &Runtime{
		explorer:       exp,
		payloadType:    PayloadAPIGatewayV2,
		publishEnabled: true,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.sessions == nil {
		_inst.sessions = session.NewStore(session.WithLogger(_inst.logger.With("component", "sessions")))
	}
	_inst.routes = _inst.routeTable()
	return _inst
}

// Handle serves a transport-independent request.
func (r *Runtime) Handle(ctx context.Context, req models.Request) models.Response {
	path := "/" + strings.Trim(req.Path, "/")
	logger := r.logger.With("method", req.Method, "path", path)

	methods, found := r.routes[path]
	if !found {
		logger.Debug("rejecting request...", "reason", "route not found")
		return helpers.JSONResponse(http.StatusNotFound, helpers.Envelope(nil, "route not found: "+path, nil), nil)
	}
	handle, found := methods[req.Method]
	if !found {
		logger.Debug("rejecting request...", "reason", "method not allowed")
		return helpers.JSONResponse(http.StatusMethodNotAllowed, helpers.Envelope(nil, "method not allowed: "+req.Method, nil),
			map[string]string{"Allow": allowed(methods)})
	}

	sess, created := r.sessions.Resolve(req.Headers[strings.ToLower(session.Header)])
	if created {
		logger.Debug("new session", "session", sess.ID)
	}
	logger = logger.With("session", sess.ID)
	logger.Debug("processing request...")

	res := handle(ctx, &call{Request: req, session: &sess, logger: logger})
	if res.persist {
		r.sessions.Update(sess)
	}
	if res.status >= http.StatusInternalServerError {
		logger.Warn("request failed", "status", res.status, "message", res.envelope.Message)
	}
	headers := map[string]string{session.Header: sess.ID}
	for k, v := range res.headers {
		headers[k] = v
	}
	return helpers.JSONResponse(res.status, res.envelope, headers)
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))
	headers := make(map[string]string)
	for k, v := range req.Header {
		headers[strings.ToLower(k)] = v[0]
	}
	query := make(map[string]string)
	for k, v := range req.URL.Query() {
		query[k] = v[0]
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		r.logger.Error("failed to read request body", slog.Any("error", err))
		helpers.RespondHTTP(models.Response{StatusCode: http.StatusBadRequest}, err, resp)
		return
	}

	response := r.Handle(req.Context(), models.Request{
		Method:  req.Method,
		Path:    req.URL.Path,
		Query:   query,
		Body:    string(body),
		Headers: headers,
	})
	helpers.RespondHTTP(response, nil, resp)
}

func allowed(methods map[string]handlerFunc) string {
	var out []string
	for _, m := range []string{http.MethodGet, http.MethodPost} {
		if _, ok := methods[m]; ok {
			out = append(out, m)
		}
	}
	return strings.Join(out, ", ")
}
