package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	awsctl "github.com/isometry/eventbridge-explorer/internal/controllers/aws"
	"github.com/isometry/eventbridge-explorer/internal/explorer"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
	"github.com/isometry/eventbridge-explorer/internal/logs"
	"github.com/isometry/eventbridge-explorer/internal/models"
	"github.com/isometry/eventbridge-explorer/internal/session"
	"github.com/isometry/eventbridge-explorer/internal/topology"
	"github.com/pkg/errors"
)

// SnapshotHeader carries the object key of an exported snapshot.
const SnapshotHeader = "X-Snapshot-Key"

type call struct {
	models.Request
	session *session.Session
	logger  *slog.Logger
}

type result struct {
	status   int
	envelope models.Envelope
	headers  map[string]string
	persist  bool
}

type handlerFunc func(ctx context.Context, c *call) result

func (r *Runtime) routeTable() map[string]map[string]handlerFunc {
	return map[string]map[string]handlerFunc{
		"/healthz":                {http.MethodGet: r.health},
		"/api/event-buses":        {http.MethodGet: r.eventBuses},
		"/api/rules":              {http.MethodGet: r.rules},
		"/api/graph":              {http.MethodPost: r.graph(false)},
		"/api/graph/with-details": {http.MethodPost: r.graph(true)},
		"/api/search_logs":        {http.MethodPost: r.searchLogs},
		"/api/target_log_streams": {http.MethodPost: r.targetLogStreams},
		"/api/stream_entries":     {http.MethodPost: r.streamEntries},
		"/api/stream_logs":        {http.MethodPost: r.streamLogs},
		"/api/send_event":         {http.MethodPost: r.sendEvent},
		"/api/identity":           {http.MethodGet: r.identity},
	}
}

type graphRequest struct {
	EventBus string   `json:"event_bus"`
	Rules    []string `json:"rules"`
}

type logsRequest struct {
	TargetArn  string `json:"targetArn"`
	SearchTerm string `json:"searchTerm"`
	Limit      int    `json:"limit"`
	StartTime  int64  `json:"startTime"`
	EndTime    int64  `json:"endTime"`
}

type streamRequest struct {
	LogGroup  string `json:"logGroup"`
	LogStream string `json:"logStream"`
	Limit     int    `json:"limit"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

type sendEventRequest struct {
	EventBusName string              `json:"event_bus_name"`
	EventData    *models.TestMessage `json:"event_data"`
}

func (r *Runtime) health(context.Context, *call) result {
	return ok(nil, "ok")
}

func (r *Runtime) eventBuses(ctx context.Context, c *call) result {
	buses, err := r.explorer.ListBuses(ctx, c.session)
	if err != nil {
		return failure(err)
	}
	return persisted(ok(buses, ""))
}

func (r *Runtime) rules(ctx context.Context, c *call) result {
	bus := explorer.NormalizeBusName(c.Query["event_bus"])
	if bus == "" {
		return badRequest("Event bus name is required")
	}
	rules, err := r.explorer.ListRules(ctx, c.session, bus)
	if err != nil {
		return persisted(failure(err))
	}
	return persisted(ok(rules, ""))
}

func (r *Runtime) graph(withDetails bool) handlerFunc {
	kind := "graph"
	if withDetails {
		kind = "graph-with-details"
	}
	return func(ctx context.Context, c *call) result {
		var in graphRequest
		if res, failed := decode(c, &in); failed {
			return res
		}
		build := r.explorer.BuildGraph
		if withDetails {
			build = r.explorer.BuildGraphWithDetails
		}
		g, err := build(ctx, c.session, in.EventBus, in.Rules)
		if err != nil {
			return persisted(failure(err))
		}
		res := persisted(ok(map[string]any{
			"elements":     g.Elements(),
			"eventBusName": g.Bus,
		}, ""))
		return r.export(ctx, c, kind, g, res)
	}
}

func (r *Runtime) searchLogs(ctx context.Context, c *call) result {
	var in logsRequest
	if res, failed := decode(c, &in); failed {
		return res
	}
	if in.TargetArn == "" {
		return badRequest("Target ARN is required")
	}
	out := r.explorer.FetchLogs(ctx, logs.Request{
		TargetArn:  in.TargetArn,
		Window:     window(in.StartTime, in.EndTime),
		SearchTerm: in.SearchTerm,
		Limit:      in.Limit,
	})
	res := result{
		status: statusForKind(out.Kind),
		envelope: models.Envelope{
			Success: out.Success,
			Message: out.Message,
			Data:    out,
		},
	}
	if !out.Success {
		return res
	}
	return r.export(ctx, c, "logs", out, res)
}

func (r *Runtime) targetLogStreams(ctx context.Context, c *call) result {
	var in logsRequest
	if res, failed := decode(c, &in); failed {
		return res
	}
	if in.TargetArn == "" {
		return badRequest("Target ARN is required")
	}
	streams := r.explorer.ListStreams(ctx, in.TargetArn, window(in.StartTime, in.EndTime))
	return ok(map[string]any{"streams": streams}, fmt.Sprintf("Found %d log streams", len(streams)))
}

func (r *Runtime) streamEntries(ctx context.Context, c *call) result {
	var in streamRequest
	if res, failed := decode(c, &in); failed {
		return res
	}
	if in.LogGroup == "" || in.LogStream == "" {
		return badRequest("Log group and stream name are required")
	}
	return rendered(r.explorer.FetchStreamEntries(ctx, in.LogGroup, in.LogStream, in.Limit))
}

func (r *Runtime) streamLogs(ctx context.Context, c *call) result {
	var in streamRequest
	if res, failed := decode(c, &in); failed {
		return res
	}
	if in.LogGroup == "" || in.LogStream == "" {
		return badRequest("Log group and stream name are required")
	}
	return rendered(r.explorer.FetchRawStream(ctx, in.LogGroup, in.LogStream, window(in.StartTime, in.EndTime), in.Limit))
}

func (r *Runtime) sendEvent(ctx context.Context, c *call) result {
	if !r.publishEnabled {
		return result{status: http.StatusForbidden, envelope: helpers.Envelope(nil, "Publishing test events is disabled", nil)}
	}
	var in sendEventRequest
	if res, failed := decode(c, &in); failed {
		return res
	}
	if in.EventData == nil {
		return badRequest("Event data is required")
	}
	msg := *in.EventData
	if msg.EventBusName == "" {
		msg.EventBusName = in.EventBusName
	}
	event, err := r.explorer.PublishTestMessage(ctx, msg)
	if err != nil {
		return failure(err)
	}
	return ok(event, "Event sent successfully with ID: "+event.ID)
}

func (r *Runtime) identity(ctx context.Context, _ *call) result {
	id, err := r.explorer.Identity(ctx)
	if err != nil {
		return failure(err)
	}
	return ok(id, "")
}

// export uploads a snapshot of data when export is enabled. Export failures never fail the request.
func (r *Runtime) export(ctx context.Context, c *call, kind string, data any, res result) result {
	if !r.explorer.ExportEnabled() {
		return res
	}
	key, err := r.explorer.ExportSnapshot(ctx, kind, data)
	if err != nil {
		c.logger.Warn("failed to export snapshot", "kind", kind, slog.Any("error", err))
		return res
	}
	if res.headers == nil {
		res.headers = map[string]string{}
	}
	res.headers[SnapshotHeader] = key
	return res
}

func decode(c *call, v any) (result, bool) {
	if c.Body == "" {
		return result{}, false
	}
	if err := json.Unmarshal([]byte(c.Body), v); err != nil {
		c.logger.Debug("invalid request body", slog.Any("error", err))
		return badRequest("invalid request body: " + err.Error()), true
	}
	return result{}, false
}

func window(start, end int64) *logs.Window {
	if start == 0 && end == 0 {
		return nil
	}
	return &logs.Window{Start: start, End: end}
}

func rendered(out logs.RenderedLog) result {
	status := http.StatusOK
	if out.Status == logs.StatusError {
		status = http.StatusBadGateway
	}
	return result{
		status: status,
		envelope: models.Envelope{
			Success: out.Status != logs.StatusError,
			Message: out.Message,
			Data:    out,
		},
	}
}

func ok(data any, message string) result {
	return result{status: http.StatusOK, envelope: helpers.Envelope(data, message, nil)}
}

func persisted(res result) result {
	res.persist = true
	return res
}

func badRequest(message string) result {
	return result{status: http.StatusBadRequest, envelope: helpers.Envelope(nil, message, errors.New(message))}
}

func failure(err error) result {
	return result{status: statusFor(err), envelope: helpers.Envelope(nil, "", err)}
}

func statusFor(err error) int {
	var (
		notFound *explorer.NotFoundError
		invalid  *explorer.InvalidInputError
		rejected *explorer.PublishError
		upstream *topology.UpstreamError
	)
	switch {
	case errors.Is(err, topology.ErrNoBusSelected):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &rejected):
		return http.StatusBadRequest
	case errors.As(err, &upstream), awsctl.ErrorCode(err) != "":
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func statusForKind(kind logs.Kind) int {
	switch kind {
	case "", logs.KindNotSupported, logs.KindNotImplemented:
		return http.StatusOK
	case logs.KindNotFound:
		return http.StatusNotFound
	case logs.KindMalformedIdentifier, logs.KindUnresolvableResource:
		return http.StatusBadRequest
	case logs.KindQueryTimedOut:
		return http.StatusGatewayTimeout
	case logs.KindUpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
