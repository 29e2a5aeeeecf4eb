package explorer

import (
	"context"

	"github.com/isometry/eventbridge-explorer/internal/logs"
)

// FetchLogs searches a target's log group.
func (e *Explorer) FetchLogs(ctx context.Context, req logs.Request) logs.Result {
	return e.engine.FetchLogs(ctx, req)
}

// ListStreams lists the recent log streams of a target, optionally restricted to a window.
func (e *Explorer) ListStreams(ctx context.Context, targetArn string, w *logs.Window) []logs.StreamInfo {
	return e.engine.ListStreams(ctx, targetArn, w)
}

// FetchStreamEntries reads the latest entries of a log stream.
func (e *Explorer) FetchStreamEntries(ctx context.Context, group, stream string, limit int) logs.RenderedLog {
	return e.engine.FetchStreamEntries(ctx, group, stream, limit)
}

// FetchRawStream reads a log stream from its head.
func (e *Explorer) FetchRawStream(ctx context.Context, group, stream string, w *logs.Window, limit int) logs.RenderedLog {
	return e.engine.FetchRawStream(ctx, group, stream, w, limit)
}
