package logs

// Kind classifies the outcome of a log operation that did not succeed.
type Kind string

const (
	KindNotFound             Kind = "NotFound"
	KindMalformedIdentifier  Kind = "MalformedIdentifier"
	KindUnresolvableResource Kind = "UnresolvableResource"
	KindNotSupported         Kind = "NotSupported"
	KindNotImplemented       Kind = "NotImplemented"
	KindQueryTimedOut        Kind = "QueryTimedOut"
	KindUpstreamFailure      Kind = "UpstreamFailure"
)

// Span is a byte range [Start, End) of a message matching the search term.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Entry is a single log line.
type Entry struct {
	Timestamp     int64  `json:"timestamp"`
	FormattedTime string `json:"formatted_time"`
	Message       string `json:"message"`
	Stream        string `json:"stream"`
	Matches       []Span `json:"matches"`
}

// Window bounds a search in epoch seconds. A zero bound is unset.
type Window struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// Request describes a log search for one target.
type Request struct {
	TargetArn  string  `json:"targetArn"`
	Window     *Window `json:"window,omitempty"`
	SearchTerm string  `json:"searchTerm,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

// Result is the uniform outcome of a log search. Failures are reported through
// Success, Message and Kind rather than as errors.
type Result struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Kind     Kind           `json:"kind,omitempty"`
	Logs     []Entry        `json:"logs"`
	Metadata map[string]any `json:"metadata"`
}

// StreamInfo describes a log stream of a target's log group.
type StreamInfo struct {
	LogStreamName       string `json:"logStreamName"`
	LogGroupName        string `json:"logGroupName"`
	FirstEventTimestamp int64  `json:"firstEventTimestamp,omitempty"`
	LastEventTimestamp  int64  `json:"lastEventTimestamp,omitempty"`
	FirstEventTime      string `json:"firstEventTime,omitempty"`
	LastEventTime       string `json:"lastEventTime,omitempty"`
	LastIngestionTime   int64  `json:"lastIngestionTime,omitempty"`
}

// Status of a rendered stream read.
type Status string

const (
	StatusOK    Status = "ok"
	StatusEmpty Status = "empty"
	StatusError Status = "error"
)

// Tier names the retrieval strategy that produced a rendered stream read.
type Tier string

const (
	TierWindow       Tier = "window"
	TierToken        Tier = "token"
	TierUnrestricted Tier = "unrestricted"
)

// RenderedLog is the outcome of reading entries from a single stream.
type RenderedLog struct {
	Status  Status  `json:"status"`
	Message string  `json:"message,omitempty"`
	Tier    Tier    `json:"tier,omitempty"`
	Entries []Entry `json:"entries"`
}
