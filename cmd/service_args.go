package cmd

import (
	"time"

	"github.com/isometry/eventbridge-explorer/internal/config"
	"github.com/isometry/eventbridge-explorer/internal/helpers"
)

var svcEnvMapString = map[*string]boundEnvVar[string]{
	&config.Service.Addr: {
		Name:        "service-host-addr",
		Description: "The address to serve the service on (default all interfaces in dual-stack mode)",
		Short:       helpers.Ptr("H"),
	},
	&config.Service.Port: {
		Name:        "service-host-port",
		Description: "The port to serve the service on",
		Short:       helpers.Ptr("p"),
	},
}

var svcEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-io-timeout",
		Description: "The timeout for I/O operations. Log searches poll for up to a minute",
		Short:       helpers.Ptr("t"),
	},
	&config.Service.ShutdownTimeout: {
		Name:        "service-shutdown-timeout",
		Description: "How long in-flight requests are given to complete on shutdown",
	},
	&config.Service.SessionTTL: {
		Name:        "service-session-ttl",
		Description: "The idle time after which a session is discarded",
	},
}
