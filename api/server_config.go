package api

import (
	"log/slog"
	"time"
)

// HTTPServerConfig configures the long-running provisioning server.
type HTTPServerConfig struct {
	// ListenAddr serves /api/create and the health routes.
	ListenAddr string

	// MetricsAddr serves /metrics. Empty disables the metrics listener.
	MetricsAddr string

	// EnablePprof mounts /debug on the main listener.
	EnablePprof bool

	Log *slog.Logger

	// DrainDuration is how long the server keeps answering after /readyz
	// turns unhealthy and before shutdown starts.
	DrainDuration time.Duration

	// GracefulShutdownDuration bounds the wait for in-flight requests.
	GracefulShutdownDuration time.Duration

	ReadTimeout time.Duration

	// WriteTimeout must leave room for two sequential panel calls, each
	// bounded by the panel timeout. See FitPanelTimeout.
	WriteTimeout time.Duration
}

// writeTimeoutMargin covers request decoding, credential generation and
// writing the response after both panel calls.
const writeTimeoutMargin = 10 * time.Second

// FitPanelTimeout raises WriteTimeout so that a request spending the full
// panelTimeout on both the user and the server call still gets its response.
func (c *HTTPServerConfig) FitPanelTimeout(panelTimeout time.Duration) {
	if need := 2*panelTimeout + writeTimeoutMargin; c.WriteTimeout < need {
		c.WriteTimeout = need
	}
}

// DefaultHTTPServerConfig returns the settings used when no flags are given.
func DefaultHTTPServerConfig(log *slog.Logger) *HTTPServerConfig {
	return &HTTPServerConfig{
		ListenAddr:               "127.0.0.1:8080",
		MetricsAddr:              "127.0.0.1:8090",
		Log:                      log,
		DrainDuration:            15 * time.Second,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              10 * time.Second,
		WriteTimeout:             60 * time.Second,
	}
}
