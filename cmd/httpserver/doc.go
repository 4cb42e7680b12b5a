// Package main (cmd/httpserver) runs the panel provisioning API as a
// long-lived server.
//
// Target credentials, panel ids and server defaults are read from the
// environment (see package config). Variables can be loaded from one or more
// .env files with --env-file, and target credentials can be overridden from
// Vault by setting VAULT_ADDR.
//
// Process settings are flags:
//
//   - --listen-addr, --metrics-addr: API and Prometheus listeners
//   - --panel-timeout: per call timeout of the panel API
//   - --drain-seconds: readiness grace period on shutdown
//   - --pprof, --log-json, --log-debug, --log-uid, --log-service
//
// The server shuts down gracefully on SIGINT/SIGTERM.
//
// Example usage:
//
//	provisioning-server --env-file=.env \
//	    --listen-addr=0.0.0.0:8080 \
//	    --metrics-addr=0.0.0.0:8090 \
//	    --log-json
package main
