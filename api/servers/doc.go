/*
Package servers runs the panel provisioning API as a long-lived HTTP server.

# Routes

  - /api/create: provisioning endpoint, see package provisioner
  - /livez: liveness, always 200 while the process serves
  - /readyz: readiness, 503 while draining
  - /drain, /undrain: toggle readiness by hand
  - /debug/pprof: profiling, only with EnablePprof

Prometheus metrics are served on a separate listener (MetricsAddr).

# Lifecycle

	srv, err := servers.New(cfg, handler)
	srv.RunInBackground()
	<-exit
	srv.Shutdown()

Shutdown turns readiness off first and waits DrainDuration before closing
the listeners, so a load balancer polling /readyz stops sending new
provisioning requests while in-flight ones finish.
*/
package servers
