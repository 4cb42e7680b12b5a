package servers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ruteri/panel-provisioning-backend/api"
	"github.com/ruteri/panel-provisioning-backend/api/provisioner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, enablePprof bool) (*Server, *provisioner.MockProvisioner) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := api.DefaultHTTPServerConfig(log)
	cfg.MetricsAddr = ""
	cfg.EnablePprof = enablePprof

	p := new(provisioner.MockProvisioner)
	srv, err := New(cfg, provisioner.NewHandler(p, log))
	require.NoError(t, err)
	return srv, p
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestServer_HealthAndDrain(t *testing.T) {
	srv, _ := newTestServer(t, false)
	h := srv.Handler()

	w := get(h, "/livez")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"alive"}`, w.Body.String())

	assert.Equal(t, http.StatusOK, get(h, "/readyz").Code)

	w = get(h, "/drain")
	assert.JSONEq(t, `{"status":"draining"}`, w.Body.String())
	assert.JSONEq(t, `{"status":"already draining"}`, get(h, "/drain").Body.String())

	w = get(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not ready"}`, w.Body.String())

	assert.JSONEq(t, `{"status":"ready"}`, get(h, "/undrain").Body.String())
	assert.JSONEq(t, `{"status":"already ready"}`, get(h, "/undrain").Body.String())
	assert.Equal(t, http.StatusOK, get(h, "/readyz").Code)
}

func TestServer_MountsProvisioningRoute(t *testing.T) {
	srv, p := newTestServer(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, api.CreatePath, nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, api.CreatePath, strings.NewReader(`{}`))
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	p.AssertNotCalled(t, "Provision", mock.Anything, mock.Anything)
}

func TestServer_Pprof(t *testing.T) {
	srv, _ := newTestServer(t, false)
	assert.Equal(t, http.StatusNotFound, get(srv.Handler(), "/debug/pprof/").Code)

	srv, _ = newTestServer(t, true)
	assert.Equal(t, http.StatusOK, get(srv.Handler(), "/debug/pprof/").Code)
}

func TestNew_RequiresLogger(t *testing.T) {
	_, err := New(&api.HTTPServerConfig{}, provisioner.NewHandler(new(provisioner.MockProvisioner), nil))
	require.Error(t, err)
}

func TestServer_ShutdownWithoutListeners(t *testing.T) {
	srv, _ := newTestServer(t, false)
	srv.cfg.DrainDuration = 0

	srv.Shutdown()
	assert.False(t, srv.isReady.Load())
}
