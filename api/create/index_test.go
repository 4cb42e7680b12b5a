package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ruteri/panel-provisioning-backend/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestNewCreateHandler(t *testing.T) {
	var calls int
	panel := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "Bearer ptla_private", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		if r.URL.Path == "/api/application/users" {
			w.Write([]byte(`{"attributes":{"id":1,"username":"bot_abcde","email":"bot@abcde.com"}}`))
			return
		}
		w.Write([]byte(`{"attributes":{"id":2,"uuid":"u-2","name":"bot"}}`))
	}))
	defer panel.Close()

	h, err := newCreateHandler(context.Background(), lookupFrom(map[string]string{
		"PRIVATE_PTERODACTYL_DOMAIN":  panel.URL,
		"PRIVATE_PTERODACTYL_API_KEY": "ptla_private",
		"PRIVATE_APP_SECRET_KEY":      "s3cret",
		"PTERODACTYL_LOCATION_ID":     "1",
		"PTERODACTYL_EGG_ID":          "15",
	}), testLogger())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, api.CreatePath,
		strings.NewReader(`{"serverName":"bot","ram":1024,"secretKey":"s3cret","panelType":"private"}`))
	h(w, req)

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 2, calls)

	// public target has no configuration
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, api.CreatePath,
		strings.NewReader(`{"serverName":"bot","ram":1024,"secretKey":"s3cret","panelType":"public"}`))
	h(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"server misconfigured"}`, w.Body.String())
	assert.Equal(t, 2, calls)
}

func TestNewCreateHandler_InvalidConfig(t *testing.T) {
	_, err := newCreateHandler(context.Background(), lookupFrom(map[string]string{
		"PASSWORD_LENGTH": "4",
	}), testLogger())
	require.Error(t, err)

	_, err = newCreateHandler(context.Background(), lookupFrom(map[string]string{
		"PANEL_TIMEOUT": "forever",
	}), testLogger())
	require.Error(t, err)
}

func assertCORS(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestServe_SetupFailed(t *testing.T) {
	setupErr := errors.New("PANEL_TIMEOUT must be positive")
	unreachable := func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("create handler called after failed setup")
	}

	w := httptest.NewRecorder()
	serve(w, httptest.NewRequest(http.MethodOptions, api.CreatePath, nil), unreachable, setupErr)
	assert.Equal(t, http.StatusOK, w.Code)
	assertCORS(t, w)
	assert.Empty(t, w.Body.String())

	w = httptest.NewRecorder()
	serve(w, httptest.NewRequest(http.MethodPost, api.CreatePath,
		strings.NewReader(`{"serverName":"bot","ram":0,"panelType":"private"}`)), unreachable, setupErr)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assertCORS(t, w)
	assert.JSONEq(t, `{"success":false,"error":"server misconfigured"}`, w.Body.String())
}

func TestServe_DelegatesAfterSetup(t *testing.T) {
	var called bool
	create := func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusCreated)
	}

	w := httptest.NewRecorder()
	serve(w, httptest.NewRequest(http.MethodPost, api.CreatePath, nil), create, nil)
	assert.True(t, called)
	assert.Equal(t, http.StatusCreated, w.Code)
}
