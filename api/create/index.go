// Package handler is the serverless deployment of POST /api/create.
// The platform routes the request here and calls Handler.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/ruteri/panel-provisioning-backend/api"
	"github.com/ruteri/panel-provisioning-backend/api/provisioner"
	"github.com/ruteri/panel-provisioning-backend/common"
	"github.com/ruteri/panel-provisioning-backend/config"
	"github.com/ruteri/panel-provisioning-backend/provisioning"
)

var (
	once     sync.Once
	create   http.HandlerFunc
	setupErr error
)

// setup runs once per cold start. Configuration comes from the process
// environment only.
func setup() {
	log := common.SetupLogger(&common.LoggingOpts{
		JSON:    true,
		Debug:   os.Getenv("LOG_DEBUG") == "true",
		Service: common.PackageName,
		Version: common.Version,
	})
	create, setupErr = newCreateHandler(context.Background(), os.LookupEnv, log)
	if setupErr != nil {
		log.Error("Failed to configure provisioning", "err", setupErr)
	}
}

func newCreateHandler(ctx context.Context, lookup config.LookupFunc, log *slog.Logger) (http.HandlerFunc, error) {
	cfg, err := config.Load(ctx, lookup, log)
	if err != nil {
		return nil, err
	}
	h, err := provisioner.NewHandlerFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	return h.HandleCreate, nil
}

// Handler is the function entrypoint.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	serve(w, r, create, setupErr)
}

func serve(w http.ResponseWriter, r *http.Request, create http.HandlerFunc, setupErr error) {
	if setupErr != nil {
		if r.Method == http.MethodOptions {
			provisioner.SetCORSHeaders(w.Header())
			w.WriteHeader(http.StatusOK)
			return
		}
		writeMisconfigured(w)
		return
	}
	create(w, r)
}

func writeMisconfigured(w http.ResponseWriter) {
	provisioner.SetCORSHeaders(w.Header())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: provisioning.MsgServerMisconfigured})
}
