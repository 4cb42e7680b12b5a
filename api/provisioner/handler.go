package provisioner

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/panel-provisioning-backend/api"
	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/ruteri/panel-provisioning-backend/provisioning"
)

const (
	// maxBodySize is the maximum allowed request body size (1MB).
	maxBodySize = 1024 * 1024

	successMessage = "user and server created"
)

// Provisioner runs one provisioning flow. *provisioning.Orchestrator
// implements it.
type Provisioner interface {
	Provision(ctx context.Context, req interfaces.ProvisionRequest) (*provisioning.Result, error)
}

// Handler serves POST /api/create.
type Handler struct {
	provisioner Provisioner
	log         *slog.Logger
}

// NewHandler creates a new HTTP request handler.
//
// Parameters:
//   - provisioner: runs the user and server creation
//   - log: Structured logger for operational insights
func NewHandler(provisioner Provisioner, log *slog.Logger) *Handler {
	return &Handler{
		provisioner: provisioner,
		log:         log,
	}
}

// RegisterRoutes mounts the endpoint for every method so that OPTIONS and
// unsupported methods get the CORS headers too.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.HandleFunc(api.CreatePath, h.HandleCreate)
}

// HandleCreate provisions a panel user and a server.
//
// URL format: POST /api/create
//
// Request body: JSON, see api.CreateRequest
//
// Response: 201 with api.CreateResponse, otherwise api.ErrorResponse with the
// status of the failure kind. OPTIONS answers 200 with CORS headers only.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	SetCORSHeaders(w.Header())

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		h.writeError(w, provisioning.NewMethodNotAllowed())
		return
	}

	req, err := decodeCreateRequest(w, r)
	if err != nil {
		h.log.Debug("Rejected request body", "err", err)
		h.writeError(w, err)
		return
	}

	result, err := h.provisioner.Provision(r.Context(), *req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateResponse{
		Success:  true,
		Message:  successMessage,
		PanelURL: result.PanelURL,
		User:     api.NewUserInfo(result.Account),
		Password: result.Account.Password,
		Server: api.ServerInfo{
			ID:     result.Instance.ID,
			UUID:   result.Instance.UUID,
			Name:   result.Instance.Name,
			Limits: result.Instance.Limits,
		},
	})
}

func decodeCreateRequest(w http.ResponseWriter, r *http.Request) (*interfaces.ProvisionRequest, error) {
	var body api.CreateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, provisioning.NewBadRequest("request body exceeds %d bytes", maxBytesErr.Limit)
		}
		return nil, provisioning.NewBadRequest("invalid JSON body: %v", err)
	}

	var missing []string
	if strings.TrimSpace(body.ServerName) == "" {
		missing = append(missing, "serverName")
	}
	if body.RAM == nil {
		missing = append(missing, "ram")
	}
	if strings.TrimSpace(body.PanelType) == "" {
		missing = append(missing, "panelType")
	}
	if len(missing) > 0 {
		return nil, provisioning.NewBadRequest("missing required fields: %s", strings.Join(missing, ", "))
	}

	return &interfaces.ProvisionRequest{
		ServerName:     body.ServerName,
		MemoryMB:       int64(*body.RAM),
		TargetKind:     interfaces.TargetKind(body.PanelType),
		SuppliedSecret: body.SecretKey,
	}, nil
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	pErr := provisioning.AsError(err)
	status := pErr.Kind.HTTPStatus()

	resp := api.ErrorResponse{
		Success: false,
		Error:   pErr.Message,
		Detail:  pErr.Detail,
	}
	if pErr.Account != nil {
		user := api.NewUserInfo(*pErr.Account)
		resp.User = &user
		resp.Password = pErr.Account.Password
		resp.Message = provisioning.MsgOrphanedAccount
	}

	if status >= http.StatusInternalServerError {
		h.log.Error("Provisioning failed", "err", err, "status", status)
	} else {
		h.log.Info("Provisioning request rejected", "err", err, "status", status)
	}

	writeJSON(w, status, resp)
}

// SetCORSHeaders sets the headers every /api/create response carries.
func SetCORSHeaders(header http.Header) {
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	header.Set("Access-Control-Allow-Headers", "Content-Type")
	header.Set("Access-Control-Allow-Credentials", "true")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
