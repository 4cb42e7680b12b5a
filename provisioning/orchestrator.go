package provisioning

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ruteri/panel-provisioning-backend/credentials"
	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/ruteri/panel-provisioning-backend/metrics"
)

const (
	// maxServerNameLength matches the panel's column size for server names.
	maxServerNameLength = 191

	accountLastName = "User"
)

// CredentialGenerator produces login details for a new panel account.
type CredentialGenerator interface {
	Generate(serverName string) (*credentials.Credentials, error)
}

// Result is the outcome of a successful provisioning run.
type Result struct {
	// PanelURL is the base URL of the target the account was created on.
	PanelURL string

	// Account carries the generated password.
	Account  interfaces.ProvisionedAccount
	Instance interfaces.ProvisionedInstance
}

// Orchestrator runs the provisioning flow: validate, resolve the target,
// generate credentials, create the account, then create the server.
// It holds no mutable state and is safe for concurrent use.
type Orchestrator struct {
	resolver  *Resolver
	clients   interfaces.PanelClientFactory
	generator CredentialGenerator
	defaults  interfaces.SharedServerDefaults
	log       *slog.Logger
}

// NewOrchestrator creates an Orchestrator.
//
// Parameters:
//   - resolver: target lookup and shared secret check
//   - clients: creates panel clients for resolved targets
//   - generator: account credential generator
//   - defaults: nest/egg/location/image settings applied to every server
//   - log: structured logger
func NewOrchestrator(resolver *Resolver, clients interfaces.PanelClientFactory, generator CredentialGenerator, defaults interfaces.SharedServerDefaults, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		resolver:  resolver,
		clients:   clients,
		generator: generator,
		defaults:  defaults,
		log:       log,
	}
}

// Provision creates a panel account and a server for req.
//
// The two panel calls are strictly sequential. A failed account creation ends
// the run before any server call. A failed server creation does not roll the
// account back: the returned *Error carries the account and its password so
// the caller can finish or remove it manually.
//
// All returned errors are *Error.
func (o *Orchestrator) Provision(ctx context.Context, req interfaces.ProvisionRequest) (result *Result, err error) {
	start := time.Now()
	log := o.log.With(
		"provisionID", uuid.NewString(),
		"target", req.TargetKind,
		"serverName", req.ServerName,
		"memoryMB", req.MemoryMB,
	)

	defer func() {
		outcome := "success"
		if err != nil {
			outcome = AsError(err).Kind.String()
		}
		metrics.RecordProvision(targetLabel(req.TargetKind), outcome, time.Since(start).Seconds())
	}()

	req.ServerName = strings.TrimSpace(req.ServerName)
	if err := validate(req); err != nil {
		log.Debug("Rejected provisioning request", "err", err)
		return nil, err
	}

	target, err := o.resolver.Resolve(req.TargetKind, req.SuppliedSecret)
	if err != nil {
		log.Warn("Target resolution failed", "err", err)
		return nil, err
	}

	defaults := o.defaults.ForTarget(target)
	if missing := defaults.MissingFields(); len(missing) > 0 {
		log.Error("Server defaults are incomplete", "missing", missing)
		return nil, newError(KindServerMisconfigured, MsgServerMisconfigured,
			fmt.Errorf("target %s server defaults are missing %v", target.Kind, missing))
	}

	creds, err := o.generator.Generate(req.ServerName)
	if err != nil {
		log.Error("Failed to generate credentials", "err", err)
		return nil, newError(KindInternalError, MsgInternalError, err)
	}

	client := o.clients.ClientFor(target)

	account, err := client.CreateUser(ctx, interfaces.UserCreation{
		Email:     creds.Email,
		Username:  creds.Username,
		FirstName: req.ServerName,
		LastName:  accountLastName,
		Password:  creds.Password,
	})
	if err != nil {
		kind, detail := ClassifyBackendError(err, KindAccountCreationFailed)
		log.Error("Failed to create panel user", "err", err, "username", creds.Username, "kind", kind)
		pErr := newError(kind, MsgAccountCreationFailed, err)
		pErr.Detail = detail
		return nil, pErr
	}
	account.Password = creds.Password
	if account.Username == "" {
		account.Username = creds.Username
	}
	if account.Email == "" {
		account.Email = creds.Email
	}
	log = log.With("userID", account.ID, "username", account.Username)
	log.Info("Panel user created")

	instance, err := client.CreateServer(ctx, interfaces.ServerCreation{
		Name:          req.ServerName,
		UserID:        account.ID,
		Defaults:      o.defaults.ForTarget(target),
		Limits:        DeriveLimits(req.MemoryMB),
		FeatureLimits: DefaultFeatureLimits(),
	})
	if err != nil {
		kind, detail := ClassifyBackendError(err, KindInstanceCreationFailed)
		log.Error("Failed to create server, panel user left in place", "err", err, "kind", kind)
		pErr := newError(kind, MsgInstanceCreateFailed, err)
		pErr.Detail = detail
		pErr.Account = account
		return nil, pErr
	}
	log.Info("Server created", "serverID", instance.ID, "uuid", instance.UUID)

	return &Result{
		PanelURL: target.BaseURL,
		Account:  *account,
		Instance: *instance,
	}, nil
}

// targetLabel keeps caller-supplied kinds out of metric labels.
func targetLabel(kind interfaces.TargetKind) string {
	if _, err := interfaces.ParseTargetKind(string(kind)); err != nil {
		return "unknown"
	}
	return string(kind)
}

func validate(req interfaces.ProvisionRequest) error {
	if req.ServerName == "" {
		return NewBadRequest("serverName is required")
	}
	if utf8.RuneCountInString(req.ServerName) > maxServerNameLength {
		return NewBadRequest("serverName must be at most %d characters", maxServerNameLength)
	}
	if req.MemoryMB < 0 {
		return NewBadRequest("ram must be a non-negative integer")
	}
	if req.MemoryMB > MaxMemoryMB {
		return NewBadRequest("ram must be at most %d MB", MaxMemoryMB)
	}
	if req.TargetKind == "" {
		return NewBadRequest("panelType is required")
	}
	return nil
}
