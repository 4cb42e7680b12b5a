package provisioning

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
)

// Resolver selects the backend target of a request and checks its shared secret.
type Resolver struct {
	targets map[interfaces.TargetKind]interfaces.BackendTarget
	log     *slog.Logger
}

// NewResolver copies targets, later changes to the caller's map have no effect.
func NewResolver(targets map[interfaces.TargetKind]interfaces.BackendTarget, log *slog.Logger) *Resolver {
	copied := make(map[interfaces.TargetKind]interfaces.BackendTarget, len(targets))
	for kind, target := range targets {
		target.Kind = kind
		copied[kind] = target
	}
	return &Resolver{targets: copied, log: log}
}

// Resolve returns the target for kind if suppliedSecret authorizes it.
//
// Failures:
//   - unknown kind: KindBadRequest
//   - target missing or incomplete: KindServerMisconfigured, logged with the
//     missing fields, never reported to the caller
//   - secret mismatch: KindForbidden
func (r *Resolver) Resolve(kind interfaces.TargetKind, suppliedSecret string) (interfaces.BackendTarget, error) {
	kind, err := interfaces.ParseTargetKind(string(kind))
	if err != nil {
		return interfaces.BackendTarget{}, NewBadRequest("panelType must be %q or %q", interfaces.TargetPrivate, interfaces.TargetPublic)
	}

	target, ok := r.targets[kind]
	if !ok {
		r.log.Error("Target is not configured", "target", kind)
		return interfaces.BackendTarget{}, newError(KindServerMisconfigured, MsgServerMisconfigured,
			fmt.Errorf("target %s is not configured", kind))
	}

	if missing := target.MissingFields(); len(missing) > 0 {
		r.log.Error("Target configuration is incomplete", "target", kind, "missing", missing)
		return interfaces.BackendTarget{}, newError(KindServerMisconfigured, MsgServerMisconfigured,
			fmt.Errorf("target %s is missing %v", kind, missing))
	}

	if target.RequireSecret && !secretsEqual(suppliedSecret, target.SharedSecret) {
		return interfaces.BackendTarget{}, newError(KindForbidden, MsgForbidden, nil)
	}

	return target, nil
}

// Targets returns the configured target kinds.
func (r *Resolver) Targets() []interfaces.TargetKind {
	kinds := make([]interfaces.TargetKind, 0, len(r.targets))
	for _, kind := range interfaces.AllTargetKinds {
		if _, ok := r.targets[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func secretsEqual(supplied, expected string) bool {
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(expected)) == 1
}
