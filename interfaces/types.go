package interfaces

import (
	"fmt"
	"strings"
)

// TargetKind discriminates between the statically configured panel deployments.
type TargetKind string

const (
	TargetPrivate TargetKind = "private"
	TargetPublic  TargetKind = "public"
)

// AllTargetKinds lists every known target kind in a stable order.
var AllTargetKinds = []TargetKind{TargetPrivate, TargetPublic}

// ParseTargetKind converts a caller-supplied discriminator into a TargetKind.
// Matching is exact; surrounding whitespace is ignored.
func ParseTargetKind(s string) (TargetKind, error) {
	switch kind := TargetKind(strings.TrimSpace(s)); kind {
	case TargetPrivate, TargetPublic:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown target kind %q", s)
	}
}

func (k TargetKind) String() string {
	return string(k)
}

// BackendTarget is one panel deployment requests may be routed to.
// It is immutable once loaded from configuration.
type BackendTarget struct {
	Kind TargetKind

	// BaseURL is the panel root, e.g. https://panel.example.com
	BaseURL string

	// APIKey is an application API key with user and server write access.
	APIKey string

	// SharedSecret must be presented by callers when RequireSecret is set.
	SharedSecret  string
	RequireSecret bool

	// EggID and LocationID override the shared defaults when non-zero.
	EggID      int
	LocationID int
}

// MissingFields returns the names of required fields that are empty.
func (t BackendTarget) MissingFields() []string {
	var missing []string
	if t.BaseURL == "" {
		missing = append(missing, "base_url")
	}
	if t.APIKey == "" {
		missing = append(missing, "api_key")
	}
	if t.RequireSecret && t.SharedSecret == "" {
		missing = append(missing, "shared_secret")
	}
	return missing
}

// ProvisionRequest is the validated caller input.
type ProvisionRequest struct {
	ServerName string

	// MemoryMB is the memory limit in megabytes, 0 means unlimited.
	MemoryMB int64

	TargetKind     TargetKind
	SuppliedSecret string
}

// ProvisionedAccount is a panel user created for a request.
type ProvisionedAccount struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`

	// Password is generated locally, the panel never echoes it back.
	Password string `json:"-"`
}

// ResourceLimits mirrors the panel's server limits object.
type ResourceLimits struct {
	Memory int64 `json:"memory"`
	Swap   int64 `json:"swap"`
	Disk   int64 `json:"disk"`
	IO     int64 `json:"io"`
	CPU    int64 `json:"cpu"`
}

// FeatureLimits mirrors the panel's server feature_limits object.
type FeatureLimits struct {
	Databases   int `json:"databases"`
	Allocations int `json:"allocations"`
	Backups     int `json:"backups"`
}

// ProvisionedInstance is a panel server created under a ProvisionedAccount.
type ProvisionedInstance struct {
	ID     int            `json:"id"`
	UUID   string         `json:"uuid"`
	Name   string         `json:"name"`
	Limits ResourceLimits `json:"limits"`
}

// SharedServerDefaults are applied to every created server regardless of target.
type SharedServerDefaults struct {
	LocationID     int
	NestID         int
	EggID          int
	DockerImage    string
	StartupCommand string
	Environment    map[string]interface{}
}

// MissingFields returns the names of ids the panel requires that are unset.
func (d SharedServerDefaults) MissingFields() []string {
	var missing []string
	if d.EggID == 0 {
		missing = append(missing, "egg_id")
	}
	if d.LocationID == 0 {
		missing = append(missing, "location_id")
	}
	return missing
}

// ForTarget returns the defaults with the target's overrides applied.
func (d SharedServerDefaults) ForTarget(t BackendTarget) SharedServerDefaults {
	if t.EggID != 0 {
		d.EggID = t.EggID
	}
	if t.LocationID != 0 {
		d.LocationID = t.LocationID
	}
	return d
}
