// Package config builds the provisioning configuration from the process
// environment, an optional .env file and an optional Vault KV source.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/ruteri/panel-provisioning-backend/interfaces"
)

const (
	DefaultDockerImage  = "ghcr.io/parkervcp/yolks:nodejs_18"
	DefaultCmdRun       = "node index.js"
	DefaultPanelTimeout = 20 * time.Second

	// DefaultStartupCommand is the startup line of the Node.js yolk.
	DefaultStartupCommand = `if [[ -d .git ]]; then git pull; fi; if [[ ! -z ${NODE_PACKAGES} ]]; then /usr/local/bin/npm install ${NODE_PACKAGES}; fi; if [[ -f /home/container/package.json ]]; then /usr/local/bin/npm install; fi; {{CMD_RUN}}`
)

// LookupFunc reads one variable, os.LookupEnv in production.
type LookupFunc func(key string) (string, bool)

// Config is read-only after startup and shared by all requests.
type Config struct {
	Targets  map[interfaces.TargetKind]interfaces.BackendTarget
	Defaults interfaces.SharedServerDefaults

	EmailDomain    string
	PasswordLength int
	PanelTimeout   time.Duration

	Vault VaultSettings
}

// VaultSettings point at an optional KV v2 secret holding target credentials.
type VaultSettings struct {
	Address string
	Token   string
	Mount   string
	Path    string
}

// Enabled reports whether a Vault address is configured.
func (v VaultSettings) Enabled() bool {
	return v.Address != ""
}

// LoadDotEnv loads variables from the given files into the process
// environment. Variables already set are kept.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return errors.Wrapf(err, "failed to load env file %v", paths)
	}
	return nil
}

// FromOSEnv is FromEnv over the process environment.
func FromOSEnv() (*Config, error) {
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config. Malformed values are reported together in one
// error. Missing target values are not errors here, see Warnings.
func FromEnv(lookup LookupFunc) (*Config, error) {
	p := &parser{lookup: lookup}

	cfg := &Config{
		Targets: make(map[interfaces.TargetKind]interfaces.BackendTarget, len(interfaces.AllTargetKinds)),
		Defaults: interfaces.SharedServerDefaults{
			LocationID:     p.integer("PTERODACTYL_LOCATION_ID", 0),
			NestID:         p.integer("PTERODACTYL_NEST_ID", 0),
			EggID:          p.integer("PTERODACTYL_EGG_ID", 0),
			DockerImage:    p.str("PTERODACTYL_DOCKER_IMAGE", DefaultDockerImage),
			StartupCommand: p.str("PTERODACTYL_STARTUP", DefaultStartupCommand),
			Environment: map[string]interface{}{
				"USER_ID": 1,
				"CMD_RUN": p.str("PTERODACTYL_CMD_RUN", DefaultCmdRun),
			},
		},
		EmailDomain:    p.str("PTERODACTYL_EMAIL_DOMAIN", ""),
		PasswordLength: p.integer("PASSWORD_LENGTH", 0),
		PanelTimeout:   p.duration("PANEL_TIMEOUT", DefaultPanelTimeout),
		Vault: VaultSettings{
			Address: p.str("VAULT_ADDR", ""),
			Token:   p.str("VAULT_TOKEN", ""),
			Mount:   p.str("VAULT_MOUNT", "secret"),
			Path:    p.str("VAULT_PATH", "panel-provisioning"),
		},
	}

	for _, kind := range interfaces.AllTargetKinds {
		prefix := strings.ToUpper(string(kind)) + "_"
		cfg.Targets[kind] = interfaces.BackendTarget{
			Kind:          kind,
			BaseURL:       strings.TrimSuffix(p.str(prefix+"PTERODACTYL_DOMAIN", ""), "/"),
			APIKey:        p.str(prefix+"PTERODACTYL_API_KEY", ""),
			SharedSecret:  p.str(prefix+"APP_SECRET_KEY", ""),
			RequireSecret: p.boolean(prefix+"REQUIRE_SECRET", true),
			EggID:         p.integer(prefix+"PTERODACTYL_EGG_ID", 0),
			LocationID:    p.integer(prefix+"PTERODACTYL_LOCATION_ID", 0),
		}
	}

	if cfg.PanelTimeout <= 0 {
		p.errs = multierror.Append(p.errs, errors.Errorf("PANEL_TIMEOUT must be positive, got %s", cfg.PanelTimeout))
	}

	if err := p.errs.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Warnings lists incomplete targets. They are not fatal: a request for such
// a target fails with a misconfiguration error instead.
func (c *Config) Warnings() []string {
	var warnings []string
	for _, kind := range interfaces.AllTargetKinds {
		target := c.Targets[kind]
		if missing := target.MissingFields(); len(missing) > 0 {
			warnings = append(warnings, string(kind)+" target is missing "+strings.Join(missing, ", "))
		}
		if missing := c.Defaults.ForTarget(target).MissingFields(); len(missing) > 0 {
			warnings = append(warnings, string(kind)+" server defaults are missing "+strings.Join(missing, ", "))
		}
	}
	return warnings
}

type parser struct {
	lookup LookupFunc
	errs   *multierror.Error
}

func (p *parser) str(key, def string) string {
	v, ok := p.lookup(key)
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func (p *parser) integer(key string, def int) int {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs = multierror.Append(p.errs, errors.Wrapf(err, "%s", key))
		return def
	}
	if n < 0 {
		p.errs = multierror.Append(p.errs, errors.Errorf("%s must not be negative, got %d", key, n))
		return def
	}
	return n
}

func (p *parser) boolean(key string, def bool) bool {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.errs = multierror.Append(p.errs, errors.Wrapf(err, "%s", key))
		return def
	}
	return b
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := p.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.errs = multierror.Append(p.errs, errors.Wrapf(err, "%s", key))
		return def
	}
	return d
}
