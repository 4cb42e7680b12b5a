package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/pkg/errors"
	"github.com/ruteri/panel-provisioning-backend/interfaces"
)

// VaultSource reads target credentials from a Vault KV v2 mount.
// The secret of a target lives at <mount>/data/<path>/<kind> and may carry
// base_url, api_key and shared_secret fields.
type VaultSource struct {
	client    *api.Client
	mountPath string
	dataPath  string
	log       *slog.Logger
}

// NewVaultSource creates a token-authenticated Vault source.
//
// Parameters:
//   - settings: address, token, mount and data path
//   - log: structured logger
func NewVaultSource(settings VaultSettings, log *slog.Logger) (*VaultSource, error) {
	vaultConfig := api.DefaultConfig()
	vaultConfig.Address = settings.Address
	vaultConfig.HttpClient = &http.Client{Timeout: 10 * time.Second}
	vaultConfig.MaxRetries = 0

	client, err := api.NewClient(vaultConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Vault client")
	}
	if settings.Token != "" {
		client.SetToken(settings.Token)
	}

	return &VaultSource{
		client:    client,
		mountPath: strings.Trim(settings.Mount, "/"),
		dataPath:  strings.Trim(settings.Path, "/"),
		log:       log,
	}, nil
}

// TargetSecret returns the string fields stored for kind, or nil when no
// secret exists.
func (s *VaultSource) TargetSecret(ctx context.Context, kind interfaces.TargetKind) (map[string]string, error) {
	path := fmt.Sprintf("%s/data/%s/%s", s.mountPath, s.dataPath, kind)

	secret, err := s.client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s from Vault", path)
	}
	if secret == nil || secret.Data == nil {
		s.log.Debug("No target secret in Vault", slog.String("path", path))
		return nil, nil
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, errors.Errorf("invalid data format in Vault response for %s", path)
	}

	fields := make(map[string]string, len(data))
	for key, value := range data {
		if str, ok := value.(string); ok {
			fields[key] = str
		}
	}
	return fields, nil
}

// Apply overrides target credentials in cfg with non-empty Vault fields.
func (s *VaultSource) Apply(ctx context.Context, cfg *Config) error {
	for _, kind := range interfaces.AllTargetKinds {
		fields, err := s.TargetSecret(ctx, kind)
		if err != nil {
			return err
		}
		if fields == nil {
			continue
		}

		target := cfg.Targets[kind]
		target.Kind = kind
		if v := strings.TrimSpace(fields["base_url"]); v != "" {
			target.BaseURL = strings.TrimSuffix(v, "/")
		}
		if v := fields["api_key"]; v != "" {
			target.APIKey = v
		}
		if v := fields["shared_secret"]; v != "" {
			target.SharedSecret = v
		}
		cfg.Targets[kind] = target

		s.log.Info("Applied target secret from Vault", "target", kind)
	}
	return nil
}

// Load builds the Config from lookup, applies the Vault source when one is
// configured and logs incomplete targets.
func Load(ctx context.Context, lookup LookupFunc, log *slog.Logger) (*Config, error) {
	cfg, err := FromEnv(lookup)
	if err != nil {
		return nil, err
	}

	if cfg.Vault.Enabled() {
		source, err := NewVaultSource(cfg.Vault, log)
		if err != nil {
			return nil, err
		}
		if err := source.Apply(ctx, cfg); err != nil {
			return nil, err
		}
	}

	for _, warning := range cfg.Warnings() {
		log.Warn("Incomplete configuration", "detail", warning)
	}
	return cfg, nil
}
