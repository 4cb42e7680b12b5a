package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func fullEnv() map[string]string {
	return map[string]string{
		"PRIVATE_PTERODACTYL_DOMAIN":  "https://private.example.com/",
		"PRIVATE_PTERODACTYL_API_KEY": "ptla_private",
		"PRIVATE_APP_SECRET_KEY":      "private-secret",
		"PUBLIC_PTERODACTYL_DOMAIN":   "https://public.example.com",
		"PUBLIC_PTERODACTYL_API_KEY":  "ptla_public",
		"PUBLIC_APP_SECRET_KEY":       "public-secret",
		"PUBLIC_PTERODACTYL_EGG_ID":   "16",
		"PTERODACTYL_LOCATION_ID":     "1",
		"PTERODACTYL_NEST_ID":         "5",
		"PTERODACTYL_EGG_ID":          "15",
	}
}

func TestFromEnv(t *testing.T) {
	cfg, err := FromEnv(mapLookup(fullEnv()))
	require.NoError(t, err)

	private := cfg.Targets[interfaces.TargetPrivate]
	assert.Equal(t, interfaces.TargetPrivate, private.Kind)
	assert.Equal(t, "https://private.example.com", private.BaseURL)
	assert.Equal(t, "ptla_private", private.APIKey)
	assert.Equal(t, "private-secret", private.SharedSecret)
	assert.True(t, private.RequireSecret)
	assert.Zero(t, private.EggID)

	public := cfg.Targets[interfaces.TargetPublic]
	assert.Equal(t, 16, public.EggID)

	assert.Equal(t, 1, cfg.Defaults.LocationID)
	assert.Equal(t, 5, cfg.Defaults.NestID)
	assert.Equal(t, 15, cfg.Defaults.EggID)
	assert.Equal(t, DefaultDockerImage, cfg.Defaults.DockerImage)
	assert.Equal(t, DefaultStartupCommand, cfg.Defaults.StartupCommand)
	assert.Equal(t, map[string]interface{}{"USER_ID": 1, "CMD_RUN": "node index.js"}, cfg.Defaults.Environment)

	assert.Equal(t, DefaultPanelTimeout, cfg.PanelTimeout)
	assert.Zero(t, cfg.PasswordLength)
	assert.False(t, cfg.Vault.Enabled())
	assert.Empty(t, cfg.Warnings())
}

func TestFromEnv_Overrides(t *testing.T) {
	env := fullEnv()
	env["PUBLIC_REQUIRE_SECRET"] = "false"
	env["PANEL_TIMEOUT"] = "5s"
	env["PASSWORD_LENGTH"] = "16"
	env["PTERODACTYL_EMAIL_DOMAIN"] = "bots.example.com"
	env["PTERODACTYL_CMD_RUN"] = "npm start"
	env["VAULT_ADDR"] = "https://vault.example.com:8200"

	cfg, err := FromEnv(mapLookup(env))
	require.NoError(t, err)

	assert.False(t, cfg.Targets[interfaces.TargetPublic].RequireSecret)
	assert.True(t, cfg.Targets[interfaces.TargetPrivate].RequireSecret)
	assert.Equal(t, 5*time.Second, cfg.PanelTimeout)
	assert.Equal(t, 16, cfg.PasswordLength)
	assert.Equal(t, "bots.example.com", cfg.EmailDomain)
	assert.Equal(t, "npm start", cfg.Defaults.Environment["CMD_RUN"])
	assert.True(t, cfg.Vault.Enabled())
	assert.Equal(t, "secret", cfg.Vault.Mount)
}

func TestFromEnv_MalformedValuesAggregated(t *testing.T) {
	env := fullEnv()
	env["PTERODACTYL_EGG_ID"] = "fifteen"
	env["PRIVATE_REQUIRE_SECRET"] = "maybe"
	env["PANEL_TIMEOUT"] = "soon"
	env["PTERODACTYL_NEST_ID"] = "-2"

	_, err := FromEnv(mapLookup(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PTERODACTYL_EGG_ID")
	assert.Contains(t, err.Error(), "PRIVATE_REQUIRE_SECRET")
	assert.Contains(t, err.Error(), "PANEL_TIMEOUT")
	assert.Contains(t, err.Error(), "PTERODACTYL_NEST_ID")
}

func TestFromEnv_NonPositiveTimeout(t *testing.T) {
	env := fullEnv()
	env["PANEL_TIMEOUT"] = "0s"

	_, err := FromEnv(mapLookup(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PANEL_TIMEOUT must be positive")
}

func TestFromEnv_MissingTargetIsWarningOnly(t *testing.T) {
	env := fullEnv()
	delete(env, "PUBLIC_PTERODACTYL_API_KEY")
	delete(env, "PUBLIC_APP_SECRET_KEY")
	delete(env, "PTERODACTYL_LOCATION_ID")

	cfg, err := FromEnv(mapLookup(env))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"private server defaults are missing location_id",
		"public target is missing api_key, shared_secret",
		"public server defaults are missing location_id",
	}, cfg.Warnings())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PANEL_PROVISIONING_TEST_VAR=from-file\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("PANEL_PROVISIONING_TEST_VAR") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-file", os.Getenv("PANEL_PROVISIONING_TEST_VAR"))

	assert.Error(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
}
