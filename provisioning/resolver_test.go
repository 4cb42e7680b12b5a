package provisioning

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ruteri/panel-provisioning-backend/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTargets() map[interfaces.TargetKind]interfaces.BackendTarget {
	return map[interfaces.TargetKind]interfaces.BackendTarget{
		interfaces.TargetPrivate: {
			BaseURL:       "https://private.example.com",
			APIKey:        "ptla_private",
			SharedSecret:  "private-secret",
			RequireSecret: true,
		},
		interfaces.TargetPublic: {
			BaseURL:       "https://public.example.com",
			APIKey:        "ptla_public",
			SharedSecret:  "public-secret",
			RequireSecret: true,
		},
	}
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	require.Error(t, err)
	var pErr *Error
	require.True(t, errors.As(err, &pErr), "unexpected error type %T", err)
	assert.Equal(t, kind, pErr.Kind, pErr.Error())
	return pErr
}

func TestResolve_Success(t *testing.T) {
	r := NewResolver(testTargets(), testLogger())

	target, err := r.Resolve(interfaces.TargetPrivate, "private-secret")
	require.NoError(t, err)
	assert.Equal(t, interfaces.TargetPrivate, target.Kind)
	assert.Equal(t, "https://private.example.com", target.BaseURL)

	target, err = r.Resolve(interfaces.TargetPublic, "public-secret")
	require.NoError(t, err)
	assert.Equal(t, "ptla_public", target.APIKey)
}

func TestResolve_SecretMismatch(t *testing.T) {
	r := NewResolver(testTargets(), testLogger())

	// the other target's secret does not unlock this one
	_, err := r.Resolve(interfaces.TargetPrivate, "public-secret")
	pErr := requireKind(t, err, KindForbidden)
	assert.Equal(t, MsgForbidden, pErr.Message)

	_, err = r.Resolve(interfaces.TargetPrivate, "")
	requireKind(t, err, KindForbidden)
}

func TestResolve_UnknownKind(t *testing.T) {
	r := NewResolver(testTargets(), testLogger())

	_, err := r.Resolve("staging", "private-secret")
	requireKind(t, err, KindBadRequest)

	_, err = r.Resolve("", "private-secret")
	requireKind(t, err, KindBadRequest)
}

func TestResolve_Misconfigured(t *testing.T) {
	targets := testTargets()
	public := targets[interfaces.TargetPublic]
	public.APIKey = ""
	targets[interfaces.TargetPublic] = public
	delete(targets, interfaces.TargetPrivate)

	r := NewResolver(targets, testLogger())

	_, err := r.Resolve(interfaces.TargetPublic, "public-secret")
	pErr := requireKind(t, err, KindServerMisconfigured)
	assert.Equal(t, MsgServerMisconfigured, pErr.Message)
	assert.NotContains(t, pErr.Message, "api_key")

	_, err = r.Resolve(interfaces.TargetPrivate, "private-secret")
	requireKind(t, err, KindServerMisconfigured)
}

func TestResolve_EmptySecretIsMisconfigurationNotMatch(t *testing.T) {
	targets := testTargets()
	private := targets[interfaces.TargetPrivate]
	private.SharedSecret = ""
	targets[interfaces.TargetPrivate] = private

	r := NewResolver(targets, testLogger())

	// an empty configured secret must never match an empty supplied secret
	_, err := r.Resolve(interfaces.TargetPrivate, "")
	requireKind(t, err, KindServerMisconfigured)
}

func TestResolve_SecretNotRequired(t *testing.T) {
	targets := testTargets()
	public := targets[interfaces.TargetPublic]
	public.RequireSecret = false
	public.SharedSecret = ""
	targets[interfaces.TargetPublic] = public

	r := NewResolver(targets, testLogger())

	_, err := r.Resolve(interfaces.TargetPublic, "anything")
	require.NoError(t, err)
	_, err = r.Resolve(interfaces.TargetPublic, "")
	require.NoError(t, err)
}

func TestResolver_Targets(t *testing.T) {
	targets := testTargets()
	delete(targets, interfaces.TargetPrivate)

	r := NewResolver(targets, testLogger())
	assert.Equal(t, []interfaces.TargetKind{interfaces.TargetPublic}, r.Targets())

	// the resolver keeps its own copy
	targets[interfaces.TargetPrivate] = interfaces.BackendTarget{}
	assert.Equal(t, []interfaces.TargetKind{interfaces.TargetPublic}, r.Targets())
}
