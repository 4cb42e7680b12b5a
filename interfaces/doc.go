// Package interfaces defines the core types and contracts of the panel
// provisioning backend, separating definitions from implementations.
//
// # Targets
//
// BackendTarget describes one statically configured panel deployment. Exactly
// two kinds exist, TargetPrivate and TargetPublic, and a request selects one
// of them with its TargetKind.
//
// # Provisioning Types
//
//   - ProvisionRequest: caller-supplied input, validated before use
//   - ProvisionedAccount: the panel user created for the request, including
//     the generated password that only ever lives in memory and in the response
//   - ProvisionedInstance: the server created under that account
//   - SharedServerDefaults: static nest/egg/location/image settings applied
//     to every created server
//
// # Panel Contracts
//
// PanelClient abstracts the two application API calls the system makes.
// PanelClientFactory returns a PanelClient bound to a given target so that
// the orchestrator never holds per-target state of its own.
package interfaces
