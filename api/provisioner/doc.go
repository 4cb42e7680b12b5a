// Package provisioner serves and consumes the panel provisioning endpoint.
//
// # Key Components
//
//   - Handler: decodes POST /api/create, runs the provisioning flow and maps
//     failure kinds to HTTP statuses
//   - ProvisioningClient: submits requests to a running endpoint
//   - MockProvider, MockProvisioner: testify mocks for both sides
//
// # Request Handling
//
// Every response of the route carries permissive CORS headers. OPTIONS answers
// 200 without a body, methods other than POST answer 405.
//
// For POST the handler:
//
//  1. Reads at most 1MB of JSON body
//  2. Rejects bodies missing serverName, ram or panelType with 400
//  3. Passes the request to the Provisioner, which checks the target secret
//     before any panel call
//  4. Answers 201 with the user, its password and the server
//
// Failures answer with api.ErrorResponse. A failure after the user was created
// includes that user and its password.
//
// # Usage Example
//
//	orchestrator := provisioning.NewOrchestrator(resolver, panel.NewClientFactory(timeout), generator, cfg.Defaults, logger)
//	handler := provisioner.NewHandler(orchestrator, logger)
//	srv, err := servers.New(serverConfig, handler)
package provisioner
