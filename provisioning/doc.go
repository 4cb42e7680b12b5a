// Package provisioning implements the request orchestration of the panel
// provisioning backend.
//
// # Flow
//
//  1. Validate the request (server name, memory, target kind)
//  2. Resolve the backend target and check the caller's shared secret
//  3. Generate account credentials from the server name
//  4. Create the panel user
//  5. Create the server under that user with limits from DeriveLimits
//  6. Return the combined Result
//
// Steps 4 and 5 are single attempts. When step 5 fails the account created in
// step 4 stays on the panel and is returned inside the *Error so it is never
// orphaned silently.
//
// # Errors
//
// Every failure is an *Error with a Kind. Kind.HTTPStatus gives the status the
// HTTP layer answers with. ClassifyBackendError is the single place that
// interprets panel error wording, turning "already exists" and
// "already been taken" details into KindConflict.
//
// # Limits Policy
//
// DeriveLimits sets disk to three times the memory and CPU to 100% per GiB.
// A memory of 0 means unlimited and gets 5120 MB disk and 400% CPU. Swap is
// always 0 and IO weight 500.
package provisioning
