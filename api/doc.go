/*
Package api holds the HTTP contract of the panel provisioning endpoint.

The endpoint accepts POST /api/create with a server name, a memory limit, a
target selector ("private" or "public") and the shared secret of that target.
It creates a panel user and then a server owned by that user, and answers
with the generated credentials.

Subpackages:

 1. provisioner - request handling and a client for the endpoint
 2. servers - HTTP server lifecycle (health, drain, metrics, shutdown)
 3. create - serverless function entrypoint

# Responses

A successful run answers 201 with CreateResponse. Every failure answers with
ErrorResponse. When the server could not be created after the user was, the
error body still carries the user and its password: the account is not
rolled back and the operator finishes or removes it by hand.
*/
package api
