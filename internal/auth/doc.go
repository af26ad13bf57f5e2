// ABOUTME: Package documentation for relaygate's admin authentication guard
// ABOUTME: Explains the token header, the guard pipeline, and error mapping

// Package auth implements the admin authentication guard for relaygate.
//
// # Token Authentication
//
// Administrative endpoints are protected by a single shared secret. Callers
// present the secret in the X-Api-Token header:
//
//	X-Api-Token: <plaintext secret>
//
// The server never stores the plaintext. At startup the operator-supplied
// secret is bcrypt-hashed into an AdminConfig, and each request's presented
// token is compared against that hash.
//
// # Guard Pipeline
//
// VerifyAdmin runs a fixed sequence per request:
//
//  1. Fetch the AdminConfig from the request context (MissingConfig on absence)
//  2. Decode the X-Api-Token header (ParseHeader on missing/duplicate/malformed)
//  3. Compare against the stored hash (Invalid on mismatch, VerifyFailure on
//     a bcrypt fault)
//  4. Fetch the store handle from the request context (MissingStore on absence)
//  5. Return an Admin capability borrowing the store
//
// The Admin capability is the only way handlers reach the store on protected
// routes; it cannot be constructed outside a successful guard run.
//
// # Error Mapping
//
// Guard failures are typed. Invalid and ParseHeader map to 400 Bad Request
// (attacker-facing, generic messages); MissingConfig, MissingStore, and
// VerifyFailure map to 500 Internal Server Error (operator-facing). Hashing
// failures at startup are fatal and never become HTTP responses. Failure
// bodies are JSON: {"msg": "<message>"}.
//
// # Context Plumbing
//
// The process-wide AdminConfig and store handle travel to handlers through
// context.Context, seeded by the server's base context at startup:
//
//	ctx = auth.WithAdminConfig(ctx, cfg)
//	ctx = auth.WithStore(ctx, st)
//
// RequireAdmin is the HTTP middleware form of the guard; on success it
// attaches the Admin capability via WithAdmin for retrieval with AdminFrom.
package auth
