// Package server wires relaygate's HTTP API.
//
// # Routes
//
//	GET  /health                   liveness, no auth
//	GET  /api/v1/admin/allowed     list allowlisted domains
//	POST /api/v1/admin/allow       add domains to the allowlist
//	POST /api/v1/admin/disallow    remove domains from the allowlist
//	GET  /api/v1/admin/blocked     list blocklisted domains
//	POST /api/v1/admin/block       add domains to the blocklist
//	POST /api/v1/admin/unblock     remove domains from the blocklist
//	GET  /api/v1/admin/connected   list connected instances
//	GET  /api/v1/admin/stats       allowed/blocked/connected counts
//
// Every /api/v1/admin route sits behind auth.RequireAdmin; callers present
// the admin secret in the X-Api-Token header. Handlers reach the store only
// through the guard's Admin capability.
//
// # Context Seeding
//
// Server.Run installs Server.BaseContext as the http.Server base context, so
// every request context carries the process-wide AdminConfig and store
// handle the guard looks up. Tests reuse BaseContext on an
// httptest.Server's Config for the same effect.
package server
