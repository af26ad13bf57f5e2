// Package store provides persistent storage for relaygate using SQLite.
//
// # Architecture
//
// The Store interface covers three areas:
//
//   - Domain allowlist: domains permitted to join the relay
//   - Domain blocklist: domains refused outright
//   - Connected instances: remote servers currently subscribed
//
// SQLiteStore implements the interface on a single database file with
// automatic schema creation and WAL journaling. Admin API handlers never
// hold a SQLiteStore directly; they receive the Store interface through the
// auth guard's capability.
//
// # Data Models
//
//   - Instance: a connected remote server (UUID, actor URL, domain, inbox)
//   - Stats: allowed/blocked/connected counts for the admin stats endpoint
//
// Timestamps are stored as RFC3339 strings in DATETIME columns.
package store
