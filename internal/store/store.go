// ABOUTME: Store interface and data types for relaygate persistence
// ABOUTME: Defines domain allow/block lists and connected instance records

package store

import (
	"context"
	"errors"
	"time"
)

// ErrInstanceNotFound is returned when no instance exists for an actor ID
var ErrInstanceNotFound = errors.New("instance not found")

// Instance represents a remote server currently connected to the relay.
type Instance struct {
	ID          string // UUID assigned on first connect
	ActorID     string // remote actor URL, unique per instance
	Domain      string
	InboxURL    string
	ConnectedAt time.Time
	LastSeen    time.Time
}

// Stats summarizes the relay's admin-visible state.
type Stats struct {
	AllowedDomains int
	BlockedDomains int
	Connected      int
}

// Store defines the persistence operations relaygate needs. The admin API
// reaches it only through the auth guard's capability.
type Store interface {
	// Allowlist
	AllowDomain(ctx context.Context, domain string) error
	DisallowDomain(ctx context.Context, domain string) error
	ListAllowed(ctx context.Context) ([]string, error)
	IsAllowed(ctx context.Context, domain string) (bool, error)

	// Blocklist
	BlockDomain(ctx context.Context, domain string) error
	UnblockDomain(ctx context.Context, domain string) error
	ListBlocked(ctx context.Context) ([]string, error)
	IsBlocked(ctx context.Context, domain string) (bool, error)

	// Connected instances
	AddInstance(ctx context.Context, inst *Instance) error
	RemoveInstance(ctx context.Context, actorID string) error
	GetInstance(ctx context.Context, actorID string) (*Instance, error)
	ListInstances(ctx context.Context) ([]*Instance, error)

	// Stats returns allow/block/connected counts.
	Stats(ctx context.Context) (*Stats, error)

	// Close releases the underlying database.
	Close() error
}
