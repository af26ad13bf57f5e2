// ABOUTME: Context plumbing for process-wide guard collaborators and the Admin capability
// ABOUTME: Provides WithX/XFrom pairs for AdminConfig, the store handle, and Admin

package auth

import (
	"context"

	"github.com/relayforge/relaygate/internal/store"
)

// adminConfigKey is the context key for the process-wide AdminConfig.
type adminConfigKey struct{}

// storeKey is the context key for the process-wide store handle.
type storeKey struct{}

// adminKey is the context key for a request's verified Admin capability.
type adminKey struct{}

// WithAdminConfig returns a context carrying the process-wide AdminConfig.
// Installed once on the server's base context at startup.
func WithAdminConfig(ctx context.Context, cfg *AdminConfig) context.Context {
	return context.WithValue(ctx, adminConfigKey{}, cfg)
}

// AdminConfigFrom retrieves the AdminConfig, or nil if not present.
func AdminConfigFrom(ctx context.Context) *AdminConfig {
	cfg, _ := ctx.Value(adminConfigKey{}).(*AdminConfig)
	return cfg
}

// WithStore returns a context carrying the process-wide store handle.
func WithStore(ctx context.Context, st store.Store) context.Context {
	return context.WithValue(ctx, storeKey{}, st)
}

// StoreFrom retrieves the store handle, or nil if not present.
func StoreFrom(ctx context.Context) store.Store {
	st, _ := ctx.Value(storeKey{}).(store.Store)
	return st
}

// WithAdmin returns a context carrying a verified Admin capability.
// Only the guard middleware attaches this.
func WithAdmin(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, adminKey{}, admin)
}

// AdminFrom retrieves the Admin capability, or nil if the request did not
// pass through the guard.
func AdminFrom(ctx context.Context) *Admin {
	admin, _ := ctx.Value(adminKey{}).(*Admin)
	return admin
}

// MustAdminFrom retrieves the Admin capability, panicking if absent. For
// handlers that are only ever registered behind RequireAdmin.
func MustAdminFrom(ctx context.Context) *Admin {
	admin := AdminFrom(ctx)
	if admin == nil {
		panic("auth: Admin capability not found in context")
	}
	return admin
}
