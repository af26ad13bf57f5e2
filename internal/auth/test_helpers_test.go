// ABOUTME: Shared test fixtures for the auth package
// ABOUTME: Provides an in-memory fake store satisfying store.Store

package auth

import (
	"context"
	"time"

	"github.com/relayforge/relaygate/internal/store"
)

// fakeStore is a minimal in-memory store.Store for guard tests.
type fakeStore struct {
	allowed   map[string]bool
	blocked   map[string]bool
	instances map[string]*store.Instance
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		allowed:   make(map[string]bool),
		blocked:   make(map[string]bool),
		instances: make(map[string]*store.Instance),
	}
}

func (f *fakeStore) AllowDomain(_ context.Context, domain string) error {
	f.allowed[domain] = true
	return nil
}

func (f *fakeStore) DisallowDomain(_ context.Context, domain string) error {
	delete(f.allowed, domain)
	return nil
}

func (f *fakeStore) ListAllowed(_ context.Context) ([]string, error) {
	var out []string
	for d := range f.allowed {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) IsAllowed(_ context.Context, domain string) (bool, error) {
	return f.allowed[domain], nil
}

func (f *fakeStore) BlockDomain(_ context.Context, domain string) error {
	f.blocked[domain] = true
	return nil
}

func (f *fakeStore) UnblockDomain(_ context.Context, domain string) error {
	delete(f.blocked, domain)
	return nil
}

func (f *fakeStore) ListBlocked(_ context.Context) ([]string, error) {
	var out []string
	for d := range f.blocked {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) IsBlocked(_ context.Context, domain string) (bool, error) {
	return f.blocked[domain], nil
}

func (f *fakeStore) AddInstance(_ context.Context, inst *store.Instance) error {
	if inst.ConnectedAt.IsZero() {
		inst.ConnectedAt = time.Now()
	}
	f.instances[inst.ActorID] = inst
	return nil
}

func (f *fakeStore) RemoveInstance(_ context.Context, actorID string) error {
	if _, ok := f.instances[actorID]; !ok {
		return store.ErrInstanceNotFound
	}
	delete(f.instances, actorID)
	return nil
}

func (f *fakeStore) GetInstance(_ context.Context, actorID string) (*store.Instance, error) {
	inst, ok := f.instances[actorID]
	if !ok {
		return nil, store.ErrInstanceNotFound
	}
	return inst, nil
}

func (f *fakeStore) ListInstances(_ context.Context) ([]*store.Instance, error) {
	var out []*store.Instance
	for _, inst := range f.instances {
		out = append(out, inst)
	}
	return out, nil
}

func (f *fakeStore) Stats(_ context.Context) (*store.Stats, error) {
	return &store.Stats{
		AllowedDomains: len(f.allowed),
		BlockedDomains: len(f.blocked),
		Connected:      len(f.instances),
	}, nil
}

func (f *fakeStore) Close() error {
	return nil
}
