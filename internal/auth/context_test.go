// ABOUTME: Tests for context plumbing of guard collaborators and capabilities
// ABOUTME: Covers WithX/XFrom pairs, absent values, and MustAdminFrom panics

package auth

import (
	"context"
	"testing"
)

func TestAdminConfigContext(t *testing.T) {
	cfg := mustAdminConfig(t, "s3cr3t")

	ctx := WithAdminConfig(context.Background(), cfg)
	if got := AdminConfigFrom(ctx); got != cfg {
		t.Errorf("expected the same AdminConfig back, got %v", got)
	}

	if got := AdminConfigFrom(context.Background()); got != nil {
		t.Errorf("expected nil for bare context, got %v", got)
	}
}

func TestStoreContext(t *testing.T) {
	st := newFakeStore()

	ctx := WithStore(context.Background(), st)
	if got := StoreFrom(ctx); got != st {
		t.Errorf("expected the same store back, got %v", got)
	}

	if got := StoreFrom(context.Background()); got != nil {
		t.Errorf("expected nil for bare context, got %v", got)
	}
}

func TestAdminContext(t *testing.T) {
	admin := &Admin{store: newFakeStore()}

	ctx := WithAdmin(context.Background(), admin)
	if got := AdminFrom(ctx); got != admin {
		t.Errorf("expected the same Admin back, got %v", got)
	}

	if got := AdminFrom(context.Background()); got != nil {
		t.Errorf("expected nil for bare context, got %v", got)
	}
}

func TestMustAdminFrom_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing Admin")
		}
	}()
	MustAdminFrom(context.Background())
}
