// ABOUTME: Admin guard turning a request into an Admin capability or a typed error
// ABOUTME: Linear pipeline: config lookup, header decode, verify, store lookup

package auth

import (
	"net/http"

	"github.com/relayforge/relaygate/internal/store"
)

// Admin is the capability granted to a request that passed the guard. It
// borrows the process-wide store handle for the duration of the request.
// The fields are unexported and the struct is only built inside VerifyAdmin,
// so holding an *Admin proves the request was authenticated.
type Admin struct {
	store store.Store
}

// Store returns the borrowed store handle.
func (a *Admin) Store() store.Store {
	return a.store
}

// VerifyAdmin evaluates the admin guard against a request. The pipeline is
// linear: fetch AdminConfig from context, decode the X-Api-Token header,
// verify the token, fetch the store handle, build the capability. The first
// failing step returns a typed *Error; there is no fallback or retry.
func VerifyAdmin(r *http.Request) (*Admin, *Error) {
	ctx := r.Context()

	cfg := AdminConfigFrom(ctx)
	if cfg == nil {
		return nil, errMissingConfig()
	}

	token, err := ParseXAPIToken(r.Header)
	if err != nil {
		return nil, errParseHeader(err)
	}

	ok, err := cfg.Verify(ctx, token)
	if err != nil {
		return nil, errVerifyFailure(err)
	}
	if !ok {
		return nil, errInvalid()
	}

	st := StoreFrom(ctx)
	if st == nil {
		return nil, errMissingStore()
	}

	return &Admin{store: st}, nil
}
