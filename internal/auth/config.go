// ABOUTME: AdminConfig holds the bcrypt hash of the admin API token
// ABOUTME: Built once at startup, verified per request through a bounded worker pool

package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultVerifyWorkers bounds how many bcrypt comparisons may run at once.
// bcrypt is intentionally expensive, so unbounded concurrent verifications
// under a credential-guessing flood would crowd out unrelated request work.
const DefaultVerifyWorkers = 4

// AdminConfig holds the one-way hash of the administrator API token. It is
// immutable after construction and safe to share across requests. The
// plaintext secret is hashed in NewAdminConfig and never retained.
type AdminConfig struct {
	hashedAPIToken []byte
	verifySlots    chan struct{}
}

// NewAdminConfig hashes the operator-supplied API token with bcrypt at
// DefaultCost. A hashing fault is returned as a HashFailure *Error; callers
// must treat it as fatal rather than start without a usable credential.
// verifyWorkers bounds concurrent Verify calls; values < 1 use
// DefaultVerifyWorkers.
func NewAdminConfig(apiToken string, verifyWorkers int) (*AdminConfig, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(apiToken), bcrypt.DefaultCost)
	if err != nil {
		return nil, errHashFailure(err)
	}

	if verifyWorkers < 1 {
		verifyWorkers = DefaultVerifyWorkers
	}

	return &AdminConfig{
		hashedAPIToken: hashed,
		verifySlots:    make(chan struct{}, verifyWorkers),
	}, nil
}

// Verify compares a presented token against the stored hash. A mismatch is
// the normal (false, nil) result, not an error; only an internal bcrypt
// fault (for example a corrupted stored hash) produces a non-nil error. The
// comparison waits for a worker slot so at most verifyWorkers bcrypt runs
// execute concurrently; waiting is abandoned if ctx is canceled.
func (c *AdminConfig) Verify(ctx context.Context, token XAPIToken) (bool, error) {
	select {
	case c.verifySlots <- struct{}{}:
		defer func() { <-c.verifySlots }()
	case <-ctx.Done():
		return false, ctx.Err()
	}

	err := bcrypt.CompareHashAndPassword(c.hashedAPIToken, []byte(token.raw))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
