// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Persists domain allow/block lists and connected instances with auto schema

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the Store interface using SQLite
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite store at the given path.
// The schema is automatically created if it doesn't exist.
// Parent directories are created if needed.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	logger := slog.Default().With("component", "store")

	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// createSchema creates all tables if they don't exist
func (s *SQLiteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS allowed_domains (
			domain TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS blocked_domains (
			domain TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS instances (
			id TEXT PRIMARY KEY,
			actor_id TEXT NOT NULL UNIQUE,
			domain TEXT NOT NULL,
			inbox_url TEXT NOT NULL,
			connected_at DATETIME NOT NULL,
			last_seen DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_instances_domain ON instances(domain);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	return nil
}

// AllowDomain adds a domain to the allowlist. Adding an already-allowed
// domain is a no-op.
func (s *SQLiteStore) AllowDomain(ctx context.Context, domain string) error {
	query := `
		INSERT INTO allowed_domains (domain, created_at)
		VALUES (?, ?)
		ON CONFLICT(domain) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, domain, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("allowing domain: %w", err)
	}

	s.logger.Debug("domain allowed", "domain", domain)
	return nil
}

// DisallowDomain removes a domain from the allowlist. Removing an absent
// domain is a no-op.
func (s *SQLiteStore) DisallowDomain(ctx context.Context, domain string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM allowed_domains WHERE domain = ?`, domain); err != nil {
		return fmt.Errorf("disallowing domain: %w", err)
	}

	s.logger.Debug("domain disallowed", "domain", domain)
	return nil
}

// ListAllowed returns all allowlisted domains sorted alphabetically.
func (s *SQLiteStore) ListAllowed(ctx context.Context) ([]string, error) {
	return s.listDomains(ctx, `SELECT domain FROM allowed_domains ORDER BY domain`)
}

// IsAllowed reports whether a domain is on the allowlist.
func (s *SQLiteStore) IsAllowed(ctx context.Context, domain string) (bool, error) {
	return s.domainExists(ctx, `SELECT 1 FROM allowed_domains WHERE domain = ?`, domain)
}

// BlockDomain adds a domain to the blocklist. Adding an already-blocked
// domain is a no-op.
func (s *SQLiteStore) BlockDomain(ctx context.Context, domain string) error {
	query := `
		INSERT INTO blocked_domains (domain, created_at)
		VALUES (?, ?)
		ON CONFLICT(domain) DO NOTHING
	`
	if _, err := s.db.ExecContext(ctx, query, domain, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("blocking domain: %w", err)
	}

	s.logger.Debug("domain blocked", "domain", domain)
	return nil
}

// UnblockDomain removes a domain from the blocklist. Removing an absent
// domain is a no-op.
func (s *SQLiteStore) UnblockDomain(ctx context.Context, domain string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blocked_domains WHERE domain = ?`, domain); err != nil {
		return fmt.Errorf("unblocking domain: %w", err)
	}

	s.logger.Debug("domain unblocked", "domain", domain)
	return nil
}

// ListBlocked returns all blocklisted domains sorted alphabetically.
func (s *SQLiteStore) ListBlocked(ctx context.Context) ([]string, error) {
	return s.listDomains(ctx, `SELECT domain FROM blocked_domains ORDER BY domain`)
}

// IsBlocked reports whether a domain is on the blocklist.
func (s *SQLiteStore) IsBlocked(ctx context.Context, domain string) (bool, error) {
	return s.domainExists(ctx, `SELECT 1 FROM blocked_domains WHERE domain = ?`, domain)
}

func (s *SQLiteStore) listDomains(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing domains: %w", err)
	}
	defer rows.Close()

	var domains []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scanning domain: %w", err)
		}
		domains = append(domains, d)
	}

	return domains, rows.Err()
}

func (s *SQLiteStore) domainExists(ctx context.Context, query, domain string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, query, domain).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking domain: %w", err)
	}
	return true, nil
}

// AddInstance records a connected instance. A UUID is assigned if the caller
// left ID empty. Reconnecting an existing actor updates its row in place and
// refreshes last_seen.
func (s *SQLiteStore) AddInstance(ctx context.Context, inst *Instance) error {
	if inst.ID == "" {
		inst.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if inst.ConnectedAt.IsZero() {
		inst.ConnectedAt = now
	}
	if inst.LastSeen.IsZero() {
		inst.LastSeen = now
	}

	query := `
		INSERT INTO instances (id, actor_id, domain, inbox_url, connected_at, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(actor_id) DO UPDATE SET
			domain = excluded.domain,
			inbox_url = excluded.inbox_url,
			last_seen = excluded.last_seen
	`
	_, err := s.db.ExecContext(ctx, query,
		inst.ID,
		inst.ActorID,
		inst.Domain,
		inst.InboxURL,
		inst.ConnectedAt.UTC().Format(time.RFC3339),
		inst.LastSeen.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("adding instance: %w", err)
	}

	s.logger.Debug("instance added", "actor_id", inst.ActorID, "domain", inst.Domain)
	return nil
}

// RemoveInstance deletes a connected instance by actor ID.
// Returns ErrInstanceNotFound if no such instance exists.
func (s *SQLiteStore) RemoveInstance(ctx context.Context, actorID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM instances WHERE actor_id = ?`, actorID)
	if err != nil {
		return fmt.Errorf("removing instance: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing instance: %w", err)
	}
	if n == 0 {
		return ErrInstanceNotFound
	}

	s.logger.Debug("instance removed", "actor_id", actorID)
	return nil
}

// GetInstance returns the connected instance for an actor ID.
// Returns ErrInstanceNotFound if no such instance exists.
func (s *SQLiteStore) GetInstance(ctx context.Context, actorID string) (*Instance, error) {
	query := `
		SELECT id, actor_id, domain, inbox_url, connected_at, last_seen
		FROM instances
		WHERE actor_id = ?
	`
	inst, err := scanInstance(s.db.QueryRowContext(ctx, query, actorID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstanceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting instance: %w", err)
	}
	return inst, nil
}

// ListInstances returns all connected instances ordered by connect time.
func (s *SQLiteStore) ListInstances(ctx context.Context) ([]*Instance, error) {
	query := `
		SELECT id, actor_id, domain, inbox_url, connected_at, last_seen
		FROM instances
		ORDER BY connected_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing instances: %w", err)
	}
	defer rows.Close()

	var instances []*Instance
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning instance: %w", err)
		}
		instances = append(instances, inst)
	}

	return instances, rows.Err()
}

// Stats returns allow/block/connected counts.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM allowed_domains),
			(SELECT COUNT(*) FROM blocked_domains),
			(SELECT COUNT(*) FROM instances)
	`
	var st Stats
	if err := s.db.QueryRowContext(ctx, query).Scan(&st.AllowedDomains, &st.BlockedDomains, &st.Connected); err != nil {
		return nil, fmt.Errorf("counting stats: %w", err)
	}
	return &st, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// rowScanner lets scanInstance work for both QueryRow and rows iteration.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanInstance(row rowScanner) (*Instance, error) {
	var inst Instance
	var connectedAtStr, lastSeenStr string

	if err := row.Scan(&inst.ID, &inst.ActorID, &inst.Domain, &inst.InboxURL, &connectedAtStr, &lastSeenStr); err != nil {
		return nil, err
	}

	var err error
	inst.ConnectedAt, err = time.Parse(time.RFC3339, connectedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing connected_at: %w", err)
	}
	inst.LastSeen, err = time.Parse(time.RFC3339, lastSeenStr)
	if err != nil {
		return nil, fmt.Errorf("parsing last_seen: %w", err)
	}

	return &inst, nil
}
