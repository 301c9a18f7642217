package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// RevisionProvider supplies the current directory revision, used to key
// cached access decisions. Every directory write bumps the revision, so
// a changed revision invalidates all prior cache entries at once.
type RevisionProvider interface {
	CurrentRevision(ctx context.Context) (string, error)
}

// RevisionStore reads the directory revision from PostgreSQL. A
// statement trigger on every directory table appends a row to
// access_revisions and notifies listeners.
type RevisionStore struct {
	db *sql.DB
}

// NewRevisionStore creates a new revision store.
func NewRevisionStore(db *sql.DB) *RevisionStore {
	return &RevisionStore{db: db}
}

// CurrentRevision returns the latest revision as a string. A database
// with no writes yet reports revision "0".
func (s *RevisionStore) CurrentRevision(ctx context.Context) (string, error) {
	var revision int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(id), 0)
		FROM access_revisions
	`).Scan(&revision)
	if err != nil {
		return "", fmt.Errorf("failed to fetch current revision: %w", err)
	}
	return fmt.Sprintf("%d", revision), nil
}
