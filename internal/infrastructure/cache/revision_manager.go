package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
)

// RevisionManager tracks the current directory revision for cache
// consistency across instances. It uses PostgreSQL LISTEN/NOTIFY for
// instant propagation when access data changes, with a TTL fallback
// refresh in case notifications are missed.
type RevisionManager struct {
	mu          sync.RWMutex
	current     string
	db          *sql.DB
	refreshTTL  time.Duration
	lastRefresh time.Time
	listener    *pq.Listener
	connStr     string
	stopCh      chan struct{}
	stopped     bool
}

// NewRevisionManager creates a new RevisionManager.
// connStr is the PostgreSQL connection string for LISTEN/NOTIFY.
// refreshTTL is the fallback interval for refreshing from the database.
func NewRevisionManager(db *sql.DB, connStr string, refreshTTL time.Duration) *RevisionManager {
	return &RevisionManager{
		db:         db,
		connStr:    connStr,
		refreshTTL: refreshTTL,
		stopCh:     make(chan struct{}),
	}
}

// Start fetches the initial revision and begins listening for change
// notifications.
func (m *RevisionManager) Start(ctx context.Context) error {
	revision, err := m.fetchLatestRevision(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch initial revision: %w", err)
	}

	m.mu.Lock()
	m.current = revision
	m.lastRefresh = time.Now()
	m.mu.Unlock()

	if err := m.startListener(); err != nil {
		return fmt.Errorf("failed to start listener: %w", err)
	}

	return nil
}

// Stop stops the RevisionManager and cleans up resources.
func (m *RevisionManager) Stop() error {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return nil
	}
	m.stopped = true
	close(m.stopCh)
	m.mu.Unlock()

	if m.listener != nil {
		return m.listener.Close()
	}
	return nil
}

// CurrentRevision implements postgres.RevisionProvider. If the cached
// revision is older than refreshTTL it is refreshed from the database.
func (m *RevisionManager) CurrentRevision(ctx context.Context) (string, error) {
	m.mu.RLock()
	revision := m.current
	needsRefresh := time.Since(m.lastRefresh) > m.refreshTTL
	m.mu.RUnlock()

	// If db is nil (testing mode), just return the current value
	if m.db == nil {
		return revision, nil
	}

	if needsRefresh || revision == "" {
		return m.refreshFromDB(ctx)
	}

	return revision, nil
}

func (m *RevisionManager) refreshFromDB(ctx context.Context) (string, error) {
	revision, err := m.fetchLatestRevision(ctx)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.current = revision
	m.lastRefresh = time.Now()
	m.mu.Unlock()

	return revision, nil
}

func (m *RevisionManager) fetchLatestRevision(ctx context.Context) (string, error) {
	var revision int64
	err := m.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(id), 0)
		FROM access_revisions
	`).Scan(&revision)
	if err != nil {
		return "", fmt.Errorf("failed to fetch latest revision: %w", err)
	}
	return fmt.Sprintf("%d", revision), nil
}

func (m *RevisionManager) startListener() error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			// Log error but don't fail - we have TTL fallback
			fmt.Printf("RevisionManager listener error: %v\n", err)
		}
	}

	m.listener = pq.NewListener(m.connStr, 10*time.Second, time.Minute, reportProblem)

	if err := m.listener.Listen("access_changed"); err != nil {
		return fmt.Errorf("failed to listen on access_changed: %w", err)
	}

	go m.handleNotifications()

	return nil
}

func (m *RevisionManager) handleNotifications() {
	for {
		select {
		case <-m.stopCh:
			return
		case notification := <-m.listener.Notify:
			if notification == nil {
				// Connection lost, listener will reconnect automatically
				continue
			}

			m.mu.Lock()
			m.current = notification.Extra
			m.lastRefresh = time.Now()
			m.mu.Unlock()
		case <-time.After(90 * time.Second):
			// Periodic ping to keep connection alive
			go func() {
				if err := m.listener.Ping(); err != nil {
					fmt.Printf("RevisionManager ping error: %v\n", err)
				}
			}()
		}
	}
}

// SetRevision manually sets the current revision.
// This is primarily used for testing.
func (m *RevisionManager) SetRevision(revision string) {
	m.mu.Lock()
	m.current = revision
	m.lastRefresh = time.Now()
	m.mu.Unlock()
}
