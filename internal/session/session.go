// Package session holds the single-slot authenticated session with sliding
// expiry. The manager persists the slot in the session table so a restart
// resumes an unexpired session, and caches the logged-in user record for
// fast reload.
package session

import (
	"log/slog"
	"sync"
	"time"

	sessionDatamodel "github.com/frahmantamala/activity-tracker/internal/core/datamodel/session"
	"github.com/frahmantamala/activity-tracker/internal/storage"
	"github.com/frahmantamala/activity-tracker/internal/user"
)

const (
	DefaultTimeout          = 30 * time.Minute
	DefaultLivenessInterval = time.Minute
)

// Manager owns the session slot. All access to the slot goes through the
// mutex; the liveness loop shares it with the request path.
type Manager struct {
	mu      sync.Mutex
	adapter *storage.Adapter
	logger  *slog.Logger

	timeout time.Duration
	current *sessionDatamodel.Session

	expired chan string

	stopOnce sync.Once
	stop     chan struct{}
}

func NewManager(adapter *storage.Adapter, timeout time.Duration, logger *slog.Logger) *Manager {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	m := &Manager{
		adapter: adapter,
		logger:  logger,
		timeout: timeout,
		expired: make(chan string, 1),
		stop:    make(chan struct{}),
	}
	m.current = adapter.ReadSession()
	return m
}

// Expired delivers the user id of a session the liveness loop force-closed.
// The channel is buffered with one slot; at most one logout happens per
// login so nothing is lost.
func (m *Manager) Expired() <-chan string {
	return m.expired
}

// Login replaces the slot with a fresh session for the user and caches the
// user record for CurrentUser.
func (m *Manager) Login(u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess := &sessionDatamodel.Session{
		UserID:       u.ID,
		Email:        u.Email,
		Role:         string(u.Role),
		LastActivity: time.Now().UnixMilli(),
	}
	if err := m.adapter.WriteSession(sess); err != nil {
		return err
	}
	record := user.ToDataModel(u)
	if err := m.adapter.WriteCurrentUser(&record); err != nil {
		return err
	}

	m.current = sess
	m.logger.Info("session started", "user_id", u.ID, "role", string(u.Role))
	return nil
}

// Touch slides the expiry window. Anonymous managers no-op.
func (m *Manager) Touch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil
	}
	m.current.LastActivity = time.Now().UnixMilli()
	return m.adapter.WriteSession(m.current)
}

// IsValid reports whether an authenticated, unexpired session exists.
func (m *Manager) IsValid() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validLocked()
}

func (m *Manager) validLocked() bool {
	if m.current == nil {
		return false
	}
	last := time.UnixMilli(m.current.LastActivity)
	return time.Since(last) < m.timeout
}

// Logout clears the slot and the cached user. Safe to call when anonymous.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logoutLocked()
}

// logoutLocked is a no-op once the slot is empty, so a forced logout from
// the liveness loop and an explicit logout cannot tear down the same
// session twice.
func (m *Manager) logoutLocked() error {
	if m.current == nil {
		return nil
	}

	if err := m.adapter.RemoveSession(); err != nil {
		return err
	}
	if err := m.adapter.RemoveCurrentUser(); err != nil {
		return err
	}

	m.logger.Info("session ended", "user_id", m.current.UserID)
	m.current = nil
	return nil
}

// CurrentUserID returns the session user's id, or "" when anonymous.
func (m *Manager) CurrentUserID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.UserID
}

// CurrentRole returns the denormalized role stored at login time.
func (m *Manager) CurrentRole() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return ""
	}
	return m.current.Role
}

// CurrentUser reloads the cached user record without touching the users
// table.
func (m *Manager) CurrentUser() *user.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := m.adapter.ReadCurrentUser()
	if record == nil {
		return nil
	}
	return user.FromDataModel(*record)
}

// CacheCurrentUser refreshes the cached record after a profile update.
func (m *Manager) CacheCurrentUser(u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record := user.ToDataModel(u)
	return m.adapter.WriteCurrentUser(&record)
}

// StartLivenessLoop checks the slot on every tick and force-closes an
// expired session, announcing it on the expiry channel. Stop cancels the
// loop.
func (m *Manager) StartLivenessLoop(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultLivenessInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-m.stop:
				return
			case <-ticker.C:
				m.checkExpiry()
			}
		}
	}()
}

func (m *Manager) checkExpiry() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil || m.validLocked() {
		return
	}

	userID := m.current.UserID
	if err := m.logoutLocked(); err != nil {
		m.logger.Error("failed to close expired session", "error", err, "user_id", userID)
		return
	}

	m.logger.Info("session expired", "user_id", userID)
	select {
	case m.expired <- userID:
	default:
	}
}

func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}
