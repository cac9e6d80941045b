package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/sulaimaniyah/undangan/internal/logging"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/flow"
	"github.com/sulaimaniyah/undangan/pkg/ports"
	"github.com/sulaimaniyah/undangan/pkg/recipient"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// liveEntry is an open flow plus the timestamp of its last persisted snapshot.
type liveEntry struct {
	flow  *flow.Controller
	saved time.Time
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store     ports.StateStore
	confirmer ports.Confirmer

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	liveMu sync.Mutex
	live   map[string]*liveEntry

	locker    ports.DistributedLocker // Optional distributed locker
	lockTTL   time.Duration
	logger    *slog.Logger
	flowOpts  []flow.Option
	listeners []func(*domain.Snapshot)
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL overrides DefaultLockTTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithFlowOptions are applied to every flow the Manager creates.
func WithFlowOptions(opts ...flow.Option) Option {
	return func(m *Manager) {
		m.flowOpts = append(m.flowOpts, opts...)
	}
}

// WithListener registers a callback receiving every snapshot after it is persisted.
func WithListener(fn func(*domain.Snapshot)) Option {
	return func(m *Manager) {
		m.listeners = append(m.listeners, fn)
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.StateStore, confirmer ports.Confirmer, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		confirmer: confirmer,
		locks:     make(map[string]*lockEntry),
		live:      make(map[string]*liveEntry),
		lockTTL:   DefaultLockTTL,
		logger:    logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Open returns the live flow for sessionID. A session found in the store
// is rebuilt from its snapshot; otherwise a new flow is started and the
// recipient is resolved from launch, once for the lifetime of the session.
func (m *Manager) Open(ctx context.Context, sessionID string, launch url.Values) (*flow.Controller, error) {
	if sessionID == "" {
		return nil, errors.New("empty session id")
	}
	if c, ok := m.Get(sessionID); ok {
		return c, nil
	}

	var c *flow.Controller
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if existing, ok := m.Get(sessionID); ok {
			c = existing
			return nil
		}

		snap, err := m.store.Load(ctx, sessionID)
		switch {
		case err == nil:
			c = m.newFlow(sessionID, snap.Recipient)
			if err := c.Restore(snap); err != nil {
				c.Close()
				return fmt.Errorf("failed to restore session: %w", err)
			}
			m.logger.Debug("session restored", "session_id", sessionID, "view", snap.View)
		case errors.Is(err, domain.ErrSessionNotFound):
			c = m.newFlow(sessionID, recipient.Resolve(launch))
			snap = c.Snapshot()
			// Persist immediately to reserve the ID
			if err := m.store.Save(ctx, sessionID, snap); err != nil {
				c.Close()
				return fmt.Errorf("failed to initialize session: %w", err)
			}
			m.logger.Info("session started", "session_id", sessionID, "recipient", snap.Recipient.Name)
		default:
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		m.liveMu.Lock()
		m.live[sessionID] = &liveEntry{flow: c, saved: snap.UpdatedAt}
		m.liveMu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a live flow without touching the store.
func (m *Manager) Get(sessionID string) (*flow.Controller, bool) {
	m.liveMu.Lock()
	defer m.liveMu.Unlock()
	e, ok := m.live[sessionID]
	if !ok {
		return nil, false
	}
	return e.flow, true
}

// Load returns the current snapshot of a session, live or stored.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	if c, ok := m.Get(sessionID); ok {
		return c.Snapshot(), nil
	}
	var snap *domain.Snapshot
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, sessionID)
		return err
	})
	return snap, err
}

// Persist saves the current snapshot of a live session.
func (m *Manager) Persist(ctx context.Context, sessionID string) error {
	c, ok := m.Get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	return m.save(ctx, c.Snapshot())
}

// Close releases a live session. Its stored snapshot is kept.
func (m *Manager) Close(sessionID string) {
	m.liveMu.Lock()
	e, ok := m.live[sessionID]
	delete(m.live, sessionID)
	m.liveMu.Unlock()

	if ok {
		e.flow.Close()
	}
}

// CloseAll releases every live session.
func (m *Manager) CloseAll() {
	for _, id := range m.Live() {
		m.Close(id)
	}
}

// Delete closes the session and removes it from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	m.Close(sessionID)
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Live returns the ids of the open sessions, sorted.
func (m *Manager) Live() []string {
	m.liveMu.Lock()
	defer m.liveMu.Unlock()
	ids := make([]string, 0, len(m.live))
	for id := range m.live {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"error", err,
				)
			}
		}()
	}

	return fn(ctx)
}

func (m *Manager) newFlow(sessionID string, info domain.RecipientInfo) *flow.Controller {
	opts := append([]flow.Option{
		flow.WithLogger(m.logger),
		flow.WithOnChange(m.changed),
	}, m.flowOpts...)
	return flow.New(sessionID, info, m.confirmer, opts...)
}

// changed runs after every flow mutation.
func (m *Manager) changed(snap *domain.Snapshot) {
	if err := m.save(context.Background(), snap); err != nil {
		m.logger.Warn("failed to persist session", "session_id", snap.SessionID, "error", err)
	}
	for _, l := range m.listeners {
		l(snap)
	}
}

// save writes snap unless a newer snapshot of the same session was already
// written. Change callbacks can arrive out of order from concurrent requests.
func (m *Manager) save(ctx context.Context, snap *domain.Snapshot) error {
	return m.WithLock(ctx, snap.SessionID, func(ctx context.Context) error {
		m.liveMu.Lock()
		e := m.live[snap.SessionID]
		if e != nil && snap.UpdatedAt.Before(e.saved) {
			m.liveMu.Unlock()
			return nil
		}
		m.liveMu.Unlock()

		if err := m.store.Save(ctx, snap.SessionID, snap); err != nil {
			return err
		}

		if e != nil {
			m.liveMu.Lock()
			if snap.UpdatedAt.After(e.saved) {
				e.saved = snap.UpdatedAt
			}
			m.liveMu.Unlock()
		}
		return nil
	})
}
