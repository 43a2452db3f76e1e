// Package session keeps the live draw sessions of the process. Each session
// owns one draw.State; sessions expire after an idle TTL and the least
// recently used one is evicted when the store is full.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/LuckyDraw_Go/internal/concurrency"
	"github.com/osse101/LuckyDraw_Go/internal/domain"
	"github.com/osse101/LuckyDraw_Go/internal/draw"
	"github.com/osse101/LuckyDraw_Go/internal/logger"
)

// Session is one raffle run: its identity and its draw state.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	State     *draw.State
}

// Loader supplies the datasets for a session that does not exist yet.
type Loader func(ctx context.Context) ([]domain.Participant, []domain.Prize, error)

// Manager stores sessions in an expiring LRU.
type Manager struct {
	lru   *expirable.LRU[uuid.UUID, *Session]
	locks *concurrency.LockManager[uuid.UUID]
	now   func() time.Time
}

// Option configures a Manager
type Option func(*managerOptions)

type managerOptions struct {
	now     func() time.Time
	onEvict func(id uuid.UUID)
}

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(o *managerOptions) { o.now = now }
}

// WithEvictCallback registers fn to run whenever a session leaves the store,
// whether deleted, expired or evicted.
func WithEvictCallback(fn func(id uuid.UUID)) Option {
	return func(o *managerOptions) { o.onEvict = fn }
}

// NewManager creates a session store holding at most size sessions, each
// expiring ttl after its last access. Non-positive values use the defaults.
func NewManager(size int, ttl time.Duration, opts ...Option) *Manager {
	if size <= 0 {
		size = DefaultMaxSessions
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	o := managerOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Manager{
		locks: concurrency.NewLockManager[uuid.UUID](),
		now:   o.now,
	}
	m.lru = expirable.NewLRU[uuid.UUID, *Session](size, func(id uuid.UUID, _ *Session) {
		m.locks.Forget(id)
		slog.Default().Debug(LogMsgSessionEvicted, "session_id", id)
		if o.onEvict != nil {
			o.onEvict(id)
		}
	}, ttl)
	return m
}

// Create starts a new session with a fresh ID.
func (m *Manager) Create(ctx context.Context, participants []domain.Participant, prizes []domain.Prize) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := m.newSession(uuid.New(), participants, prizes)
	m.lru.Add(s.ID, s)

	logger.FromContext(ctx).Info(LogMsgSessionCreated, "session_id", s.ID,
		"participants", len(participants), "prizes", len(prizes))
	return s, nil
}

// GetOrInit returns the session with id, creating it from load when it does
// not exist. The first caller initializes the session; concurrent and later
// callers get that same session and load is not called again. The boolean
// reports whether this call created it.
func (m *Manager) GetOrInit(ctx context.Context, id uuid.UUID, load Loader) (*Session, bool, error) {
	unlock := m.locks.Lock(id)
	if s, ok := m.refresh(id); ok {
		unlock()
		logger.FromContext(ctx).Debug(LogMsgSessionReused, "session_id", id)
		return s, false, nil
	}

	participants, prizes, err := load(ctx)
	if err != nil {
		unlock()
		m.locks.Forget(id)
		return nil, false, fmt.Errorf("%s %s: %w", ErrContextInitSession, id, err)
	}

	// An expired entry not yet purged would be overwritten in place without
	// an eviction; remove it first so its cleanup runs.
	m.lru.Remove(id)

	s := m.newSession(id, participants, prizes)
	m.lru.Add(id, s)
	unlock()

	logger.FromContext(ctx).Info(LogMsgSessionCreated, "session_id", id,
		"participants", len(participants), "prizes", len(prizes))
	return s, true, nil
}

// Get returns the session with id and refreshes its idle timer.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	unlock := m.locks.Lock(id)
	s, ok := m.refresh(id)
	unlock()
	if !ok {
		m.locks.Forget(id)
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// Delete ends the session with id.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	unlock := m.locks.Lock(id)
	removed := m.lru.Remove(id)
	unlock()
	m.locks.Forget(id)

	if !removed {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	logger.FromContext(ctx).Info(LogMsgSessionDeleted, "session_id", id)
	return nil
}

// Count returns the number of stored sessions, including expired ones the
// store has not purged yet.
func (m *Manager) Count() int {
	return m.lru.Len()
}

// IDs lists the stored sessions, oldest first.
func (m *Manager) IDs() []uuid.UUID {
	return m.lru.Keys()
}

// refresh returns the live session with id and resets its expiry. Callers
// hold the lock for id so a concurrent Delete cannot be undone by the re-add.
func (m *Manager) refresh(id uuid.UUID) (*Session, bool) {
	s, ok := m.lru.Get(id)
	if !ok {
		return nil, false
	}
	m.lru.Add(id, s)
	return s, true
}

func (m *Manager) newSession(id uuid.UUID, participants []domain.Participant, prizes []domain.Prize) *Session {
	return &Session{
		ID:        id,
		CreatedAt: m.now(),
		State:     draw.NewState(participants, prizes),
	}
}
