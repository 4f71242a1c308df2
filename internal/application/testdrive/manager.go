package testdrive

import (
	"context"
	"sync"
	"time"

	"github.com/motorhall/showroom/internal/clock"
	"github.com/motorhall/showroom/internal/domain/event"
	domain "github.com/motorhall/showroom/internal/domain/testdrive"
	"github.com/motorhall/showroom/internal/observability"
)

const defaultSessionTTL = 10 * time.Minute

// Manager tracks at most one active test-drive session per requester and
// drives expiry through an injectable scheduler. A timer firing concurrently
// with End resolves to exactly one terminal transition: both paths take the
// manager lock and the loser finds the session already gone.
type Manager struct {
	clock clock.Clock
	sched clock.Scheduler
	pub   event.Publisher
	log   observability.Logger
	ttl   time.Duration

	mu       sync.Mutex
	sessions map[string]*activeSession
}

type activeSession struct {
	session *domain.Session
	timer   clock.Timer
}

type Option func(*Manager)

// WithSessionTTL overrides the default duration for new sessions.
func WithSessionTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func WithLogger(log observability.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log.With(observability.F("component", "testdrive_manager"))
		}
	}
}

func NewManager(clk clock.Clock, sched clock.Scheduler, pub event.Publisher, opts ...Option) *Manager {
	m := &Manager{
		clock:    clk,
		sched:    sched,
		pub:      pub,
		log:      observability.NopLogger(),
		ttl:      defaultSessionTTL,
		sessions: make(map[string]*activeSession),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins a session for the requester. A requester may hold only one
// active session globally, regardless of item.
func (m *Manager) Start(ctx context.Context, itemID, requesterID string, duration time.Duration) (*domain.Session, error) {
	if duration <= 0 {
		duration = m.ttl
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[requesterID]; ok {
		return nil, domain.ErrAlreadyActive
	}

	session, err := domain.NewSession(itemID, requesterID, m.clock.Now(), duration)
	if err != nil {
		return nil, err
	}

	timer := m.sched.AfterFunc(duration, func() {
		m.expire(requesterID, session)
	})
	m.sessions[requesterID] = &activeSession{session: session, timer: timer}

	m.log.Info("testdrive_started",
		observability.F("item_id", itemID),
		observability.F("requester_id", requesterID),
		observability.F("expires_at", session.ExpiresAt),
	)
	return session.Clone(), nil
}

// End finishes the requester's session early and cancels its expiry timer.
func (m *Manager) End(ctx context.Context, requesterID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	active, ok := m.sessions[requesterID]
	if !ok {
		return domain.ErrNotActive
	}
	if err := active.session.EndEarly(); err != nil {
		return err
	}
	active.timer.Stop()
	delete(m.sessions, requesterID)

	m.log.Info("testdrive_ended_early",
		observability.F("item_id", active.session.ItemID),
		observability.F("requester_id", requesterID),
	)
	return nil
}

// Active returns a copy of the requester's current session, if any.
func (m *Manager) Active(requesterID string) (*domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	active, ok := m.sessions[requesterID]
	if !ok {
		return nil, false
	}
	return active.session.Clone(), true
}

// expire is the timer callback. The session identity check makes a stale
// timer harmless after the requester ended early and started a new session.
func (m *Manager) expire(requesterID string, session *domain.Session) {
	m.mu.Lock()
	active, ok := m.sessions[requesterID]
	if !ok || active.session != session || !active.session.Expire() {
		m.mu.Unlock()
		return
	}
	delete(m.sessions, requesterID)
	itemID := active.session.ItemID
	m.mu.Unlock()

	m.log.Info("testdrive_expired",
		observability.F("item_id", itemID),
		observability.F("requester_id", requesterID),
	)
	if m.pub != nil {
		if err := m.pub.Publish(context.Background(), domain.NewSessionExpiredEvent(itemID, requesterID)); err != nil {
			m.log.Warn("testdrive_expiry_publish_failed",
				observability.F("requester_id", requesterID),
				observability.F("error", err.Error()),
			)
		}
	}
}
