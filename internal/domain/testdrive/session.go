package testdrive

import (
	"errors"
	"time"
)

var (
	ErrAlreadyActive   = errors.New("testdrive: requester already has an active session")
	ErrNotActive       = errors.New("testdrive: no active session for requester")
	ErrInvalidDuration = errors.New("testdrive: duration must be greater than zero")
)

type State string

const (
	StateActive     State = "active"
	StateEndedEarly State = "ended_early"
	StateExpired    State = "expired"
)

// Session is a time-bounded exclusive loan of one vehicle to one requester.
// It transitions Active -> EndedEarly or Active -> Expired, exactly once.
type Session struct {
	ItemID      string
	RequesterID string
	State       State
	StartedAt   time.Time
	ExpiresAt   time.Time
}

func NewSession(itemID, requesterID string, now time.Time, duration time.Duration) (*Session, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Session{
		ItemID:      itemID,
		RequesterID: requesterID,
		State:       StateActive,
		StartedAt:   now,
		ExpiresAt:   now.Add(duration),
	}, nil
}

func (s *Session) EndEarly() error {
	if s.State != StateActive {
		return ErrNotActive
	}
	s.State = StateEndedEarly
	return nil
}

// Expire moves the session to its expired terminal state. It reports whether
// the transition happened, so a timer racing an early end fires at most once.
func (s *Session) Expire() bool {
	if s.State != StateActive {
		return false
	}
	s.State = StateExpired
	return true
}

func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
