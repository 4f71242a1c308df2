package testdrive

import "time"

// SessionExpiredEvent is the sole mechanism returning a loaned vehicle to the
// world; subscribers perform the actual release.
type SessionExpiredEvent struct {
	ItemID      string
	RequesterID string
	OccurredAt  time.Time
}

func (SessionExpiredEvent) EventName() string { return "testdrive.session_expired" }

func NewSessionExpiredEvent(itemID, requesterID string) SessionExpiredEvent {
	return SessionExpiredEvent{
		ItemID:      itemID,
		RequesterID: requesterID,
		OccurredAt:  time.Now().UTC(),
	}
}
