package models

import "time"

const (
	TableStatusAvailable = "AVAILABLE"
	TableStatusInUse     = "IN_USE"
)

// StatusTransition is one entry of a table's append-only status history.
type StatusTransition struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	ChangedBy string    `json:"changed_by"`
}

type Table struct {
	ID                      int                `json:"id"`
	StoreID                 int                `json:"store_id"`
	TableNumber             string             `json:"table_number"`
	Status                  string             `json:"status"`
	StatusChangedAt         time.Time          `json:"status_changed_at"`
	StatusHistory           []StatusTransition `json:"status_history"`
	CurrentSessionStartedAt *time.Time         `json:"current_session_started_at,omitempty"`
	CreatedAt               time.Time          `json:"created_at"`
	UpdatedAt               time.Time          `json:"updated_at"`
}

// BeginSession moves the table to IN_USE and opens a customer session.
// Calling it on a table that is already IN_USE is a no-op: the session
// start time is kept and no history entry is appended. Returns whether
// a transition happened.
func (t *Table) BeginSession(at time.Time) bool {
	if t.Status == TableStatusInUse {
		return false
	}
	t.transition(TableStatusInUse, "customer", at)
	t.CurrentSessionStartedAt = &at
	return true
}

// EndSession moves the table back to AVAILABLE and clears the session
// start time. Used by session-closing callers (staff action, timeout).
func (t *Table) EndSession(changedBy string, at time.Time) bool {
	if t.Status == TableStatusAvailable {
		return false
	}
	t.transition(TableStatusAvailable, changedBy, at)
	t.CurrentSessionStartedAt = nil
	return true
}

func (t *Table) transition(status, changedBy string, at time.Time) {
	t.Status = status
	t.StatusChangedAt = at
	t.StatusHistory = append(t.StatusHistory, StatusTransition{
		Status:    status,
		Timestamp: at,
		ChangedBy: changedBy,
	})
}
