package models

import (
	"testing"
	"time"
)

func TestBeginSession(t *testing.T) {
	table := &Table{Status: TableStatusAvailable}
	now := time.Now()

	if !table.BeginSession(now) {
		t.Fatal("BeginSession on an AVAILABLE table should transition")
	}

	if table.Status != TableStatusInUse {
		t.Errorf("status = %q, want %q", table.Status, TableStatusInUse)
	}
	if !table.StatusChangedAt.Equal(now) {
		t.Error("status_changed_at should be the transition time")
	}
	if table.CurrentSessionStartedAt == nil || !table.CurrentSessionStartedAt.Equal(now) {
		t.Error("current_session_started_at should be the transition time")
	}
	if len(table.StatusHistory) != 1 {
		t.Fatalf("history length = %d, want 1", len(table.StatusHistory))
	}
	entry := table.StatusHistory[0]
	if entry.Status != TableStatusInUse || entry.ChangedBy != "customer" {
		t.Errorf("history entry = %+v, want IN_USE by customer", entry)
	}
}

func TestBeginSessionIdempotent(t *testing.T) {
	table := &Table{Status: TableStatusAvailable}
	first := time.Now()
	table.BeginSession(first)

	if table.BeginSession(first.Add(time.Minute)) {
		t.Error("BeginSession on an IN_USE table should be a no-op")
	}
	if len(table.StatusHistory) != 1 {
		t.Errorf("history length = %d, want 1", len(table.StatusHistory))
	}
	if !table.CurrentSessionStartedAt.Equal(first) {
		t.Error("session start time must not change on repeat login")
	}
}

func TestEndSession(t *testing.T) {
	table := &Table{Status: TableStatusAvailable}
	table.BeginSession(time.Now())

	if !table.EndSession("staff", time.Now()) {
		t.Fatal("EndSession on an IN_USE table should transition")
	}

	if table.Status != TableStatusAvailable {
		t.Errorf("status = %q, want %q", table.Status, TableStatusAvailable)
	}
	if table.CurrentSessionStartedAt != nil {
		t.Error("current_session_started_at should be nil when AVAILABLE")
	}
	if len(table.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(table.StatusHistory))
	}
	if table.StatusHistory[1].ChangedBy != "staff" {
		t.Errorf("history actor = %q, want %q", table.StatusHistory[1].ChangedBy, "staff")
	}
}

func TestEndSessionIdempotent(t *testing.T) {
	table := &Table{Status: TableStatusAvailable}

	if table.EndSession("staff", time.Now()) {
		t.Error("EndSession on an AVAILABLE table should be a no-op")
	}
	if len(table.StatusHistory) != 0 {
		t.Errorf("history length = %d, want 0", len(table.StatusHistory))
	}
}

func TestForwardStatusTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCompleted, true},
		{OrderStatusConfirmed, OrderStatusPending, false},
		{OrderStatusReady, OrderStatusPreparing, false},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusPending, "SHIPPED", false},
	}

	for _, tt := range tests {
		if got := IsForwardStatusTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("IsForwardStatusTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
