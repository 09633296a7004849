package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"table-order/models"
)

// ErrSubscriptionClosed is returned by Next once the subscription has been
// unsubscribed or the broker shut down.
var ErrSubscriptionClosed = errors.New("subscription closed")

const defaultSubscriberBuffer = 16

// EventBroker fans order lifecycle events out to every live subscriber of a
// table. It keeps nothing: events published to a table with no subscribers
// are dropped, and nothing is redelivered after a disconnect. One instance
// is constructed in main and injected into whoever publishes or subscribes.
type EventBroker struct {
	heartbeat time.Duration
	buffer    int

	mu     sync.Mutex
	tables map[int]map[*Subscription]struct{}
	closed bool
}

// Subscription is one live connection's registration with the broker.
type Subscription struct {
	tableID   int
	heartbeat time.Duration
	ch        chan models.OrderEvent
}

func NewEventBroker(heartbeat time.Duration) *EventBroker {
	if heartbeat <= 0 {
		heartbeat = 30 * time.Second
	}
	return &EventBroker{
		heartbeat: heartbeat,
		buffer:    defaultSubscriberBuffer,
		tables:    make(map[int]map[*Subscription]struct{}),
	}
}

// Subscribe registers a new channel under the table. The returned
// subscription stays live until Unsubscribe or broker Close.
func (b *EventBroker) Subscribe(tableID int) *Subscription {
	sub := &Subscription{
		tableID:   tableID,
		heartbeat: b.heartbeat,
		ch:        make(chan models.OrderEvent, b.buffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		close(sub.ch)
		return sub
	}

	subs, ok := b.tables[tableID]
	if !ok {
		subs = make(map[*Subscription]struct{})
		b.tables[tableID] = subs
	}
	subs[sub] = struct{}{}

	return sub
}

// Publish delivers the event to every current subscriber of the table.
// Delivery is best-effort: a subscriber whose buffer is full loses its
// oldest pending event rather than stalling the publisher.
func (b *EventBroker) Publish(tableID int, event models.OrderEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.tables[tableID] {
		select {
		case sub.ch <- event:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- event:
			default:
			}
		}
	}
}

// Unsubscribe removes the channel. The table's registry entry goes away with
// its last subscription, so memory stays bounded by the number of tables
// with at least one live connection.
func (b *EventBroker) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.tables[sub.tableID]
	if !ok {
		return
	}
	if _, registered := subs[sub]; !registered {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.tables, sub.tableID)
	}
	close(sub.ch)
}

// Close shuts the broker down and terminates every live subscription.
func (b *EventBroker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for _, subs := range b.tables {
		for sub := range subs {
			close(sub.ch)
		}
	}
	b.tables = make(map[int]map[*Subscription]struct{})
}

// ConnectionCount reports how many subscriptions a table currently has.
func (b *EventBroker) ConnectionCount(tableID int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.tables[tableID])
}

// Next blocks until an event arrives, the heartbeat interval passes, the
// subscription is closed, or ctx is done. A nil event with a nil error is
// the keep-alive signal; the transport turns it into a comment frame.
func (s *Subscription) Next(ctx context.Context) (*models.OrderEvent, error) {
	timer := time.NewTimer(s.heartbeat)
	defer timer.Stop()

	select {
	case event, ok := <-s.ch:
		if !ok {
			return nil, ErrSubscriptionClosed
		}
		return &event, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TableID reports which table this subscription watches.
func (s *Subscription) TableID() int {
	return s.tableID
}
