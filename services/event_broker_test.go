package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"table-order/models"
)

func receiveEvent(t *testing.T, sub *Subscription) *models.OrderEvent {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	event, err := sub.Next(ctx)
	if err != nil {
		t.Fatalf("Next returned error: %v", err)
	}
	return event
}

func TestPublishDeliversToTableSubscribers(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	sub5 := broker.Subscribe(5)
	sub6 := broker.Subscribe(6)
	defer broker.Unsubscribe(sub5)
	defer broker.Unsubscribe(sub6)

	broker.Publish(5, models.NewOrderCreatedEvent(1, "T05-001"))

	event := receiveEvent(t, sub5)
	if event == nil {
		t.Fatal("table 5 subscriber got heartbeat, want event")
	}
	if event.OrderNumber != "T05-001" {
		t.Errorf("order number = %q, want %q", event.OrderNumber, "T05-001")
	}

	// The table-6 subscriber must see nothing but heartbeats.
	select {
	case got := <-sub6.ch:
		t.Fatalf("table 6 subscriber received %+v, want nothing", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	first := broker.Subscribe(1)
	second := broker.Subscribe(1)
	defer broker.Unsubscribe(first)
	defer broker.Unsubscribe(second)

	broker.Publish(1, models.NewOrderCreatedEvent(1, "T01-001"))

	for _, sub := range []*Subscription{first, second} {
		event := receiveEvent(t, sub)
		if event == nil || event.OrderNumber != "T01-001" {
			t.Errorf("subscriber missed the event, got %+v", event)
		}
	}
}

func TestPublishWithoutSubscribersIsDropped(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	// Must not panic or buffer anything.
	broker.Publish(9, models.NewOrderCreatedEvent(1, "T09-001"))

	sub := broker.Subscribe(9)
	defer broker.Unsubscribe(sub)

	select {
	case got := <-sub.ch:
		t.Fatalf("late subscriber received %+v, want nothing", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeRemovesBookkeeping(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	sub := broker.Subscribe(3)
	if got := broker.ConnectionCount(3); got != 1 {
		t.Fatalf("connection count = %d, want 1", got)
	}

	broker.Unsubscribe(sub)
	if got := broker.ConnectionCount(3); got != 0 {
		t.Errorf("connection count after unsubscribe = %d, want 0", got)
	}

	if _, err := sub.Next(context.Background()); !errors.Is(err, ErrSubscriptionClosed) {
		t.Errorf("Next after unsubscribe = %v, want ErrSubscriptionClosed", err)
	}

	// Unsubscribing twice is harmless.
	broker.Unsubscribe(sub)
}

func TestHeartbeatWhenIdle(t *testing.T) {
	const heartbeat = 30 * time.Millisecond

	broker := NewEventBroker(heartbeat)
	defer broker.Close()

	sub := broker.Subscribe(1)
	defer broker.Unsubscribe(sub)

	for i := 0; i < 3; i++ {
		start := time.Now()
		event, err := sub.Next(context.Background())
		if err != nil {
			t.Fatalf("Next returned error: %v", err)
		}
		if event != nil {
			t.Fatalf("idle subscription received %+v, want heartbeat", event)
		}
		if elapsed := time.Since(start); elapsed < heartbeat {
			t.Errorf("heartbeat #%d fired after %s, want at least %s", i, elapsed, heartbeat)
		}
	}
}

func TestEventResetsHeartbeatWait(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	sub := broker.Subscribe(1)
	defer broker.Unsubscribe(sub)

	broker.Publish(1, models.NewOrderCreatedEvent(1, "T01-001"))

	start := time.Now()
	event := receiveEvent(t, sub)
	if event == nil {
		t.Fatal("got heartbeat, want buffered event")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("buffered event should be delivered immediately")
	}
}

func TestSlowSubscriberDropsOldest(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	sub := broker.Subscribe(1)
	defer broker.Unsubscribe(sub)

	const published = defaultSubscriberBuffer + 4
	for i := 1; i <= published; i++ {
		broker.Publish(1, models.NewOrderCreatedEvent(i, FormatOrderNumber("01", i)))
	}

	received := []int{}
	for {
		select {
		case event := <-sub.ch:
			received = append(received, event.OrderID)
			continue
		default:
		}
		break
	}

	if len(received) != defaultSubscriberBuffer {
		t.Fatalf("received %d events, want %d", len(received), defaultSubscriberBuffer)
	}
	if received[0] != published-defaultSubscriberBuffer+1 {
		t.Errorf("first surviving event = %d, want %d (oldest dropped)",
			received[0], published-defaultSubscriberBuffer+1)
	}
	if received[len(received)-1] != published {
		t.Errorf("newest event = %d, want %d", received[len(received)-1], published)
	}
}

func TestCloseTerminatesSubscriptions(t *testing.T) {
	broker := NewEventBroker(time.Second)

	sub := broker.Subscribe(1)
	broker.Close()

	if _, err := sub.Next(context.Background()); !errors.Is(err, ErrSubscriptionClosed) {
		t.Errorf("Next after Close = %v, want ErrSubscriptionClosed", err)
	}

	late := broker.Subscribe(1)
	if _, err := late.Next(context.Background()); !errors.Is(err, ErrSubscriptionClosed) {
		t.Errorf("subscription on closed broker = %v, want ErrSubscriptionClosed", err)
	}

	// Closing twice is harmless.
	broker.Close()
}

func TestNextHonorsContext(t *testing.T) {
	broker := NewEventBroker(time.Minute)
	defer broker.Close()

	sub := broker.Subscribe(1)
	defer broker.Unsubscribe(sub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := sub.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Next with cancelled context = %v, want context.Canceled", err)
	}
}

func TestConcurrentRegistryAccess(t *testing.T) {
	broker := NewEventBroker(time.Second)
	defer broker.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(tableID int) {
			defer wg.Done()
			sub := broker.Subscribe(tableID % 3)
			time.Sleep(time.Millisecond)
			broker.Unsubscribe(sub)
		}(i)
		go func(tableID int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				broker.Publish(tableID%3, models.NewOrderCreatedEvent(j, "T01-001"))
			}
		}(i)
	}
	wg.Wait()
}
