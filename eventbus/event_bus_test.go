package eventbus

import (
	"sync"
	"testing"
	"time"
)

func TestPublishSubscribeDelivers(t *testing.T) {
	eb := NewEventBus()

	var mu sync.Mutex
	var got []interface{}
	done := make(chan struct{}, 1)

	eb.Subscribe("comm_status_changed", nil, func(event Event) {
		mu.Lock()
		got = append(got, event.GetData())
		mu.Unlock()
		done <- struct{}{}
	})

	eb.PublishData("comm_status_changed", "Full")

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handler was not called within timeout")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "Full" {
		t.Fatalf("expected one delivery of %q, got %v", "Full", got)
	}
}

func TestPublishWithNoSubscribersIsNoop(t *testing.T) {
	eb := NewEventBus()
	eb.PublishData("nobody_listening", 42) // must not panic or block
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	eb := NewEventBus()
	calls := 0
	var mu sync.Mutex

	sub := eb.Subscribe("enabled_changed", nil, func(event Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	eb.Unsubscribe("enabled_changed", sub)
	eb.PublishData("enabled_changed", true)

	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Fatalf("expected 0 calls after unsubscribe, got %d", calls)
	}
}

func TestUnsubscribeAllEventTypes(t *testing.T) {
	eb := NewEventBus()
	calls := 0
	var mu sync.Mutex
	handler := func(event Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	sub := eb.Subscribe("a", nil, handler)
	eb.Subscribe("b", sub, handler)
	eb.Unsubscribe("", sub)

	eb.PublishData("a", nil)
	eb.PublishData("b", nil)
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if calls != 0 {
		t.Fatalf("expected 0 calls after wildcard unsubscribe, got %d", calls)
	}
}
