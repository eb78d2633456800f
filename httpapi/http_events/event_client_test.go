package http_events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dspc/eventbus"
)

func TestRegisterClientReceivesPublishedEvent(t *testing.T) {
	eb := eventbus.NewEventBus()
	m := NewManager(eb)
	sess := NewSession()
	rec := httptest.NewRecorder()

	client := m.RegisterClient(sess, rec)
	client.SubscribeToEvent("team_changed")

	eb.PublishData("team_changed", map[string]interface{}{"team": 3794})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(rec.Body.String(), "data: ") && strings.Count(rec.Body.String(), "data: ") >= 2 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "data: ") {
		t.Fatal("expected at least one SSE data line")
	}
	if strings.Count(body, "\n\n") < 2 {
		t.Fatalf("expected session_started line plus the published event, got body %q", body)
	}

	m.UnregisterClient(sess)
	if _, ok := m.GetClient(sess); ok {
		t.Fatal("expected client to be gone after unregister")
	}
}

func TestUnsubscribeStopsFurtherDelivery(t *testing.T) {
	eb := eventbus.NewEventBus()
	m := NewManager(eb)
	sess := NewSession()
	rec := httptest.NewRecorder()

	client := m.RegisterClient(sess, rec)
	client.SubscribeToEvent("enabled_changed")
	client.UnsubscribeFromEvent("enabled_changed")

	eb.PublishData("enabled_changed", true)
	time.Sleep(50 * time.Millisecond)

	if strings.Count(rec.Body.String(), "enabled_changed") != 0 {
		t.Fatal("expected no delivery after unsubscribe")
	}

	m.UnregisterClient(sess)
}

func TestRegisterClientReplacesExisting(t *testing.T) {
	eb := eventbus.NewEventBus()
	m := NewManager(eb)
	sess := NewSession()
	rec1 := httptest.NewRecorder()
	rec2 := httptest.NewRecorder()

	first := m.RegisterClient(sess, rec1)
	second := m.RegisterClient(sess, rec2)

	time.Sleep(20 * time.Millisecond)
	if !first.hasEnded() {
		t.Fatal("expected first client to be cleaned up when replaced")
	}
	if second.hasEnded() {
		t.Fatal("expected second client to remain live")
	}

	m.UnregisterClient(sess)
}
