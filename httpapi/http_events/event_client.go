package http_events

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"

	"dspc/datastructures"
	"dspc/eventbus"
	"dspc/logging"
)

// EventsClient fans one browser's SSE connection out of the core's event
// bus: a dedicated Subscriber plus a blocking queue drained by its own
// goroutine onto the HTTP ResponseWriter. Grounded on the teacher's
// EventsClient (eventClient.go).
type EventsClient struct {
	sess    Session
	writer  http.ResponseWriter
	manager *Manager
	done    chan struct{}
	queue   *datastructures.SafeQueue[eventbus.Event]

	ended atomic.Bool
}

func newEventsClient(sess Session, w http.ResponseWriter, m *Manager) *EventsClient {
	return &EventsClient{
		sess:    sess,
		writer:  w,
		manager: m,
		done:    make(chan struct{}),
		queue:   datastructures.NewSafeQueue[eventbus.Event](true),
	}
}

func (c *EventsClient) start() {
	go c.drain()
}

func (c *EventsClient) hasEnded() bool {
	return c.ended.Load()
}

func (c *EventsClient) cleanup() {
	if c.ended.Swap(true) {
		return
	}
	close(c.done)
	c.queue.Close()
	c.manager.forget(c.sess)
	c.manager.eb.Unsubscribe("", &eventbus.Subscriber{ID: c.sess.ID})
}

// drain writes one SSE "data:" line per queued event until the queue is
// closed (the HTTP handler's request context ended) or the client ends.
func (c *EventsClient) drain() {
	defer c.cleanup()

	id := 0
	c.writeEvent("session_started", c.sess, fmt.Sprintf("%d", id))

	for !c.ended.Load() {
		event, ok := c.queue.Read(true, c.done)
		if !ok {
			return
		}
		id++
		c.writeEvent(event.GetType(), event.GetData(), fmt.Sprintf("%d", id))
	}
}

// writeEvent marshals one SentEvent record and base64-encodes it once as
// a whole, then writes it as a single SSE data line.
func (c *EventsClient) writeEvent(eventType string, data interface{}, id string) {
	if c.ended.Load() {
		return
	}

	payload, err := json.Marshal(SentEvent{ID: id, Type: eventType, Data: data})
	if err != nil {
		logging.Print("http_events: marshal failed for %s: %v", eventType, err)
		return
	}

	encoded := base64.StdEncoding.EncodeToString(payload)
	if _, err := fmt.Fprintf(c.writer, "data: %s\n\n", encoded); err != nil {
		logging.Print("http_events: write failed for session %s: %v", c.sess.ID, err)
		return
	}
	if flusher, ok := c.writer.(http.Flusher); ok {
		flusher.Flush()
	}
}

// SubscribeToEvent subscribes this client to eventType on the bus.
func (c *EventsClient) SubscribeToEvent(eventType string) {
	if c.ended.Load() {
		return
	}
	sub := &eventbus.Subscriber{ID: c.sess.ID}
	c.manager.eb.Subscribe(eventType, sub, c.handleEvent)
}

// UnsubscribeFromEvent removes this client's subscription to eventType.
func (c *EventsClient) UnsubscribeFromEvent(eventType string) {
	if c.ended.Load() {
		return
	}
	c.manager.eb.Unsubscribe(eventType, &eventbus.Subscriber{ID: c.sess.ID})
}

func (c *EventsClient) handleEvent(event eventbus.Event) {
	if c.ended.Load() {
		return
	}
	c.queue.Enqueue(event)
}
