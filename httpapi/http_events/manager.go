package http_events

import (
	"net/http"
	"sync"

	"dspc/eventbus"
)

// Manager tracks one EventsClient per live SSE connection, keyed by
// Session. Grounded on the teacher's EventsManager_t.
type Manager struct {
	eb      eventbus.EventBus
	mu      sync.Mutex
	clients map[Session]*EventsClient
}

// NewManager returns a Manager publishing subscriptions against eb.
func NewManager(eb eventbus.EventBus) *Manager {
	return &Manager{eb: eb, clients: make(map[Session]*EventsClient)}
}

// RegisterClient starts a new EventsClient for sess, replacing and
// cleaning up any prior client already registered under that session.
func (m *Manager) RegisterClient(sess Session, w http.ResponseWriter) *EventsClient {
	client := newEventsClient(sess, w, m)

	m.mu.Lock()
	old, existed := m.clients[sess]
	m.mu.Unlock()

	// cleanup forgets the session, so it must run before the new client
	// is stored or it would drop the replacement too.
	if existed {
		old.cleanup()
	}

	m.mu.Lock()
	m.clients[sess] = client
	m.mu.Unlock()
	client.start()
	return client
}

// UnregisterClient stops and removes the client for sess, if any.
func (m *Manager) UnregisterClient(sess Session) {
	m.mu.Lock()
	client, ok := m.clients[sess]
	delete(m.clients, sess)
	m.mu.Unlock()

	if ok {
		client.cleanup()
	}
}

// GetClient returns the live client for sess, or ok=false if it has
// ended or was never registered.
func (m *Manager) GetClient(sess Session) (*EventsClient, bool) {
	m.mu.Lock()
	client, ok := m.clients[sess]
	m.mu.Unlock()
	if !ok || client.hasEnded() {
		return nil, false
	}
	return client, true
}

func (m *Manager) forget(sess Session) {
	m.mu.Lock()
	delete(m.clients, sess)
	m.mu.Unlock()
}
