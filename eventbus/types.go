package eventbus

import "dspc/datastructures"

// EventBus_t is the default EventBus implementation. If an event type has
// zero subscribers, publishing to it is a no-op; it is never materialized
// in subscriptions until something subscribes.
type EventBus_t struct {
	subscriptions *datastructures.SafeMap[string, *datastructures.SafeSet[Subscriber]]
	handlers      *datastructures.SafeMap[Subscriber, SubscriberHandler]
}

// Subscriber identifies one subscription. Comparable by ID; the handler
// function itself is stored out-of-band so Subscriber can be used as a
// map/set key.
type Subscriber struct {
	ID string
}

// SubscriberHandler is invoked, in its own goroutine, for every event the
// Subscriber is subscribed to.
type SubscriberHandler func(event Event)

// Event is anything publishable on the bus: a change-kind string plus its
// payload.
type Event interface {
	GetType() string
	GetData() interface{}
}

// DefaultEvent is the event bus's own Event implementation, used by every
// change-kind the protocol core emits (team_changed, enabled_changed,
// comm_status_changed, ...).
type DefaultEvent struct {
	Type string
	Data interface{}
}
