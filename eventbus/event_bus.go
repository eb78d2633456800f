package eventbus

import "dspc/datastructures"

// EventBus is the publish/subscribe contract used for state-change
// observation (design note §9: "a subscribable event stream keyed by
// change-kind" instead of the observer-inheritance pattern the original
// used).
type EventBus interface {
	// Subscribe registers handler for eventType, creating a Subscriber if
	// nil is passed, and returns it for later Unsubscribe.
	Subscribe(eventType string, subscriber *Subscriber, handler SubscriberHandler) *Subscriber

	// Unsubscribe removes subscriber from eventType. No-op if subscriber
	// is nil or wasn't subscribed. An empty eventType unsubscribes from
	// every event type the subscriber is registered for.
	Unsubscribe(eventType string, subscriber *Subscriber)

	// Publish delivers event to every subscriber of its type, each in its
	// own goroutine. No-op if event is nil or has no subscribers.
	Publish(event Event)

	// PublishData is a convenience wrapper building a DefaultEvent.
	PublishData(eventType string, data interface{})
}

// NewEventBus constructs an empty, ready-to-use EventBus.
func NewEventBus() EventBus {
	return &EventBus_t{
		subscriptions: datastructures.NewSafeMap[string, *datastructures.SafeSet[Subscriber]](),
		handlers:      datastructures.NewSafeMap[Subscriber, SubscriberHandler](),
	}
}

func (eb *EventBus_t) Subscribe(eventType string, subscriber *Subscriber, handler SubscriberHandler) *Subscriber {
	if subscriber == nil {
		subscriber = NewSubscriber()
	}

	eb.handlers.Set(*subscriber, handler)

	set := eb.subscriptions.GetOrDefault(eventType, datastructures.NewSafeSet[Subscriber]())
	set.Add(*subscriber)
	return subscriber
}

func (eb *EventBus_t) Unsubscribe(eventType string, subscriber *Subscriber) {
	if subscriber == nil {
		return
	}

	if eventType == "" {
		for _, et := range eb.subscriptions.Keys() {
			if set, ok := eb.subscriptions.Get(et); ok {
				set.Remove(*subscriber)
			}
		}
		eb.handlers.Delete(*subscriber)
	} else if set, ok := eb.subscriptions.Get(eventType); ok {
		set.Remove(*subscriber)
	}
}

func (eb *EventBus_t) Publish(event Event) {
	if event == nil {
		return
	}

	set, ok := eb.subscriptions.Get(event.GetType())
	if !ok {
		return
	}

	for sub := range set.Iterate() {
		if handler, ok := eb.handlers.Get(sub); ok {
			go handler(event)
		}
	}
}

func (eb *EventBus_t) PublishData(eventType string, data interface{}) {
	eb.Publish(NewDefaultEvent(eventType, data))
}
