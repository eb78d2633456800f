package eventbus

// NewDefaultEvent wraps data as an Event of the given change-kind.
func NewDefaultEvent(eventType string, data interface{}) *DefaultEvent {
	return &DefaultEvent{Type: eventType, Data: data}
}

func (e *DefaultEvent) GetType() string      { return e.Type }
func (e *DefaultEvent) GetData() interface{} { return e.Data }
