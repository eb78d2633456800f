package adapter

import "dspc/logging"

// Factory constructs a fresh Adapter instance.
type Factory func() Adapter

// registry is the factory-pattern plugin table, grounded on the
// teacher's ROBOT_FACTORY map (shared/state.go) and AddRobotType
// (shared/utils.go): protocol packages register themselves from an
// init() function, and the registry is otherwise read-only once the
// program starts.
var registry = map[string]Factory{}

// Register installs factory under name. Panics on a duplicate name or a
// nil factory — same guard the teacher's AddRobotType enforces, since
// both are programmer errors caught at package-init time, never at
// runtime under user control.
func Register(name string, factory Factory) {
	if _, exists := registry[name]; exists {
		logging.Panic("adapter already registered: %s", name)
	}
	if factory == nil {
		logging.Panic("nil adapter factory for: %s", name)
	}
	registry[name] = factory
}

// New looks up name and constructs a fresh Adapter, or reports false if
// no factory is registered under that name.
func New(name string) (Adapter, bool) {
	factory, ok := registry[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names lists every currently-registered adapter name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
