package provisioning

import (
	"fmt"
	"sync"
)

// MockObserver records events and log lines for assertions in tests of this
// package and the stage subpackages.
type MockObserver struct {
	mu     sync.Mutex
	events []Event
	lines  []string
}

// NewMockObserver creates a recording observer.
func NewMockObserver() *MockObserver {
	return &MockObserver{}
}

// Printf implements the Logger interface.
func (m *MockObserver) Printf(format string, v ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lines = append(m.lines, fmt.Sprintf(format, v...))
}

// Event implements the Observer interface.
func (m *MockObserver) Event(event Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// WithFields implements the Observer interface. The mock ignores fields and
// returns itself so recorded events stay in one place.
func (m *MockObserver) WithFields(_ map[string]string) Observer {
	return m
}

// Events returns a copy of the recorded events.
func (m *MockObserver) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.events...)
}

// Lines returns a copy of the recorded log lines.
func (m *MockObserver) Lines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.lines...)
}

// HasEvent reports whether an event of the given type was recorded.
func (m *MockObserver) HasEvent(t EventType) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.Type == t {
			return true
		}
	}
	return false
}
