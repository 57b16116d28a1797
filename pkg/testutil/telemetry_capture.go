package testutil

import (
	"sync"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
)

// CapturingPublisher collects monitor events for assertions in tests.
type CapturingPublisher struct {
	mu     sync.Mutex
	Events []monitor.Event
}

func NewCapturingPublisher() *CapturingPublisher { return &CapturingPublisher{} }

func (c *CapturingPublisher) Publish(event monitor.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, event)
}

func (c *CapturingPublisher) Snapshot() []monitor.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]monitor.Event, len(c.Events))
	copy(out, c.Events)
	return out
}

// OfType returns the captured events with the given EventType, in order.
func (c *CapturingPublisher) OfType(eventType string) []monitor.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []monitor.Event
	for _, e := range c.Events {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}
