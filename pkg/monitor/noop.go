package monitor

// NoopPublisher is a publisher that does nothing
// Useful for testing or when monitoring is disabled
type NoopPublisher struct{}

// NewNoopPublisher creates a new no-op publisher
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish does nothing
func (n *NoopPublisher) Publish(event Event) {
	// No-op
}

// MultiPublisher dispatches events to multiple publishers.
type MultiPublisher struct {
	publishers []Publisher
}

// NewMultiPublisher constructs a MultiPublisher. Nil entries are skipped.
func NewMultiPublisher(publishers ...Publisher) *MultiPublisher {
	return &MultiPublisher{publishers: publishers}
}

// Publish forwards the event to all publishers.
func (m *MultiPublisher) Publish(event Event) {
	if m == nil {
		return
	}
	for _, p := range m.publishers {
		if p != nil {
			p.Publish(event)
		}
	}
}
