package stream

import (
	"sync"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
)

// Subscription is one consumer's interest in the stream. Every callback is
// optional and runs on the client's reader goroutine, never with a client lock
// held, so a callback may unsubscribe itself or others.
type Subscription struct {
	OnData       func(model.TelemetryRecord)
	OnError      func(error)
	OnConnect    func()
	OnDisconnect func()
}

// SubscriptionID is the opaque identity the registry assigns. IDs are never
// reused within a registry.
type SubscriptionID uint64

type registryEntry struct {
	id  SubscriptionID
	sub Subscription
}

// Registry is the set of live subscriptions in registration order.
type Registry struct {
	mu      sync.Mutex
	nextID  SubscriptionID
	entries []registryEntry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers sub and returns its identity.
func (r *Registry) Add(sub Subscription) SubscriptionID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.entries = append(r.entries, registryEntry{id: r.nextID, sub: sub})
	return r.nextID
}

// Remove drops the subscription with the given identity. It reports whether
// anything was removed and whether the registry is now empty.
func (r *Registry) Remove(id SubscriptionID) (removed bool, empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.id == id {
			r.entries = append(r.entries[:i:i], r.entries[i+1:]...)
			return true, len(r.entries) == 0
		}
	}
	return false, len(r.entries) == 0
}

// Snapshot returns a copy of the current subscriptions. Later changes to the
// registry do not affect the returned slice.
func (r *Registry) Snapshot() []Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Subscription, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.sub
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Clear removes every subscription.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = nil
}
