package stream_test

import (
	"testing"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/stream"
)

func TestRegistry_AddRemove(t *testing.T) {
	r := stream.NewRegistry()

	a := r.Add(stream.Subscription{})
	b := r.Add(stream.Subscription{})
	if a == b {
		t.Fatal("expected distinct subscription ids")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", r.Len())
	}

	removed, empty := r.Remove(a)
	if !removed || empty {
		t.Errorf("expected removed=true empty=false, got %v %v", removed, empty)
	}
	removed, _ = r.Remove(a)
	if removed {
		t.Error("expected second removal of the same id to be a no-op")
	}
	removed, empty = r.Remove(b)
	if !removed || !empty {
		t.Errorf("expected removed=true empty=true, got %v %v", removed, empty)
	}

	c := r.Add(stream.Subscription{})
	if c == a || c == b {
		t.Error("expected ids never to be reused")
	}
}

func TestRegistry_SnapshotIsStable(t *testing.T) {
	r := stream.NewRegistry()

	var order []int
	for i := 0; i < 3; i++ {
		i := i
		r.Add(stream.Subscription{OnConnect: func() { order = append(order, i) }})
	}
	snap := r.Snapshot()
	r.Clear()
	r.Add(stream.Subscription{})

	if len(snap) != 3 {
		t.Fatalf("expected snapshot of 3, got %d", len(snap))
	}
	for _, s := range snap {
		s.OnConnect()
	}
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("expected registration order, got %v", order)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 subscription after clear and add, got %d", r.Len())
	}
}
