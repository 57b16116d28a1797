package testutil

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/stream"
)

type mockRead struct {
	data []byte
	err  error
}

// MockConn is a scripted stream.Conn. Frames queued with Push are returned by
// ReadMessage in order; Close unblocks a pending read with net.ErrClosed.
type MockConn struct {
	reads   chan mockRead
	closeCh chan struct{}
	once    sync.Once

	mu          sync.Mutex
	WriteError  error
	CloseError  error
	WriteCalls  [][]byte
	CloseCalled bool
}

func NewMockConn() *MockConn {
	return &MockConn{
		reads:   make(chan mockRead, 64),
		closeCh: make(chan struct{}),
	}
}

// Push queues one inbound frame.
func (m *MockConn) Push(frame string) {
	m.reads <- mockRead{data: []byte(frame)}
}

// Fail makes the next read return err, as a dropped socket would.
func (m *MockConn) Fail(err error) {
	m.reads <- mockRead{err: err}
}

func (m *MockConn) ReadMessage() ([]byte, error) {
	select {
	case r := <-m.reads:
		return r.data, r.err
	case <-m.closeCh:
		return nil, net.ErrClosed
	}
}

func (m *MockConn) WriteMessage(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteError != nil {
		return m.WriteError
	}
	m.WriteCalls = append(m.WriteCalls, append([]byte(nil), data...))
	return nil
}

func (m *MockConn) Close() error {
	m.once.Do(func() { close(m.closeCh) })
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
	return m.CloseError
}

// Writes returns a copy of every frame written so far.
func (m *MockConn) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.WriteCalls))
	copy(out, m.WriteCalls)
	return out
}

func (m *MockConn) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CloseCalled
}

// MockDialer hands out a fresh MockConn per successful dial. DialErrors are
// consumed in order, one per dial, before dials start succeeding; a nil entry
// is a successful dial. When Hold is non-nil every dial blocks until Hold is
// closed or the context is cancelled.
type MockDialer struct {
	DialErrors []error
	Hold       chan struct{}

	mu        sync.Mutex
	DialCalls []string
	Conns     []*MockConn
	dialed    chan *MockConn
}

func NewMockDialer() *MockDialer {
	return &MockDialer{}
}

func (m *MockDialer) Dial(ctx context.Context, url string) (stream.Conn, error) {
	m.mu.Lock()
	attempt := len(m.DialCalls)
	m.DialCalls = append(m.DialCalls, url)
	hold := m.Hold
	m.mu.Unlock()

	if hold != nil {
		select {
		case <-hold:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if attempt < len(m.DialErrors) && m.DialErrors[attempt] != nil {
		return nil, m.DialErrors[attempt]
	}

	conn := NewMockConn()
	m.mu.Lock()
	m.Conns = append(m.Conns, conn)
	m.mu.Unlock()
	m.dialedCh() <- conn
	return conn, nil
}

func (m *MockDialer) dialedCh() chan *MockConn {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.dialed == nil {
		m.dialed = make(chan *MockConn, 64)
	}
	return m.dialed
}

// Dials returns the number of dial attempts so far.
func (m *MockDialer) Dials() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.DialCalls)
}

// NextConn waits for the next successful dial.
func (m *MockDialer) NextConn(timeout time.Duration) (*MockConn, bool) {
	select {
	case conn := <-m.dialedCh():
		return conn, true
	case <-time.After(timeout):
		return nil, false
	}
}

// FakeTimer records a scheduled callback for manual firing.
type FakeTimer struct {
	Delay time.Duration

	mu      sync.Mutex
	f       func()
	stopped bool
	fired   bool
}

func (t *FakeTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// Fire runs the callback even if the timer was stopped, the way a real timer
// can fire concurrently with Stop.
func (t *FakeTimer) Fire() {
	t.mu.Lock()
	t.fired = true
	f := t.f
	t.mu.Unlock()
	f()
}

func (t *FakeTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// FakeScheduler is a stream.Scheduler whose timers only fire on demand.
type FakeScheduler struct {
	mu     sync.Mutex
	timers []*FakeTimer
}

func NewFakeScheduler() *FakeScheduler { return &FakeScheduler{} }

func (s *FakeScheduler) AfterFunc(d time.Duration, f func()) stream.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &FakeTimer{Delay: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Timers returns every timer armed so far, oldest first.
func (s *FakeScheduler) Timers() []*FakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*FakeTimer, len(s.timers))
	copy(out, s.timers)
	return out
}

// Last returns the most recently armed timer, or nil.
func (s *FakeScheduler) Last() *FakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// Delays returns the delay of every timer armed so far.
func (s *FakeScheduler) Delays() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Duration, len(s.timers))
	for i, t := range s.timers {
		out[i] = t.Delay
	}
	return out
}
