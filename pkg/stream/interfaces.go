package stream

import (
	"context"
	"time"
)

// Dialer opens the telemetry socket.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// Conn is one open telemetry socket. ReadMessage is only ever called from a
// single goroutine; WriteMessage and Close may be called concurrently with it.
// A peer that closes the socket cleanly is reported as io.EOF.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Timer is a pending one-shot callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms one-shot timers for reconnect attempts. f must run after
// AfterFunc has returned, never synchronously inside it.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
