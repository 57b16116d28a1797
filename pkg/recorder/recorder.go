// Package recorder persists streamed telemetry records off the delivery path.
package recorder

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/stream"
)

const DefaultBufferSize = 1024

// Sink stores records. Sinks are only called from the recorder's writer
// goroutine.
type Sink interface {
	Write(rec model.TelemetryRecord) error
	Close() error
}

// flusher is implemented by sinks that buffer output.
type flusher interface {
	Flush() error
}

// Recorder queues records from a stream subscription and writes them to its
// sinks on a single goroutine. Records are dropped when the queue is full.
type Recorder struct {
	logger *log.Logger
	sinks  []Sink

	recCh    chan model.TelemetryRecord
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	stopErr  error

	written atomic.Uint64
	dropped atomic.Uint64
	failed  atomic.Uint64
}

func New(logger *log.Logger, bufferSize int, sinks ...Sink) *Recorder {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &Recorder{
		logger: logger,
		sinks:  sinks,
		recCh:  make(chan model.TelemetryRecord, bufferSize),
		done:   make(chan struct{}),
	}
}

// Start begins writing queued records.
func (r *Recorder) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.processRecords(ctx)
}

// Stop writes whatever is still queued, then closes every sink.
func (r *Recorder) Stop() error {
	r.stopOnce.Do(func() {
		close(r.done)
		r.wg.Wait()

		var errs []error
		for _, sink := range r.sinks {
			if err := sink.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		r.stopErr = errors.Join(errs...)
	})
	return r.stopErr
}

// Record queues rec without blocking. It reports false when rec was dropped.
func (r *Recorder) Record(rec model.TelemetryRecord) bool {
	select {
	case <-r.done:
		r.dropped.Add(1)
		return false
	default:
	}
	select {
	case r.recCh <- rec:
		return true
	default:
		r.dropped.Add(1)
		return false
	}
}

// Subscription returns the stream subscription that feeds this recorder.
func (r *Recorder) Subscription() stream.Subscription {
	return stream.Subscription{
		OnData: func(rec model.TelemetryRecord) { r.Record(rec) },
	}
}

func (r *Recorder) Written() uint64 { return r.written.Load() }
func (r *Recorder) Dropped() uint64 { return r.dropped.Load() }
func (r *Recorder) Failed() uint64  { return r.failed.Load() }

func (r *Recorder) processRecords(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case rec := <-r.recCh:
			r.write(rec)
			if len(r.recCh) == 0 {
				r.flush()
			}
		case <-r.done:
			r.drain()
			return
		case <-ctx.Done():
			r.drain()
			return
		}
	}
}

func (r *Recorder) drain() {
	for {
		select {
		case rec := <-r.recCh:
			r.write(rec)
		default:
			r.flush()
			return
		}
	}
}

func (r *Recorder) write(rec model.TelemetryRecord) {
	ok := true
	for _, sink := range r.sinks {
		if err := sink.Write(rec); err != nil {
			ok = false
			r.logger.Printf("recorder: write failed for vehicle %q: %v", rec.VehicleID, err)
		}
	}
	if ok {
		r.written.Add(1)
	} else {
		r.failed.Add(1)
	}
}

func (r *Recorder) flush() {
	for _, sink := range r.sinks {
		if f, ok := sink.(flusher); ok {
			if err := f.Flush(); err != nil {
				r.logger.Printf("recorder: flush failed: %v", err)
			}
		}
	}
}
