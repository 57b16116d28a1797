package main

import (
	"bytes"
	"context"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/config"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
)

type fakeReader struct {
	mu   sync.Mutex
	snap monitor.Snapshot
}

func (f *fakeReader) Snapshot() monitor.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeReader) set(s monitor.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = s
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func testConfig() *config.Config {
	return &config.Config{
		TelemetryWSURL: config.DefaultTelemetryWSURL,
		APIBaseURL:     config.DefaultAPIBaseURL,
		Reconnect:      config.ReconnectConfig{MaxAttempts: 10, BaseDelayMs: 2000, CapFactor: 5},
		StatusInterval: 10 * time.Millisecond,
	}
}

func newTestCLI(reader monitor.Reader) (*CLI, *syncBuffer) {
	out := &syncBuffer{}
	cli := NewCLI(reader, testConfig(), log.New(out, "", 0))
	cli.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 5, 0, time.UTC) }
	return cli, out
}

func TestCLI_PrintStatus(t *testing.T) {
	reader := &fakeReader{snap: monitor.Snapshot{
		FramesReceived:  1234,
		FramesDropped:   2,
		ErrorsTotal:     1,
		FramesByVehicle: map[string]uint64{"uav-1": 1200, "uav-2": 34},
		ConnectionState: "open",
		Subscribers:     2,
	}}
	cli, out := newTestCLI(reader)

	sub := cli.Subscription()
	sub.OnData(model.TelemetryRecord{
		VehicleID: "uav-1",
		Position:  &model.Position{Lat: 12.971598, Lon: 77.594566},
		Battery:   model.Battery{RemainingPercent: model.Float(18)},
		GPS:       model.GPS{FixType: model.Int(3), SatelliteCount: model.Int(12)},
		Status:    model.Status{Armed: model.Bool(true)},
	})
	cli.printStatus()

	got := out.String()
	for _, want := range []string{
		"received=1,234",
		"state=open, subscribers=2",
		"last frame now",
		"uav-1: frames=1,200 pos=12.97160,77.59457 battery=18%(critical)",
		"3D Fix",
		"ARMED",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expected status output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "uav-2:") {
		t.Error("expected vehicles without a cached record to be skipped")
	}
}

func TestCLI_ShouldPrintStatus(t *testing.T) {
	cli, _ := newTestCLI(&fakeReader{})
	base := monitor.Snapshot{FramesReceived: 10, ConnectionState: "open"}

	if !cli.shouldPrintStatus(base) {
		t.Error("expected first status to print")
	}
	cli.lastSnapshot = base
	cli.printed = true

	tests := []struct {
		name string
		snap monitor.Snapshot
		want bool
	}{
		{"unchanged", base, false},
		{"new frames", monitor.Snapshot{FramesReceived: 11, ConnectionState: "open"}, true},
		{"new error", monitor.Snapshot{FramesReceived: 10, ErrorsTotal: 1, ConnectionState: "open"}, true},
		{"state change", monitor.Snapshot{FramesReceived: 10, ConnectionState: "closed"}, true},
		{"reconnecting", monitor.Snapshot{FramesReceived: 10, ConnectionState: "open", ReconnectAttempt: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cli.shouldPrintStatus(tt.snap); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCLI_RunStopsOnContext(t *testing.T) {
	reader := &fakeReader{}
	reader.set(monitor.Snapshot{ConnectionState: "connecting"})
	cli, out := newTestCLI(reader)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- cli.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(out.String(), "state=connecting") {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for a status line, got:\n%s", out.String())
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	cli.Stop()
	cli.Stop()
}

func TestOpenRecorder(t *testing.T) {
	dir := t.TempDir()
	rec, err := openRecorder(config.RecordConfig{
		DBPath:    filepath.Join(dir, "flight.db"),
		JSONLPath: filepath.Join(dir, "flight.jsonl"),
	}, log.New(&bytes.Buffer{}, "", 0))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	rec.Start(context.Background())
	rec.Record(model.TelemetryRecord{VehicleID: "uav-1", Timestamp: time.Now()})
	if err := rec.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if rec.Written() != 1 {
		t.Errorf("expected 1 record written to both sinks, got %d", rec.Written())
	}

	if _, err := openRecorder(config.RecordConfig{JSONLPath: filepath.Join(dir, "missing", "x.jsonl")}, log.New(&bytes.Buffer{}, "", 0)); err == nil {
		t.Error("expected error for an unwritable path")
	}
}
