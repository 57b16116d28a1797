package main

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/config"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/normalizer"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/stream"
	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/utils"
)

const topVehicles = 3

// CLI represents the command-line interface runner
type CLI struct {
	monitor monitor.Reader
	config  *config.Config
	logger  *log.Logger
	now     func() time.Time

	mu     sync.Mutex
	latest map[string]model.TelemetryRecord
	lastAt time.Time

	// State
	lastSnapshot monitor.Snapshot
	printed      bool
	done         chan struct{}
	stopOnce     sync.Once
}

// NewCLI creates a new command-line interface runner
func NewCLI(reader monitor.Reader, cfg *config.Config, logger *log.Logger) *CLI {
	return &CLI{
		monitor: reader,
		config:  cfg,
		logger:  logger,
		now:     time.Now,
		latest:  make(map[string]model.TelemetryRecord),
		done:    make(chan struct{}),
	}
}

// Subscription keeps the latest record per vehicle for status output.
func (c *CLI) Subscription() stream.Subscription {
	return stream.Subscription{
		OnData: func(rec model.TelemetryRecord) {
			c.mu.Lock()
			defer c.mu.Unlock()
			c.latest[rec.VehicleID] = rec
			c.lastAt = c.now()
		},
		OnError: func(err error) {
			c.logger.Printf("stream error: %v", err)
		},
		OnConnect: func() {
			c.logger.Printf("connected to %s", c.config.TelemetryWSURL)
		},
		OnDisconnect: func() {
			c.logger.Printf("disconnected from %s", c.config.TelemetryWSURL)
		},
	}
}

// Run starts the CLI runner and blocks until shutdown
func (c *CLI) Run(ctx context.Context) error {
	c.logger.Printf("Starting %s", config.AppName)
	c.logger.Printf("Telemetry: %s", c.config.TelemetryWSURL)
	c.logger.Printf("Reconnect: %d attempts, base %s, cap x%d",
		c.config.Reconnect.MaxAttempts, c.config.Reconnect.BaseDelay(), c.config.Reconnect.CapFactor)

	ticker := time.NewTicker(c.config.StatusInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Printf("Shutting down...")
			return nil
		case <-ticker.C:
			c.printStatus()
		case <-c.done:
			return nil
		}
	}
}

// Stop stops the CLI runner
func (c *CLI) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// printStatus prints current stream status
func (c *CLI) printStatus() {
	snapshot := c.monitor.Snapshot()

	if c.shouldPrintStatus(snapshot) {
		c.logger.Printf("Status - Frames: received=%s, dropped=%s, rate=%.1f/s, age avg=%.0fms p95=%.0fms, errors=%s",
			utils.FormatNumber(snapshot.FramesReceived),
			utils.FormatNumber(snapshot.FramesDropped),
			snapshot.FramesPerSecond,
			snapshot.AvgFrameAgeMs,
			snapshot.P95FrameAgeMs,
			utils.FormatNumber(snapshot.ErrorsTotal))

		c.mu.Lock()
		lastAt := c.lastAt
		c.mu.Unlock()
		c.logger.Printf("Connection - state=%s, subscribers=%d, last frame %s",
			snapshot.ConnectionState, snapshot.Subscribers, utils.FormatAge(lastAt, c.now()))

		if snapshot.ReconnectExhausted {
			c.logger.Printf("Reconnect gave up after %d attempts", snapshot.ReconnectAttempt)
		} else if snapshot.ReconnectAttempt > 0 {
			c.logger.Printf("Reconnecting - attempt %d/%d", snapshot.ReconnectAttempt, c.config.Reconnect.MaxAttempts)
		}

		for i, vc := range utils.SortVehiclesByCount(snapshot.FramesByVehicle) {
			if i == topVehicles {
				break
			}
			c.printVehicle(vc)
		}
	}

	c.lastSnapshot = snapshot
	c.printed = true
}

func (c *CLI) printVehicle(vc utils.VehicleCount) {
	c.mu.Lock()
	rec, ok := c.latest[vc.VehicleID]
	c.mu.Unlock()
	if !ok {
		return
	}

	a := normalizer.Assess(rec)
	battery := "n/a"
	if rec.Battery.RemainingPercent != nil {
		battery = utils.FormatPercent(*rec.Battery.RemainingPercent)
	}
	position := "no fix"
	if rec.Position != nil {
		position = utils.FormatCoordinate(rec.Position.Lat, rec.Position.Lon)
	}
	c.logger.Printf("  %s: frames=%s pos=%s battery=%s(%s) gps=%s(%s) %s flying=%t",
		utils.VehicleLabel(vc.VehicleID),
		utils.FormatNumber(vc.Count),
		position,
		battery, a.Battery,
		a.FixLabel, a.GPS,
		a.Armed,
		a.Flying)
}

// shouldPrintStatus determines if we should print a status update
func (c *CLI) shouldPrintStatus(snapshot monitor.Snapshot) bool {
	// Always print first status
	if !c.printed {
		return true
	}

	if snapshot.FramesReceived != c.lastSnapshot.FramesReceived ||
		snapshot.FramesDropped != c.lastSnapshot.FramesDropped {
		return true
	}

	if snapshot.ErrorsTotal > c.lastSnapshot.ErrorsTotal {
		return true
	}

	if snapshot.ConnectionState != c.lastSnapshot.ConnectionState ||
		snapshot.ReconnectAttempt != c.lastSnapshot.ReconnectAttempt {
		return true
	}

	return false
}
