// Package monitor carries the streaming client's self-observation: typed events
// emitted by the client and an aggregator that folds them into a snapshot.
package monitor

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Clock interface allows for deterministic testing
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Config for aggregator settings
type Config struct {
	BufferSize        int `default:"1000"`
	MaxRecentErrors   int `default:"50"`
	RateWindowSeconds int `default:"10"`
	AgeSamples        int `default:"100"`
}

func DefaultConfig() Config {
	return Config{
		BufferSize:        1000,
		MaxRecentErrors:   50,
		RateWindowSeconds: 10,
		AgeSamples:        100,
	}
}

// Aggregator is the stateful component that processes client events
type Aggregator struct {
	mu    sync.RWMutex
	clock Clock
	cfg   Config

	// Core counters
	framesReceived  uint64
	framesDropped   uint64
	commandsSent    uint64
	commandsDropped uint64
	errorsTotal     uint64

	// Breakdown
	framesByVehicle  map[string]uint64
	errorsByContext  map[string]uint64
	errorsBySeverity map[ErrorSeverity]uint64

	// Rate calculations
	frameTimes []time.Time

	// Current state
	url                 string
	connectionState     string
	subscribers         int
	reconnectsScheduled uint64
	reconnectAttempt    int
	reconnectExhausted  bool
	lastVehicleID       string

	// Recent errors (ring buffer)
	recentErrors []string
	errorIndex   int

	// Frame age tracking (ring buffer)
	ages     []time.Duration
	ageIndex int

	// Control channels
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup

	startTime time.Time
}

// NewAggregator creates a new aggregator
func NewAggregator(clock Clock, cfg Config) *Aggregator {
	if clock == nil {
		clock = RealClock{}
	}
	def := DefaultConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = def.BufferSize
	}
	if cfg.MaxRecentErrors <= 0 {
		cfg.MaxRecentErrors = def.MaxRecentErrors
	}
	if cfg.RateWindowSeconds <= 0 {
		cfg.RateWindowSeconds = def.RateWindowSeconds
	}
	if cfg.AgeSamples <= 0 {
		cfg.AgeSamples = def.AgeSamples
	}

	return &Aggregator{
		clock:            clock,
		cfg:              cfg,
		connectionState:  "idle",
		framesByVehicle:  make(map[string]uint64),
		errorsByContext:  make(map[string]uint64),
		errorsBySeverity: make(map[ErrorSeverity]uint64),
		frameTimes:       make([]time.Time, 0, cfg.RateWindowSeconds*10), // ~10 frames per second estimate
		recentErrors:     make([]string, cfg.MaxRecentErrors),
		ages:             make([]time.Duration, cfg.AgeSamples),
		eventCh:          make(chan Event, cfg.BufferSize),
		done:             make(chan struct{}),
		startTime:        clock.Now(),
	}
}

// Start begins processing events
func (a *Aggregator) Start(ctx context.Context) {
	a.wg.Add(1)
	go a.processEvents(ctx)
}

// Stop gracefully shuts down the aggregator
func (a *Aggregator) Stop() {
	close(a.done)
	a.wg.Wait()
}

// Publish implements Publisher
func (a *Aggregator) Publish(event Event) {
	select {
	case a.eventCh <- event:
	default:
		// Non-blocking send - drop if channel is full
		// This protects the read loop from being blocked
	}
}

// Snapshot implements Reader
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	now := a.clock.Now()
	avgAge, p95Age := a.calculateAgeMetrics()

	vehiclesCopy := make(map[string]uint64, len(a.framesByVehicle))
	for k, v := range a.framesByVehicle {
		vehiclesCopy[k] = v
	}
	contextsCopy := make(map[string]uint64, len(a.errorsByContext))
	for k, v := range a.errorsByContext {
		contextsCopy[k] = v
	}
	severityCopy := make(map[ErrorSeverity]uint64, len(a.errorsBySeverity))
	for k, v := range a.errorsBySeverity {
		severityCopy[k] = v
	}

	// Newest first
	recentErrors := make([]string, 0)
	for i := 0; i < len(a.recentErrors); i++ {
		idx := (a.errorIndex - i - 1 + len(a.recentErrors)) % len(a.recentErrors)
		if a.recentErrors[idx] != "" {
			recentErrors = append(recentErrors, a.recentErrors[idx])
		}
	}

	return Snapshot{
		FramesReceived:      a.framesReceived,
		FramesDropped:       a.framesDropped,
		CommandsSent:        a.commandsSent,
		CommandsDropped:     a.commandsDropped,
		ErrorsTotal:         a.errorsTotal,
		FramesByVehicle:     vehiclesCopy,
		LastVehicleID:       a.lastVehicleID,
		URL:                 a.url,
		ConnectionState:     a.connectionState,
		Connected:           a.connectionState == "open",
		Subscribers:         a.subscribers,
		ReconnectsScheduled: a.reconnectsScheduled,
		ReconnectAttempt:    a.reconnectAttempt,
		ReconnectExhausted:  a.reconnectExhausted,
		FramesPerSecond:     a.calculateRate(now),
		AvgFrameAgeMs:       avgAge,
		P95FrameAgeMs:       p95Age,
		UptimeSeconds:       now.Sub(a.startTime).Seconds(),
		ChannelUtilization:  float64(len(a.eventCh)) / float64(cap(a.eventCh)) * 100,
		ErrorsByContext:     contextsCopy,
		ErrorsBySeverity:    severityCopy,
		RecentErrors:        recentErrors,
	}
}

func (a *Aggregator) processEvents(ctx context.Context) {
	defer a.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.done:
			return
		case event := <-a.eventCh:
			a.handleEvent(event)
		}
	}
}

func (a *Aggregator) handleEvent(event Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e := event.(type) {
	case FrameReceived:
		a.framesReceived++
		if e.VehicleID != "" {
			a.framesByVehicle[e.VehicleID]++
			a.lastVehicleID = e.VehicleID
		}
		a.addFrameTime(now)
		a.addAge(e.Age)

	case FrameDropped:
		a.framesDropped++
		if e.Err != nil {
			a.addRecentError(e.Err.Error())
		}

	case ConnectionStateChanged:
		a.url = e.URL
		a.connectionState = e.State
		if e.State == "open" {
			a.reconnectAttempt = 0
			a.reconnectExhausted = false
		}

	case SubscribersChanged:
		a.subscribers = e.Count

	case ReconnectScheduled:
		a.reconnectsScheduled++
		a.reconnectAttempt = e.Attempt

	case ReconnectExhausted:
		a.reconnectExhausted = true
		a.reconnectAttempt = e.Attempts

	case CommandSent:
		a.commandsSent++

	case CommandDropped:
		a.commandsDropped++

	case ClientError:
		a.errorsTotal++
		a.errorsByContext[e.Context]++
		a.errorsBySeverity[e.Severity]++
		if e.Err != nil {
			a.addRecentError(e.Err.Error())
		}
	}
}

func (a *Aggregator) addFrameTime(t time.Time) {
	cutoff := t.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)

	// Remove old entries
	for len(a.frameTimes) > 0 && a.frameTimes[0].Before(cutoff) {
		a.frameTimes = a.frameTimes[1:]
	}

	a.frameTimes = append(a.frameTimes, t)
}

func (a *Aggregator) addAge(age time.Duration) {
	if age <= 0 {
		return
	}
	a.ages[a.ageIndex] = age
	a.ageIndex = (a.ageIndex + 1) % len(a.ages)
}

func (a *Aggregator) addRecentError(err string) {
	a.recentErrors[a.errorIndex] = err
	a.errorIndex = (a.errorIndex + 1) % len(a.recentErrors)
}

func (a *Aggregator) calculateRate(now time.Time) float64 {
	if len(a.frameTimes) == 0 {
		return 0.0
	}

	cutoff := now.Add(-time.Duration(a.cfg.RateWindowSeconds) * time.Second)
	count := 0
	for _, t := range a.frameTimes {
		if t.After(cutoff) {
			count++
		}
	}

	return float64(count) / float64(a.cfg.RateWindowSeconds)
}

func (a *Aggregator) calculateAgeMetrics() (float64, float64) {
	valid := make([]time.Duration, 0, len(a.ages))
	for _, age := range a.ages {
		if age > 0 {
			valid = append(valid, age)
		}
	}
	if len(valid) == 0 {
		return 0.0, 0.0
	}

	var sum time.Duration
	for _, age := range valid {
		sum += age
	}
	avg := float64(sum) / float64(len(valid)) / float64(time.Millisecond)

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })
	p95Index := int(float64(len(valid)) * 0.95)
	if p95Index >= len(valid) {
		p95Index = len(valid) - 1
	}
	p95 := float64(valid[p95Index]) / float64(time.Millisecond)

	return avg, p95
}
