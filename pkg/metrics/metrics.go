// Package metrics exports the streaming client's monitor events as Prometheus
// collectors.
package metrics

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/monitor"
)

const (
	metricPrefix = "uavtelemetry_"

	resultAccepted = "accepted"
	resultDropped  = "dropped"
	resultSent     = "sent"
)

var connectionStates = []string{"idle", "connecting", "open", "closing", "closed"}

var (
	registerOnce sync.Once

	framesTotal         *prometheus.CounterVec
	frameAge            prometheus.Histogram
	reconnectsScheduled prometheus.Counter
	reconnectsExhausted prometheus.Counter
	reconnectDelay      prometheus.Gauge
	commandsTotal       *prometheus.CounterVec
	errorsTotal         *prometheus.CounterVec
	connectionState     *prometheus.GaugeVec
	subscribers         prometheus.Gauge
)

// Init registers the client collectors with the default registry. It is safe to
// call more than once.
func Init(logger *log.Logger) {
	registerOnce.Do(func() {
		framesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "frames_total",
				Help: "Total inbound telemetry frames by result",
			},
			[]string{"result"},
		)
		frameAge = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "frame_age_seconds",
				Help:    "Age of telemetry frames on arrival",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		)
		reconnectsScheduled = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconnects_scheduled_total",
				Help: "Total reconnect attempts scheduled",
			},
		)
		reconnectsExhausted = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "reconnects_exhausted_total",
				Help: "Total times the reconnect budget ran out",
			},
		)
		reconnectDelay = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "reconnect_delay_seconds",
				Help: "Delay of the most recently scheduled reconnect",
			},
		)
		commandsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "commands_total",
				Help: "Total outbound commands by result and reason",
			},
			[]string{"result", "reason"},
		)
		errorsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "errors_total",
				Help: "Total client errors by context and severity",
			},
			[]string{"context", "severity"},
		)
		connectionState = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "connection_state",
				Help: "1 for the current connection state, 0 otherwise",
			},
			[]string{"state"},
		)
		subscribers = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "subscribers",
				Help: "Live stream subscriptions",
			},
		)

		prometheus.MustRegister(
			framesTotal,
			frameAge,
			reconnectsScheduled,
			reconnectsExhausted,
			reconnectDelay,
			commandsTotal,
			errorsTotal,
			connectionState,
			subscribers,
		)
		SetConnectionState("idle")

		if logger != nil {
			logger.Printf("metrics: registered %s collectors", metricPrefix)
		}
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncFrame counts one inbound frame.
func IncFrame(result string) {
	if result == "" {
		result = resultAccepted
	}
	if framesTotal != nil {
		framesTotal.WithLabelValues(result).Inc()
	}
}

// ObserveFrameAge records how old a frame was on arrival. Non-positive ages mean
// the frame carried no usable timestamp and are skipped.
func ObserveFrameAge(age time.Duration) {
	if age <= 0 {
		return
	}
	if frameAge != nil {
		frameAge.Observe(age.Seconds())
	}
}

// ObserveReconnect records a scheduled reconnect.
func ObserveReconnect(delay time.Duration) {
	if reconnectsScheduled != nil {
		reconnectsScheduled.Inc()
	}
	if reconnectDelay != nil {
		reconnectDelay.Set(delay.Seconds())
	}
}

// IncReconnectExhausted counts an exhausted reconnect budget.
func IncReconnectExhausted() {
	if reconnectsExhausted != nil {
		reconnectsExhausted.Inc()
	}
}

// IncCommand counts one outbound command.
func IncCommand(result, reason string) {
	if result == "" {
		result = resultSent
	}
	if commandsTotal != nil {
		commandsTotal.WithLabelValues(result, reason).Inc()
	}
}

// IncError counts one client error.
func IncError(context, severity string) {
	if context == "" {
		context = "unknown"
	}
	if errorsTotal != nil {
		errorsTotal.WithLabelValues(context, severity).Inc()
	}
}

// SetConnectionState flags state as current.
func SetConnectionState(state string) {
	if connectionState == nil {
		return
	}
	for _, s := range connectionStates {
		v := 0.0
		if s == state {
			v = 1
		}
		connectionState.WithLabelValues(s).Set(v)
	}
}

// SetSubscribers sets the live subscription gauge.
func SetSubscribers(n int) {
	if subscribers != nil {
		subscribers.Set(float64(n))
	}
}

// Publisher maps monitor events onto the collectors. Init must have been called
// for anything to be recorded.
type Publisher struct{}

func NewPublisher() *Publisher { return &Publisher{} }

func (p *Publisher) Publish(event monitor.Event) {
	switch e := event.(type) {
	case monitor.FrameReceived:
		IncFrame(resultAccepted)
		ObserveFrameAge(e.Age)
	case monitor.FrameDropped:
		IncFrame(resultDropped)
	case monitor.ConnectionStateChanged:
		SetConnectionState(e.State)
	case monitor.SubscribersChanged:
		SetSubscribers(e.Count)
	case monitor.ReconnectScheduled:
		ObserveReconnect(e.Delay)
	case monitor.ReconnectExhausted:
		IncReconnectExhausted()
	case monitor.CommandSent:
		IncCommand(resultSent, "")
	case monitor.CommandDropped:
		IncCommand(resultDropped, e.Reason)
	case monitor.ClientError:
		IncError(e.Context, e.Severity.String())
	}
}

// Exported constants for callers.
const (
	FrameResultAccepted = resultAccepted
	FrameResultDropped  = resultDropped
)
