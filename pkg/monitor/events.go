package monitor

import "time"

type Event interface {
	Timestamp() time.Time // When the event occurred
	EventType() string    // For categorization/filtering
}

type ConnectionStateChanged struct {
	timestamp time.Time
	URL       string
	State     string // idle, connecting, open, closing, closed
}

func (e ConnectionStateChanged) Timestamp() time.Time { return e.timestamp }
func (e ConnectionStateChanged) EventType() string    { return "connection_state_changed" }

func NewConnectionStateChanged(url, state string) ConnectionStateChanged {
	return ConnectionStateChanged{
		timestamp: time.Now(),
		URL:       url,
		State:     state,
	}
}

type FrameReceived struct {
	timestamp time.Time
	VehicleID string
	Age       time.Duration // Receive time minus the frame's own timestamp
}

func (e FrameReceived) Timestamp() time.Time { return e.timestamp }
func (e FrameReceived) EventType() string    { return "frame_received" }

func NewFrameReceived(vehicleID string, age time.Duration) FrameReceived {
	return FrameReceived{
		timestamp: time.Now(),
		VehicleID: vehicleID,
		Age:       age,
	}
}

type FrameDropped struct {
	timestamp time.Time
	Err       error
}

func (e FrameDropped) Timestamp() time.Time { return e.timestamp }
func (e FrameDropped) EventType() string    { return "frame_dropped" }

func NewFrameDropped(err error) FrameDropped {
	return FrameDropped{
		timestamp: time.Now(),
		Err:       err,
	}
}

type ReconnectScheduled struct {
	timestamp time.Time
	Attempt   int
	Delay     time.Duration
}

func (e ReconnectScheduled) Timestamp() time.Time { return e.timestamp }
func (e ReconnectScheduled) EventType() string    { return "reconnect_scheduled" }

func NewReconnectScheduled(attempt int, delay time.Duration) ReconnectScheduled {
	return ReconnectScheduled{
		timestamp: time.Now(),
		Attempt:   attempt,
		Delay:     delay,
	}
}

type ReconnectExhausted struct {
	timestamp time.Time
	Attempts  int
}

func (e ReconnectExhausted) Timestamp() time.Time { return e.timestamp }
func (e ReconnectExhausted) EventType() string    { return "reconnect_exhausted" }

func NewReconnectExhausted(attempts int) ReconnectExhausted {
	return ReconnectExhausted{
		timestamp: time.Now(),
		Attempts:  attempts,
	}
}

type SubscribersChanged struct {
	timestamp time.Time
	Count     int
}

func (e SubscribersChanged) Timestamp() time.Time { return e.timestamp }
func (e SubscribersChanged) EventType() string    { return "subscribers_changed" }

func NewSubscribersChanged(count int) SubscribersChanged {
	return SubscribersChanged{
		timestamp: time.Now(),
		Count:     count,
	}
}

type CommandSent struct {
	timestamp time.Time
	Command   string
}

func (e CommandSent) Timestamp() time.Time { return e.timestamp }
func (e CommandSent) EventType() string    { return "command_sent" }

func NewCommandSent(command string) CommandSent {
	return CommandSent{
		timestamp: time.Now(),
		Command:   command,
	}
}

type CommandDropped struct {
	timestamp time.Time
	Command   string
	Reason    string // "not_connected" or "write_failed"
}

func (e CommandDropped) Timestamp() time.Time { return e.timestamp }
func (e CommandDropped) EventType() string    { return "command_dropped" }

func NewCommandDropped(command, reason string) CommandDropped {
	return CommandDropped{
		timestamp: time.Now(),
		Command:   command,
		Reason:    reason,
	}
}

type ClientError struct {
	timestamp time.Time
	Err       error
	Context   string // Additional context (e.g., "dial", "read", "subscriber_panic")
	Severity  ErrorSeverity
}

func (e ClientError) Timestamp() time.Time { return e.timestamp }
func (e ClientError) EventType() string    { return "client_error" }

func NewClientError(err error, context string, severity ErrorSeverity) ClientError {
	return ClientError{
		timestamp: time.Now(),
		Err:       err,
		Context:   context,
		Severity:  severity,
	}
}

type ErrorSeverity int

const (
	ErrorSeverityInfo ErrorSeverity = iota
	ErrorSeverityWarning
	ErrorSeverityError
	ErrorSeverityCritical
)

func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityInfo:
		return "info"
	case ErrorSeverityWarning:
		return "warning"
	case ErrorSeverityError:
		return "error"
	case ErrorSeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

type Publisher interface {
	// Publish hands an event to the sink.
	// This is a non-blocking, fire-and-forget call.
	Publish(event Event)
}
