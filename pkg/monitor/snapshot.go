package monitor

type Snapshot struct {
	// Core counters
	FramesReceived  uint64
	FramesDropped   uint64
	CommandsSent    uint64
	CommandsDropped uint64
	ErrorsTotal     uint64
	FramesByVehicle map[string]uint64
	LastVehicleID   string

	// Connection state
	URL                 string
	ConnectionState     string
	Connected           bool
	Subscribers         int
	ReconnectsScheduled uint64
	ReconnectAttempt    int
	ReconnectExhausted  bool

	// Rate metrics
	FramesPerSecond float64

	// Frame age metrics
	AvgFrameAgeMs float64
	P95FrameAgeMs float64

	// System metrics
	UptimeSeconds      float64
	ChannelUtilization float64

	// Error breakdown
	ErrorsByContext  map[string]uint64
	ErrorsBySeverity map[ErrorSeverity]uint64
	RecentErrors     []string
}

type Reader interface {
	Snapshot() Snapshot
}
