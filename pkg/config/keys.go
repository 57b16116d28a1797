package config

// Configuration key constants
// These constants centralize all environment variable and configuration key names
// to eliminate magic strings and improve maintainability. Config files use the
// same keys in lower case (telemetry_ws_url: ...).

const (
	// Endpoint configuration keys
	KeyTelemetryWSURL = "TELEMETRY_WS_URL"
	KeyAPIBaseURL     = "API_BASE_URL"

	// Reconnect configuration keys
	KeyReconnectMaxAttempts = "RECONNECT_MAX_ATTEMPTS"
	KeyReconnectBaseDelayMs = "RECONNECT_BASE_DELAY_MS"
	KeyReconnectCapFactor   = "RECONNECT_CAP_FACTOR"

	// Stream liveness keys
	KeyStreamReadTimeoutSeconds  = "STREAM_READ_TIMEOUT_SECONDS"
	KeyStreamPingIntervalSeconds = "STREAM_PING_INTERVAL_SECONDS"

	// Output configuration keys
	KeyMetricsAddr           = "METRICS_ADDR"
	KeyRecordDBPath          = "RECORD_DB_PATH"
	KeyRecordJSONLPath       = "RECORD_JSONL_PATH"
	KeyVehicleID             = "VEHICLE_ID"
	KeyStatusIntervalSeconds = "STATUS_INTERVAL_SECONDS"

	KeyConfigFile = "CONFIG_FILE"
)

// Default values for configuration
const (
	DefaultTelemetryWSURL = "ws://localhost:8000/ws/telemetry"
	DefaultAPIBaseURL     = "http://localhost:8000/api"

	// Reconnect defaults
	DefaultReconnectMaxAttempts = 10
	DefaultReconnectBaseDelayMs = 2000
	DefaultReconnectCapFactor   = 5

	// Liveness checks are off unless configured
	DefaultStreamReadTimeoutSeconds  = 0
	DefaultStreamPingIntervalSeconds = 0

	DefaultStatusIntervalSeconds = 10
)

// CLI flag name constants
const (
	// CLI flag names (kebab-case for command line)
	FlagTelemetryWSURL            = "telemetry-ws-url"
	FlagAPIBaseURL                = "api-base-url"
	FlagReconnectMaxAttempts      = "reconnect-max-attempts"
	FlagReconnectBaseDelayMs      = "reconnect-base-delay-ms"
	FlagReconnectCapFactor        = "reconnect-cap-factor"
	FlagStreamReadTimeoutSeconds  = "stream-read-timeout-seconds"
	FlagStreamPingIntervalSeconds = "stream-ping-interval-seconds"
	FlagMetricsAddr               = "metrics-addr"
	FlagRecordDBPath              = "record-db-path"
	FlagRecordJSONLPath           = "record-jsonl-path"
	FlagVehicleID                 = "vehicle-id"
	FlagStatusIntervalSeconds     = "status-interval-seconds"
	FlagConfigFile                = "config"
	FlagHelp                      = "help"
)

// Help message constants
const (
	AppName        = "telemetryctl"
	AppDescription = "Stream live UAV telemetry over WebSocket"
	UsageFormat    = "telemetryctl [OPTIONS]"

	// Help descriptions
	HelpTelemetryWSURL            = "Telemetry WebSocket URL"
	HelpAPIBaseURL                = "Mission/control REST API base URL"
	HelpReconnectMaxAttempts      = "Reconnect attempts before giving up"
	HelpReconnectBaseDelayMs      = "Base reconnect delay in milliseconds"
	HelpReconnectCapFactor        = "Cap on the reconnect delay multiplier"
	HelpStreamReadTimeoutSeconds  = "Fail a silent connection after this many seconds (0 disables)"
	HelpStreamPingIntervalSeconds = "Ping interval in seconds (0 disables)"
	HelpMetricsAddr               = "Serve Prometheus metrics on this address"
	HelpRecordDBPath              = "Record telemetry to this SQLite database"
	HelpRecordJSONLPath           = "Record telemetry to this JSON Lines file"
	HelpVehicleID                 = "Ask the backend to stream this vehicle"
	HelpStatusIntervalSeconds     = "Status line interval in seconds"
	HelpConfigFile                = "YAML config file"
	HelpShowHelp                  = "Show this help message"

	// Environment variable descriptions
	EnvDescTelemetryWSURL            = "Telemetry WebSocket URL"
	EnvDescAPIBaseURL                = "REST API base URL"
	EnvDescReconnectMaxAttempts      = "Reconnect attempts before giving up"
	EnvDescReconnectBaseDelayMs      = "Base reconnect delay in milliseconds"
	EnvDescReconnectCapFactor        = "Cap on the reconnect delay multiplier"
	EnvDescStreamReadTimeoutSeconds  = "Read timeout in seconds"
	EnvDescStreamPingIntervalSeconds = "Ping interval in seconds"
	EnvDescMetricsAddr               = "Prometheus listen address"
	EnvDescRecordDBPath              = "SQLite recording path"
	EnvDescRecordJSONLPath           = "JSON Lines recording path"
	EnvDescVehicleID                 = "Vehicle to stream"
	EnvDescStatusIntervalSeconds     = "Status line interval in seconds"
	EnvDescConfigFile                = "YAML config file"

	// Help section headers
	HelpOptions         = "Options:"
	HelpEnvironmentVars = "Environment Variables:"
	HelpUsage           = "Usage:"
	HelpNote            = "Note: CLI options override environment variables, which override the config file"
)
