package config

import (
	"time"
)

type Config struct {
	TelemetryWSURL string
	APIBaseURL     string
	Reconnect      ReconnectConfig
	Stream         StreamConfig
	MetricsAddr    string
	Record         RecordConfig
	VehicleID      string
	StatusInterval time.Duration
	ConfigFile     string
}

type ReconnectConfig struct {
	MaxAttempts int
	BaseDelayMs int
	CapFactor   int
}

// BaseDelay returns BaseDelayMs as a duration.
func (r ReconnectConfig) BaseDelay() time.Duration {
	return time.Duration(r.BaseDelayMs) * time.Millisecond
}

type StreamConfig struct {
	ReadTimeoutSeconds  int
	PingIntervalSeconds int
}

type RecordConfig struct {
	DBPath    string
	JSONLPath string
}

// Enabled reports whether any recording sink is configured.
func (r RecordConfig) Enabled() bool {
	return r.DBPath != "" || r.JSONLPath != ""
}

// Load loads configuration from CLI flags, environment variables and an
// optional YAML file, in that order of precedence.
func Load() (*Config, error) {
	// Parse CLI flags
	flagSource, showHelp := parseCLIFlags()

	if showHelp {
		printUsage()
		return nil, nil // Return nil to indicate help was shown
	}

	sources := []ConfigSource{flagSource, &EnvSource{}}

	// The config file location itself comes from flags or env only
	configFile := NewConfigResolver(sources...).ResolveString(KeyConfigFile, "")
	if configFile != "" {
		fileSource, err := NewFileSource(configFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileSource)
	}

	cfg := build(NewConfigResolver(sources...))
	cfg.ConfigFile = configFile

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func build(resolver *ConfigResolver) *Config {
	return &Config{
		TelemetryWSURL: resolver.ResolveString(KeyTelemetryWSURL, DefaultTelemetryWSURL),
		APIBaseURL:     resolver.ResolveString(KeyAPIBaseURL, DefaultAPIBaseURL),
		Reconnect: ReconnectConfig{
			MaxAttempts: resolver.ResolveInt(KeyReconnectMaxAttempts, DefaultReconnectMaxAttempts),
			BaseDelayMs: resolver.ResolveInt(KeyReconnectBaseDelayMs, DefaultReconnectBaseDelayMs),
			CapFactor:   resolver.ResolveInt(KeyReconnectCapFactor, DefaultReconnectCapFactor),
		},
		Stream: StreamConfig{
			ReadTimeoutSeconds:  resolver.ResolveInt(KeyStreamReadTimeoutSeconds, DefaultStreamReadTimeoutSeconds),
			PingIntervalSeconds: resolver.ResolveInt(KeyStreamPingIntervalSeconds, DefaultStreamPingIntervalSeconds),
		},
		MetricsAddr: resolver.ResolveString(KeyMetricsAddr, ""),
		Record: RecordConfig{
			DBPath:    resolver.ResolveString(KeyRecordDBPath, ""),
			JSONLPath: resolver.ResolveString(KeyRecordJSONLPath, ""),
		},
		VehicleID:      resolver.ResolveString(KeyVehicleID, ""),
		StatusInterval: time.Duration(resolver.ResolveInt(KeyStatusIntervalSeconds, DefaultStatusIntervalSeconds)) * time.Second,
	}
}
