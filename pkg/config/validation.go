package config

import (
	"fmt"
	"net/url"
)

func (c *Config) validate() error {
	if err := checkURL(KeyTelemetryWSURL, c.TelemetryWSURL, "ws", "wss"); err != nil {
		return err
	}
	if err := checkURL(KeyAPIBaseURL, c.APIBaseURL, "http", "https"); err != nil {
		return err
	}
	if c.Reconnect.MaxAttempts <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyReconnectMaxAttempts, c.Reconnect.MaxAttempts)
	}
	if c.Reconnect.BaseDelayMs <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyReconnectBaseDelayMs, c.Reconnect.BaseDelayMs)
	}
	if c.Reconnect.CapFactor <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyReconnectCapFactor, c.Reconnect.CapFactor)
	}
	if c.Stream.ReadTimeoutSeconds < 0 {
		return fmt.Errorf("%s must not be negative", KeyStreamReadTimeoutSeconds)
	}
	if c.Stream.PingIntervalSeconds < 0 {
		return fmt.Errorf("%s must not be negative", KeyStreamPingIntervalSeconds)
	}
	if c.Stream.ReadTimeoutSeconds > 0 && c.Stream.PingIntervalSeconds > 0 &&
		c.Stream.ReadTimeoutSeconds <= c.Stream.PingIntervalSeconds {
		return fmt.Errorf("%s (%d) must exceed %s (%d)",
			KeyStreamReadTimeoutSeconds, c.Stream.ReadTimeoutSeconds,
			KeyStreamPingIntervalSeconds, c.Stream.PingIntervalSeconds)
	}
	if c.StatusInterval <= 0 {
		return fmt.Errorf("%s must be positive", KeyStatusIntervalSeconds)
	}
	return nil
}

func checkURL(key, raw string, schemes ...string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", key)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	for _, s := range schemes {
		if u.Scheme == s && u.Host != "" {
			return nil
		}
	}
	return fmt.Errorf("%s must be a %v URL, got %q", key, schemes, raw)
}
