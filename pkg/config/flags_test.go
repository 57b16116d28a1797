package config

import (
	"flag"
	"os"
	"testing"
)

func resetFlags(args ...string) {
	flag.CommandLine = flag.NewFlagSet("test", flag.ExitOnError)
	os.Args = append([]string{"test"}, args...)
}

func TestParseCLIFlags(t *testing.T) {
	// Save original command line args
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	t.Run("empty args", func(t *testing.T) {
		resetFlags()
		flagSource, showHelp := parseCLIFlags()

		if showHelp {
			t.Error("expected showHelp to be false for empty args")
		}
		if flagSource == nil {
			t.Fatal("expected non-nil flagSource")
		}
		if value, found := flagSource.GetString(KeyTelemetryWSURL); found {
			t.Errorf("expected no value for %s, got '%s'", KeyTelemetryWSURL, value)
		}
		if value, found := flagSource.GetInt(KeyReconnectMaxAttempts); found {
			t.Errorf("expected no value for %s, got %d", KeyReconnectMaxAttempts, value)
		}
	})

	t.Run("with values", func(t *testing.T) {
		resetFlags("--telemetry-ws-url=wss://fleet.example/ws", "--reconnect-cap-factor=3", "--config=/tmp/x.yaml")
		flagSource, showHelp := parseCLIFlags()

		if showHelp {
			t.Error("expected showHelp to be false")
		}
		if value, found := flagSource.GetString(KeyTelemetryWSURL); !found || value != "wss://fleet.example/ws" {
			t.Errorf("expected 'wss://fleet.example/ws', got '%s' (found: %v)", value, found)
		}
		if value, found := flagSource.GetInt(KeyReconnectCapFactor); !found || value != 3 {
			t.Errorf("expected 3, got %d (found: %v)", value, found)
		}
		if value, found := flagSource.GetString(KeyConfigFile); !found || value != "/tmp/x.yaml" {
			t.Errorf("expected config path, got '%s' (found: %v)", value, found)
		}
	})

	t.Run("help", func(t *testing.T) {
		resetFlags("--help")
		if _, showHelp := parseCLIFlags(); !showHelp {
			t.Error("expected showHelp to be true")
		}
	})
}

func TestPrintUsage(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("printUsage panicked: %v", r)
		}
	}()
	printUsage()
}
