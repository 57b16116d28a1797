package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func buildBinary(t *testing.T) string {
	t.Helper()
	bin := filepath.Join(t.TempDir(), "telemetryctl")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, out)
	}
	return bin
}

func TestMainVersionFlag(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "--version").Output()
	if err != nil {
		t.Fatalf("failed to run version command: %v", err)
	}

	outputStr := string(output)
	if !strings.Contains(outputStr, "telemetryctl version") {
		t.Errorf("expected version output to contain 'telemetryctl version', got: %s", outputStr)
	}
}

func TestMainInvalidConfig(t *testing.T) {
	bin := buildBinary(t)

	cmd := exec.Command(bin)
	cmd.Env = append(os.Environ(), "TELEMETRY_WS_URL=http://not-a-socket")
	output, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected error for invalid config, but command succeeded")
	}

	outputStr := string(output)
	if !strings.Contains(outputStr, "Error loading configuration") {
		t.Errorf("expected error message about configuration, got: %s", outputStr)
	}
}

func TestMainHelp(t *testing.T) {
	bin := buildBinary(t)

	output, err := exec.Command(bin, "--help").Output()
	if err != nil {
		t.Fatalf("failed to run help command: %v", err)
	}

	outputStr := string(output)
	for _, want := range []string{
		"telemetryctl - Stream live UAV telemetry over WebSocket",
		"Usage:",
		"Options:",
		"Environment Variables:",
		"TELEMETRY_WS_URL",
	} {
		if !strings.Contains(outputStr, want) {
			t.Errorf("expected help output to contain %q, got: %s", want, outputStr)
		}
	}
}
