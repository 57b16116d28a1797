package utils

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		input    uint64
		expected string
	}{
		{0, "0"},
		{123, "123"},
		{1234, "1,234"},
		{1234567, "1,234,567"},
	}

	for _, test := range tests {
		result := FormatNumber(test.input)
		if result != test.expected {
			t.Errorf("FormatNumber(%d) = %s; expected %s", test.input, result, test.expected)
		}
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		input    time.Time
		expected string
	}{
		{time.Time{}, "never"},
		{now.Add(-3 * time.Second), "3 seconds ago"},
		{now.Add(-2 * time.Minute), "2 minutes ago"},
	}

	for _, test := range tests {
		result := FormatAge(test.input, now)
		if result != test.expected {
			t.Errorf("FormatAge(%v) = %s; expected %s", test.input, result, test.expected)
		}
	}
}

func TestVehicleLabel(t *testing.T) {
	if got := VehicleLabel("uav-1"); got != "uav-1" {
		t.Errorf("expected uav-1, got %s", got)
	}
	if got := VehicleLabel(""); got != "(unidentified)" {
		t.Errorf("expected fallback label, got %s", got)
	}
}

func TestSortVehiclesByCount(t *testing.T) {
	input := map[string]uint64{
		"uav-1": 100,
		"uav-7": 50,
		"uav-6": 200,
		"uav-3": 50,
	}

	result := SortVehiclesByCount(input)

	expected := []VehicleCount{
		{VehicleID: "uav-6", Count: 200},
		{VehicleID: "uav-1", Count: 100},
		{VehicleID: "uav-3", Count: 50},
		{VehicleID: "uav-7", Count: 50},
	}

	if len(result) != len(expected) {
		t.Fatalf("expected %d results, got %d", len(expected), len(result))
	}
	for i, exp := range expected {
		if result[i] != exp {
			t.Errorf("at index %d: expected %+v, got %+v", i, exp, result[i])
		}
	}
}

func TestFormatPercentAndCoordinate(t *testing.T) {
	if got := FormatPercent(64.5); got != "64.5%" {
		t.Errorf("FormatPercent(64.5) = %s", got)
	}
	if got := FormatPercent(80); got != "80%" {
		t.Errorf("FormatPercent(80) = %s", got)
	}
	if got := FormatCoordinate(12.971598, 77.594566); got != "12.97160,77.59457" {
		t.Errorf("FormatCoordinate = %s", got)
	}
}
