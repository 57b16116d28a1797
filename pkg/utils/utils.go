package utils

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
)

type VehicleCount struct {
	VehicleID string
	Count     uint64
}

// SortVehiclesByCount sorts vehicles by frame count (descending), then by id (ascending)
func SortVehiclesByCount(framesByVehicle map[string]uint64) []VehicleCount {
	counts := make([]VehicleCount, 0, len(framesByVehicle))
	for id, count := range framesByVehicle {
		counts = append(counts, VehicleCount{VehicleID: id, Count: count})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count == counts[j].Count {
			return counts[i].VehicleID < counts[j].VehicleID
		}
		return counts[i].Count > counts[j].Count
	})

	return counts
}

// FormatNumber formats a number with comma separators for readability
func FormatNumber(n uint64) string {
	return humanize.Comma(int64(n))
}

// FormatAge renders how long ago t was relative to now ("3 seconds ago").
// The zero time renders as "never".
func FormatAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// VehicleLabel names a record source, falling back for frames without an id.
func VehicleLabel(id string) string {
	if id == "" {
		return "(unidentified)"
	}
	return id
}

// FormatPercent renders a percentage with at most one decimal ("64.5%").
func FormatPercent(v float64) string {
	return humanize.FtoaWithDigits(v, 1) + "%"
}

// FormatCoordinate renders a lat/lon pair to roughly meter precision.
func FormatCoordinate(lat, lon float64) string {
	return fmt.Sprintf("%.5f,%.5f", lat, lon)
}
