// Package normalizer turns raw telemetry frames of any known shape into a
// model.TelemetryRecord, and holds the canonical status classifications that
// every consumer shares.
package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
)

// ErrMalformedFrame is returned when a frame is not a JSON object at all.
// Missing or odd-typed fields never produce an error.
var ErrMalformedFrame = errors.New("malformed telemetry frame")

// epochMillisThreshold separates epoch seconds from epoch milliseconds.
const epochMillisThreshold = 1e12

// Normalize decodes one raw frame. It is safe for concurrent use.
func Normalize(frame []byte) (model.TelemetryRecord, error) {
	return NormalizeAt(frame, time.Now())
}

// NormalizeAt is Normalize with an explicit receive time, used when the frame
// carries no timestamp of its own.
func NormalizeAt(frame []byte, received time.Time) (model.TelemetryRecord, error) {
	if !gjson.ValidBytes(frame) {
		return model.TelemetryRecord{}, fmt.Errorf("%w: invalid json", ErrMalformedFrame)
	}
	root := gjson.ParseBytes(frame)
	if !root.IsObject() {
		return model.TelemetryRecord{}, fmt.Errorf("%w: root is %s, not an object", ErrMalformedFrame, root.Type)
	}

	rec := model.TelemetryRecord{
		Timestamp: resolveTimestamp(root, received),
		VehicleID: firstString(root, vehicleIDAliases),
		Position:  resolvePosition(root),
		Velocity: model.Velocity{
			VX:          firstFloat(root, vxAliases),
			VY:          firstFloat(root, vyAliases),
			VZ:          firstFloat(root, vzAliases),
			GroundSpeed: firstFloat(root, groundSpeedAliases),
		},
		Attitude: model.Attitude{
			Roll:  firstFloat(root, rollAliases),
			Pitch: firstFloat(root, pitchAliases),
			Yaw:   firstFloat(root, yawAliases),
		},
		Battery: model.Battery{
			Voltage:          firstFloat(root, voltageAliases),
			Current:          firstFloat(root, currentAliases),
			RemainingPercent: firstFloat(root, remainingAliases),
		},
		GPS: model.GPS{
			SatelliteCount: firstInt(root, satelliteAliases),
			FixType:        firstInt(root, fixTypeAliases),
			HDOP:           firstFloat(root, hdopAliases),
			EPH:            firstFloat(root, ephAliases),
			EPV:            firstFloat(root, epvAliases),
		},
		Status: model.Status{
			Armed:        firstBool(root, armedAliases),
			Mode:         optionalString(firstString(root, modeAliases)),
			SystemStatus: optionalString(firstString(root, systemStatusAliases)),
		},
		Mission: resolveMission(root),
	}
	return rec, nil
}

// ValidCoordinate reports whether lat/lon describe a usable fix. NaN, infinities,
// the 0,0 null island placeholder and out-of-range values are rejected.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func resolvePosition(root gjson.Result) *model.Position {
	lat := firstFloat(root, latAliases)
	lon := firstFloat(root, lonAliases)
	if lat == nil || lon == nil || !ValidCoordinate(*lat, *lon) {
		return nil
	}
	return &model.Position{
		Lat:         *lat,
		Lon:         *lon,
		Alt:         firstFloat(root, altAliases),
		RelativeAlt: firstFloat(root, relativeAltAliases),
	}
}

func resolveMission(root gjson.Result) *model.Mission {
	m := model.Mission{
		CurrentWaypoint:    firstInt(root, currentWaypointAliases),
		TotalWaypoints:     firstInt(root, totalWaypointsAliases),
		DistanceToWaypoint: firstFloat(root, distanceToWpAliases),
	}
	if m.CurrentWaypoint == nil && m.TotalWaypoints == nil && m.DistanceToWaypoint == nil {
		return nil
	}
	return &m
}

func resolveTimestamp(root gjson.Result, received time.Time) time.Time {
	for _, path := range timestampAliases {
		v := root.Get(path)
		switch v.Type {
		case gjson.Number:
			if ts, ok := epochToTime(v.Num); ok {
				return ts
			}
		case gjson.String:
			if ts, err := time.Parse(time.RFC3339Nano, v.Str); err == nil {
				return ts.UTC()
			}
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64); err == nil {
				if ts, ok := epochToTime(f); ok {
					return ts
				}
			}
		}
	}
	return received.UTC()
}

func epochToTime(v float64) (time.Time, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return time.Time{}, false
	}
	if v >= epochMillisThreshold {
		return time.UnixMilli(int64(v)).UTC(), true
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC(), true
}

// numberOf extracts a finite float from a JSON number or numeric string.
func numberOf(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, !math.IsNaN(v.Num) && !math.IsInf(v.Num, 0)
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		// NaN is passed through for coordinates so ValidCoordinate can reject it;
		// every other consumer treats it as absent.
		return f, !math.IsInf(f, 0)
	}
	return 0, false
}

func firstFloat(root gjson.Result, paths []string) *float64 {
	for _, path := range paths {
		if f, ok := numberOf(root.Get(path)); ok {
			if math.IsNaN(f) && !isCoordinatePath(path) {
				continue
			}
			return &f
		}
	}
	return nil
}

func isCoordinatePath(path string) bool {
	for _, p := range latAliases {
		if p == path {
			return true
		}
	}
	for _, p := range lonAliases {
		if p == path {
			return true
		}
	}
	return false
}

func firstInt(root gjson.Result, paths []string) *int {
	for _, path := range paths {
		if f, ok := numberOf(root.Get(path)); ok && !math.IsNaN(f) {
			n := int(math.Round(f))
			return &n
		}
	}
	return nil
}

func firstBool(root gjson.Result, paths []string) *bool {
	for _, path := range paths {
		v := root.Get(path)
		switch v.Type {
		case gjson.True, gjson.False:
			b := v.Type == gjson.True
			return &b
		case gjson.Number:
			b := v.Num != 0
			return &b
		case gjson.String:
			if b, err := strconv.ParseBool(strings.TrimSpace(v.Str)); err == nil {
				return &b
			}
		}
	}
	return nil
}

func firstString(root gjson.Result, paths []string) string {
	for _, path := range paths {
		v := root.Get(path)
		switch v.Type {
		case gjson.String:
			if s := strings.TrimSpace(v.Str); s != "" {
				return s
			}
		case gjson.Number:
			return v.Raw
		}
	}
	return ""
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
