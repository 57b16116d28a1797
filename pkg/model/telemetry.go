// Package model defines the canonical telemetry record handed to stream subscribers.
package model

import "time"

// TelemetryRecord is one decoded vehicle snapshot. Every optional value is a
// pointer; nil means the frame did not carry it.
type TelemetryRecord struct {
	Timestamp time.Time `json:"timestamp"`
	VehicleID string    `json:"vehicleId,omitempty"`
	Position  *Position `json:"position,omitempty"`
	Velocity  Velocity  `json:"velocity"`
	Attitude  Attitude  `json:"attitude"`
	Battery   Battery   `json:"battery"`
	GPS       GPS       `json:"gps"`
	Status    Status    `json:"status"`
	Mission   *Mission  `json:"mission,omitempty"`
}

// Position is only present when both coordinates passed validation.
type Position struct {
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	Alt         *float64 `json:"alt,omitempty"`         // meters AMSL
	RelativeAlt *float64 `json:"relativeAlt,omitempty"` // meters above home
}

type Velocity struct {
	VX          *float64 `json:"vx,omitempty"` // m/s
	VY          *float64 `json:"vy,omitempty"`
	VZ          *float64 `json:"vz,omitempty"`
	GroundSpeed *float64 `json:"groundSpeed,omitempty"`
}

// Attitude angles in degrees.
type Attitude struct {
	Roll  *float64 `json:"roll,omitempty"`
	Pitch *float64 `json:"pitch,omitempty"`
	Yaw   *float64 `json:"yaw,omitempty"`
}

type Battery struct {
	Voltage          *float64 `json:"voltage,omitempty"`
	Current          *float64 `json:"current,omitempty"`
	RemainingPercent *float64 `json:"remainingPercent,omitempty"`
}

type GPS struct {
	SatelliteCount *int     `json:"satelliteCount,omitempty"`
	FixType        *int     `json:"fixType,omitempty"` // MAVLink GPS_FIX_TYPE
	HDOP           *float64 `json:"hdop,omitempty"`
	EPH            *float64 `json:"eph,omitempty"`
	EPV            *float64 `json:"epv,omitempty"`
}

type Status struct {
	Armed        *bool   `json:"armed,omitempty"`
	Mode         *string `json:"mode,omitempty"`
	SystemStatus *string `json:"systemStatus,omitempty"`
}

type Mission struct {
	CurrentWaypoint    *int     `json:"currentWaypoint,omitempty"`
	TotalWaypoints     *int     `json:"totalWaypoints,omitempty"`
	DistanceToWaypoint *float64 `json:"distanceToWaypoint,omitempty"`
}

// HasPosition reports whether the record carries a validated fix.
func (r TelemetryRecord) HasPosition() bool { return r.Position != nil }

// Float returns a pointer to v. Handy for building records in tests and fixtures.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
