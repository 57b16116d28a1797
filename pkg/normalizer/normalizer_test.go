package normalizer

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNormalize_AliasResolutionGivesIdenticalPosition(t *testing.T) {
	short, err := NormalizeAt([]byte(`{"lat":12.5,"lon":77.6}`), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	long, err := NormalizeAt([]byte(`{"latitude":12.5,"longitude":77.6}`), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if short.Position == nil || long.Position == nil {
		t.Fatalf("expected both positions present, got %+v and %+v", short.Position, long.Position)
	}
	if !reflect.DeepEqual(short.Position, long.Position) {
		t.Errorf("expected identical positions, got %+v and %+v", *short.Position, *long.Position)
	}
	if short.Position.Lat != 12.5 || short.Position.Lon != 77.6 {
		t.Errorf("unexpected coordinates %+v", *short.Position)
	}
}

func TestNormalize_LongitudeAliases(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  float64
	}{
		{"lon", `{"lat":10,"lon":20}`, 20},
		{"lng", `{"lat":10,"lng":21}`, 21},
		{"longitude", `{"lat":10,"longitude":22}`, 22},
		{"nested", `{"position":{"lat":10,"lng":23}}`, 23},
		{"lon wins over lng", `{"lat":10,"lon":24,"lng":99}`, 24},
		{"lat wins over latitude", `{"lat":10,"latitude":50,"lon":25}`, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NormalizeAt([]byte(tt.frame), fixedNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Position == nil {
				t.Fatal("expected position")
			}
			if rec.Position.Lat != 10 || rec.Position.Lon != tt.want {
				t.Errorf("expected 10,%v got %v,%v", tt.want, rec.Position.Lat, rec.Position.Lon)
			}
		})
	}
}

func TestNormalize_InvalidCoordinatesYieldAbsentPosition(t *testing.T) {
	frames := map[string]string{
		"null island":      `{"lat":0,"lon":0}`,
		"lat out of range": `{"lat":95,"lon":10}`,
		"lon out of range": `{"lat":45,"lon":-181}`,
		"nan string":       `{"lat":"NaN","lon":10}`,
		"missing lon":      `{"lat":45}`,
		"non numeric":      `{"lat":"north","lon":10}`,
		"no coordinates":   `{"alt":100}`,
	}
	for name, frame := range frames {
		t.Run(name, func(t *testing.T) {
			rec, err := NormalizeAt([]byte(frame), fixedNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Position != nil {
				t.Errorf("expected absent position, got %+v", *rec.Position)
			}
		})
	}
}

func TestNormalize_EndToEndFrame(t *testing.T) {
	rec, err := NormalizeAt([]byte(`{"lat":26.85,"lon":80.95,"alt":120,"battery":{"remaining":45}}`), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Position == nil {
		t.Fatal("expected position")
	}
	if rec.Position.Lat != 26.85 || rec.Position.Lon != 80.95 {
		t.Errorf("unexpected coordinates %+v", *rec.Position)
	}
	if rec.Position.Alt == nil || *rec.Position.Alt != 120 {
		t.Errorf("expected alt 120, got %v", rec.Position.Alt)
	}
	if rec.Position.RelativeAlt != nil {
		t.Errorf("expected relative alt absent, got %v", *rec.Position.RelativeAlt)
	}
	if rec.Battery.RemainingPercent == nil || *rec.Battery.RemainingPercent != 45 {
		t.Fatalf("expected remaining 45, got %v", rec.Battery.RemainingPercent)
	}
	if got := BatteryLevel(rec.Battery.RemainingPercent); got != LevelCaution {
		t.Errorf("expected caution, got %s", got)
	}
	if !rec.Timestamp.Equal(fixedNow) {
		t.Errorf("expected receive time as timestamp, got %v", rec.Timestamp)
	}
}

func TestNormalize_BatteryRemainingPrefersMostSpecific(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  float64
	}{
		{"remaining", `{"battery":{"remaining":45}}`, 45},
		{"level", `{"battery":{"level":30}}`, 30},
		{"remaining over level", `{"battery":{"remaining":45,"level":30}}`, 45},
		{"percent over remaining", `{"battery":{"remaining_percent":80,"remaining":45}}`, 80},
		{"flat", `{"battery_remaining":12}`, 12},
		{"bare number", `{"battery":67}`, 67},
		{"numeric string", `{"battery":{"remaining":"55.5"}}`, 55.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NormalizeAt([]byte(tt.frame), fixedNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Battery.RemainingPercent == nil || *rec.Battery.RemainingPercent != tt.want {
				t.Errorf("expected %v, got %v", tt.want, rec.Battery.RemainingPercent)
			}
		})
	}
}

func TestNormalize_SatelliteAliases(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  int
	}{
		{"satellites", `{"satellites":7}`, 7},
		{"num_satellites", `{"num_satellites":8}`, 8},
		{"satellites_visible", `{"satellites_visible":9}`, 9},
		{"visible preferred", `{"satellites":1,"num_satellites":2,"satellites_visible":11}`, 11},
		{"nested gps wins", `{"gps":{"satellites":12},"satellites_visible":3}`, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NormalizeAt([]byte(tt.frame), fixedNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.GPS.SatelliteCount == nil || *rec.GPS.SatelliteCount != tt.want {
				t.Errorf("expected %d, got %v", tt.want, rec.GPS.SatelliteCount)
			}
		})
	}
}

func TestNormalize_FullFrame(t *testing.T) {
	frame := `{
		"vehicle_id": "uav-7",
		"timestamp": 1767225600000,
		"position": {"lat": 26.85, "lon": 80.95, "alt": 150.5, "relative_alt": 42},
		"velocity": {"vx": 1.5, "vy": -0.5, "vz": 0.1, "ground_speed": 12.3},
		"attitude": {"roll": 1, "pitch": -2, "yaw": 270},
		"battery": {"voltage": 22.4, "current": 11.2, "remaining": 76},
		"gps": {"fix_type": 3, "satellites_visible": 14, "hdop": 0.8, "eph": 70, "epv": 110},
		"armed": true,
		"mode": "AUTO.MISSION",
		"system_status": "ACTIVE",
		"mission": {"current_waypoint": 3, "total_waypoints": 9, "distance_to_waypoint": 120.5}
	}`
	rec, err := NormalizeAt([]byte(frame), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.VehicleID != "uav-7" {
		t.Errorf("expected vehicle uav-7, got %q", rec.VehicleID)
	}
	if want := time.UnixMilli(1767225600000).UTC(); !rec.Timestamp.Equal(want) {
		t.Errorf("expected timestamp %v, got %v", want, rec.Timestamp)
	}
	if rec.Position == nil || rec.Position.RelativeAlt == nil || *rec.Position.RelativeAlt != 42 {
		t.Errorf("expected relative alt 42, got %+v", rec.Position)
	}
	if rec.Velocity.GroundSpeed == nil || *rec.Velocity.GroundSpeed != 12.3 {
		t.Errorf("expected ground speed 12.3, got %v", rec.Velocity.GroundSpeed)
	}
	if rec.Attitude.Yaw == nil || *rec.Attitude.Yaw != 270 {
		t.Errorf("expected yaw 270, got %v", rec.Attitude.Yaw)
	}
	if rec.Battery.Voltage == nil || *rec.Battery.Voltage != 22.4 {
		t.Errorf("expected voltage 22.4, got %v", rec.Battery.Voltage)
	}
	if rec.GPS.FixType == nil || *rec.GPS.FixType != 3 {
		t.Errorf("expected fix 3, got %v", rec.GPS.FixType)
	}
	if rec.GPS.HDOP == nil || *rec.GPS.HDOP != 0.8 {
		t.Errorf("expected hdop 0.8, got %v", rec.GPS.HDOP)
	}
	if rec.Status.Armed == nil || !*rec.Status.Armed {
		t.Errorf("expected armed, got %v", rec.Status.Armed)
	}
	if rec.Status.Mode == nil || *rec.Status.Mode != "AUTO.MISSION" {
		t.Errorf("expected mode AUTO.MISSION, got %v", rec.Status.Mode)
	}
	if rec.Status.SystemStatus == nil || *rec.Status.SystemStatus != "ACTIVE" {
		t.Errorf("expected system status ACTIVE, got %v", rec.Status.SystemStatus)
	}
	if rec.Mission == nil || rec.Mission.TotalWaypoints == nil || *rec.Mission.TotalWaypoints != 9 {
		t.Errorf("expected mission with 9 waypoints, got %+v", rec.Mission)
	}
}

func TestNormalize_MissingFieldsAreAbsent(t *testing.T) {
	rec, err := NormalizeAt([]byte(`{}`), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Position != nil || rec.Mission != nil {
		t.Errorf("expected nil position and mission, got %+v %+v", rec.Position, rec.Mission)
	}
	if rec.Battery.RemainingPercent != nil || rec.GPS.FixType != nil || rec.Status.Armed != nil || rec.Status.Mode != nil {
		t.Errorf("expected absent optional fields, got %+v", rec)
	}
	if rec.VehicleID != "" {
		t.Errorf("expected empty vehicle id, got %q", rec.VehicleID)
	}
}

func TestNormalize_OddTypesNeverFail(t *testing.T) {
	frame := `{"lat":[1,2],"lon":{"x":1},"battery":"full","armed":"maybe","gps":null,"mode":false}`
	rec, err := NormalizeAt([]byte(frame), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Position != nil || rec.Battery.RemainingPercent != nil || rec.Status.Armed != nil || rec.Status.Mode != nil {
		t.Errorf("expected odd-typed fields treated as absent, got %+v", rec)
	}
}

func TestNormalize_MalformedFrames(t *testing.T) {
	frames := []string{``, `{"lat":`, `not json`, `[1,2,3]`, `42`, `"text"`}
	for _, frame := range frames {
		_, err := NormalizeAt([]byte(frame), fixedNow)
		if err == nil {
			t.Errorf("expected error for %q", frame)
			continue
		}
		if !errors.Is(err, ErrMalformedFrame) {
			t.Errorf("expected ErrMalformedFrame for %q, got %v", frame, err)
		}
	}
}

func TestNormalize_Timestamps(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  time.Time
	}{
		{"epoch millis", `{"timestamp":1767225600123}`, time.UnixMilli(1767225600123).UTC()},
		{"epoch seconds", `{"timestamp":1767225600}`, time.Unix(1767225600, 0).UTC()},
		{"rfc3339", `{"timestamp":"2026-01-01T00:00:00Z"}`, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"numeric string", `{"time":"1767225600"}`, time.Unix(1767225600, 0).UTC()},
		{"garbage falls back", `{"timestamp":"yesterday"}`, fixedNow},
		{"negative falls back", `{"timestamp":-5}`, fixedNow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NormalizeAt([]byte(tt.frame), fixedNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !rec.Timestamp.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, rec.Timestamp)
			}
		})
	}
}

func TestNormalize_ArmedEncodings(t *testing.T) {
	tests := []struct {
		frame string
		want  bool
	}{
		{`{"armed":true}`, true},
		{`{"armed":0}`, false},
		{`{"armed":1}`, true},
		{`{"armed":"false"}`, false},
		{`{"status":{"armed":true}}`, true},
	}
	for _, tt := range tests {
		rec, err := NormalizeAt([]byte(tt.frame), fixedNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Status.Armed == nil || *rec.Status.Armed != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.frame, tt.want, rec.Status.Armed)
		}
	}
}

func TestNormalize_IsIdempotentAcrossCalls(t *testing.T) {
	frame := []byte(`{"lat":12.5,"lon":77.6,"battery":{"level":19}}`)
	a, _ := NormalizeAt(frame, fixedNow)
	b, _ := NormalizeAt(frame, fixedNow)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("expected identical records, got %+v and %+v", a, b)
	}
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		lat, lon float64
		want     bool
	}{
		{12.5, 77.6, true},
		{-90, -180, true},
		{90, 180, true},
		{0, 10, true},
		{0, 0, false},
		{90.0001, 0, false},
		{0, 180.5, false},
		{math.NaN(), 1, false},
		{1, math.Inf(1), false},
	}
	for _, tt := range tests {
		if got := ValidCoordinate(tt.lat, tt.lon); got != tt.want {
			t.Errorf("ValidCoordinate(%v,%v) = %v, want %v", tt.lat, tt.lon, got, tt.want)
		}
	}
}
