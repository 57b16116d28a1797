package normalizer

import (
	"fmt"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
)

// FixType mirrors MAVLink GPS_FIX_TYPE.
type FixType int

const (
	FixNoGPS FixType = iota
	FixNone
	Fix2D
	Fix3D
	FixDGPS
	FixRTKFloat
	FixRTKFixed
	FixStatic
	FixPPP
)

func (f FixType) String() string {
	switch f {
	case FixNoGPS:
		return "No GPS"
	case FixNone:
		return "No Fix"
	case Fix2D:
		return "2D Fix"
	case Fix3D:
		return "3D Fix"
	case FixDGPS:
		return "DGPS"
	case FixRTKFloat:
		return "RTK Float"
	case FixRTKFixed:
		return "RTK Fixed"
	case FixStatic:
		return "Static"
	case FixPPP:
		return "PPP"
	default:
		return fmt.Sprintf("Unknown (%d)", int(f))
	}
}

// FixLabel returns the display label for an optional fix code.
func FixLabel(code *int) string {
	if code == nil {
		return "Unknown"
	}
	return FixType(*code).String()
}

// Level is the alerting bucket shared by battery, GPS and link displays.
type Level int

const (
	LevelUnknown Level = iota
	LevelNominal
	LevelCaution
	LevelCritical
)

func (l Level) String() string {
	switch l {
	case LevelNominal:
		return "nominal"
	case LevelCaution:
		return "caution"
	case LevelCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Color is the status color every display uses for the level.
func (l Level) Color() string {
	switch l {
	case LevelNominal:
		return "green"
	case LevelCaution:
		return "amber"
	case LevelCritical:
		return "red"
	default:
		return "gray"
	}
}

// Battery and GPS thresholds.
const (
	BatteryNominalAbove  = 50.0
	BatteryCriticalBelow = 20.0
	MinNominalSatellites = 6

	flyingRelativeAltMeters = 1.0
	flyingGroundSpeedMS     = 0.5
)

// BatteryLevel buckets a remaining percentage: above 50 nominal, 20 to 50
// inclusive caution, below 20 critical.
func BatteryLevel(remaining *float64) Level {
	if remaining == nil {
		return LevelUnknown
	}
	switch pct := *remaining; {
	case pct > BatteryNominalAbove:
		return LevelNominal
	case pct >= BatteryCriticalBelow:
		return LevelCaution
	default:
		return LevelCritical
	}
}

// GPSLevel buckets fix quality together with the visible satellite count.
func GPSLevel(gps model.GPS) Level {
	if gps.FixType == nil {
		return LevelUnknown
	}
	fix := FixType(*gps.FixType)
	switch {
	case fix < Fix2D:
		return LevelCritical
	case fix == Fix2D:
		return LevelCaution
	case gps.SatelliteCount != nil && *gps.SatelliteCount < MinNominalSatellites:
		return LevelCaution
	default:
		return LevelNominal
	}
}

// ArmedLabel is the display string for the arming state.
func ArmedLabel(status model.Status) string {
	if status.Armed == nil {
		return "UNKNOWN"
	}
	if *status.Armed {
		return "ARMED"
	}
	return "DISARMED"
}

// IsFlying reports an armed vehicle that is off the ground or moving.
func IsFlying(rec model.TelemetryRecord) bool {
	if rec.Status.Armed == nil || !*rec.Status.Armed {
		return false
	}
	if rec.Position != nil && rec.Position.RelativeAlt != nil && *rec.Position.RelativeAlt > flyingRelativeAltMeters {
		return true
	}
	return rec.Velocity.GroundSpeed != nil && *rec.Velocity.GroundSpeed > flyingGroundSpeedMS
}

// Assessment bundles the derived classifications for one record.
type Assessment struct {
	Battery  Level
	GPS      Level
	FixLabel string
	Armed    string
	Flying   bool
}

// Assess derives every classification for rec.
func Assess(rec model.TelemetryRecord) Assessment {
	return Assessment{
		Battery:  BatteryLevel(rec.Battery.RemainingPercent),
		GPS:      GPSLevel(rec.GPS),
		FixLabel: FixLabel(rec.GPS.FixType),
		Armed:    ArmedLabel(rec.Status),
		Flying:   IsFlying(rec),
	}
}

// Worst returns the most severe of the assessment's levels.
func (a Assessment) Worst() Level {
	worst := a.Battery
	if a.GPS > worst {
		worst = a.GPS
	}
	return worst
}
