package normalizer

// Alias lists are ordered by priority: the first path that yields a usable value
// wins. Paths use gjson syntax, so "battery.remaining" reads a nested field.
var (
	latAliases = []string{"lat", "latitude", "position.lat", "position.latitude"}
	lonAliases = []string{"lon", "lng", "longitude", "position.lon", "position.lng", "position.longitude"}
	altAliases = []string{"alt", "altitude", "position.alt", "position.altitude"}

	relativeAltAliases = []string{
		"relative_alt", "relativeAlt", "relative_altitude",
		"position.relative_alt", "position.relativeAlt",
	}

	vxAliases          = []string{"vx", "velocity.vx"}
	vyAliases          = []string{"vy", "velocity.vy"}
	vzAliases          = []string{"vz", "velocity.vz"}
	groundSpeedAliases = []string{
		"ground_speed", "groundSpeed", "groundspeed",
		"velocity.ground_speed", "velocity.groundSpeed", "speed",
	}

	rollAliases  = []string{"roll", "attitude.roll"}
	pitchAliases = []string{"pitch", "attitude.pitch"}
	yawAliases   = []string{"yaw", "attitude.yaw", "heading"}

	voltageAliases = []string{"battery.voltage", "battery_voltage", "voltage"}
	currentAliases = []string{"battery.current", "battery_current", "current"}
	// "battery" last: some producers send the remaining percentage as a bare number.
	remainingAliases = []string{
		"battery.remaining_percent", "battery.remainingPercent",
		"battery.remaining", "battery.level",
		"battery_remaining", "battery_level", "battery",
	}

	satelliteAliases = []string{
		"gps.satellites_visible", "gps.num_satellites", "gps.satellites",
		"satellites_visible", "num_satellites", "satellites",
	}
	fixTypeAliases = []string{"gps.fix_type", "gps.fixType", "fix_type", "fixType"}
	hdopAliases    = []string{"gps.hdop", "hdop"}
	ephAliases     = []string{"gps.eph", "eph"}
	epvAliases     = []string{"gps.epv", "epv"}

	armedAliases        = []string{"armed", "status.armed"}
	modeAliases         = []string{"mode", "flight_mode", "status.mode"}
	systemStatusAliases = []string{
		"system_status", "systemStatus", "status.system_status", "status.systemStatus",
	}

	currentWaypointAliases = []string{"mission.current_waypoint", "mission.currentWaypoint", "current_waypoint"}
	totalWaypointsAliases  = []string{"mission.total_waypoints", "mission.totalWaypoints", "total_waypoints"}
	distanceToWpAliases    = []string{"mission.distance_to_waypoint", "mission.distanceToWaypoint", "distance_to_waypoint"}

	vehicleIDAliases = []string{"vehicle_id", "vehicleId", "vehicleID", "drone_id", "id"}
	timestampAliases = []string{"timestamp", "time"}
)
