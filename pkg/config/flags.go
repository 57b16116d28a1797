package config

import (
	"flag"
	"fmt"
)

// parseCLIFlags parses command-line flags and returns a FlagSource and help flag
func parseCLIFlags() (*FlagSource, bool) {
	flagSource := NewFlagSource()

	// Define CLI flags
	telemetryWSURL := flag.String(FlagTelemetryWSURL, "", HelpTelemetryWSURL)
	apiBaseURL := flag.String(FlagAPIBaseURL, "", HelpAPIBaseURL)
	reconnectMaxAttempts := flag.Int(FlagReconnectMaxAttempts, 0, HelpReconnectMaxAttempts)
	reconnectBaseDelayMs := flag.Int(FlagReconnectBaseDelayMs, 0, HelpReconnectBaseDelayMs)
	reconnectCapFactor := flag.Int(FlagReconnectCapFactor, 0, HelpReconnectCapFactor)
	readTimeoutSeconds := flag.Int(FlagStreamReadTimeoutSeconds, 0, HelpStreamReadTimeoutSeconds)
	pingIntervalSeconds := flag.Int(FlagStreamPingIntervalSeconds, 0, HelpStreamPingIntervalSeconds)
	metricsAddr := flag.String(FlagMetricsAddr, "", HelpMetricsAddr)
	recordDBPath := flag.String(FlagRecordDBPath, "", HelpRecordDBPath)
	recordJSONLPath := flag.String(FlagRecordJSONLPath, "", HelpRecordJSONLPath)
	vehicleID := flag.String(FlagVehicleID, "", HelpVehicleID)
	statusIntervalSeconds := flag.Int(FlagStatusIntervalSeconds, 0, HelpStatusIntervalSeconds)
	configFile := flag.String(FlagConfigFile, "", HelpConfigFile)
	help := flag.Bool(FlagHelp, false, HelpShowHelp)

	flag.Parse()

	if *help {
		return flagSource, true
	}

	// Store non-zero/non-empty values in flag source
	setString := func(key, value string) {
		if value != "" {
			flagSource.Set(key, value)
		}
	}
	setInt := func(key string, value int) {
		if value != 0 {
			flagSource.Set(key, value)
		}
	}

	setString(KeyTelemetryWSURL, *telemetryWSURL)
	setString(KeyAPIBaseURL, *apiBaseURL)
	setInt(KeyReconnectMaxAttempts, *reconnectMaxAttempts)
	setInt(KeyReconnectBaseDelayMs, *reconnectBaseDelayMs)
	setInt(KeyReconnectCapFactor, *reconnectCapFactor)
	setInt(KeyStreamReadTimeoutSeconds, *readTimeoutSeconds)
	setInt(KeyStreamPingIntervalSeconds, *pingIntervalSeconds)
	setString(KeyMetricsAddr, *metricsAddr)
	setString(KeyRecordDBPath, *recordDBPath)
	setString(KeyRecordJSONLPath, *recordJSONLPath)
	setString(KeyVehicleID, *vehicleID)
	setInt(KeyStatusIntervalSeconds, *statusIntervalSeconds)
	setString(KeyConfigFile, *configFile)

	return flagSource, false
}

// printUsage prints the usage message
func printUsage() {
	fmt.Printf("%s - %s\n", AppName, AppDescription)
	fmt.Println()
	fmt.Printf("%s\n", HelpUsage)
	fmt.Printf("  %s\n", UsageFormat)
	fmt.Println()
	fmt.Printf("%s\n", HelpOptions)
	fmt.Printf("  --%-36s %s (default: %s)\n", FlagTelemetryWSURL+" string", HelpTelemetryWSURL, DefaultTelemetryWSURL)
	fmt.Printf("  --%-36s %s (default: %s)\n", FlagAPIBaseURL+" string", HelpAPIBaseURL, DefaultAPIBaseURL)
	fmt.Printf("  --%-36s %s (default: %d)\n", FlagReconnectMaxAttempts+" int", HelpReconnectMaxAttempts, DefaultReconnectMaxAttempts)
	fmt.Printf("  --%-36s %s (default: %d)\n", FlagReconnectBaseDelayMs+" int", HelpReconnectBaseDelayMs, DefaultReconnectBaseDelayMs)
	fmt.Printf("  --%-36s %s (default: %d)\n", FlagReconnectCapFactor+" int", HelpReconnectCapFactor, DefaultReconnectCapFactor)
	fmt.Printf("  --%-36s %s\n", FlagStreamReadTimeoutSeconds+" int", HelpStreamReadTimeoutSeconds)
	fmt.Printf("  --%-36s %s\n", FlagStreamPingIntervalSeconds+" int", HelpStreamPingIntervalSeconds)
	fmt.Printf("  --%-36s %s\n", FlagMetricsAddr+" string", HelpMetricsAddr)
	fmt.Printf("  --%-36s %s\n", FlagRecordDBPath+" string", HelpRecordDBPath)
	fmt.Printf("  --%-36s %s\n", FlagRecordJSONLPath+" string", HelpRecordJSONLPath)
	fmt.Printf("  --%-36s %s\n", FlagVehicleID+" string", HelpVehicleID)
	fmt.Printf("  --%-36s %s (default: %d)\n", FlagStatusIntervalSeconds+" int", HelpStatusIntervalSeconds, DefaultStatusIntervalSeconds)
	fmt.Printf("  --%-36s %s\n", FlagConfigFile+" string", HelpConfigFile)
	fmt.Printf("  --%-36s %s\n", FlagHelp, HelpShowHelp)
	fmt.Println()
	fmt.Printf("%s\n", HelpEnvironmentVars)
	fmt.Printf("  %-36s %s\n", KeyTelemetryWSURL, EnvDescTelemetryWSURL)
	fmt.Printf("  %-36s %s\n", KeyAPIBaseURL, EnvDescAPIBaseURL)
	fmt.Printf("  %-36s %s\n", KeyReconnectMaxAttempts, EnvDescReconnectMaxAttempts)
	fmt.Printf("  %-36s %s\n", KeyReconnectBaseDelayMs, EnvDescReconnectBaseDelayMs)
	fmt.Printf("  %-36s %s\n", KeyReconnectCapFactor, EnvDescReconnectCapFactor)
	fmt.Printf("  %-36s %s\n", KeyStreamReadTimeoutSeconds, EnvDescStreamReadTimeoutSeconds)
	fmt.Printf("  %-36s %s\n", KeyStreamPingIntervalSeconds, EnvDescStreamPingIntervalSeconds)
	fmt.Printf("  %-36s %s\n", KeyMetricsAddr, EnvDescMetricsAddr)
	fmt.Printf("  %-36s %s\n", KeyRecordDBPath, EnvDescRecordDBPath)
	fmt.Printf("  %-36s %s\n", KeyRecordJSONLPath, EnvDescRecordJSONLPath)
	fmt.Printf("  %-36s %s\n", KeyVehicleID, EnvDescVehicleID)
	fmt.Printf("  %-36s %s\n", KeyStatusIntervalSeconds, EnvDescStatusIntervalSeconds)
	fmt.Printf("  %-36s %s\n", KeyConfigFile, EnvDescConfigFile)
	fmt.Println()
	fmt.Printf("%s\n", HelpNote)
}
