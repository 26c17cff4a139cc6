package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	Submit          time.Duration // Timeout for the create-instance request
	Provision       time.Duration // Deadline for an instance to reach a terminal state
	PollInterval    time.Duration // First delay between status checks
	PollMaxInterval time.Duration // Cap for the status check backoff
	List            time.Duration // Timeout for a single listing call
	PollMaxChecks   int           // Maximum number of status checks, 0 means until deadline
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - VPCPROV_TIMEOUT_SUBMIT (default: 2m)
//   - VPCPROV_TIMEOUT_PROVISION (default: 30m)
//   - VPCPROV_POLL_INTERVAL (default: 10s)
//   - VPCPROV_POLL_MAX_INTERVAL (default: 1m)
//   - VPCPROV_TIMEOUT_LIST (default: 1m)
//   - VPCPROV_POLL_MAX_CHECKS (default: 0)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Submit:          parseDuration("VPCPROV_TIMEOUT_SUBMIT", 2*time.Minute),
		Provision:       parseDuration("VPCPROV_TIMEOUT_PROVISION", 30*time.Minute),
		PollInterval:    parseDuration("VPCPROV_POLL_INTERVAL", 10*time.Second),
		PollMaxInterval: parseDuration("VPCPROV_POLL_MAX_INTERVAL", time.Minute),
		List:            parseDuration("VPCPROV_TIMEOUT_LIST", time.Minute),
		PollMaxChecks:   parseInt("VPCPROV_POLL_MAX_CHECKS", 0),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
