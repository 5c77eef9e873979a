package internal

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	DEFAULT_BASE_URL         = "http://localhost:5000"
	DEFAULT_HEALTH_CACHE_TTL = 5 * time.Second
	DEFAULT_SYNC_SCHEDULE    = "*/15 * * * *" // Every 15 minutes
)

type Config struct {
	BaseURL          string
	RequestTimeout   time.Duration
	SerializeRefresh bool
	HealthCacheTTL   time.Duration
	SyncSchedule     string
}

// LoadConfig reads MEDEVENTS_* environment variables, falling back to
// defaults for anything unset or unparseable.
func LoadConfig() Config {
	return Config{
		BaseURL:          getString("MEDEVENTS_BASE_URL", DEFAULT_BASE_URL),
		RequestTimeout:   getDuration("MEDEVENTS_REQUEST_TIMEOUT", 0),
		SerializeRefresh: getBool("MEDEVENTS_SERIALIZE_REFRESH", false),
		HealthCacheTTL:   getDuration("MEDEVENTS_HEALTH_CACHE_TTL", DEFAULT_HEALTH_CACHE_TTL),
		SyncSchedule:     getString("MEDEVENTS_SYNC_SCHEDULE", DEFAULT_SYNC_SCHEDULE),
	}
}

func getString(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	return value
}

func getBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("ignoring invalid %s=%q: %v", key, value, err)
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		log.Printf("ignoring invalid %s=%q", key, value)
		return defaultValue
	}
	return d
}
