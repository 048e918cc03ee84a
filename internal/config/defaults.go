package config

import "time"

const (
	defaultPort               = 8080
	defaultLogLevel           = "info"
	defaultUrgencyWatchSpec   = "@every 1m"
	defaultTripsTopic         = "trips.posted"
	defaultNotificationsTopic = "notifications"
	defaultGroupID            = "getmystuff-notifications"
	defaultPprofAddr          = "127.0.0.1:6060"
)

var defaultCORSOrigins = []string{"http://localhost:3000"}

var defaultPublish = PublishConfig{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultRateLimit = RateLimitConfig{
	Enabled:    true,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultCORSOrigins returns the origins allowed when CORS_ORIGINS is unset.
func DefaultCORSOrigins() []string {
	return append([]string(nil), defaultCORSOrigins...)
}

// DefaultPublish returns the default trip event retry settings.
func DefaultPublish() PublishConfig {
	return defaultPublish
}

// DefaultRateLimit returns the default rate limit settings.
func DefaultRateLimit() RateLimitConfig {
	return defaultRateLimit
}
