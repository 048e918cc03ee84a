package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int `validate:"min=1,max=65535"`
	LogLevel         string
	CORSOrigins      []string
	UrgencyWatchSpec string `validate:"required"`
	SeedDemoData     bool

	Kafka     KafkaConfig
	Publish   PublishConfig
	RateLimit RateLimitConfig
	Pprof     PprofConfig
}

// KafkaConfig stores broker settings. Empty brokers disable Kafka.
type KafkaConfig struct {
	Brokers            []string `validate:"omitempty,dive,hostname_port"`
	TripsTopic         string   `validate:"required_with=Brokers"`
	NotificationsTopic string   `validate:"required_with=Brokers"`
	GroupID            string   `validate:"required_with=Brokers"`
}

// Enabled reports whether brokers are configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// PublishConfig stores retry settings for trip event publishing.
type PublishConfig struct {
	MaxAttempts int `validate:"min=1"`
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RateLimitConfig stores per-client token bucket settings.
type RateLimitConfig struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// PprofConfig stores debug server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string `validate:"required_if=Enabled true"`
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	pflag.BoolVar(&cfg.SeedDemoData, "seed-demo", cfg.SeedDemoData, "load demo users, trips and notifications")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:             DefaultPort(),
		LogLevel:         envString("LOG_LEVEL", defaultLogLevel),
		CORSOrigins:      envList("CORS_ORIGINS", DefaultCORSOrigins()),
		UrgencyWatchSpec: envString("URGENCY_WATCH_SPEC", defaultUrgencyWatchSpec),
		Kafka: KafkaConfig{
			Brokers:            envList("KAFKA_BROKERS", nil),
			TripsTopic:         envString("KAFKA_TRIPS_TOPIC", defaultTripsTopic),
			NotificationsTopic: envString("KAFKA_NOTIFICATIONS_TOPIC", defaultNotificationsTopic),
			GroupID:            envString("KAFKA_GROUP_ID", defaultGroupID),
		},
		Publish:   DefaultPublish(),
		RateLimit: DefaultRateLimit(),
		Pprof: PprofConfig{
			Addr: envString("PPROF_ADDR", defaultPprofAddr),
			User: os.Getenv("PPROF_USER"),
			Pass: os.Getenv("PPROF_PASS"),
		},
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.SeedDemoData, err = envBool("SEED_DEMO_DATA", true); err != nil {
		return nil, err
	}
	if cfg.Publish.MaxAttempts, err = envInt("PUBLISH_MAX_ATTEMPTS", cfg.Publish.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.Publish.BaseDelay, err = envDuration("PUBLISH_BASE_DELAY", cfg.Publish.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.Publish.MaxDelay, err = envDuration("PUBLISH_MAX_DELAY", cfg.Publish.MaxDelay); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}
	if cfg.RateLimit.TTL, err = envDuration("RATE_LIMIT_TTL", cfg.RateLimit.TTL); err != nil {
		return nil, err
	}
	if cfg.RateLimit.MaxBuckets, err = envInt("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets); err != nil {
		return nil, err
	}
	if cfg.Pprof.Enabled, err = envBool("PPROF_ENABLED", false); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(rateLimitRules, RateLimitConfig{})
	return v
}

// rateLimitRules checks bucket settings only when the limiter is on.
func rateLimitRules(sl validator.StructLevel) {
	rl := sl.Current().Interface().(RateLimitConfig)
	if !rl.Enabled {
		return
	}
	if rl.Rate <= 0 {
		sl.ReportError(rl.Rate, "Rate", "Rate", "gt", "0")
	}
	if rl.Burst <= 0 {
		sl.ReportError(rl.Burst, "Burst", "Burst", "gt", "0")
	}
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
