package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Telephony    TelephonyConfig
	Agent        AgentConfig
	Directory    DirectoryConfig
	Notification NotificationConfig
	Calls        CallsConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	RateLimit    RateLimitConfig
	Payments     PaymentsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	// PublicHost overrides the request host when building stream URLs (e.g. behind a tunnel)
	PublicHost string
	// AllowedOrigins lists the browser origins allowed by CORS
	AllowedOrigins []string
	// BehindCloudFront trusts the CloudFront-Viewer-Address header for the client IP
	BehindCloudFront bool
	// TrustedProxies may set X-Forwarded-For; empty trusts none
	TrustedProxies []string
}

// TelephonyConfig holds Twilio credentials and the caller id used for outbound calls
type TelephonyConfig struct {
	AccountSID  string
	AuthToken   string
	PhoneNumber string
}

// AgentConfig holds conversational AI agent settings
type AgentConfig struct {
	APIKey  string
	AgentID string
	BaseURL string
}

// DirectoryConfig holds the caller lookup endpoint
type DirectoryConfig struct {
	CheckURL string
	// CacheTTL lets the media stream reuse the webhook's lookup; zero disables caching
	CacheTTL time.Duration
}

// NotificationConfig holds the call-summary webhook settings
type NotificationConfig struct {
	InboundURL  string
	OutboundURL string
	AuthToken   string
	// AuthScheme prefixes the token in the Authorization header; empty sends the raw token
	AuthScheme string
}

// CallsConfig holds per-call timing settings
type CallsConfig struct {
	CloseGrace    time.Duration
	NotifyTimeout time.Duration
	LookupTimeout time.Duration
	RecordTTL     time.Duration
	// RecordSaveTimeout bounds each write to the retained record store
	RecordSaveTimeout time.Duration
}

// RedisConfig holds Redis connection settings for the retained record store
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// KafkaConfig holds call lifecycle event streaming configuration
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// RateLimitConfig bounds how often one client may place calls or send SMS
type RateLimitConfig struct {
	OutboundPerMinute int
	MessagesPerMinute int
}

// PaymentsConfig holds Stripe keys for debtor payment links
type PaymentsConfig struct {
	LiveKey string
	TestKey string
	// RedirectURL is where the payer lands after checkout; empty keeps Stripe's confirmation page
	RedirectURL string
}

// Enabled reports whether at least one Stripe key is configured
func (p PaymentsConfig) Enabled() bool {
	return p.LiveKey != "" || p.TestKey != ""
}

// Enabled reports whether lifecycle events should be published
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	return FromEnv()
}

// FromEnv builds the configuration from the current process environment
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	// Server configuration
	serverPort := getEnvWithDefault("SERVER_PORT", "8000")
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.PublicHost = os.Getenv("PUBLIC_HOST")
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = strings.Split(origins, ",")
	}
	cfg.Server.BehindCloudFront = getEnvWithDefault("BEHIND_CLOUDFRONT", "false") == "true"
	if proxies := os.Getenv("TRUSTED_PROXIES"); proxies != "" {
		cfg.Server.TrustedProxies = strings.Split(proxies, ",")
	}

	// Telephony configuration
	if cfg.Telephony.AccountSID, err = requireEnv("TWILIO_ACCOUNT_SID"); err != nil {
		return nil, err
	}
	if cfg.Telephony.AuthToken, err = requireEnv("TWILIO_AUTH_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.Telephony.PhoneNumber, err = requireEnv("TWILIO_PHONE_NUMBER"); err != nil {
		return nil, err
	}

	// Agent configuration
	if cfg.Agent.APIKey, err = requireEnv("ELEVENLABS_API_KEY"); err != nil {
		return nil, err
	}
	if cfg.Agent.AgentID, err = requireEnv("ELEVENLABS_AGENT_ID"); err != nil {
		return nil, err
	}
	cfg.Agent.BaseURL = getEnvWithDefault("ELEVENLABS_API_URL", "https://api.elevenlabs.io")

	// Directory configuration
	if cfg.Directory.CheckURL, err = requireEnv("DIRECTORY_CHECK_URL"); err != nil {
		return nil, err
	}
	if cfg.Directory.CacheTTL, err = parseDuration("DIRECTORY_CACHE_TTL", "30s"); err != nil {
		return nil, err
	}

	// Notification configuration
	if cfg.Notification.InboundURL, err = requireEnv("NOTIFY_INBOUND_URL"); err != nil {
		return nil, err
	}
	if cfg.Notification.OutboundURL, err = requireEnv("NOTIFY_OUTBOUND_URL"); err != nil {
		return nil, err
	}
	if cfg.Notification.AuthToken, err = requireEnv("NOTIFY_AUTH_TOKEN"); err != nil {
		return nil, err
	}
	cfg.Notification.AuthScheme = getEnvWithDefault("NOTIFY_AUTH_SCHEME", "Bearer")

	// Call timing configuration
	if cfg.Calls.CloseGrace, err = parseDuration("CALL_CLOSE_GRACE", "1s"); err != nil {
		return nil, err
	}
	if cfg.Calls.NotifyTimeout, err = parseDuration("NOTIFY_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Calls.LookupTimeout, err = parseDuration("DIRECTORY_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.Calls.RecordTTL, err = parseDuration("CALL_RECORD_TTL", "1h"); err != nil {
		return nil, err
	}
	if cfg.Calls.RecordSaveTimeout, err = parseDuration("RECORD_SAVE_TIMEOUT", "2s"); err != nil {
		return nil, err
	}

	// Redis configuration
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_PORT: %w", err)
	}
	cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
	}

	// Kafka configuration
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Kafka.Topic = getEnvWithDefault("KAFKA_TOPIC", "call-events")

	// Rate limit configuration
	cfg.RateLimit.OutboundPerMinute, err = strconv.Atoi(getEnvWithDefault("OUTBOUND_CALLS_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OUTBOUND_CALLS_PER_MINUTE: %w", err)
	}
	cfg.RateLimit.MessagesPerMinute, err = strconv.Atoi(getEnvWithDefault("SMS_PER_MINUTE", "10"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SMS_PER_MINUTE: %w", err)
	}

	// Payments configuration
	cfg.Payments.LiveKey = os.Getenv("STRIPE_API_KEY_LIVE")
	cfg.Payments.TestKey = os.Getenv("STRIPE_API_KEY_TEST")
	cfg.Payments.RedirectURL = os.Getenv("PAYMENT_REDIRECT_URL")

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func parseDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return d, nil
}
