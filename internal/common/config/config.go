// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	Command      CommandConfig      `mapstructure:"command"`
	Upstream     UpstreamConfig     `mapstructure:"upstream"`
	Notification NotificationConfig `mapstructure:"notification"`
	Pool         PoolConfig         `mapstructure:"pool"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

type CommandConfig struct {
	Prefix string `mapstructure:"prefix"`
}

// UpstreamConfig describes the lookup API.
type UpstreamConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	APIKey      string `mapstructure:"api_key"`
	LicenseKey  string `mapstructure:"license_key"`  // initial value, may be replaced at runtime
	Timeout     int    `mapstructure:"timeout"`      // milliseconds, per attempt
	MaxAttempts int    `mapstructure:"max_attempts"` // total attempts, first call included
	RetryDelay  int    `mapstructure:"retry_delay"`  // milliseconds
}

// Notification sinks.
const (
	SinkWebhook = "webhook"
	SinkSNS     = "sns"
	SinkSES     = "ses"
)

type NotificationConfig struct {
	Sink       string `mapstructure:"sink"`
	WebhookURL string `mapstructure:"webhook_url"`
	Username   string `mapstructure:"username"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	AWS        struct {
		Region string `mapstructure:"region"`
		SNS    struct {
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
		SES struct {
			FromEmail string   `mapstructure:"from_email"`
			ToEmails  []string `mapstructure:"to_emails"`
		} `mapstructure:"ses"`
	} `mapstructure:"aws"`
}

type PoolConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// CacheConfig enables the optional Redis cache of lookup payloads.
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
