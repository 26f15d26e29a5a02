// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges configs/config.<APP_ENVIRONMENT>.yaml on top, applies
// environment overrides and validates the result. A missing required value is an error; the
// caller must not start serving.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return build(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

var envKeyReplacer = strings.NewReplacer(".", "_", "-", "_")

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	// UPSTREAM_BASE_URL overrides upstream.base_url, and so on.
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()
	return v
}

func build(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "lookup-relay")
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 10000)
	v.SetDefault("server.write_timeout", 90000)
	v.SetDefault("server.shutdown_timeout", 30000)

	v.SetDefault("command.prefix", "/")

	v.SetDefault("upstream.base_url", "")
	v.SetDefault("upstream.api_key", "")
	v.SetDefault("upstream.license_key", "")
	v.SetDefault("upstream.timeout", 15000)
	v.SetDefault("upstream.max_attempts", 3)
	v.SetDefault("upstream.retry_delay", 2000)

	v.SetDefault("notification.sink", SinkWebhook)
	v.SetDefault("notification.webhook_url", "")
	v.SetDefault("notification.username", "Lookup Relay")
	v.SetDefault("notification.timeout", 10000)
	v.SetDefault("notification.aws.region", "")
	v.SetDefault("notification.aws.sns.topic_arn", "")
	v.SetDefault("notification.aws.ses.from_email", "")
	v.SetDefault("notification.aws.ses.to_emails", []string{})

	v.SetDefault("pool.workers", 4)
	v.SetDefault("pool.queue_size", 64)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", 300000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// loadEnvFile loads the first .env found walking up from the working directory to the module
// root. Existing environment variables win.
func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values. An unset variable expands to
// the empty string so required-value validation catches it. Keys with a direct environment
// override (UPSTREAM_BASE_URL, ...) are left to AutomaticEnv.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if !strings.Contains(strVal, "${") && !(strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			continue
		}
		if _, overridden := os.LookupEnv(envKeyReplacer.Replace(strings.ToUpper(key))); overridden {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal {
			v.Set(key, expanded)
		}
	}
}

// overrideEmptyConfig honors the plain variable names used by existing deployments.
func overrideEmptyConfig(cfg *Config) {
	overrides := []struct {
		target *string
		env    string
	}{
		{&cfg.Upstream.BaseURL, "BASE_URL"},
		{&cfg.Upstream.APIKey, "API_KEY"},
		{&cfg.Upstream.LicenseKey, "LICENSE_KEY"},
		{&cfg.Notification.WebhookURL, "DISCORD_WEBHOOK_URL"},
		{&cfg.Notification.AWS.Region, "AWS_REGION"},
	}
	for _, o := range overrides {
		if *o.target == "" {
			if val := os.Getenv(o.env); val != "" {
				*o.target = val
			}
		}
	}
}

// applyDefaults fills zero values left after unmarshal, e.g. an explicit 0 in YAML.
func applyDefaults(cfg *Config) {
	if cfg.Command.Prefix == "" {
		cfg.Command.Prefix = "/"
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = 15000
	}
	if cfg.Upstream.MaxAttempts <= 0 {
		cfg.Upstream.MaxAttempts = 3
	}
	if cfg.Upstream.RetryDelay < 0 {
		cfg.Upstream.RetryDelay = 2000
	}
	if cfg.Notification.Sink == "" {
		cfg.Notification.Sink = SinkWebhook
	}
	if cfg.Notification.Timeout <= 0 {
		cfg.Notification.Timeout = 10000
	}
	if cfg.Pool.Workers <= 0 {
		cfg.Pool.Workers = 4
	}
	if cfg.Pool.QueueSize <= 0 {
		cfg.Pool.QueueSize = 64
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// validateConfig enforces the values the service cannot run without.
func validateConfig(cfg *Config) error {
	var missing []string

	if cfg.Upstream.BaseURL == "" {
		missing = append(missing, "upstream.base_url")
	}
	if cfg.Upstream.APIKey == "" {
		missing = append(missing, "upstream.api_key")
	}

	switch cfg.Notification.Sink {
	case SinkWebhook:
		if cfg.Notification.WebhookURL == "" {
			missing = append(missing, "notification.webhook_url")
		}
	case SinkSNS:
		if cfg.Notification.AWS.SNS.TopicARN == "" {
			missing = append(missing, "notification.aws.sns.topic_arn")
		}
	case SinkSES:
		if cfg.Notification.AWS.SES.FromEmail == "" {
			missing = append(missing, "notification.aws.ses.from_email")
		}
		if len(cfg.Notification.AWS.SES.ToEmails) == 0 {
			missing = append(missing, "notification.aws.ses.to_emails")
		}
	default:
		return fmt.Errorf("notification.sink %q is not one of webhook, sns, ses", cfg.Notification.Sink)
	}

	if cfg.Cache.Enabled && cfg.Cache.Address == "" {
		missing = append(missing, "cache.address")
	}
	if len(cfg.Command.Prefix) != 1 {
		return fmt.Errorf("command.prefix must be a single character, got %q", cfg.Command.Prefix)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required values: %s", strings.Join(missing, ", "))
	}
	return nil
}
