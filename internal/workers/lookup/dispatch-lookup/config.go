// internal/workers/lookup/dispatch-lookup/config.go
package dispatchlookup

import (
	"time"

	appconfig "lookup-relay/internal/common/config"
	"lookup-relay/internal/common/retry"
)

type Config struct {
	Prefix         string
	AttemptTimeout time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Prefix:         "/",
		AttemptTimeout: 15 * time.Second,
		MaxAttempts:    retry.DefaultMaxAttempts,
		RetryDelay:     retry.DefaultDelay,
	}
}

// FromAppConfig maps the command and upstream sections of the service config.
func FromAppConfig(c *appconfig.Config) *Config {
	return &Config{
		Prefix:         c.Command.Prefix,
		AttemptTimeout: appconfig.GetDuration(c.Upstream.Timeout),
		MaxAttempts:    c.Upstream.MaxAttempts,
		RetryDelay:     appconfig.GetDuration(c.Upstream.RetryDelay),
	}
}

// Policy is the retry policy for upstream calls.
func (c *Config) Policy() retry.Policy {
	return retry.Policy{
		MaxAttempts: c.MaxAttempts,
		Delay:       c.RetryDelay,
		Sleep:       retry.Sleep,
	}
}
