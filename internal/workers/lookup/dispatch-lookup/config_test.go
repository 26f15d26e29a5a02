// internal/workers/lookup/dispatch-lookup/config_test.go
package dispatchlookup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appconfig "lookup-relay/internal/common/config"
)

func TestFromAppConfig(t *testing.T) {
	var c appconfig.Config
	c.Command.Prefix = "!"
	c.Upstream.Timeout = 12000
	c.Upstream.MaxAttempts = 4
	c.Upstream.RetryDelay = 500

	cfg := FromAppConfig(&c)
	assert.Equal(t, "!", cfg.Prefix)
	assert.Equal(t, 12*time.Second, cfg.AttemptTimeout)

	policy := cfg.Policy()
	assert.Equal(t, 4, policy.MaxAttempts)
	assert.Equal(t, 500*time.Millisecond, policy.Delay)
	assert.NotNil(t, policy.Sleep)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 15*time.Second, cfg.AttemptTimeout)
}
