// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const validYAML = `
app:
  name: lookup-relay
  version: 1.2.3
upstream:
  base_url: https://lookup.example.com/api
  api_key: api-secret
  license_key: initial-key
notification:
  webhook_url: https://discord.example.com/api/webhooks/1/abc
pool:
  workers: 2
`

func TestLoadFromFile_Valid(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "lookup-relay", cfg.App.Name)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "https://lookup.example.com/api", cfg.Upstream.BaseURL)
	assert.Equal(t, "api-secret", cfg.Upstream.APIKey)
	assert.Equal(t, "initial-key", cfg.Upstream.LicenseKey)
	assert.Equal(t, SinkWebhook, cfg.Notification.Sink)
	assert.Equal(t, 2, cfg.Pool.Workers)

	// defaults
	assert.Equal(t, "/", cfg.Command.Prefix)
	assert.Equal(t, 3, cfg.Upstream.MaxAttempts)
	assert.Equal(t, 2*time.Second, GetDuration(cfg.Upstream.RetryDelay))
	assert.Equal(t, 15*time.Second, GetDuration(cfg.Upstream.Timeout))
	assert.Equal(t, 64, cfg.Pool.QueueSize)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoadFromFile_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		missing string
	}{
		{
			name:    "no base url",
			yaml:    "upstream:\n  api_key: k\nnotification:\n  webhook_url: https://hook\n",
			missing: "upstream.base_url",
		},
		{
			name:    "no api key",
			yaml:    "upstream:\n  base_url: https://api\nnotification:\n  webhook_url: https://hook\n",
			missing: "upstream.api_key",
		},
		{
			name:    "no webhook url",
			yaml:    "upstream:\n  base_url: https://api\n  api_key: k\n",
			missing: "notification.webhook_url",
		},
		{
			name:    "sns without topic",
			yaml:    "upstream:\n  base_url: https://api\n  api_key: k\nnotification:\n  sink: sns\n",
			missing: "notification.aws.sns.topic_arn",
		},
		{
			name:    "ses without recipients",
			yaml:    "upstream:\n  base_url: https://api\n  api_key: k\nnotification:\n  sink: ses\n  aws:\n    ses:\n      from_email: a@b.co\n",
			missing: "notification.aws.ses.to_emails",
		},
		{
			name:    "cache enabled without address",
			yaml:    validYAML + "cache:\n  enabled: true\n",
			missing: "cache.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoadFromFile_InvalidSinkAndPrefix(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, validYAML+"command:\n  prefix: \"//\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command.prefix")

	_, err = LoadFromFile(writeConfig(t, "upstream:\n  base_url: https://api\n  api_key: k\nnotification:\n  sink: pager\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notification.sink")
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	t.Setenv("UPSTREAM_API_KEY", "from-env")
	t.Setenv("COMMAND_PREFIX", "!")

	cfg, err := LoadFromFile(writeConfig(t, validYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Upstream.APIKey)
	assert.Equal(t, "!", cfg.Command.Prefix)
}

func TestLoadFromFile_LegacyEnvNames(t *testing.T) {
	t.Setenv("BASE_URL", "https://legacy.example.com")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("DISCORD_WEBHOOK_URL", "https://discord.example.com/hook")
	t.Setenv("LICENSE_KEY", "legacy-license")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: relay\n"))
	require.NoError(t, err)
	assert.Equal(t, "https://legacy.example.com", cfg.Upstream.BaseURL)
	assert.Equal(t, "legacy-key", cfg.Upstream.APIKey)
	assert.Equal(t, "https://discord.example.com/hook", cfg.Notification.WebhookURL)
	assert.Equal(t, "legacy-license", cfg.Upstream.LicenseKey)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("RELAY_TEST_BASE", "https://expanded.example.com")

	cfg, err := LoadFromFile(writeConfig(t, `
upstream:
  base_url: ${RELAY_TEST_BASE}
  api_key: k
notification:
  webhook_url: https://hook
`))
	require.NoError(t, err)
	assert.Equal(t, "https://expanded.example.com", cfg.Upstream.BaseURL)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFromFile_UnsetPlaceholderIsMissing(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, `
upstream:
  base_url: ${RELAY_TEST_UNSET_BASE}
  api_key: k
notification:
  webhook_url: https://hook
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.base_url")
}

func TestLoadFromFile_MaxAttempts(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, `
upstream:
  base_url: https://api
  api_key: k
  max_attempts: 5
notification:
  webhook_url: https://hook
`))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Upstream.MaxAttempts)
}
