// cmd/lookup-relay/main_test.go
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-relay/internal/models"
)

func TestExecCommand(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/check_balance", r.URL.Path)
		assert.Equal(t, "lic", r.URL.Query().Get("license_key"))
		_, _ = w.Write([]byte(`{"balance":7}`))
	}))
	defer upstream.Close()

	var notified int32
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&notified, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer hook.Close()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(`
upstream:
  base_url: %s
  api_key: k
  license_key: lic
notification:
  webhook_url: %s
logging:
  level: error
  output: stderr
`, upstream.URL, hook.URL)), 0o600))

	var out bytes.Buffer
	root := newRootCommand("test")
	root.SetOut(&out)
	root.SetArgs([]string{"exec", "--config", path, "/balance"})
	require.NoError(t, root.Execute())

	var result models.LookupResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, `Balance Info: {"balance":7}`, result.Message)
	assert.EqualValues(t, 1, atomic.LoadInt32(&notified), "notification delivered before exit")
}

func TestExecCommand_MissingConfigFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  name: relay\n"), 0o600))

	for _, env := range []string{"BASE_URL", "API_KEY", "DISCORD_WEBHOOK_URL", "UPSTREAM_BASE_URL", "UPSTREAM_API_KEY", "NOTIFICATION_WEBHOOK_URL"} {
		t.Setenv(env, "")
	}

	root := newRootCommand("test")
	root.SetArgs([]string{"exec", "--config", path, "/balance"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.base_url")
}

func TestCommandsCommand(t *testing.T) {
	tests := []struct {
		format string
		want   []string
	}{
		{"table", []string{"Usage: /ssn_lookup <first_name> <last_name> <dob>", "/ip_lookup/<ip>"}},
		{"json", []string{`"name": "email_lookup"`, `"endpoint": "/check_balance"`}},
		{"yaml", []string{"name: bin_lookup", "endpoint: /ssn"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			root := newRootCommand("test")
			root.SetOut(&out)
			root.SetArgs([]string{"commands", "--format", tt.format})
			require.NoError(t, root.Execute())
			for _, w := range tt.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}

	root := newRootCommand("test")
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"commands", "--format", "xml"})
	assert.Error(t, root.Execute())
}
