// internal/workers/lookup/dispatch-lookup/urls_test.go
package dispatchlookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookup-relay/internal/models"
	"lookup-relay/pkg/registry"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		kind    models.CommandKind
		args    []string
		license string
		want    string
	}{
		{
			name:    "balance",
			base:    "https://api.example.com",
			kind:    models.KindBalance,
			license: "abc",
			want:    "https://api.example.com/check_balance?license_key=abc",
		},
		{
			name:    "base path and trailing slash",
			base:    "https://api.example.com/v1/",
			kind:    models.KindEmailLookup,
			args:    []string{"a+b@example.com"},
			license: "abc",
			want:    "https://api.example.com/v1/email_lookup?email=a%2Bb%40example.com&license_key=abc",
		},
		{
			name:    "ssn maps argument names",
			base:    "https://api.example.com",
			kind:    models.KindSSNLookup,
			args:    []string{"john", "doe", "01-01-2000"},
			license: "abc",
			want:    "https://api.example.com/ssn?dob=01-01-2000&fname=john&license_key=abc&lname=doe",
		},
		{
			name:    "ip as path segment",
			base:    "https://api.example.com",
			kind:    models.KindIPLookup,
			args:    []string{"1.2.3.4"},
			license: "abc",
			want:    "https://api.example.com/ip_lookup/1.2.3.4?license_key=abc",
		},
		{
			name:    "license key is escaped",
			base:    "https://api.example.com",
			kind:    models.KindBINLookup,
			args:    []string{"457173"},
			license: "a&b=c",
			want:    "https://api.example.com/bin_lookup?bin_number=457173&license_key=a%26b%3Dc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildURL(tt.base, registry.MustLookup(tt.kind), tt.args, tt.license)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildURL_ArityMismatch(t *testing.T) {
	_, err := buildURL("https://api.example.com", registry.MustLookup(models.KindSSNLookup), []string{"john"}, "k")
	assert.Error(t, err)
}
