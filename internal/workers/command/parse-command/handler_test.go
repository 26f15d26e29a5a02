// internal/workers/command/parse-command/handler_test.go
package parsecommand

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lookup-relay/internal/models"
)

func TestHandler_Parse_KnownCommands(t *testing.T) {
	h := NewHandler(LoadConfig())

	tests := []struct {
		name  string
		input string
		want  models.Intent
	}{
		{"balance", "/balance", models.BalanceIntent{}},
		{"balance with surrounding whitespace", "   /BALANCE \n", models.BalanceIntent{}},
		{"email", "/email_lookup jane@example.com", models.EmailLookupIntent{Email: "jane@example.com"}},
		{"email is lower-cased", "/Email_Lookup Jane@Example.COM", models.EmailLookupIntent{Email: "jane@example.com"}},
		{"ssn", "/ssn_lookup john doe 01-01-2000", models.SSNLookupIntent{FirstName: "john", LastName: "doe", DOB: "01-01-2000"}},
		{"ssn with tabs", "/ssn_lookup\tjohn \t doe   01-01-2000", models.SSNLookupIntent{FirstName: "john", LastName: "doe", DOB: "01-01-2000"}},
		{"phone", "/phone_lookup +15551234567", models.PhoneLookupIntent{Phone: "+15551234567"}},
		{"ip", "/ip_lookup 8.8.8.8", models.IPLookupIntent{IP: "8.8.8.8"}},
		{"domain", "/domain_lookup example.com", models.DomainLookupIntent{Domain: "example.com"}},
		{"bin", "/bin_lookup 411111", models.BINLookupIntent{BIN: "411111"}},
		{"set license", "/set_license abc123", models.SetLicenseIntent{Key: "abc123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.Parse(tt.input))
		})
	}
}

func TestHandler_Parse_UsageErrors(t *testing.T) {
	h := NewHandler(LoadConfig())

	tests := []struct {
		input string
		kind  models.CommandKind
		usage string
	}{
		{"/email_lookup", models.KindEmailLookup, "Usage: /email_lookup <email>"},
		{"/email_lookup a@b.co extra", models.KindEmailLookup, "Usage: /email_lookup <email>"},
		{"/balance now", models.KindBalance, "Usage: /balance"},
		{"/ssn_lookup john doe", models.KindSSNLookup, "Usage: /ssn_lookup <first_name> <last_name> <dob>"},
		{"/ssn_lookup john doe 01-01-2000 x", models.KindSSNLookup, "Usage: /ssn_lookup <first_name> <last_name> <dob>"},
		{"/phone_lookup", models.KindPhoneLookup, "Usage: /phone_lookup <phone>"},
		{"/ip_lookup", models.KindIPLookup, "Usage: /ip_lookup <ip>"},
		{"/domain_lookup a.com b.com", models.KindDomainLookup, "Usage: /domain_lookup <domain>"},
		{"/bin_lookup", models.KindBINLookup, "Usage: /bin_lookup <bin_number>"},
		{"/set_license", models.KindSetLicense, "Usage: /set_license <license_key>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := h.Parse(tt.input)
			assert.Equal(t, models.UsageErrorIntent{Command: tt.kind, Usage: tt.usage}, got)
			assert.Equal(t, models.KindUsageError, got.Kind())
		})
	}
}

func TestHandler_Parse_Unknown(t *testing.T) {
	h := NewHandler(LoadConfig())

	for _, input := range []string{
		"",
		"   ",
		"/",
		"/weather london",
		"balance",
		"!balance",
		"/usage_error",
		"/unknown",
		"hello /balance",
	} {
		t.Run(input, func(t *testing.T) {
			got := h.Parse(input)
			assert.IsType(t, models.UnknownIntent{}, got)
		})
	}

	got := h.Parse("  /Weather London ")
	assert.Equal(t, models.UnknownIntent{Raw: "/Weather London"}, got)
}

func TestHandler_Parse_CustomPrefix(t *testing.T) {
	h := NewHandler(&Config{Prefix: "!"})

	assert.Equal(t, models.BalanceIntent{}, h.Parse("!balance"))
	assert.IsType(t, models.UnknownIntent{}, h.Parse("/balance"))
	assert.Equal(t,
		models.UsageErrorIntent{Command: models.KindEmailLookup, Usage: "Usage: !email_lookup <email>"},
		h.Parse("!email_lookup"))
	assert.Equal(t, "!", h.Prefix())
}

func TestNewHandler_Defaults(t *testing.T) {
	assert.Equal(t, DefaultPrefix, NewHandler(nil).Prefix())
	assert.Equal(t, DefaultPrefix, NewHandler(&Config{}).Prefix())
}

func BenchmarkHandler_Parse(b *testing.B) {
	h := NewHandler(LoadConfig())
	for i := 0; i < b.N; i++ {
		_ = h.Parse("/ssn_lookup john doe 01-01-2000")
	}
}
