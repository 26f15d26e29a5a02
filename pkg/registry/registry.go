// pkg/registry/registry.go
package registry

import (
	"fmt"
	"strings"

	"lookup-relay/internal/models"
)

const Version = "1.0.0"

var upstreamErrorCodes = []string{"MISSING_CREDENTIAL", "INVALID_ARGUMENT", "USAGE_ERROR", "UPSTREAM_UNAVAILABLE"}

var commands = []Command{
	{
		Kind:            models.KindBalance,
		Description:     "Check the remaining balance of the license key",
		Endpoint:        "/check_balance",
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:            models.KindEmailLookup,
		Description:     "Look up records for an email address",
		Args:            []string{"email"},
		Endpoint:        "/email_lookup",
		QueryParams:     []string{"email"},
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:            models.KindSSNLookup,
		Description:     "Look up an SSN by first name, last name and date of birth",
		Args:            []string{"first_name", "last_name", "dob"},
		Endpoint:        "/ssn",
		QueryParams:     []string{"fname", "lname", "dob"},
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:            models.KindPhoneLookup,
		Description:     "Look up a phone number",
		Args:            []string{"phone"},
		Endpoint:        "/phone_lookup",
		QueryParams:     []string{"phone"},
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:            models.KindIPLookup,
		Description:     "Look up an IP address",
		Args:            []string{"ip"},
		Endpoint:        "/ip_lookup",
		PathArg:         true,
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:            models.KindDomainLookup,
		Description:     "Look up a domain",
		Args:            []string{"domain"},
		Endpoint:        "/domain_lookup",
		QueryParams:     []string{"domain"},
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:            models.KindBINLookup,
		Description:     "Look up a card BIN",
		Args:            []string{"bin_number"},
		Endpoint:        "/bin_lookup",
		QueryParams:     []string{"bin_number"},
		RequiresLicense: true,
		ErrorCodes:      upstreamErrorCodes,
	},
	{
		Kind:        models.KindSetLicense,
		Description: "Replace the license key used for lookups",
		Args:        []string{"license_key"},
		ErrorCodes:  []string{"USAGE_ERROR"},
	},
}

// Commands returns the catalog in display order.
func Commands() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// Lookup finds a command by its name without prefix.
func Lookup(name string) (Command, bool) {
	for _, c := range commands {
		if string(c.Kind) == name {
			return c, true
		}
	}
	return Command{}, false
}

// MustLookup is Lookup for kinds known at compile time.
func MustLookup(kind models.CommandKind) Command {
	c, ok := Lookup(string(kind))
	if !ok {
		panic(fmt.Sprintf("registry: no command %q", kind))
	}
	return c
}

// New returns the registry rendered with the given command prefix.
func New(prefix string) *CommandRegistry {
	return &CommandRegistry{
		Version:  Version,
		Prefix:   prefix,
		Commands: Commands(),
	}
}

// Usage renders "Usage: /ssn_lookup <first_name> <last_name> <dob>".
func (c Command) Usage(prefix string) string {
	var b strings.Builder
	b.WriteString("Usage: ")
	b.WriteString(prefix)
	b.WriteString(string(c.Kind))
	for _, a := range c.Args {
		b.WriteString(" <")
		b.WriteString(a)
		b.WriteString(">")
	}
	return b.String()
}

// Arity is the exact number of positional arguments the command takes.
func (c Command) Arity() int {
	return len(c.Args)
}

// Help lists every command, e.g. "Unknown command. Available commands: /balance, ...".
func Help(prefix string) string {
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, prefix+string(c.Kind))
	}
	return "Unknown command. Available commands: " + strings.Join(names, ", ")
}
