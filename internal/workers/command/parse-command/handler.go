// internal/workers/command/parse-command/handler.go
package parsecommand

import (
	"strings"

	"lookup-relay/internal/models"
	"lookup-relay/pkg/registry"
)

const (
	TaskType = "parse-command"
)

// Handler turns raw command text into a typed intent. It holds no mutable state and is safe
// for concurrent use.
type Handler struct {
	config *Config
}

func NewHandler(config *Config) *Handler {
	if config == nil {
		config = LoadConfig()
	}
	if config.Prefix == "" {
		config.Prefix = DefaultPrefix
	}
	return &Handler{config: config}
}

// Prefix returns the configured command prefix.
func (h *Handler) Prefix() string {
	return h.config.Prefix
}

// Parse normalizes raw (trim, lower-case), splits it on whitespace and maps the first token to
// a command. A known command with the wrong argument count yields a UsageErrorIntent; anything
// unrecognized yields an UnknownIntent.
func (h *Handler) Parse(raw string) models.Intent {
	trimmed := strings.TrimSpace(raw)
	tokens := strings.Fields(strings.ToLower(trimmed))
	if len(tokens) == 0 {
		return models.UnknownIntent{Raw: trimmed}
	}

	name, ok := strings.CutPrefix(tokens[0], strings.ToLower(h.config.Prefix))
	if !ok || name == "" {
		return models.UnknownIntent{Raw: trimmed}
	}

	cmd, ok := registry.Lookup(name)
	if !ok {
		return models.UnknownIntent{Raw: trimmed}
	}

	args := tokens[1:]
	if len(args) != cmd.Arity() {
		return models.UsageErrorIntent{
			Command: cmd.Kind,
			Usage:   cmd.Usage(h.config.Prefix),
		}
	}

	return buildIntent(cmd.Kind, args, trimmed)
}

func buildIntent(kind models.CommandKind, args []string, raw string) models.Intent {
	switch kind {
	case models.KindBalance:
		return models.BalanceIntent{}
	case models.KindEmailLookup:
		return models.EmailLookupIntent{Email: args[0]}
	case models.KindSSNLookup:
		return models.SSNLookupIntent{FirstName: args[0], LastName: args[1], DOB: args[2]}
	case models.KindPhoneLookup:
		return models.PhoneLookupIntent{Phone: args[0]}
	case models.KindIPLookup:
		return models.IPLookupIntent{IP: args[0]}
	case models.KindDomainLookup:
		return models.DomainLookupIntent{Domain: args[0]}
	case models.KindBINLookup:
		return models.BINLookupIntent{BIN: args[0]}
	case models.KindSetLicense:
		return models.SetLicenseIntent{Key: args[0]}
	default:
		return models.UnknownIntent{Raw: raw}
	}
}
