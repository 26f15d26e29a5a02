// pkg/registry/schema.go
package registry

import "lookup-relay/internal/models"

// CommandRegistry is the catalog of commands the service understands.
type CommandRegistry struct {
	Version  string    `json:"version" yaml:"version"`
	Prefix   string    `json:"prefix" yaml:"prefix"`
	Commands []Command `json:"commands" yaml:"commands"`
}

// Command describes one command: its arguments, the upstream endpoint it maps to, and how its
// arguments are placed on the request.
type Command struct {
	Kind        models.CommandKind `json:"name" yaml:"name"`
	Description string             `json:"description" yaml:"description"`
	Args        []string           `json:"args" yaml:"args"`
	// Endpoint is the upstream path relative to the base URL. Empty for commands that never
	// call upstream.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	// QueryParams maps argument positions to query parameter names. When PathArg is set the
	// argument at that position is appended to Endpoint as a path segment instead.
	QueryParams     []string `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	PathArg         bool     `json:"pathArg,omitempty" yaml:"pathArg,omitempty"`
	RequiresLicense bool     `json:"requiresLicense" yaml:"requiresLicense"`
	ErrorCodes      []string `json:"errorCodes,omitempty" yaml:"errorCodes,omitempty"`
}
