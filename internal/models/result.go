// internal/models/result.go
package models

// LookupResult is produced once per dispatch and returned to the entry point that issued the
// command. Message is always set and safe to display as-is.
type LookupResult struct {
	Success      bool        `json:"success"`
	Payload      interface{} `json:"payload,omitempty"`
	ErrorMessage string      `json:"error,omitempty"`
	ErrorCode    string      `json:"errorCode,omitempty"`
	Message      string      `json:"message"`
}
