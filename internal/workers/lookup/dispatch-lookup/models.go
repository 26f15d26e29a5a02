// internal/workers/lookup/dispatch-lookup/models.go
package dispatchlookup

import (
	"encoding/json"
	"fmt"

	"lookup-relay/internal/models"
)

const (
	NotificationTitle = "Chatbox Command Response"

	// APIKeyHeader carries the upstream API credential.
	APIKeyHeader = "X-API-Key"

	msgSetLicensePrefix = "License key has been updated to: "
	msgLicenseRequired  = "License key is required. Please set it first."
)

// Notifier accepts notification events without waiting for delivery.
type Notifier interface {
	Notify(event models.NotificationEvent)
}

// display holds the message formats for one upstream command: success is given the
// arguments followed by the rendered payload, failure is prepended to the error message.
type display struct {
	success string
	failure string
}

var displays = map[models.CommandKind]display{
	models.KindBalance:      {success: "Balance Info: %s", failure: "Failed to check balance"},
	models.KindEmailLookup:  {success: "Email Lookup Result for %s: %s", failure: "Failed to perform email lookup"},
	models.KindSSNLookup:    {success: "SSN Lookup Result for %s %s (DOB: %s): %s", failure: "Failed to perform SSN lookup"},
	models.KindPhoneLookup:  {success: "Phone Lookup Result for %s: %s", failure: "Failed to perform phone lookup"},
	models.KindIPLookup:     {success: "IP Lookup Result for %s: %s", failure: "Failed to perform IP lookup"},
	models.KindDomainLookup: {success: "Domain Lookup Result for %s: %s", failure: "Failed to perform domain lookup"},
	models.KindBINLookup:    {success: "BIN Lookup Result for %s: %s", failure: "Failed to perform BIN lookup"},
}

func successMessage(kind models.CommandKind, args []string, payload interface{}) string {
	values := make([]interface{}, 0, len(args)+1)
	for _, a := range args {
		values = append(values, a)
	}
	values = append(values, renderPayload(payload))
	return fmt.Sprintf(displays[kind].success, values...)
}

func failureMessage(kind models.CommandKind, errorMessage string) string {
	return fmt.Sprintf("%s: %s", displays[kind].failure, errorMessage)
}

// renderPayload prints the decoded payload back as compact JSON.
func renderPayload(payload interface{}) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(b)
}
