// internal/workers/communication/send-notification/models.go
package sendnotification

import "strings"

const (
	StatusSent    = "sent"
	StatusFailed  = "failed"
	StatusDropped = "dropped"
)

// Discord caps embed titles at 256 and descriptions at 4096 characters.
const (
	maxTitleLen       = 256
	maxDescriptionLen = 4096
	maxSubjectLen     = 100
)

// WebhookPayload is the Discord execute-webhook body.
type WebhookPayload struct {
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds"`
}

type Embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// snsSubject fits title to SNS subject rules: printable ASCII only, at most maxSubjectLen
// characters.
func snsSubject(title string) string {
	ascii := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return -1
		}
		return r
	}, title)
	if len(ascii) <= maxSubjectLen {
		return ascii
	}
	return ascii[:maxSubjectLen-3] + "..."
}
