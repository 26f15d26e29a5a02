// internal/workers/communication/send-notification/config.go
package sendnotification

import (
	"time"

	appconfig "lookup-relay/internal/common/config"
)

type Config struct {
	Sink       string
	WebhookURL string
	Username   string
	Timeout    time.Duration
	AWSRegion  string
	TopicARN   string
	FromEmail  string
	ToEmails   []string
}

func LoadConfig() *Config {
	return &Config{
		Sink:     appconfig.SinkWebhook,
		Username: "Lookup Relay",
		Timeout:  10 * time.Second,
	}
}

// FromAppConfig maps the notification section of the service config.
func FromAppConfig(c appconfig.NotificationConfig) *Config {
	cfg := LoadConfig()
	if c.Sink != "" {
		cfg.Sink = c.Sink
	}
	if c.Username != "" {
		cfg.Username = c.Username
	}
	if c.Timeout > 0 {
		cfg.Timeout = appconfig.GetDuration(c.Timeout)
	}
	cfg.WebhookURL = c.WebhookURL
	cfg.AWSRegion = c.AWS.Region
	cfg.TopicARN = c.AWS.SNS.TopicARN
	cfg.FromEmail = c.AWS.SES.FromEmail
	cfg.ToEmails = c.AWS.SES.ToEmails
	return cfg
}
