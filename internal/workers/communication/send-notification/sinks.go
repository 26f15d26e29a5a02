// internal/workers/communication/send-notification/sinks.go
package sendnotification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	commonaws "lookup-relay/internal/common/aws"
	appconfig "lookup-relay/internal/common/config"
	"lookup-relay/internal/models"
)

var ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")

// Sink delivers one event in a single attempt.
type Sink interface {
	Name() string
	Send(ctx context.Context, event models.NotificationEvent) error
}

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// NewSink builds the sink selected by config.Sink.
func NewSink(ctx context.Context, config *Config) (Sink, error) {
	switch config.Sink {
	case appconfig.SinkWebhook, "":
		return NewWebhookSink(config.WebhookURL, config.Username, &http.Client{Timeout: config.Timeout}), nil
	case appconfig.SinkSNS:
		client, err := commonaws.NewSNSClient(ctx, config.AWSRegion)
		if err != nil {
			return nil, err
		}
		return NewSNSSink(client, config.TopicARN), nil
	case appconfig.SinkSES:
		client, err := commonaws.NewSESClient(ctx, config.AWSRegion)
		if err != nil {
			return nil, err
		}
		return NewSESSink(client, config.FromEmail, config.ToEmails), nil
	default:
		return nil, fmt.Errorf("unknown notification sink %q", config.Sink)
	}
}

// WebhookSink posts a Discord embed.
type WebhookSink struct {
	url      string
	username string
	client   *http.Client
}

func NewWebhookSink(webhookURL, username string, client *http.Client) *WebhookSink {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookSink{url: webhookURL, username: username, client: client}
}

func (s *WebhookSink) Name() string { return appconfig.SinkWebhook }

func (s *WebhookSink) Send(ctx context.Context, event models.NotificationEvent) error {
	body, err := json.Marshal(WebhookPayload{
		Username: s.username,
		Embeds: []Embed{{
			Title:       truncate(event.Title, maxTitleLen),
			Description: truncate(event.Description, maxDescriptionLen),
			Color:       event.Color,
			Timestamp:   event.CreatedAt.UTC().Format(time.RFC3339),
		}},
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request", ErrNotificationSendFailed)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		// The webhook URL embeds its token.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("%w: %v", ErrNotificationSendFailed, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrNotificationSendFailed, resp.StatusCode)
	}
	return nil
}

// SNSSink publishes the event to a topic.
type SNSSink struct {
	client   SNSService
	topicARN string
}

func NewSNSSink(client SNSService, topicARN string) *SNSSink {
	return &SNSSink{client: client, topicARN: topicARN}
}

func (s *SNSSink) Name() string { return appconfig.SinkSNS }

func (s *SNSSink) Send(ctx context.Context, event models.NotificationEvent) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Subject:  aws.String(snsSubject(event.Title)),
		Message:  aws.String(event.Description),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationSendFailed, err)
	}
	return nil
}

// SESSink mails the event as plain text.
type SESSink struct {
	client SESService
	from   string
	to     []string
}

func NewSESSink(client SESService, from string, to []string) *SESSink {
	return &SESSink{client: client, from: from, to: to}
}

func (s *SESSink) Name() string { return appconfig.SinkSES }

func (s *SESSink) Send(ctx context.Context, event models.NotificationEvent) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.from),
		Destination: &types.Destination{
			ToAddresses: s.to,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(event.Title)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(event.Description)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotificationSendFailed, err)
	}
	return nil
}
