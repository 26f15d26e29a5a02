// internal/common/http/client.go
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	commonerrors "lookup-relay/internal/common/errors"
	"lookup-relay/internal/common/retry"
)

const (
	DefaultAttemptTimeout = 15 * time.Second
	maxBodyBytes          = 4 << 20
)

var ErrMalformedBody = errors.New("MALFORMED_BODY")

// Client performs outbound GETs against the lookup API. Every attempt gets its own timeout;
// the retry policy decides how many attempts are made and how long to wait between them.
type Client struct {
	httpClient     *http.Client
	policy         retry.Policy
	attemptTimeout time.Duration
}

func NewClient(attemptTimeout time.Duration, policy retry.Policy) *Client {
	if attemptTimeout <= 0 {
		attemptTimeout = DefaultAttemptTimeout
	}
	return &Client{
		httpClient:     &http.Client{},
		policy:         policy,
		attemptTimeout: attemptTimeout,
	}
}

// GetJSON fetches rawURL and decodes the body as JSON. An attempt fails on transport error,
// per-attempt timeout, non-2xx status or an undecodable body. When every attempt fails the
// returned error is a StandardError with code UPSTREAM_UNAVAILABLE.
func (c *Client) GetJSON(ctx context.Context, rawURL string, header http.Header, onFailure retry.AttemptHook) (interface{}, int, error) {
	var payload interface{}

	attempts, err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		p, err := c.getOnce(ctx, rawURL, header)
		if err != nil {
			return err
		}
		payload = p
		return nil
	}, onFailure)
	if err != nil {
		last := err
		var exhausted *retry.ExhaustedError
		if errors.As(err, &exhausted) {
			last = exhausted.Last
		}
		return nil, attempts, commonerrors.NewUpstreamUnavailableError(attempts, last)
	}
	return payload, attempts, nil
}

func (c *Client) getOnce(ctx context.Context, rawURL string, header http.Header) (interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the full URL, including the license key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, commonerrors.NewUpstreamRejectedError(resp.StatusCode)
	}

	var payload interface{}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return payload, nil
}

// Redact strips the query string so credentials never reach logs.
func Redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}
