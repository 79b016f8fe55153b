// Package mailer talks to the transactional email provider and implements
// the chunked campaign dispatch pipeline on top of it.
package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
)

type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// BatchResult aggregates one chunk's worth of per-recipient sends.
type BatchResult struct {
	Sent   int
	Failed int
	Errors []string
}

type ClientConfig struct {
	BaseURL      string
	APIKey       string
	SenderEmail  string
	SenderName   string
	ReplyToEmail string
	ReplyToName  string
}

// Client sends individual emails through the provider HTTP API. All calls go
// through a circuit breaker so a dead provider fails fast instead of eating
// the full timeout per recipient.
type Client struct {
	cfg     ClientConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[string]
	logger  *slog.Logger
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	settings := gobreaker.Settings{
		Name:     "email-provider",
		Interval: time.Minute,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[string](settings),
		logger:  logger,
	}
}

type sendPayload struct {
	Sender      Recipient   `json:"sender"`
	To          []Recipient `json:"to"`
	ReplyTo     *Recipient  `json:"replyTo,omitempty"`
	Subject     string      `json:"subject"`
	HTMLContent string      `json:"htmlContent"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
	Error     string `json:"error"`
}

// SendOne delivers a single personalized email. Returns the provider message
// id when one is reported.
func (c *Client) SendOne(ctx context.Context, to Recipient, subject, htmlContent string) (string, error) {
	name := to.Name
	if name == "" {
		name = "there"
	}
	encodedEmail := base64.StdEncoding.EncodeToString([]byte(to.Email))
	personalizedHTML := strings.ReplaceAll(htmlContent, "{{name}}", name)
	personalizedHTML = strings.ReplaceAll(personalizedHTML, "{{email_encoded}}", encodedEmail)
	personalizedSubject := strings.ReplaceAll(subject, "{{name}}", name)

	payload := sendPayload{
		Sender:      Recipient{Email: c.cfg.SenderEmail, Name: c.cfg.SenderName},
		To:          []Recipient{{Email: to.Email, Name: name}},
		Subject:     personalizedSubject,
		HTMLContent: personalizedHTML,
	}
	if c.cfg.ReplyToEmail != "" {
		payload.ReplyTo = &Recipient{Email: c.cfg.ReplyToEmail, Name: c.cfg.ReplyToName}
	}

	return c.breaker.Execute(func() (string, error) {
		return c.post(ctx, payload)
	})
}

func (c *Client) post(ctx context.Context, payload sendPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var parsed sendResponse
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.MessageID != "" {
			return parsed.MessageID, nil
		}
		return "", nil
	}

	var parsed sendResponse
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Message != "" {
			return "", fmt.Errorf("provider: %s", parsed.Message)
		}
		if parsed.Error != "" {
			return "", fmt.Errorf("provider: %s", parsed.Error)
		}
	}
	if len(raw) > 0 {
		return "", fmt.Errorf("provider: %s", strings.TrimSpace(string(raw)))
	}
	return "", fmt.Errorf("provider: HTTP %d", resp.StatusCode)
}

// perRecipientDelay spaces out provider calls within a batch to respect the
// provider's rate limits.
const perRecipientDelay = 100 * time.Millisecond

// SendBatch delivers one email per recipient, sequentially. A per-recipient
// failure is recorded and the rest of the batch still goes out.
func (c *Client) SendBatch(ctx context.Context, recipients []Recipient, subject, htmlContent string) (*BatchResult, error) {
	result := &BatchResult{}
	for i, r := range recipients {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		_, err := c.SendOne(ctx, r, subject, htmlContent)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, r.Email+": "+err.Error())
			c.logger.Error("Failed to send email", "recipient", r.Email, "error", err)
		} else {
			result.Sent++
		}

		if i < len(recipients)-1 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(perRecipientDelay):
			}
		}
	}
	return result, nil
}
