// Package notify delivers levy notices through a transactional email API.
// The engine owns no knowledge of the transport beneath the Sender interface.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MWhitfield89/strata/internal/issuance"
)

type Mailer struct {
	client  *http.Client
	baseURL string
	apiKey  string
	from    string
}

// NewMailer creates a client for a Resend-compatible email API.
func NewMailer(baseURL, apiKey, from string) *Mailer {
	return &Mailer{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
	}
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send renders and transmits a single notice. One attempt, no retries.
func (m *Mailer) Send(ctx context.Context, notice issuance.Notice) error {
	body, err := renderNotice(notice)
	if err != nil {
		return fmt.Errorf("rendering notice: %w", err)
	}

	payload, err := json.Marshal(emailRequest{
		From:    m.from,
		To:      []string{notice.To},
		Subject: subjectFor(notice),
		Text:    body,
	})
	if err != nil {
		return fmt.Errorf("encoding email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("email provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(detail))
	}

	return nil
}
