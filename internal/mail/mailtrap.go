// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// mailtrapAPIBase is the Mailtrap send endpoint. Declared as a var so tests
// can substitute an httptest server.
var mailtrapAPIBase = "https://send.api.mailtrap.io/api/send"

const (
	defaultTimeout   = 30 * time.Second
	mailtrapCategory = "arxiv-digest"
)

// MailtrapSender sends mail through the Mailtrap send API.
type MailtrapSender struct {
	cfg        types.MailConfig
	httpClient *http.Client
}

// NewMailtrapSender returns a MailtrapSender authenticating with cfg.APIToken.
func NewMailtrapSender(cfg types.MailConfig) *MailtrapSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &MailtrapSender{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type mailtrapAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailtrapPayload struct {
	From            mailtrapAddress   `json:"from"`
	To              []mailtrapAddress `json:"to"`
	Subject         string            `json:"subject"`
	HTML            string            `json:"html"`
	Category        string            `json:"category,omitempty"`
	CustomVariables map[string]string `json:"custom_variables,omitempty"`
}

type mailtrapResponse struct {
	Success    bool     `json:"success"`
	MessageIDs []string `json:"message_ids"`
	Errors     []string `json:"errors"`
}

func (s *MailtrapSender) buildPayload(msg types.MailMessage) mailtrapPayload {
	email, name := fromAddress(s.cfg)
	p := mailtrapPayload{
		From:     mailtrapAddress{Email: email, Name: name},
		To:       []mailtrapAddress{{Email: msg.To}},
		Subject:  msg.Subject,
		HTML:     msg.HTML,
		Category: mailtrapCategory,
	}
	if msg.RunID != "" {
		p.CustomVariables = map[string]string{"run_id": msg.RunID}
	}
	return p
}

// Send posts msg to the Mailtrap API. Any non-2xx response is an error:
// *ClientError for 4xx, *ServerError for 5xx.
func (s *MailtrapSender) Send(ctx context.Context, msg types.MailMessage) error {
	body, err := json.Marshal(s.buildPayload(msg))
	if err != nil {
		return fmt.Errorf("marshal mailtrap payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, mailtrapAPIBase, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	if s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mailtrap request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, _ := io.ReadAll(resp.Body)

	var parsed mailtrapResponse
	_ = json.Unmarshal(respBody, &parsed)

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("mailtrap client error (HTTP %d): %s", resp.StatusCode, errorDetail(parsed, respBody)),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("mailtrap server error (HTTP %d): %s", resp.StatusCode, errorDetail(parsed, respBody)),
		}
	default:
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(respBody))
	}
}

func errorDetail(parsed mailtrapResponse, raw []byte) string {
	if len(parsed.Errors) > 0 {
		return strings.Join(parsed.Errors, "; ")
	}
	return strings.TrimSpace(string(raw))
}
