// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail delivers rendered digests through the Mailtrap send API or
// a plain SMTP server.
package mail

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	defaultFromEmail = "mailtrap@stanley-wu.com"
	defaultFromName  = "arXiv Digest"
)

// Sender delivers one message.
type Sender interface {
	Send(ctx context.Context, msg types.MailMessage) error
}

// ErrMissingCredentials reports a backend configured without its secret.
var ErrMissingCredentials = errors.New("missing mail credentials")

// New returns the Sender selected by cfg.Backend. An empty backend selects
// Mailtrap.
func New(cfg types.MailConfig) (Sender, error) {
	switch cfg.Backend {
	case types.MailMailtrap, "":
		if cfg.APIToken == "" {
			return nil, fmt.Errorf("%w: mailtrap api token", ErrMissingCredentials)
		}
		return NewMailtrapSender(cfg), nil
	case types.MailSMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("smtp backend requires smtp_host")
		}
		return NewSMTPSender(cfg), nil
	default:
		return nil, fmt.Errorf("unknown mail backend %q: use mailtrap or smtp", cfg.Backend)
	}
}

// ClientError is a 4xx response from the mail API. Retrying will not help.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError is a 5xx response from the mail API.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

func fromAddress(cfg types.MailConfig) (email, name string) {
	email, name = cfg.FromEmail, cfg.FromName
	if email == "" {
		email = defaultFromEmail
	}
	if name == "" {
		name = defaultFromName
	}
	return email, name
}
