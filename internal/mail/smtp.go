// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const defaultSMTPPort = 587

// sendMail is smtp.SendMail. Tests replace it to capture the message.
var sendMail = smtp.SendMail

// SMTPSender sends mail through an SMTP server with PLAIN authentication.
type SMTPSender struct {
	cfg types.MailConfig
}

// NewSMTPSender returns an SMTPSender for cfg.
func NewSMTPSender(cfg types.MailConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers msg as a single-part HTML message.
func (s *SMTPSender) Send(ctx context.Context, msg types.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	port := s.cfg.SMTPPort
	if port == 0 {
		port = defaultSMTPPort
	}
	addr := net.JoinHostPort(s.cfg.SMTPHost, strconv.Itoa(port))

	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}

	from, _ := fromAddress(s.cfg)
	if err := sendMail(addr, auth, from, []string{msg.To}, s.buildMessage(msg)); err != nil {
		return fmt.Errorf("smtp send via %s: %w", addr, err)
	}
	return nil
}

func (s *SMTPSender) buildMessage(msg types.MailMessage) []byte {
	email, name := fromAddress(s.cfg)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", name), email)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	if msg.RunID != "" {
		fmt.Fprintf(&b, "X-Digest-Run: %s\r\n", msg.RunID)
	}
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
