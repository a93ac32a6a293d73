// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.MailConfig
		want    any
		wantErr string
	}{
		{"default mailtrap", types.MailConfig{APIToken: "tok"}, &MailtrapSender{}, ""},
		{"mailtrap", types.MailConfig{Backend: types.MailMailtrap, APIToken: "tok"}, &MailtrapSender{}, ""},
		{"mailtrap without token", types.MailConfig{Backend: types.MailMailtrap}, nil, "missing mail credentials"},
		{"smtp", types.MailConfig{Backend: types.MailSMTP, SMTPHost: "smtp.example.com"}, &SMTPSender{}, ""},
		{"smtp without host", types.MailConfig{Backend: types.MailSMTP}, nil, "smtp_host"},
		{"unknown", types.MailConfig{Backend: "pigeon"}, nil, "unknown mail backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}
}

func TestNewMissingTokenIsCredentialsError(t *testing.T) {
	_, err := New(types.MailConfig{})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestFromAddressDefaults(t *testing.T) {
	email, name := fromAddress(types.MailConfig{})
	assert.Equal(t, "mailtrap@stanley-wu.com", email)
	assert.Equal(t, "arXiv Digest", name)

	email, name = fromAddress(types.MailConfig{FromEmail: "me@example.com", FromName: "Me"})
	assert.Equal(t, "me@example.com", email)
	assert.Equal(t, "Me", name)
}
