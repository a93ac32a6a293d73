// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles the DigestConfig for a run from viper (config
// file, environment, flags), the plain-text list files, and loaded secrets.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/internal/secrets"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// SetDefaults registers every configuration key with its default value.
// Registering a key also makes it visible to environment overrides.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("categories", []string{})
	v.SetDefault("keywords", []string{})
	v.SetDefault("recipient", "")
	v.SetDefault("recency_days", 8)
	v.SetDefault("send_empty", true)
	v.SetDefault("archive_dir", "")
	v.SetDefault("categories_file", "")
	v.SetDefault("keywords_file", "")
	v.SetDefault("recipient_file", "")

	v.SetDefault("listing.timeout", 60*time.Second)
	v.SetDefault("listing.user_agent", "arxiv-digest/0.1")
	v.SetDefault("listing.page_size", 100)
	v.SetDefault("listing.max_results", 0)
	v.SetDefault("listing.page_delay", 3*time.Second)

	v.SetDefault("store.backend", string(types.StoreFile))
	v.SetDefault("store.path", "previous_arxivs.txt")

	v.SetDefault("mail.backend", string(types.MailMailtrap))
	v.SetDefault("mail.timeout", 30*time.Second)
	v.SetDefault("mail.user_agent", "arxiv-digest/0.1")
	v.SetDefault("mail.from_email", "mailtrap@stanley-wu.com")
	v.SetDefault("mail.from_name", "arXiv Digest")
	v.SetDefault("mail.subject", "Daily arxiv Digest (DaD)")
	v.SetDefault("mail.api_token", "")
	v.SetDefault("mail.smtp_host", "")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.smtp_username", "")
	v.SetDefault("mail.smtp_password", "")
}

// Load decodes the configuration held by v, fills lists from their files
// when the inline values are empty, and resolves mail credentials from
// loadedSecrets and the environment. It does not validate.
func Load(v *viper.Viper, loadedSecrets map[string]string) (types.DigestConfig, error) {
	var cfg types.DigestConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Categories = cleanList(cfg.Categories)
	cfg.Keywords = cleanList(cfg.Keywords)
	cfg.Recipient = strings.TrimSpace(cfg.Recipient)

	if len(cfg.Categories) == 0 && cfg.CategoriesFile != "" {
		list, err := ReadListFile(cfg.CategoriesFile)
		if err != nil {
			return cfg, err
		}
		cfg.Categories = list
	}
	if len(cfg.Keywords) == 0 && cfg.KeywordsFile != "" {
		list, err := ReadListFile(cfg.KeywordsFile)
		if err != nil {
			return cfg, err
		}
		cfg.Keywords = list
	}
	if cfg.Recipient == "" && cfg.RecipientFile != "" {
		data, err := os.ReadFile(cfg.RecipientFile)
		if err != nil {
			return cfg, fmt.Errorf("reading recipient file: %w", err)
		}
		cfg.Recipient = strings.TrimSpace(string(data))
	}

	if cfg.Mail.APIToken == "" {
		cfg.Mail.APIToken = secrets.Lookup(loadedSecrets, secrets.MailtrapAPIToken)
	}
	if cfg.Mail.SMTPPassword == "" {
		cfg.Mail.SMTPPassword = secrets.Lookup(loadedSecrets, secrets.SMTPPassword)
	}

	return cfg, nil
}

// ReadListFile reads one item per line, trimming whitespace and skipping
// blank lines.
func ReadListFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading list file: %w", err)
	}
	return cleanList(strings.Split(string(data), "\n")), nil
}

// Validate checks that cfg describes a runnable digest. When sending is
// false the mail settings are not checked.
func Validate(cfg types.DigestConfig, sending bool) error {
	var problems []string

	if len(cfg.Categories) == 0 {
		problems = append(problems, "at least one category is required")
	}
	if len(cfg.Keywords) == 0 {
		problems = append(problems, "at least one keyword is required")
	}
	if cfg.RecencyDays <= 0 {
		problems = append(problems, fmt.Sprintf("recency_days must be positive, got %d", cfg.RecencyDays))
	}
	if cfg.Listing.PageSize < 0 {
		problems = append(problems, "listing.page_size must not be negative")
	}

	switch cfg.Store.Backend {
	case types.StoreFile, types.StoreSQLite, "":
	default:
		problems = append(problems, fmt.Sprintf("unknown store backend %q", cfg.Store.Backend))
	}

	if sending {
		if !strings.Contains(cfg.Recipient, "@") {
			problems = append(problems, fmt.Sprintf("recipient %q is not an email address", cfg.Recipient))
		}
		switch cfg.Mail.Backend {
		case types.MailMailtrap, "":
			if cfg.Mail.APIToken == "" {
				problems = append(problems, "mailtrap backend requires an API token (mail.api_token, .secrets/mailtrap-api-token, or MAILTRAP_API_TOKEN)")
			}
		case types.MailSMTP:
			if cfg.Mail.SMTPHost == "" {
				problems = append(problems, "smtp backend requires mail.smtp_host")
			}
		default:
			problems = append(problems, fmt.Sprintf("unknown mail backend %q", cfg.Mail.Backend))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
