package types

import "time"

// HTTPConfig holds shared HTTP settings used by collaborators that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "arxiv-digest/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ListingConfig holds settings for the arXiv listing client.
type ListingConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// PageSize is the number of results requested per API call (default 100).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// MaxResults caps the number of results read per category. Zero means
	// no cap; reading still stops at the recency boundary.
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// PageDelay is the pause between consecutive page requests (default 3s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay" mapstructure:"page_delay"`
}

// StoreBackend identifies the sent-id store implementation.
type StoreBackend string

const (
	StoreFile   StoreBackend = "file"
	StoreSQLite StoreBackend = "sqlite"
)

// StoreConfig holds settings for the sent-id store.
type StoreConfig struct {
	// Backend selects the store: file or sqlite.
	Backend StoreBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// Path is the flat file or SQLite database location.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// MailBackend identifies the mail transport.
type MailBackend string

const (
	MailMailtrap MailBackend = "mailtrap"
	MailSMTP     MailBackend = "smtp"
)

// MailConfig holds settings for the mail collaborator.
type MailConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Backend selects the transport: mailtrap or smtp.
	Backend MailBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	FromEmail string `json:"from_email" yaml:"from_email" mapstructure:"from_email"`
	FromName  string `json:"from_name" yaml:"from_name" mapstructure:"from_name"`
	Subject   string `json:"subject" yaml:"subject" mapstructure:"subject"`

	// APIToken authenticates against the Mailtrap send API.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty" mapstructure:"api_token"`

	SMTPHost     string `json:"smtp_host,omitempty" yaml:"smtp_host,omitempty" mapstructure:"smtp_host"`
	SMTPPort     int    `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" mapstructure:"smtp_port"`
	SMTPUsername string `json:"smtp_username,omitempty" yaml:"smtp_username,omitempty" mapstructure:"smtp_username"`
	SMTPPassword string `json:"smtp_password,omitempty" yaml:"smtp_password,omitempty" mapstructure:"smtp_password"`
}

// DigestConfig is the complete configuration of one digest run. It is
// built once at startup and passed explicitly to every component.
type DigestConfig struct {
	// Categories lists the arXiv subject categories to query (e.g. "cs.LG").
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// Keywords selects entries whose rendered text contains any of them,
	// case-insensitively.
	Keywords []string `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Recipient is the digest's destination address.
	Recipient string `json:"recipient" yaml:"recipient" mapstructure:"recipient"`

	// RecencyDays is the recency window in days (default 8).
	RecencyDays int `json:"recency_days" yaml:"recency_days" mapstructure:"recency_days"`

	// SendEmpty controls whether a digest with no entries is still mailed.
	SendEmpty bool `json:"send_empty" yaml:"send_empty" mapstructure:"send_empty"`

	// ArchiveDir, when set, receives a YAML record of every sent digest.
	ArchiveDir string `json:"archive_dir,omitempty" yaml:"archive_dir,omitempty" mapstructure:"archive_dir"`

	// CategoriesFile, KeywordsFile and RecipientFile are plain-text inputs,
	// one item per line, used when the inline values are empty.
	CategoriesFile string `json:"categories_file,omitempty" yaml:"categories_file,omitempty" mapstructure:"categories_file"`
	KeywordsFile   string `json:"keywords_file,omitempty" yaml:"keywords_file,omitempty" mapstructure:"keywords_file"`
	RecipientFile  string `json:"recipient_file,omitempty" yaml:"recipient_file,omitempty" mapstructure:"recipient_file"`

	Listing ListingConfig `json:"listing" yaml:"listing" mapstructure:"listing"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Mail    MailConfig    `json:"mail" yaml:"mail" mapstructure:"mail"`
}

// RecencyWindow returns the recency window as a duration.
func (c DigestConfig) RecencyWindow() time.Duration {
	return time.Duration(c.RecencyDays) * 24 * time.Hour
}

// MailMessage is a rendered digest ready for delivery.
type MailMessage struct {
	To      string
	Subject string
	HTML    string

	// RunID identifies the digest run that produced the message.
	RunID string
}
