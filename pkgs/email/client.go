package email

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// ClientConfig holds the connection settings for one mail account.
type ClientConfig struct {
	User string
	Pass string

	// IMAPAddr and SMTPAddr are host:port endpoints.
	IMAPAddr string
	SMTPAddr string

	// IMAPTLS enables implicit TLS for the read connection. SMTPStartTLS
	// enables the STARTTLS upgrade before authenticating. Both default to
	// off only so tests can talk to in-process plaintext servers; real
	// configurations enable them.
	IMAPTLS      bool
	SMTPStartTLS bool

	// TLSConfig overrides the TLS client configuration for both
	// connections. Nil means verify against the endpoint's host name.
	TLSConfig *tls.Config

	// DialTimeout bounds connect and TLS negotiation. OpTimeout bounds
	// each protocol command after that. Zero means 30s for either.
	DialTimeout time.Duration
	OpTimeout   time.Duration

	// PreviewLength is the maximum number of runes of body text per
	// message. Zero means 300.
	PreviewLength int
}

// Client exposes the four mail operations over short-lived sessions. Each
// call opens its own authenticated session and closes it before returning,
// so a Client is safe for concurrent use.
type Client struct {
	cfg    ClientConfig
	logger *slog.Logger
}

// NewClient creates a client for the given account.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		logger: logger.With("user", cfg.User),
	}
}

// ReadEmails returns the count most recent messages in folder, newest
// first.
func (c *Client) ReadEmails(count int, folder string) ([]Message, error) {
	if count <= 0 {
		count = 10
	}

	session, err := c.openReadSession(folder)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	messages, err := c.fetch(session, translateCriteria(FilterCriteria{}), count)
	if err != nil {
		return nil, err
	}

	c.logger.Info("read emails", "folder", session.Folder(), "count", len(messages))
	return messages, nil
}

// FilterEmails returns the messages in the criteria's folder matching all
// set criteria fields, newest first.
func (c *Client) FilterEmails(criteria FilterCriteria) ([]Message, error) {
	session, err := c.openReadSession(criteria.Folder)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	messages, err := c.fetch(session, translateCriteria(criteria), 0)
	if err != nil {
		return nil, err
	}

	c.logger.Info("filtered emails", "folder", session.Folder(), "matches", len(messages))
	return messages, nil
}

// UnreadCount returns the number of messages in folder with the unread
// flag set.
func (c *Client) UnreadCount(folder string) (int, error) {
	session, err := c.openReadSession(folder)
	if err != nil {
		return 0, err
	}
	defer session.Close()

	unread := true
	uids, err := c.search(session, translateCriteria(FilterCriteria{Unread: &unread}))
	if err != nil {
		return 0, err
	}

	c.logger.Info("unread count", "folder", session.Folder(), "unread", len(uids))
	return len(uids), nil
}

// SendEmail validates and sends one plain-text message from the configured
// account. cc may be empty.
func (c *Client) SendEmail(to, subject, body, cc string) error {
	if err := validateOutgoing(to, subject, body, cc); err != nil {
		return err
	}

	session, err := c.openSendSession()
	if err != nil {
		return err
	}
	defer session.Close()

	if err := c.transmit(session, to, subject, body, cc); err != nil {
		return err
	}

	c.logger.Info("email sent", "to", to)
	return nil
}

func (c *Client) previewLength() int {
	if c.cfg.PreviewLength > 0 {
		return c.cfg.PreviewLength
	}
	return 300
}
