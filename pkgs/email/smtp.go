package email

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
)

// validateOutgoing checks the outgoing message before any network attempt.
// Missing required fields and malformed recipient addresses are rejected
// here so a bad request never opens a send session.
func validateOutgoing(to, subject, body, cc string) error {
	if strings.TrimSpace(to) == "" {
		return &SendError{Reason: "recipient (to) is required"}
	}
	if strings.TrimSpace(subject) == "" {
		return &SendError{Reason: "subject is required"}
	}
	if strings.TrimSpace(body) == "" {
		return &SendError{Reason: "body is required"}
	}
	if _, err := netmail.ParseAddress(to); err != nil {
		return &SendError{Reason: fmt.Sprintf("invalid recipient address %q", to), Err: err}
	}
	if cc != "" {
		if _, err := netmail.ParseAddress(cc); err != nil {
			return &SendError{Reason: fmt.Sprintf("invalid cc address %q", cc), Err: err}
		}
	}
	return nil
}

// transmit composes the message and submits it over the session. The
// remote server queues it for delivery; final delivery is not observable
// from here.
func (c *Client) transmit(session *SendSession, to, subject, body, cc string) error {
	msg, err := c.composeMessage(to, subject, body, cc)
	if err != nil {
		return &SendError{Reason: "failed to build message", Err: err}
	}

	recipients := []string{to}
	if cc != "" {
		recipients = append(recipients, cc)
	}

	if err := session.client.SendMail(c.cfg.User, recipients, msg); err != nil {
		return &SendError{Reason: "transmission failed", Err: err}
	}
	return nil
}

// composeMessage builds a structurally valid outgoing message with the
// authenticated account as sender and the body as a text/plain part.
func (c *Client) composeMessage(to, subject, body, cc string) (*bytes.Buffer, error) {
	var buf bytes.Buffer

	var header mail.Header
	header.SetDate(time.Now())
	header.SetSubject(subject)
	header.SetAddressList("From", []*mail.Address{{Address: c.cfg.User}})
	header.SetAddressList("To", []*mail.Address{{Address: to}})
	if cc != "" {
		header.SetAddressList("Cc", []*mail.Address{{Address: cc}})
	}
	header.Set("Message-ID", generateMessageID(c.cfg.User))

	iw, err := mail.CreateInlineWriter(&buf, header)
	if err != nil {
		return nil, err
	}

	var th mail.InlineHeader
	th.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	w, err := iw.CreatePart(th)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte(body)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	if err := iw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}

// generateMessageID produces an RFC 5322 compliant Message-ID using the
// domain of the sender address. Format: <timestamp.random@domain>
func generateMessageID(fromEmail string) string {
	domain := "localhost"
	if idx := strings.Index(fromEmail, "@"); idx >= 0 {
		domain = fromEmail[idx+1:]
	}

	b := make([]byte, 8)
	_, _ = rand.Read(b)

	return fmt.Sprintf("<%d.%s@%s>", time.Now().UnixNano(), hex.EncodeToString(b), domain)
}
