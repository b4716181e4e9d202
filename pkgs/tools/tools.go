// Package tools exposes the mail operations as a closed set of named
// tools with JSON parameter payloads, for an external tool-calling agent
// to invoke. The set is fixed: read_emails, filter_emails, send_email and
// get_unread_count.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/tejaskumbhar288/email-mcp-server/pkgs/email"
)

// Tool names understood by Dispatch.
const (
	ToolReadEmails     = "read_emails"
	ToolFilterEmails   = "filter_emails"
	ToolSendEmail      = "send_email"
	ToolGetUnreadCount = "get_unread_count"
)

// Mailbox is the read side of the mail client consumed by the tools.
type Mailbox interface {
	ReadEmails(count int, folder string) ([]email.Message, error)
	FilterEmails(criteria email.FilterCriteria) ([]email.Message, error)
	UnreadCount(folder string) (int, error)
}

// Sender is the send side of the mail client consumed by the tools.
type Sender interface {
	SendEmail(to, subject, body, cc string) error
}

// Handler dispatches tool invocations to a mail client.
type Handler struct {
	mailbox Mailbox
	sender  Sender
}

// NewHandler creates a Handler. *email.Client satisfies both interfaces.
func NewHandler(mailbox Mailbox, sender Sender) *Handler {
	return &Handler{mailbox: mailbox, sender: sender}
}

// Names returns the closed set of tool names.
func Names() []string {
	return []string{ToolReadEmails, ToolFilterEmails, ToolSendEmail, ToolGetUnreadCount}
}

type readParams struct {
	Count  int    `json:"count"`
	Folder string `json:"folder"`
}

type filterParams struct {
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	IsUnread *bool  `json:"is_unread"`
	Folder   string `json:"folder"`
}

type sendParams struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Cc      string `json:"cc"`
}

type countParams struct {
	Folder string `json:"folder"`
}

// Dispatch invokes the named tool with the given JSON arguments and
// returns the formatted text response. Unknown tool names and operation
// failures are reported as errors; the caller decides how to surface them.
func (h *Handler) Dispatch(name string, args json.RawMessage) (string, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case ToolReadEmails:
		p := readParams{Count: 10, Folder: email.DefaultFolder}
		if err := json.Unmarshal(args, &p); err != nil {
			return "", fmt.Errorf("%s: invalid arguments: %w", name, err)
		}
		if p.Count <= 0 {
			p.Count = 10
		}
		messages, err := h.mailbox.ReadEmails(p.Count, p.Folder)
		if err != nil {
			return "", err
		}
		return formatMessageList(messages, p.Folder), nil

	case ToolFilterEmails:
		p := filterParams{Folder: email.DefaultFolder}
		if err := json.Unmarshal(args, &p); err != nil {
			return "", fmt.Errorf("%s: invalid arguments: %w", name, err)
		}
		criteria := email.FilterCriteria{
			Sender:  p.Sender,
			Subject: p.Subject,
			Unread:  p.IsUnread,
			Folder:  p.Folder,
		}
		messages, err := h.mailbox.FilterEmails(criteria)
		if err != nil {
			return "", err
		}
		return formatFilterResult(messages, criteria), nil

	case ToolSendEmail:
		var p sendParams
		if err := json.Unmarshal(args, &p); err != nil {
			return "", fmt.Errorf("%s: invalid arguments: %w", name, err)
		}
		if err := h.sender.SendEmail(p.To, p.Subject, p.Body, p.Cc); err != nil {
			return "", err
		}
		return formatSendResult(p), nil

	case ToolGetUnreadCount:
		p := countParams{Folder: email.DefaultFolder}
		if err := json.Unmarshal(args, &p); err != nil {
			return "", fmt.Errorf("%s: invalid arguments: %w", name, err)
		}
		count, err := h.mailbox.UnreadCount(p.Folder)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("📬 You have **%d** unread email(s) in %s.", count, p.Folder), nil

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// DispatchText is like Dispatch but never fails: errors are rendered as a
// display-ready text response for the invoking agent.
func (h *Handler) DispatchText(name string, args json.RawMessage) string {
	text, err := h.Dispatch(name, args)
	if err != nil {
		return fmt.Sprintf("❌ Error: %v", err)
	}
	return text
}
