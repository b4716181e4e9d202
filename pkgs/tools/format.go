package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/tejaskumbhar288/email-mcp-server/pkgs/email"
)

// formatMessageList renders a read result as display text.
func formatMessageList(messages []email.Message, folder string) string {
	if len(messages) == 0 {
		return fmt.Sprintf("No emails found in %s.", folder)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📧 Found %d email(s) in %s:\n\n", len(messages), folder)
	writeMessageEntries(&b, messages)
	return b.String()
}

// formatFilterResult renders a filter result, echoing the criteria that
// were applied.
func formatFilterResult(messages []email.Message, criteria email.FilterCriteria) string {
	var filters []string
	if criteria.Sender != "" {
		filters = append(filters, fmt.Sprintf("sender: %s", criteria.Sender))
	}
	if criteria.Subject != "" {
		filters = append(filters, fmt.Sprintf("subject contains: %s", criteria.Subject))
	}
	if criteria.Unread != nil {
		filters = append(filters, fmt.Sprintf("unread: %t", *criteria.Unread))
	}

	filterText := "no filters"
	if len(filters) > 0 {
		filterText = strings.Join(filters, ", ")
	}

	if len(messages) == 0 {
		return fmt.Sprintf("🔍 No emails found matching criteria (%s).", filterText)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Found %d email(s) matching criteria (%s):\n\n", len(messages), filterText)
	writeMessageEntries(&b, messages)
	return b.String()
}

// formatSendResult renders the confirmation for a successful send.
func formatSendResult(p sendParams) string {
	var b strings.Builder
	b.WriteString("✅ Email sent successfully!\n\n")
	fmt.Fprintf(&b, "**To:** %s\n", p.To)
	if p.Cc != "" {
		fmt.Fprintf(&b, "**CC:** %s\n", p.Cc)
	}
	fmt.Fprintf(&b, "**Subject:** %s\n", p.Subject)
	fmt.Fprintf(&b, "**Sent at:** %s", time.Now().Format(time.RFC3339))
	return b.String()
}

func writeMessageEntries(b *strings.Builder, messages []email.Message) {
	for i, msg := range messages {
		fmt.Fprintf(b, "%d. **From:** %s\n", i+1, msg.From)
		fmt.Fprintf(b, "   **Subject:** %s\n", msg.Subject)
		fmt.Fprintf(b, "   **Date:** %s\n", msg.Date)
		fmt.Fprintf(b, "   **Preview:** %s\n\n", msg.Body)
	}
}
