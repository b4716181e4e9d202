package main

import (
	"encoding/json"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/tejaskumbhar288/email-mcp-server/pkgs/tools"
)

// dispatch marshals params and runs the named tool, printing its text
// response.
func dispatch(h *tools.Handler, name string, params map[string]interface{}) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return err
	}
	text, err := h.Dispatch(name, raw)
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func handleRead(h *tools.Handler, args []string) error {
	fs := flag.NewFlagSet("read", flag.ExitOnError)
	count := fs.Int("count", 10, "Number of emails to retrieve")
	folder := fs.String("folder", "INBOX", "Folder to read from")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return dispatch(h, tools.ToolReadEmails, map[string]interface{}{
		"count":  *count,
		"folder": *folder,
	})
}

func handleFilter(h *tools.Handler, args []string) error {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	sender := fs.String("sender", "", "Filter by sender address")
	subject := fs.String("subject", "", "Filter by subject substring")
	unread := fs.Bool("unread", false, "Filter by unread status")
	folder := fs.String("folder", "INBOX", "Folder to search in")
	if err := fs.Parse(args); err != nil {
		return err
	}

	params := map[string]interface{}{
		"sender":  *sender,
		"subject": *subject,
		"folder":  *folder,
	}
	// --unread is tri-state: only constrain when the flag was given.
	if fs.Changed("unread") {
		params["is_unread"] = *unread
	}
	return dispatch(h, tools.ToolFilterEmails, params)
}

func handleSend(h *tools.Handler, args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	to := fs.String("to", "", "Recipient address")
	subject := fs.String("subject", "", "Email subject")
	body := fs.String("body", "", "Plain text body")
	cc := fs.String("cc", "", "CC recipient")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return dispatch(h, tools.ToolSendEmail, map[string]interface{}{
		"to":      *to,
		"subject": *subject,
		"body":    *body,
		"cc":      *cc,
	})
}

func handleUnreadCount(h *tools.Handler, args []string) error {
	fs := flag.NewFlagSet("unread-count", flag.ExitOnError)
	folder := fs.String("folder", "INBOX", "Folder to check")
	if err := fs.Parse(args); err != nil {
		return err
	}
	return dispatch(h, tools.ToolGetUnreadCount, map[string]interface{}{
		"folder": *folder,
	})
}
