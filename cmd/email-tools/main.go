package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	flag "github.com/spf13/pflag"

	"github.com/tejaskumbhar288/email-mcp-server/pkgs/config"
	"github.com/tejaskumbhar288/email-mcp-server/pkgs/email"
	"github.com/tejaskumbhar288/email-mcp-server/pkgs/tools"
)

const version = "1.0.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("email-tools v%s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	if cmd == "help" {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config: %v", err)
	}

	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Debug("config loaded", "account", cfg.Redacted())

	client := email.NewClient(email.ClientConfig{
		User:          cfg.EmailUser,
		Pass:          cfg.EmailPass,
		IMAPAddr:      cfg.IMAPAddr(),
		SMTPAddr:      cfg.SMTPAddr(),
		IMAPTLS:       true,
		SMTPStartTLS:  true,
		DialTimeout:   cfg.DialTimeout,
		OpTimeout:     cfg.OpTimeout,
		PreviewLength: cfg.PreviewLength,
	}, logger)

	handler := tools.NewHandler(client, client)

	switch cmd {
	case "read":
		if err := handleRead(handler, cmdArgs); err != nil {
			fatal("read: %v", err)
		}
	case "filter":
		if err := handleFilter(handler, cmdArgs); err != nil {
			fatal("filter: %v", err)
		}
	case "send":
		if err := handleSend(handler, cmdArgs); err != nil {
			fatal("send: %v", err)
		}
	case "unread-count":
		if err := handleUnreadCount(handler, cmdArgs); err != nil {
			fatal("unread-count: %v", err)
		}
	case "serve":
		if err := serve(handler, logger); err != nil {
			fatal("serve: %v", err)
		}
	default:
		fatal("unknown command '%s'", cmd)
	}
}

// setupLogger builds the process logger. Logs go to stderr so the serve
// loop keeps stdout clean for responses.
func setupLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{Level: lvl})
	}
	return slog.New(handler)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `email-tools v%s - Email operations for tool-calling agents

Usage:
  email-tools <command> [command options]

Commands:
  read          Read recent emails from a folder
  filter        Search emails by sender, subject or unread status
  send          Send a plain-text email
  unread-count  Count unread emails in a folder
  serve         Serve tool calls over stdin/stdout (JSON lines)

Global Options:
  --version     Show version information

Read Options:
  --count <n>          Number of emails to retrieve (default: 10)
  --folder <name>      Folder to read from (default: INBOX)

Filter Options:
  --sender <email>     Filter by sender address
  --subject <text>     Filter by subject substring
  --unread <bool>      Filter by unread status (omit for no constraint)
  --folder <name>      Folder to search in (default: INBOX)

Send Options:
  --to <email>         Recipient address (required)
  --subject <text>     Email subject (required)
  --body <text>        Plain text body (required)
  --cc <email>         CC recipient

Unread-Count Options:
  --folder <name>      Folder to check (default: INBOX)

Configuration (environment or .env file):
  EMAIL_USER, EMAIL_PASS        Account identity and secret (required)
  IMAP_SERVER, IMAP_PORT        Read endpoint (default imap.gmail.com:993)
  SMTP_SERVER, SMTP_PORT        Send endpoint (default smtp.gmail.com:587)
  EMAIL_DIAL_TIMEOUT            Connect/TLS timeout (default 30s)
  EMAIL_OP_TIMEOUT              Per-command I/O timeout (default 30s)
  EMAIL_PREVIEW_LENGTH          Body preview length (default 300)
  LOG_LEVEL, LOG_FORMAT         Logging (default info, text)

Examples:
  email-tools read --count 5
  email-tools filter --sender a@x.com --unread true
  email-tools send --to user@example.com --subject "Hello" --body "Hi!"
  email-tools unread-count
  email-tools serve
`, version)
}
