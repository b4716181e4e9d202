package email

// Message is the normalized representation of one email as exposed to
// callers. It is built fresh per fetch from raw protocol data and never
// mutated afterwards.
//
// ID is the server-assigned sequence identifier for the session in which
// the message was fetched; it is not stable across sessions and must not
// be persisted.
type Message struct {
	ID       uint32 `json:"id"`
	Subject  string `json:"subject"`
	From     string `json:"from"`
	To       string `json:"to"`
	Date     string `json:"date"`
	Body     string `json:"body"`
	IsUnread bool   `json:"is_unread"`
}

// FilterCriteria describes a mailbox search. All set fields combine with
// AND semantics; zero-value fields impose no constraint.
type FilterCriteria struct {
	// Sender matches against the From header (server-side substring).
	Sender string
	// Subject matches against the Subject header (server-side substring).
	Subject string
	// Unread is tri-state: nil imposes no constraint, true requires the
	// unread flag, false requires it to be absent.
	Unread *bool
	// Folder is the mailbox to search; empty means INBOX.
	Folder string
}

// DefaultFolder is the mailbox used when no folder is given.
const DefaultFolder = "INBOX"

// folderOrDefault normalizes an empty folder name to INBOX.
func folderOrDefault(folder string) string {
	if folder == "" {
		return DefaultFolder
	}
	return folder
}
