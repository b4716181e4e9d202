package email

import (
	"sort"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// search issues one SEARCH against the session's selected folder and
// returns the matching UIDs in ascending (oldest-first) mailbox order.
func (c *Client) search(session *ReadSession, query *imap.SearchCriteria) ([]imap.UID, error) {
	data, err := session.client.UIDSearch(query, nil).Wait()
	if err != nil {
		return nil, &FetchError{Op: "search", Err: err}
	}

	uids := data.AllUIDs()
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })
	return uids, nil
}

// fetch runs the full read pipeline: search, take the limit most recent
// matches, retrieve each message without touching its flags, and decode it
// into a Message. Results are newest first.
//
// Individual messages that cannot be decoded are skipped so one broken
// message does not fail the batch; a search or fetch channel failure
// aborts the call with a FetchError.
func (c *Client) fetch(session *ReadSession, query *imap.SearchCriteria, limit int) ([]Message, error) {
	uids, err := c.search(session, query)
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return []Message{}, nil
	}

	// "Recent" means the tail of the mailbox order, not the head.
	if limit > 0 && len(uids) > limit {
		uids = uids[len(uids)-limit:]
	}

	// BODY.PEEK keeps the fetch observational: the server must not set
	// \Seen as a side effect of us reading the message.
	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOptions := &imap.FetchOptions{
		Envelope:    true,
		Flags:       true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	bufs, err := session.client.Fetch(imap.UIDSetNum(uids...), fetchOptions).Collect()
	if err != nil {
		return nil, &FetchError{Op: "fetch", Err: err}
	}

	// Servers may answer out of order; restore mailbox order first.
	sort.Slice(bufs, func(i, j int) bool { return bufs[i].UID < bufs[j].UID })

	messages := make([]Message, 0, len(bufs))
	for i := len(bufs) - 1; i >= 0; i-- {
		msg, err := c.decodeMessage(bufs[i], bodySection)
		if err != nil {
			c.logger.Warn("skipping undecodable message",
				"folder", session.Folder(), "uid", bufs[i].UID, "error", err)
			continue
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// decodeMessage converts one raw fetch result into a normalized Message.
func (c *Client) decodeMessage(buf *imapclient.FetchMessageBuffer, section *imap.FetchItemBodySection) (Message, error) {
	env := buf.Envelope
	if env == nil {
		return Message{}, &FetchError{Op: "decode", Err: errMissingEnvelope}
	}

	msg := Message{
		ID:       buf.SeqNum,
		Subject:  decodeHeader(env.Subject),
		From:     formatAddressList(env.From),
		To:       formatAddressList(env.To),
		IsUnread: !hasSeenFlag(buf.Flags),
	}
	if !env.Date.IsZero() {
		msg.Date = env.Date.Format(dateLayout)
	}

	raw := buf.FindBodySection(section)
	if raw != nil {
		body, err := extractBody(raw)
		if err != nil {
			return Message{}, err
		}
		msg.Body = previewText(body, c.previewLength())
	}

	return msg, nil
}

func hasSeenFlag(flags []imap.Flag) bool {
	for _, f := range flags {
		if f == imap.FlagSeen {
			return true
		}
	}
	return false
}
