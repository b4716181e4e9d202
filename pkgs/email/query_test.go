package email

import (
	"testing"

	"github.com/emersion/go-imap/v2"
)

func TestTranslateCriteria_EmptyMatchesAll(t *testing.T) {
	query := translateCriteria(FilterCriteria{})

	// The zero criteria value is the protocol's ALL query; make sure no
	// stray predicate sneaks in.
	if len(query.Header) != 0 || len(query.Flag) != 0 || len(query.NotFlag) != 0 {
		t.Errorf("empty criteria produced predicates: %+v", query)
	}
}

func TestTranslateCriteria_Sender(t *testing.T) {
	query := translateCriteria(FilterCriteria{Sender: "a@x.com"})

	if len(query.Header) != 1 {
		t.Fatalf("expected 1 header predicate, got %d", len(query.Header))
	}
	if query.Header[0].Key != "From" || query.Header[0].Value != "a@x.com" {
		t.Errorf("header predicate = %+v", query.Header[0])
	}
}

func TestTranslateCriteria_Subject(t *testing.T) {
	query := translateCriteria(FilterCriteria{Subject: "invoice"})

	if len(query.Header) != 1 {
		t.Fatalf("expected 1 header predicate, got %d", len(query.Header))
	}
	if query.Header[0].Key != "Subject" || query.Header[0].Value != "invoice" {
		t.Errorf("header predicate = %+v", query.Header[0])
	}
}

func TestTranslateCriteria_UnreadTriState(t *testing.T) {
	unread := true
	query := translateCriteria(FilterCriteria{Unread: &unread})
	if len(query.NotFlag) != 1 || query.NotFlag[0] != imap.FlagSeen {
		t.Errorf("unread=true: NotFlag = %v, want [\\Seen]", query.NotFlag)
	}
	if len(query.Flag) != 0 {
		t.Errorf("unread=true: Flag = %v, want empty", query.Flag)
	}

	read := false
	query = translateCriteria(FilterCriteria{Unread: &read})
	if len(query.Flag) != 1 || query.Flag[0] != imap.FlagSeen {
		t.Errorf("unread=false: Flag = %v, want [\\Seen]", query.Flag)
	}
	if len(query.NotFlag) != 0 {
		t.Errorf("unread=false: NotFlag = %v, want empty", query.NotFlag)
	}

	query = translateCriteria(FilterCriteria{})
	if len(query.Flag) != 0 || len(query.NotFlag) != 0 {
		t.Errorf("unread unset: flag predicates = %v / %v, want none", query.Flag, query.NotFlag)
	}
}

func TestTranslateCriteria_CombinedIsSingleQuery(t *testing.T) {
	unread := true
	query := translateCriteria(FilterCriteria{
		Sender:  "a@x.com",
		Subject: "report",
		Unread:  &unread,
	})

	// All predicates live on one criteria value so the server evaluates
	// their conjunction in a single search.
	if len(query.Header) != 2 {
		t.Errorf("expected 2 header predicates, got %d", len(query.Header))
	}
	if len(query.NotFlag) != 1 {
		t.Errorf("expected 1 flag predicate, got %d", len(query.NotFlag))
	}
	if len(query.Or) != 0 || len(query.Not) != 0 {
		t.Errorf("conjunction must not use Or/Not groups: %+v", query)
	}
}

func TestTranslateCriteria_FolderNotInQuery(t *testing.T) {
	query := translateCriteria(FilterCriteria{Folder: "Archive"})

	// Folder scoping happens via SELECT, never via search predicates.
	if len(query.Header) != 0 || len(query.Flag) != 0 || len(query.NotFlag) != 0 {
		t.Errorf("folder leaked into query: %+v", query)
	}
}
