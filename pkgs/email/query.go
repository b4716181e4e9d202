package email

import (
	"github.com/emersion/go-imap/v2"
)

// translateCriteria converts FilterCriteria into a single IMAP SEARCH
// query. Every set field contributes one predicate; the protocol combines
// juxtaposed predicates conjunctively, so the result expresses the AND of
// all criteria in one round trip. Substring matching on headers is done
// server-side by HEADER search.
//
// An empty FilterCriteria yields the empty criteria value, which the
// protocol treats as ALL.
func translateCriteria(criteria FilterCriteria) *imap.SearchCriteria {
	query := &imap.SearchCriteria{}

	if criteria.Sender != "" {
		query.Header = append(query.Header, imap.SearchCriteriaHeaderField{
			Key:   "From",
			Value: criteria.Sender,
		})
	}
	if criteria.Subject != "" {
		query.Header = append(query.Header, imap.SearchCriteriaHeaderField{
			Key:   "Subject",
			Value: criteria.Subject,
		})
	}
	if criteria.Unread != nil {
		if *criteria.Unread {
			query.NotFlag = append(query.NotFlag, imap.FlagSeen)
		} else {
			query.Flag = append(query.Flag, imap.FlagSeen)
		}
	}

	return query
}
