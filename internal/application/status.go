// Package application defines the status state machine for job applications.
//
// Valid status graph:
//
//	applied ──► under_review ──► shortlisted ──► interviewing ──► offered ──► hired
//	    │             │               │               │              │
//	    └─────────────┴───────────────┴───────────────┴──────────────┴──► rejected
//
// withdrawn is reachable by the candidate from every non-terminal state.
// hired, rejected, and withdrawn are terminal.
package application

import "fmt"

// Status values mirror the application status column in PostgreSQL.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusUnderReview  Status = "under_review"
	StatusShortlisted  Status = "shortlisted"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusHired        Status = "hired"
	StatusRejected     Status = "rejected"
	StatusWithdrawn    Status = "withdrawn"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusApplied:      {StatusUnderReview, StatusRejected, StatusWithdrawn},
	StatusUnderReview:  {StatusShortlisted, StatusRejected, StatusWithdrawn},
	StatusShortlisted:  {StatusInterviewing, StatusRejected, StatusWithdrawn},
	StatusInterviewing: {StatusOffered, StatusRejected, StatusWithdrawn},
	StatusOffered:      {StatusHired, StatusRejected, StatusWithdrawn},
	// hired, rejected, and withdrawn are terminal — no outgoing transitions
}

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusUnderReview, StatusShortlisted, StatusInterviewing,
		StatusOffered, StatusHired, StatusRejected, StatusWithdrawn:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when the status has no outgoing transitions.
func IsTerminal(s Status) bool {
	_, ok := validTransitions[s]
	return !ok
}
