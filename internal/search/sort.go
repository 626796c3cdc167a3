package search

// Sort mode tokens accepted by the search endpoint.
const (
	SortNewest     = "newest"
	SortOldest     = "oldest"
	SortSalaryHigh = "salary_high"
	SortSalaryLow  = "salary_low"
	SortRelevance  = "relevance"
)

// SortKey is a concrete ordering specification over job listings: either a
// column with a direction, or text-search relevance (rank descending).
type SortKey struct {
	Column     string
	Descending bool
	NullsLast  bool
	Relevance  bool
}

// ResolveSort maps a sort-mode token to a SortKey. This is a total function:
// unknown or missing tokens silently fall back to newest (posting timestamp
// descending).
func ResolveSort(token string) SortKey {
	switch token {
	case SortOldest:
		return SortKey{Column: "posted_at"}
	case SortSalaryHigh:
		return SortKey{Column: "salary_max", Descending: true, NullsLast: true}
	case SortSalaryLow:
		return SortKey{Column: "salary_min", NullsLast: true}
	case SortRelevance:
		return SortKey{Relevance: true}
	default:
		return SortKey{Column: "posted_at", Descending: true}
	}
}
