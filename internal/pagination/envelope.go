// Package pagination wraps result lists in the API's standard page envelope.
package pagination

// Page describes the position of a result list within the full result set.
type Page struct {
	Total       int  `json:"total"`
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Envelope is the JSON body shape for every paginated response.
type Envelope struct {
	Data       any  `json:"data"`
	Pagination Page `json:"pagination"`
}

// NewEnvelope wraps an already-fetched page of items with its pagination
// metadata. page is 1-based. totalPages is 0 when total is 0, and both
// has-flags are false in that case.
func NewEnvelope(data any, total, page, limit int) Envelope {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Envelope{
		Data: data,
		Pagination: Page{
			Total:       total,
			Page:        page,
			Limit:       limit,
			TotalPages:  totalPages,
			HasNextPage: page < totalPages,
			HasPrevPage: page > 1,
		},
	}
}
