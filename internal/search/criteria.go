// Package search builds storage-layer queries for job listings from
// request-scoped filter criteria.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

// FilterCriteria holds the optional constraints a job search request may
// apply. All fields are optional; a zero value means "no constraint on this
// dimension". Criteria are request-scoped and never persisted.
type FilterCriteria struct {
	Search          string
	EmploymentTypes []string
	WorkModes       []string
	Location        string
	Industry        string
	Department      string
	Company         string
	ExperienceMin   *int
	ExperienceMax   *int
	SalaryMin       *int
	SalaryMax       *int
	Skills          []string
	PostedWithin    *int // days
}

// ParseCriteria extracts filter criteria from HTTP query parameters.
// Malformed numeric values are treated as absent rather than rejected, so
// parsing never fails.
func ParseCriteria(values url.Values) FilterCriteria {
	c := FilterCriteria{
		Search:          strings.TrimSpace(values.Get("search")),
		EmploymentTypes: parseList(values, "employmentType"),
		WorkModes:       parseList(values, "workMode"),
		Location:        strings.TrimSpace(values.Get("location")),
		Industry:        strings.TrimSpace(values.Get("industry")),
		Department:      strings.TrimSpace(values.Get("department")),
		Company:         strings.TrimSpace(values.Get("company")),
		ExperienceMin:   parseOptionalInt(values.Get("experienceMin")),
		ExperienceMax:   parseOptionalInt(values.Get("experienceMax")),
		SalaryMin:       parseOptionalInt(values.Get("salaryMin")),
		SalaryMax:       parseOptionalInt(values.Get("salaryMax")),
		Skills:          parseList(values, "skills"),
	}

	if days := parseOptionalInt(values.Get("postedWithin")); days != nil && *days > 0 {
		c.PostedWithin = days
	}

	return c
}

// parseList collects a multi-valued parameter, accepting both repeated keys
// and comma-separated values.
func parseList(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// parseOptionalInt returns nil for empty or non-numeric input.
func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}
