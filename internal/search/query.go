package search

import (
	"fmt"
	"strings"
	"time"
)

// Query is the predicate structure the storage layer consumes: SQL condition
// fragments (combined with AND), their positional arguments, and an ORDER BY
// clause. The fragments reference columns of the jobs table.
type Query struct {
	Conditions []string
	Args       []any
	OrderBy    string
}

// Build translates filter criteria and a sort key into a Query. Every
// present constraint is conjunctive and order-independent; supplying no
// criteria yields only the active-status predicate. now anchors the
// postedWithin bound so the builder stays deterministic.
func Build(c FilterCriteria, sort SortKey, now time.Time) Query {
	q := Query{
		// Listings only ever surface while active; closed/expired/filled
		// jobs stay in storage but never match.
		Conditions: []string{"status = 'active'"},
	}
	argIndex := 1
	searchArg := 0 // positional index of the search term, for relevance rank

	if c.Search != "" {
		q.Conditions = append(q.Conditions,
			fmt.Sprintf("search_tsv @@ plainto_tsquery('english', $%d)", argIndex))
		q.Args = append(q.Args, c.Search)
		searchArg = argIndex
		argIndex++
	}

	if len(c.EmploymentTypes) == 1 {
		q.Conditions = append(q.Conditions, fmt.Sprintf("employment_type = $%d", argIndex))
		q.Args = append(q.Args, c.EmploymentTypes[0])
		argIndex++
	} else if len(c.EmploymentTypes) > 1 {
		q.Conditions = append(q.Conditions, fmt.Sprintf("employment_type = ANY($%d)", argIndex))
		q.Args = append(q.Args, c.EmploymentTypes)
		argIndex++
	}

	if len(c.WorkModes) == 1 {
		q.Conditions = append(q.Conditions, fmt.Sprintf("work_mode = $%d", argIndex))
		q.Args = append(q.Args, c.WorkModes[0])
		argIndex++
	} else if len(c.WorkModes) > 1 {
		q.Conditions = append(q.Conditions, fmt.Sprintf("work_mode = ANY($%d)", argIndex))
		q.Args = append(q.Args, c.WorkModes)
		argIndex++
	}

	if c.Location != "" {
		q.Conditions = append(q.Conditions, fmt.Sprintf("city ILIKE $%d", argIndex))
		q.Args = append(q.Args, "%"+c.Location+"%")
		argIndex++
	}

	if c.Industry != "" {
		q.Conditions = append(q.Conditions, fmt.Sprintf("industry = $%d", argIndex))
		q.Args = append(q.Args, c.Industry)
		argIndex++
	}

	if c.Department != "" {
		q.Conditions = append(q.Conditions, fmt.Sprintf("department = $%d", argIndex))
		q.Args = append(q.Args, c.Department)
		argIndex++
	}

	if c.Company != "" {
		q.Conditions = append(q.Conditions, fmt.Sprintf("company = $%d", argIndex))
		q.Args = append(q.Args, c.Company)
		argIndex++
	}

	// The caller's experience band brackets the job's stated minimum: a job
	// qualifies when its minimum falls inside [experienceMin, experienceMax].
	if c.ExperienceMin != nil {
		q.Conditions = append(q.Conditions, fmt.Sprintf("experience_min >= $%d", argIndex))
		q.Args = append(q.Args, *c.ExperienceMin)
		argIndex++
	}
	if c.ExperienceMax != nil {
		q.Conditions = append(q.Conditions, fmt.Sprintf("experience_min <= $%d", argIndex))
		q.Args = append(q.Args, *c.ExperienceMax)
		argIndex++
	}

	// Salary bounds are independent one-sided constraints: the filter floor
	// applies to the job's salary floor, the filter ceiling to its ceiling.
	if c.SalaryMin != nil {
		q.Conditions = append(q.Conditions, fmt.Sprintf("salary_min >= $%d", argIndex))
		q.Args = append(q.Args, *c.SalaryMin)
		argIndex++
	}
	if c.SalaryMax != nil {
		q.Conditions = append(q.Conditions, fmt.Sprintf("salary_max <= $%d", argIndex))
		q.Args = append(q.Args, *c.SalaryMax)
		argIndex++
	}

	if len(c.Skills) > 0 {
		lowered := make([]string, len(c.Skills))
		for i, s := range c.Skills {
			lowered[i] = strings.ToLower(s)
		}
		// OR across the list: any job skill matching any requested skill.
		q.Conditions = append(q.Conditions, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM unnest(skills_required || skills_optional) AS skill WHERE lower(skill) = ANY($%d))",
			argIndex))
		q.Args = append(q.Args, lowered)
		argIndex++
	}

	if c.PostedWithin != nil {
		q.Conditions = append(q.Conditions, fmt.Sprintf("posted_at >= $%d", argIndex))
		q.Args = append(q.Args, now.AddDate(0, 0, -*c.PostedWithin))
		argIndex++
	}

	q.OrderBy = orderClause(sort, searchArg)
	return q
}

// orderClause renders the ORDER BY expression for a sort key. Relevance
// ordering needs the search term's positional argument; without a search
// term it degrades to newest-first.
func orderClause(sort SortKey, searchArg int) string {
	if sort.Relevance {
		if searchArg == 0 {
			return "posted_at DESC"
		}
		return fmt.Sprintf("ts_rank(search_tsv, plainto_tsquery('english', $%d)) DESC", searchArg)
	}

	dir := "ASC"
	if sort.Descending {
		dir = "DESC"
	}
	clause := sort.Column + " " + dir
	if sort.NullsLast {
		clause += " NULLS LAST"
	}
	return clause
}

// WhereClause joins the query conditions into a SQL WHERE clause.
func (q Query) WhereClause() string {
	return "WHERE " + strings.Join(q.Conditions, " AND ")
}
