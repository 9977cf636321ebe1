// Package query turns user-facing filter input into the parameters of a
// single PostgREST query. Building a descriptor has no side effects; the
// same filter spec and page always produce the same descriptor.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidFilter is returned for malformed page or page-size input.
var ErrInvalidFilter = errors.New("invalid filter")

// SearchColumns are the columns matched by the free-text search, in the
// order they appear in the rendered "or" condition.
var SearchColumns = []string{"title", "company_name", "description", "location"}

// FilterSpec is the closed set of listing filters. Zero values mean
// "not filtered". Fields combine with AND; the free-text search matches
// OR across SearchColumns.
type FilterSpec struct {
	Search   string   `json:"search,omitempty"`
	JobTypes []string `json:"job_type,omitempty"`
	Location string   `json:"location,omitempty"`
	Company  string   `json:"company,omitempty"`
}

// IsZero reports whether no filter is active.
func (f FilterSpec) IsZero() bool {
	return f.Search == "" && len(f.JobTypes) == 0 && f.Location == "" && f.Company == ""
}

// Descriptor is a fully resolved query: normalized predicates, a stable
// sort and a row window. created_at alone is not unique, so id is kept
// as a secondary sort key; without it rows can repeat or vanish across
// page boundaries.
type Descriptor struct {
	Search   string
	JobTypes []string
	Location string
	Company  string
	Offset   int
	Limit    int
}

// Build validates and normalizes a filter spec plus page request into a
// Descriptor. page and pageSize are 1-based and must be positive.
func Build(f FilterSpec, page, pageSize int) (Descriptor, error) {
	if page < 1 {
		return Descriptor{}, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidFilter, page)
	}
	if pageSize < 1 {
		return Descriptor{}, fmt.Errorf("%w: page size must be >= 1, got %d", ErrInvalidFilter, pageSize)
	}

	d := Descriptor{
		Search:   strings.TrimSpace(f.Search),
		Location: strings.TrimSpace(f.Location),
		Company:  strings.TrimSpace(f.Company),
		Offset:   (page - 1) * pageSize,
		Limit:    pageSize,
	}

	// Dedupe tags, preserving the caller's order.
	seen := make(map[string]bool, len(f.JobTypes))
	for _, tag := range f.JobTypes {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		d.JobTypes = append(d.JobTypes, tag)
	}

	return d, nil
}

// HasPredicates reports whether the descriptor filters rows at all.
func (d Descriptor) HasPredicates() bool {
	return d.Search != "" || len(d.JobTypes) > 0 || d.Location != "" || d.Company != ""
}

// Values renders the descriptor as PostgREST query parameters:
// an or=() group of ilike conditions for the search text, ov (array
// overlap) for job types, ilike for location and company, plus order,
// offset and limit. Multiple parameters are ANDed by PostgREST.
func (d Descriptor) Values() url.Values {
	v := url.Values{}

	if d.Search != "" {
		conds := make([]string, 0, len(SearchColumns))
		for _, col := range SearchColumns {
			conds = append(conds, col+".ilike."+ilikePattern(d.Search))
		}
		v.Set("or", "("+strings.Join(conds, ",")+")")
	}
	if len(d.JobTypes) > 0 {
		tags := make([]string, 0, len(d.JobTypes))
		for _, tag := range d.JobTypes {
			tags = append(tags, sanitize(tag))
		}
		v.Set("job_type", "ov.{"+strings.Join(tags, ",")+"}")
	}
	if d.Location != "" {
		v.Set("location", "ilike."+ilikePattern(d.Location))
	}
	if d.Company != "" {
		v.Set("company_name", "ilike."+ilikePattern(d.Company))
	}

	v.Set("order", "created_at.desc,id.desc")
	v.Set("offset", strconv.Itoa(d.Offset))
	v.Set("limit", strconv.Itoa(d.Limit))
	return v
}

func ilikePattern(s string) string {
	return "*" + sanitize(s) + "*"
}

// sanitize strips characters reserved by the PostgREST filter grammar
// so user input cannot break out of a condition.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '(', ')', '{', '}', '"':
			return -1
		}
		return r
	}, s)
}
