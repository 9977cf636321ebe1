// Package pagination derives consistent paging metadata from a total
// row count and a requested page.
package pagination

// Page is the paging state for one listing view.
type Page struct {
	Current    int `json:"current_page"`
	PerPage    int `json:"items_per_page"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Compute clamps the requested page into [1, totalPages] and returns
// the resulting page metadata. Zero results count as a single page with
// no rows, so Current is always a valid display page. Callers must use
// the clamped page, not the requested one, when fetching rows: after a
// filter change shrinks the result set the requested page may be stale.
func Compute(totalItems, requested, perPage int) Page {
	if perPage < 1 {
		perPage = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	current := requested
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	return Page{
		Current:    current,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Offset is the index of the first row on the current page.
func (p Page) Offset() int {
	return (p.Current - 1) * p.PerPage
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Current < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool {
	return p.Current > 1
}
