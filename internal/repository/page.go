package repository

import "strings"

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageRequest describes pagination and sorting for list queries. Page is a
// zero-based page index.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

// Normalized clamps the request to sane bounds.
func (p PageRequest) Normalized() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset for the request.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Descending reports whether the sort direction resolves to descending order.
func (p PageRequest) Descending() bool {
	return !strings.EqualFold(p.SortDir, "asc")
}

// Page is one page of query results together with the total match count.
type Page[T any] struct {
	Items      []T
	TotalCount int64
	Page       int
	Size       int
}

// TotalPages computes the page count for the recorded size.
func (p Page[T]) TotalPages() int64 {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalCount + int64(p.Size) - 1) / int64(p.Size)
}
