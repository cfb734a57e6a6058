package domain

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPageNumber keeps Offset within int32 for any page size. Larger
	// page numbers are past the last row of any table we serve.
	MaxPageNumber = math.MaxInt32 / MaxPageSize
)

// Page is a 1-based page request
type Page struct {
	Number int
	Size   int
}

// NewPage clamps raw paging input to sane values
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if number > MaxPageNumber {
		number = MaxPageNumber
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return Page{Number: number, Size: size}
}

// Offset is the number of rows to skip
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// PageInfo describes a page of results
type PageInfo struct {
	TotalItems int64 `json:"totalItems"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPageInfo builds paging metadata for a page over total items
func NewPageInfo(page Page, total int64) PageInfo {
	return PageInfo{
		TotalItems: total,
		Page:       page.Number,
		PageSize:   page.Size,
		TotalPages: TotalPages(total, page.Size),
	}
}

// TotalPages is ceil(total / size)
func TotalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(size)))
}
