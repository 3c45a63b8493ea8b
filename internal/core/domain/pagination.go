package domain

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*MaxPageSize well inside int64 and Postgres BIGINT.
	MaxPage = math.MaxInt32
)

// PageWindow is a normalised 1-based page request.
type PageWindow struct {
	Page     int
	PageSize int
}

// NewPageWindow clamps page to [1, MaxPage] and pageSize to [1, MaxPageSize].
// A non-positive pageSize falls back to DefaultPageSize.
func NewPageWindow(page, pageSize int) PageWindow {
	switch {
	case page < 1:
		page = DefaultPage
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return PageWindow{Page: page, PageSize: pageSize}
}

func (w PageWindow) Offset() int { return (w.Page - 1) * w.PageSize }

func (w PageWindow) Limit() int { return w.PageSize }

// NextPage returns page+1 when more rows exist beyond this window, else nil.
func (w PageWindow) NextPage(total int64) *int {
	if int64(w.Offset()+w.PageSize) >= total {
		return nil
	}
	next := w.Page + 1
	return &next
}

// PrevPage returns page-1 for any page after the first, else nil.
func (w PageWindow) PrevPage() *int {
	if w.Page <= 1 {
		return nil
	}
	prev := w.Page - 1
	return &prev
}
