// Package pagination implements page/limit offset pagination for list
// endpoints.
package pagination

const (
	// DefaultPage is used when the caller omits or mangles the page param.
	DefaultPage = 1
	// DefaultLimit is used when the caller omits or mangles the limit param.
	DefaultLimit = 50
	// MaxLimit caps the page size a caller can request.
	MaxLimit = 500
)

// Params carries the normalized paging inputs for a list query.
type Params struct {
	Page  int
	Limit int
}

// Normalize clamps out-of-range inputs back to sane values.
func Normalize(page, limit int) Params {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit}
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for a total row count, never less
// than zero.
func (p Params) TotalPages(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / int64(p.Limit)
	if total%int64(p.Limit) != 0 {
		pages++
	}
	return int(pages)
}

// Meta is the pagination block returned alongside list payloads.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta builds the response metadata for a completed list query.
func NewMeta(p Params, total int64) Meta {
	return Meta{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: p.TotalPages(total),
	}
}
