package pagination

import (
	"strconv"

	"gorm.io/gorm"
)

// MaxPerPage bounds the page size a client may request.
const MaxPerPage = 100

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page    int
	PerPage int
}

// ParsePageRequest reads raw page and per_page query values. A non-numeric
// page becomes 1; a non-numeric or non-positive per_page becomes the default.
// The page is not range-checked here, see Clamp.
func ParsePageRequest(page, perPage string, defaultPerPage int) PageRequest {
	req := PageRequest{Page: 1, PerPage: defaultPerPage}
	if n, err := strconv.Atoi(page); err == nil {
		req.Page = n
	}
	if n, err := strconv.Atoi(perPage); err == nil && n > 0 {
		req.PerPage = n
	}
	if req.PerPage > MaxPerPage {
		req.PerPage = MaxPerPage
	}
	return req
}

// NumPages returns the page count for the given total. An empty result set
// still has one (empty) page.
func NumPages(count int64, perPage int) int {
	if count == 0 {
		return 1
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}

// Clamp moves the page into [1, NumPages(count)].
func (p *PageRequest) Clamp(count int64) {
	last := NumPages(count, p.PerPage)
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > last {
		p.Page = last
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Page is the pagination metadata returned alongside a listing.
type Page struct {
	Count       int64 `json:"count"`
	NumPages    int   `json:"num_pages"`
	CurrentPage int   `json:"current_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage builds pagination metadata for an already clamped request.
func NewPage(req PageRequest, count int64) Page {
	numPages := NumPages(count, req.PerPage)
	return Page{
		Count:       count,
		NumPages:    numPages,
		CurrentPage: req.Page,
		HasNext:     req.Page < numPages,
		HasPrevious: req.Page > 1,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PerPage)
	}
}
