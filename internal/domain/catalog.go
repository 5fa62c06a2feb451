package domain

const (
	DefaultPageSize = 6
	MaxPageSize     = 100

	// CategoryAll is the sentinel the client sends for "no category filter".
	CategoryAll = "All"
)

type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

// ParseSortOrder maps the client sort keys; anything unrecognized means
// insertion order.
func ParseSortOrder(s string) SortOrder {
	switch s {
	case "LowToHigh":
		return SortPriceAsc
	case "HighToLow":
		return SortPriceDesc
	default:
		return SortNone
	}
}

// GadgetQuery is the normalized catalog search input. Zero-valued
// price bounds mean unbounded; Text and Category empty mean no filter.
type GadgetQuery struct {
	Text     string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     SortOrder
	Page     int
	Limit    int
}

// Normalize clamps pagination into a safe range. A non-positive limit is
// pulled up to 1 so skip arithmetic can never go negative or divide by zero.
func (q *GadgetQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit == 0 {
		q.Limit = DefaultPageSize
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Category == CategoryAll {
		q.Category = ""
	}
}

// Skip returns the offset for the requested page.
func (q *GadgetQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// CatalogPage is one page of search results plus pagination bookkeeping.
type CatalogPage struct {
	Gadgets     []Gadget `json:"gadgets"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
}
