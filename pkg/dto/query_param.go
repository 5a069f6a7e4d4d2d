package dto

// Filter carries the catalog search parameters. The price and rating bounds
// use bracketed query keys (price[gte]) and are parsed by the controller.
type Filter struct {
	Limit     int      `query:"limit"`
	Page      int      `query:"page"`
	Keyword   string   `query:"keyword"`
	Category  string   `query:"category"`
	MinPrice  *float64 `query:"-"`
	MaxPrice  *float64 `query:"-"`
	MinRating *float64 `query:"-"`
}

const DefaultResultPerPage = 8

// Normalize fills in paging defaults.
func (f *Filter) Normalize() {
	if f.Limit <= 0 {
		f.Limit = DefaultResultPerPage
	}
	if f.Page <= 0 {
		f.Page = 1
	}
}
