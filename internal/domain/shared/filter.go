package shared

import "time"

// Filter carries common list query options: pagination, ordering, free-text
// search, and an optional date window. Repositories interpret Search per
// aggregate (product name, vendor name, bill number, ...).
type Filter struct {
	Page      int
	PageSize  int
	OrderBy   string
	OrderDir  string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

// Offset returns the row offset implied by Page/PageSize.
func (f Filter) Offset() int {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// DefaultFilter returns a filter with the standard listing defaults.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "date",
		OrderDir: "desc",
	}
}
