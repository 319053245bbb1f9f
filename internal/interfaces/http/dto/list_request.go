package dto

import (
	"time"

	"github.com/retailbook/backend/internal/domain/shared"
)

// ListRequest represents common list query parameters.
type ListRequest struct {
	Page      int        `form:"page,default=1" binding:"min=0"`
	PageSize  int        `form:"page_size,default=20" binding:"min=0,max=200"`
	OrderBy   string     `form:"order_by" binding:"max=50"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search    string     `form:"search" binding:"max=255"`
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ToFilter converts the request to a domain filter.
func (r ListRequest) ToFilter() shared.Filter {
	return shared.Filter{
		Page:      r.Page,
		PageSize:  r.PageSize,
		OrderBy:   r.OrderBy,
		OrderDir:  r.OrderDir,
		Search:    r.Search,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// DateRangeRequest is an optional date window, used by statements.
type DateRangeRequest struct {
	StartDate *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"end_date" time_format:"2006-01-02"`
}

// ReportRequest is a mandatory date window, used by reports.
type ReportRequest struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02" binding:"required"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02" binding:"required"`
}

// DateRequest identifies a single day.
type DateRequest struct {
	Date time.Time `form:"date" time_format:"2006-01-02" binding:"required"`
}
