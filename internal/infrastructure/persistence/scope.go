package persistence

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailbook/backend/internal/domain/shared"
)

// tenantScope narrows a query to one enterprise and, when set, one branch.
// A nil branch means enterprise-wide, not "entries without a branch".
func tenantScope(q *gorm.DB, enterpriseID uuid.UUID, branchID *uuid.UUID) *gorm.DB {
	q = q.Where("enterprise_id = ?", enterpriseID)
	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	return q
}

// windowScope narrows a query to date >= from and date <= to, each bound
// applied only when set.
func windowScope(q *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	return q
}

// listScope applies pagination, ordering and the optional date window of a
// shared.Filter. The caller handles Search, which is per aggregate.
func listScope(q *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	q = windowScope(q, filter.StartDate, filter.EndDate)

	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		q = q.Order(filter.OrderBy + " " + dir)
	} else if defaultOrder != "" {
		q = q.Order(defaultOrder)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		q = q.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return q
}
