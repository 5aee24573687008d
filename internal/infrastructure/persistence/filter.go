package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mobelhaus/storefront/internal/domain/shared"
)

// allowedOrderColumns guards ORDER BY against injection. Only plain column
// names that appear here may be used for sorting.
var allowedOrderColumns = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"placed_at":  true,
	"status":     true,
	"price":      true,
}

// applyFilter applies pagination, ordering and equality filters to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for column, value := range filter.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}

	orderBy := filter.OrderBy
	if !allowedOrderColumns[orderBy] {
		orderBy = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", orderBy, dir))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// applyCountFilter applies only the equality filters, for COUNT queries
func applyCountFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for column, value := range filter.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return query
}
