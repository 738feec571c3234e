package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ForUpdate locks the selected rows until the surrounding transaction ends.
// Drivers without row locking (sqlite) ignore the clause.
func ForUpdate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
}

// Paginate applies LIMIT/OFFSET for 1-based pages.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// OrderBy applies an ORDER BY restricted to the given column whitelist.
// Unknown columns fall back to fallback.
func OrderBy(column, order string, allowed map[string]bool, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !allowed[column] {
			column = fallback
		}
		if order != "asc" {
			order = "desc"
		}
		return db.Order(column + " " + order)
	}
}
