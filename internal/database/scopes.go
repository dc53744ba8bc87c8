package database

import (
	"gorm.io/gorm"
)

// Paginate applies 1-indexed pagination to a GORM query. Non-positive values
// leave the query unlimited.
func Paginate(page, perPage int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 || perPage < 1 {
			return db
		}
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}
