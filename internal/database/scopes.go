package database

import (
	"gorm.io/gorm"
)

// Latest orders messages newest first and caps the result at limit
func Latest(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("messages.timestamp DESC").Order("messages.id DESC").Limit(limit)
	}
}
