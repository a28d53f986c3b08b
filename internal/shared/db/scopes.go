package db

import (
	"gorm.io/gorm"
)

// OnlyActive restricts a query to rows whose active flag is set.
//
//	db.Model(&models.TicketModel{}).Scopes(db.OnlyActive("tickets")).Count(&n)
func OnlyActive(table string) func(*gorm.DB) *gorm.DB {
	column := "active"
	if table != "" {
		column = table + ".active"
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", true)
	}
}

// Paginate applies offset/limit for a 1-based page.
func Paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
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
