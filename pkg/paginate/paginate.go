// Package paginate provides offset pagination helpers for GORM queries.
package paginate

import "gorm.io/gorm"

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// New builds the metadata for page/perPage over total rows.
// Pages below 1 are clamped to 1; TotalPages is the ceiling division.
func New(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the row offset for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Scope returns a GORM scope applying LIMIT/OFFSET for page/perPage.
//
//	db.Scopes(paginate.Scope(page, perPage)).Find(&vehicles)
func Scope(page, perPage int) func(*gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * perPage).Limit(perPage)
	}
}
