package dbutil

import "gorm.io/gorm"

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// ClampLimit applies the list defaults: 0 or negative means DefaultLimit,
// anything above MaxLimit is capped.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func Paginate(limit, offset int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset < 0 {
			offset = 0
		}
		return db.Limit(ClampLimit(limit)).Offset(offset)
	}
}

// WhereIf adds "column = value" only when value is non-empty.
func WhereIf(column, value string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == "" {
			return db
		}
		return db.Where(column+" = ?", value)
	}
}
