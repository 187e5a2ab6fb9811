package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds a FOR UPDATE row lock to the query. Every row mutated
// inside a funding transaction must be read through this so concurrent
// transactions touching the same donor, farmer, balance or counter row
// serialize instead of overwriting each other's sums. SQLite has no row
// locks and serializes writers itself, so the clause is only added on
// dialects that support it.
func lockForUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
