package database

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WithTransaction runs fn inside a transaction and guarantees commit-or-rollback
// on every exit path, including panics. Use it anywhere more than one row must
// move together.
func WithTransaction(fn func(tx *gorm.DB) error) error {
	return DB.Transaction(fn)
}

// ForUpdate adds a row lock to a query so a concurrent writer cannot race past
// a check-then-act sequence against stale data. SQLite (tests) allows a single
// writer and rejects FOR UPDATE, so the clause is applied on Postgres only.
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
