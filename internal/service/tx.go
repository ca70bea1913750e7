package service

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate applies a pessimistic row lock scoped to the named base
// table. Scoping matters: FOR UPDATE over an outer join fails on the
// nullable side, so the lock must name the table being mutated only.
// SQLite (used by the test suite) serializes writers with a database-level
// lock and rejects FOR UPDATE syntax, so the clause is postgres-only.
func lockForUpdate(tx *gorm.DB, table string) *gorm.DB {
	if tx.Dialector.Name() != "postgres" {
		return tx
	}
	return tx.Clauses(clause.Locking{
		Strength: clause.LockingStrengthUpdate,
		Table:    clause.Table{Name: table},
	})
}
