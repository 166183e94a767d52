package service

import (
	"context"

	"gorm.io/gorm"
)

// runTx runs fn inside a database transaction. Any error returned by fn rolls
// the whole unit of work back. A nil db runs fn without a transaction.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}
