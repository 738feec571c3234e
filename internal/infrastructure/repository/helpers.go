package repository

import (
	"context"

	"gorm.io/gorm"

	"solarops/internal/shared/db"
)

// withTx runs fn on the transaction carried by ctx, or opens one when the
// caller did not.
func withTx(ctx context.Context, defaultDB *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db.InTransaction(ctx) {
		return fn(db.GetTxFromContext(ctx, defaultDB))
	}
	return defaultDB.WithContext(ctx).Transaction(fn)
}
