package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"solarops/internal/domain/shared"
	"solarops/internal/infrastructure/persistence/models"
	"solarops/internal/shared/biztime"
	"solarops/internal/shared/db"
	"solarops/internal/shared/logger"
)

// SequenceAllocatorImpl keeps named counters in the sequences table. The counter
// row is locked for the rest of the caller's transaction, so concurrent callers
// queue on it and a rollback returns the number.
type SequenceAllocatorImpl struct {
	db     *gorm.DB
	txMgr  *db.TransactionManager
	logger logger.Interface
}

func NewSequenceAllocator(gdb *gorm.DB, logger logger.Interface) shared.SequenceAllocator {
	return &SequenceAllocatorImpl{
		db:     gdb,
		txMgr:  db.NewTransactionManager(gdb),
		logger: logger,
	}
}

func (a *SequenceAllocatorImpl) Next(ctx context.Context, name string, seed func(ctx context.Context) (int64, error)) (int64, error) {
	var next int64
	err := a.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, a.db)

		row, found, err := a.lock(tx, name)
		if err != nil {
			return err
		}
		if !found {
			var start int64
			if seed != nil {
				if start, err = seed(txCtx); err != nil {
					return fmt.Errorf("failed to seed sequence %s: %w", name, err)
				}
			}
			initial := &models.SequenceModel{Name: name, Value: start, UpdatedAt: biztime.NowUTC()}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(initial).Error; err != nil {
				return fmt.Errorf("failed to create sequence %s: %w", name, err)
			}
			a.logger.Infow("sequence initialised", "name", name, "start", start)

			row, found, err = a.lock(tx, name)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("sequence %s vanished after creation", name)
			}
		}

		next = row.Value + 1
		return tx.Model(&models.SequenceModel{}).
			Where("name = ?", name).
			Updates(map[string]interface{}{"value": next, "updated_at": biztime.NowUTC()}).Error
	})
	if err != nil {
		a.logger.Errorw("failed to allocate sequence value", "name", name, "error", err)
		return 0, err
	}
	return next, nil
}

func (a *SequenceAllocatorImpl) lock(tx *gorm.DB, name string) (*models.SequenceModel, bool, error) {
	var rows []models.SequenceModel
	if err := tx.Scopes(db.ForUpdate()).Where("name = ?", name).Limit(1).Find(&rows).Error; err != nil {
		return nil, false, fmt.Errorf("failed to read sequence %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return &rows[0], true, nil
}
