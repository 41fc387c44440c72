package transaction

import (
	"context"
	"database/sql"
	"medconsult-service/internal/app/contracts"
	"medconsult-service/internal/app/drivers/database"
	"medconsult-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type transactionManager struct {
	DB  *sql.DB
	Log *zap.Logger
}

func NewTransactionManager(db *sql.DB, logger *zap.Logger) contracts.TransactionManager {
	return &transactionManager{
		DB:  db,
		Log: logger,
	}
}

// WithinTransaction joins the transaction already carried by ctx instead of
// nesting a new one.
func (m *transactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := database.TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := m.DB.BeginTx(ctx, nil)
	if err != nil {
		return exceptions.ErrPostgresDBBeginTransaction(err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
				m.Log.Error("transactionManager.WithinTransaction rollback failed", zap.Error(rollbackErr))
			}
		}
	}()

	err = fn(database.WithTx(ctx, tx))
	if err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return exceptions.ErrPostgresDBCommitTransaction(err)
	}
	return nil
}
