package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/habitquest/internal/logger"
)

// SafeRollback rolls back tx, ignoring the error pgx returns once the tx has been committed
func SafeRollback(ctx context.Context, tx Tx) {
	err := tx.Rollback(ctx)
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return
	}
	logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
}
