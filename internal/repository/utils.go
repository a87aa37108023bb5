package repository

import (
	"context"

	"github.com/jprdgz/sakahan-api/internal/logger"
)

// rollbacker matches any transaction handle with a Rollback method.
type rollbacker interface {
	Rollback(ctx context.Context) error
}

// SafeRollback rolls back a transaction, logging unexpected failures.
// Rolling back an already-committed transaction is a no-op, so this is
// safe to defer unconditionally.
func SafeRollback(ctx context.Context, tx rollbacker) {
	if err := tx.Rollback(ctx); err != nil {
		log := logger.FromContext(ctx)
		log.Debug("Transaction rollback after commit or failure", "error", err)
	}
}
