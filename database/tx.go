package database

import (
	"context"
	"database/sql"

	"github.com/uptrace/bun"
)

// RunInTx executes fn inside a database transaction, retrying the whole
// transaction on transient failures (serialization conflicts, dropped
// connections). fn must be safe to re-run.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return WithRetry(ctx, func() error {
		return db.DB.RunInTx(ctx, &sql.TxOptions{}, fn)
	})
}
