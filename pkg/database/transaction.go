package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
)

// TxFunc is executed inside a transaction. The ctx it receives carries the
// transaction; repositories pick it up through Conn.
type TxFunc func(ctx context.Context) error

// Transactor runs a function as one atomic unit of work.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}

type txKey struct{}

// ContextWithTx binds tx to ctx.
func ContextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// TxFromContext returns the transaction bound to ctx, if any.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txKey{}).(pgx.Tx)
	return tx, ok && tx != nil
}

// WithTransaction begins a transaction on pool and runs fn with it.
// Rolls back when fn returns an error or panics, commits otherwise.
// If ctx already carries a transaction, fn joins it and the outer caller
// owns commit/rollback.
func WithTransaction(ctx context.Context, pool Pool, fn TxFunc) (err error) {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if err = fn(ContextWithTx(ctx, tx)); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	// The request ctx may already be cancelled; rollback must still reach the server.
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log.Error().Err(err).Msg("failed to rollback transaction")
	}
}

// PgxTransactor is the Transactor backed by a pgx pool.
type PgxTransactor struct {
	pool Pool
}

func NewTransactor(pool Pool) *PgxTransactor {
	return &PgxTransactor{pool: pool}
}

func (t *PgxTransactor) WithinTransaction(ctx context.Context, fn TxFunc) error {
	return WithTransaction(ctx, t.pool, fn)
}
