package database

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE books").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := WithTransaction(context.Background(), mock, func(ctx context.Context) error {
		_, ok := TxFromContext(ctx)
		assert.True(t, ok, "fn must receive a ctx carrying the transaction")
		_, err := Conn(ctx, mock).Exec(ctx, "UPDATE books SET average_rating = 0")
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	mock := newMockPool(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTransaction(context.Background(), mock, func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnPanic(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), mock, func(ctx context.Context) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginFailure(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := WithTransaction(context.Background(), mock, func(ctx context.Context) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to begin transaction")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_JoinsOuterTransaction(t *testing.T) {
	mock := newMockPool(t)

	// Only one Begin/Commit pair: the inner call must reuse the outer tx.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := WithTransaction(context.Background(), mock, func(outer context.Context) error {
		outerTx, _ := TxFromContext(outer)
		return WithTransaction(outer, mock, func(inner context.Context) error {
			innerTx, _ := TxFromContext(inner)
			assert.True(t, outerTx == innerTx, "inner call must reuse the outer transaction")
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConn_WithoutTransactionReturnsPool(t *testing.T) {
	mock := newMockPool(t)
	assert.Equal(t, DBTX(mock), Conn(context.Background(), mock))
}

func TestNow_MicrosecondPrecision(t *testing.T) {
	now := Now()

	assert.Equal(t, time.UTC, now.Location())
	assert.Zero(t, now.Nanosecond()%int(time.Microsecond))
}
