package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback(context.Context) error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx  *fakeTx
	err error
}

func (f *fakeBeginner) Begin(context.Context) (pgx.Tx, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func TestWithTransactionCommits(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	got, err := WithTransactionResult(context.Background(), db, func(pgx.Tx) (int64, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}
	boom := errors.New("duplicate key")

	err := WithTransaction(context.Background(), db, func(pgx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{}}

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), db, func(pgx.Tx) error { panic("boom") })
	})
	assert.True(t, db.tx.rolledBack)
}

func TestWithTransactionCommitFailure(t *testing.T) {
	db := &fakeBeginner{tx: &fakeTx{commitErr: errors.New("conn reset")}}

	_, err := WithTransactionResult(context.Background(), db, func(pgx.Tx) (string, error) {
		return "ok", nil
	})

	assert.ErrorContains(t, err, "failed to commit transaction")
	assert.True(t, db.tx.rolledBack)
}

func TestWithTransactionBeginFailure(t *testing.T) {
	db := &fakeBeginner{err: errors.New("pool closed")}

	err := WithTransaction(context.Background(), db, func(pgx.Tx) error { return nil })
	assert.ErrorContains(t, err, "failed to begin transaction")
}
