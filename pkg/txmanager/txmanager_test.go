package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/GovAppointmentService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs       []*fakeTx
	commitErr []error
	opts      []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	if n := len(b.txs); n < len(b.commitErr) {
		tx.commitErr = b.commitErr[n]
	}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDoSerializable_CommitsAndRunsCommitHooks(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	var (
		inTx      bool
		hookCalls []string
	)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		inTx = dbmetrics.IsInTransaction(ctx)
		OnCommit(ctx, "notify", func(context.Context) error {
			hookCalls = append(hookCalls, "commit")
			return nil
		})
		OnRollback(ctx, "cleanup", func(context.Context) error {
			hookCalls = append(hookCalls, "rollback")
			return nil
		})
		return nil
	})

	require.NoError(t, err)
	assert.True(t, inTx)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].committed)
	assert.Equal(t, sql.LevelSerializable, db.opts[0].Isolation)
	assert.Equal(t, []string{"commit"}, hookCalls)
}

func TestDoSerializable_RollsBackOnErrorAndSkipsCommitHooks(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)
	boom := errors.New("slot fully booked")

	var hookCalls []string
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		OnCommit(ctx, "notify", func(context.Context) error {
			hookCalls = append(hookCalls, "commit")
			return nil
		})
		OnRollback(ctx, "cleanup", func(context.Context) error {
			hookCalls = append(hookCalls, "rollback")
			return nil
		})
		return boom
	})

	assert.ErrorIs(t, err, boom)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
	assert.False(t, db.txs[0].committed)
	assert.Equal(t, []string{"rollback"}, hookCalls)
}

func TestDoSerializable_RetriesOnSerializationFailure(t *testing.T) {
	conflict := &pq.Error{Code: "40001"}
	db := &fakeBeginner{commitErr: []error{conflict, nil}}
	m := NewTransactionManager(db, WithMaxRetries(2))

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, db.txs, 2)
	assert.True(t, db.txs[1].committed)
}

func TestDoSerializable_StopsRetryingAfterMaxRetries(t *testing.T) {
	conflict := &pq.Error{Code: "40001"}
	db := &fakeBeginner{commitErr: []error{conflict, conflict, conflict}}
	m := NewTransactionManager(db, WithMaxRetries(1))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommit)
	assert.Len(t, db.txs, 2)
}

func TestDoSerializable_NoRetryOnBusinessError(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	calls := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("not found")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoSerializable_Timeout(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db, WithTimeout(10*time.Millisecond))

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	assert.ErrorIs(t, err, ErrTimeout)
	require.Len(t, db.txs, 1)
	assert.True(t, db.txs[0].rolledBack)
}

func TestDoSerializable_NestedCallJoinsOuterTransaction(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, db.txs, 1)
}

func TestHooks_IsolatedFromEachOther(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	secondRan := false
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		OnCommit(ctx, "panics", func(context.Context) error { panic("kafka down") })
		OnCommit(ctx, "fails", func(context.Context) error { return errors.New("smtp down") })
		OnCommit(ctx, "works", func(context.Context) error {
			secondRan = true
			return nil
		})
		return nil
	})

	require.NoError(t, err)
	assert.True(t, secondRan)
}

func TestOnCommit_OutsideTransactionRunsImmediately(t *testing.T) {
	ran := false
	OnCommit(context.Background(), "direct", func(context.Context) error {
		ran = true
		return nil
	})
	assert.True(t, ran)
}

func TestDo_UsesReadCommitted(t *testing.T) {
	db := &fakeBeginner{}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	require.NoError(t, err)
	require.Len(t, db.opts, 1)
	assert.Equal(t, sql.LevelReadCommitted, db.opts[0].Isolation)
}

func TestDo_WaitsBetweenRetries(t *testing.T) {
	deadlock := &pq.Error{Code: "40P01"}
	db := &fakeBeginner{commitErr: []error{deadlock, deadlock, nil}}
	m := NewTransactionManager(db,
		WithMaxRetries(3),
		WithRetryBackoff(20*time.Millisecond, 40*time.Millisecond),
	)

	started := time.Now()
	err := m.Do(context.Background(), func(context.Context) error { return nil })

	require.NoError(t, err)
	assert.Len(t, db.txs, 3)
	// две паузы, каждая не меньше половины начального интервала
	assert.GreaterOrEqual(t, time.Since(started), 20*time.Millisecond)
}

func TestDo_ZeroRetriesMeansSingleAttempt(t *testing.T) {
	conflict := &pq.Error{Code: "40001"}
	db := &fakeBeginner{commitErr: []error{conflict, nil}}
	m := NewTransactionManager(db, WithMaxRetries(0))

	err := m.Do(context.Background(), func(context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommit)
	assert.Len(t, db.txs, 1)
}

func TestDo_CancelledContextStopsRetrying(t *testing.T) {
	conflict := &pq.Error{Code: "40001"}
	db := &fakeBeginner{commitErr: []error{conflict, conflict, conflict}}
	m := NewTransactionManager(db,
		WithMaxRetries(5),
		WithRetryBackoff(time.Second, time.Second),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Do(ctx, func(context.Context) error { return nil })

	assert.Error(t, err)
	assert.Len(t, db.txs, 1)
}
